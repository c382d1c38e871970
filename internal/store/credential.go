// Copyright (c) 2026 ScamShield Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/scamshield/scamshield/internal/scan"
)

const credentialKey = "gmail.credential.v1"

// storedCredential is the persisted JSON shape of a Gmail credential.
type storedCredential struct {
	Token       string `json:"token"`
	ExpiresAtMs int64  `json:"expiresAtMs"`
}

// SaveCredential persists a Gmail bearer token and its expiry.
func (s *Store) SaveCredential(token string, expiresAt time.Time) error {
	raw, err := json.Marshal(storedCredential{
		Token:       token,
		ExpiresAtMs: expiresAt.UnixMilli(),
	})
	if err != nil {
		return err
	}
	return s.setKV(credentialKey, string(raw))
}

// Credential returns the stored Gmail credential, or nil when the account is
// not connected. Expiry is not evaluated here; callers decide what expired
// means.
func (s *Store) Credential(ctx context.Context) (*scan.Credential, error) {
	raw, ok, err := s.getKV(credentialKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	var sc storedCredential
	if err := json.Unmarshal([]byte(raw), &sc); err != nil {
		// A corrupt credential is indistinguishable from no credential.
		return nil, nil
	}
	if sc.Token == "" {
		return nil, nil
	}

	return &scan.Credential{
		Token:     sc.Token,
		ExpiresAt: time.UnixMilli(sc.ExpiresAtMs),
	}, nil
}

// ClearCredential disconnects the Gmail account.
func (s *Store) ClearCredential() error {
	return s.deleteKV(credentialKey)
}
