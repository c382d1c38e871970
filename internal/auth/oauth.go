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

// Package auth obtains the Gmail bearer credential via the OAuth2
// authorization-code flow. It only produces a token and its expiry; storing
// and expiring the credential is the store's job.
package auth

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// gmailReadonlyScope grants read-only mailbox access, the only permission
// the scanner needs.
const gmailReadonlyScope = "https://www.googleapis.com/auth/gmail.readonly"

// Config returns the OAuth2 configuration for the Gmail connect flow.
func Config(clientID, clientSecret, redirectURL string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		Scopes:       []string{gmailReadonlyScope},
		Endpoint:     google.Endpoint,
	}
}

// AuthURL returns the URL the user visits to authorize mailbox access.
func AuthURL(cfg *oauth2.Config) string {
	return cfg.AuthCodeURL("state-token", oauth2.AccessTypeOffline, oauth2.ApprovalForce)
}

// Exchange trades an authorization code for a bearer token and its expiry.
func Exchange(ctx context.Context, cfg *oauth2.Config, code string) (token string, expiresAt time.Time, err error) {
	tok, err := cfg.Exchange(ctx, code)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("exchange authorization code: %w", err)
	}
	return tok.AccessToken, tok.Expiry, nil
}
