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
	"strconv"
	"time"
)

const watermarkKey = "gmail.lastscan.v1"

// LastScan returns the persisted scan watermark. ok is false when no scan
// has ever completed.
func (s *Store) LastScan(ctx context.Context) (time.Time, bool, error) {
	raw, ok, err := s.getKV(watermarkKey)
	if err != nil {
		return time.Time{}, false, err
	}
	if !ok {
		return time.Time{}, false, nil
	}

	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || ms <= 0 {
		// An unreadable watermark is the same as never having scanned.
		return time.Time{}, false, nil
	}
	return time.UnixMilli(ms), true, nil
}

// SetLastScan advances the scan watermark. Only the scan orchestrator calls
// this, once per completed run.
func (s *Store) SetLastScan(ctx context.Context, t time.Time) error {
	return s.setKV(watermarkKey, strconv.FormatInt(t.UnixMilli(), 10))
}
