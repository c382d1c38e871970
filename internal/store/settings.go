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
	"encoding/json"
	"log/slog"
)

const settingsKey = "settings.v1"

// Settings are the user-facing toggles consumed by the intake triggers.
type Settings struct {
	AutoAnalyzeShared bool `json:"autoAnalyzeShared"`
	WatchClipboard    bool `json:"watchClipboard"`
}

// DefaultSettings are applied when no settings have been saved yet.
func DefaultSettings() Settings {
	return Settings{
		AutoAnalyzeShared: true,
		WatchClipboard:    true,
	}
}

// Settings returns the stored settings, falling back to defaults when
// absent. An unparsable stored blob degrades to defaults rather than
// failing.
func (s *Store) Settings() (Settings, error) {
	raw, ok, err := s.getKV(settingsKey)
	if err != nil {
		return DefaultSettings(), err
	}
	if !ok {
		return DefaultSettings(), nil
	}

	settings := DefaultSettings()
	if err := json.Unmarshal([]byte(raw), &settings); err != nil {
		slog.Warn("stored settings unparsable, using defaults", "error", err)
		return DefaultSettings(), nil
	}
	return settings, nil
}

// SaveSettings persists the full settings record.
func (s *Store) SaveSettings(settings Settings) error {
	raw, err := json.Marshal(settings)
	if err != nil {
		return err
	}
	return s.setKV(settingsKey, string(raw))
}
