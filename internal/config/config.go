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

// Package config loads configuration from config.yaml and environment
// variables. The config file is optional for a client tool; when absent,
// environment variables and defaults apply.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// GoogleConfig holds the OAuth client used for the Gmail connect flow.
type GoogleConfig struct {
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	RedirectURL  string `yaml:"redirect_url"`
}

// Config holds all configuration for the ScamShield client tools.
type Config struct {
	// APIBaseURL is the remote analysis backend.
	APIBaseURL string

	Google GoogleConfig

	// StatePath is the SQLite database holding local state.
	StatePath string

	// LockPath guards against concurrent scan runs across processes.
	LockPath string

	// RedisURL enables the processed-message dedup filter when non-empty.
	RedisURL string

	// ScanMaxMessages bounds one Gmail scan run.
	ScanMaxMessages int

	// ClipboardInterval is the clipboard watcher's poll interval.
	ClipboardInterval time.Duration
}

// rawConfig mirrors the YAML structure for unmarshalling.
type rawConfig struct {
	APIBaseURL string       `yaml:"api_base_url"`
	Google     GoogleConfig `yaml:"google"`
	StatePath  string       `yaml:"state_path"`
	RedisURL   string       `yaml:"redis_url"`
	Scan       struct {
		MaxMessages int `yaml:"max_messages"`
	} `yaml:"scan"`
}

// Load reads configuration from config.yaml (with env var expansion) and
// environment variables for overrides.
func Load() (*Config, error) {
	configPath := envOrDefault("SCAMSHIELD_CONFIG", "config.yaml")

	var raw rawConfig
	if data, err := os.ReadFile(configPath); err == nil {
		// Expand ${VAR} references in the YAML
		expanded := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
			return nil, fmt.Errorf("parse config YAML: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config file %s: %w", configPath, err)
	}

	cfg := &Config{
		APIBaseURL: firstNonEmpty(envOrDefault("SCAMSHIELD_API_URL", ""), raw.APIBaseURL),
		Google: GoogleConfig{
			ClientID:     firstNonEmpty(os.Getenv("GOOGLE_CLIENT_ID"), raw.Google.ClientID),
			ClientSecret: firstNonEmpty(os.Getenv("GOOGLE_CLIENT_SECRET"), raw.Google.ClientSecret),
			RedirectURL:  firstNonEmpty(os.Getenv("GOOGLE_REDIRECT_URL"), raw.Google.RedirectURL, "urn:ietf:wg:oauth:2.0:oob"),
		},
		StatePath:         firstNonEmpty(os.Getenv("SCAMSHIELD_STATE_PATH"), raw.StatePath, defaultStatePath()),
		RedisURL:          firstNonEmpty(os.Getenv("REDIS_URL"), raw.RedisURL),
		ScanMaxMessages:   envOrDefaultInt("SCAMSHIELD_SCAN_MAX", firstNonZero(raw.Scan.MaxMessages, 5)),
		ClipboardInterval: envOrDefaultDuration("SCAMSHIELD_CLIPBOARD_INTERVAL", 2*time.Second),
	}
	cfg.LockPath = cfg.StatePath + ".lock"

	return cfg, nil
}

// defaultStatePath places local state under the user's home directory,
// falling back to the working directory when home is unknown.
func defaultStatePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "scamshield.db"
	}
	return filepath.Join(home, ".scamshield", "state.db")
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envOrDefaultInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envOrDefaultDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func firstNonZero(values ...int) int {
	for _, v := range values {
		if v != 0 {
			return v
		}
	}
	return 0
}
