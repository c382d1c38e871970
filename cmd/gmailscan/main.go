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

// ScamShield — Gmail Scan Command
//
// Runs one incremental scan of the connected Gmail inbox: lists recent
// messages inside the watermark-derived window, submits each to the remote
// analyzer, and reports scanned/flagged counts. A file lock guards against
// overlapping runs triggered from multiple processes.
//
// Usage:
//
//	gmailscan [--max 5]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gofrs/flock"
	"github.com/redis/go-redis/v9"

	"github.com/scamshield/scamshield/internal/analyzer"
	"github.com/scamshield/scamshield/internal/config"
	"github.com/scamshield/scamshield/internal/dedup"
	"github.com/scamshield/scamshield/internal/gmail"
	"github.com/scamshield/scamshield/internal/scan"
	"github.com/scamshield/scamshield/internal/store"
)

func main() {
	// Structured JSON logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// --- CLI Flags ---
	maxFlag := flag.Int("max", 0, "Maximum messages to scan (default from config)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	maxMessages := cfg.ScanMaxMessages
	if *maxFlag > 0 {
		maxMessages = *maxFlag
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	// --- Single-flight lock across processes ---
	if err := os.MkdirAll(filepath.Dir(cfg.LockPath), 0o755); err != nil {
		slog.Error("failed to create state directory", "error", err)
		os.Exit(1)
	}
	lock := flock.New(cfg.LockPath)
	locked, err := lock.TryLock()
	if err != nil {
		slog.Error("failed to acquire scan lock", "path", cfg.LockPath, "error", err)
		os.Exit(1)
	}
	if !locked {
		slog.Info("another scan is already running, skipping")
		return
	}
	defer lock.Unlock()

	// --- Local State Store ---
	st, err := store.Open(cfg.StatePath)
	if err != nil {
		slog.Error("failed to open state store", "error", err)
		os.Exit(1)
	}
	defer st.Close()

	// --- Optional Redis Seen Filter ---
	var seen scan.Seen
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			slog.Error("invalid REDIS_URL", "error", err)
			os.Exit(1)
		}
		rdb := redis.NewClient(opt)
		defer rdb.Close()

		filter := dedup.NewFilter(rdb)
		if err := filter.Ping(ctx); err != nil {
			slog.Error("failed to connect to Redis", "error", err)
			os.Exit(1)
		}
		seen = filter
		slog.Info("processed-message filter enabled")
	}

	// --- Scanner ---
	scanner := scan.NewScanner(scan.ScannerConfig{
		Mailbox:     gmail.NewGateway(nil, ""),
		Analyzer:    analyzer.NewClient(nil, cfg.APIBaseURL),
		Watermarks:  st,
		Credentials: st,
		Seen:        seen,
		Recorder:    st,
	})

	outcome, err := scanner.ScanLatest(ctx, maxMessages)
	if err != nil {
		switch {
		case errors.Is(err, scan.ErrNotConnected):
			fmt.Fprintln(os.Stderr, "Gmail is not connected. Run the connect command first.")
		case errors.Is(err, scan.ErrCredentialExpired):
			fmt.Fprintln(os.Stderr, "Gmail credential expired. Run the connect command to reconnect.")
		default:
			slog.Error("gmail scan failed", "error", err)
		}
		os.Exit(1)
	}

	// --- Summary ---
	slog.Info("scan summary",
		"scanned", outcome.Scanned,
		"flagged", outcome.Flagged,
		"failed", outcome.Failed,
	)
	fmt.Printf("Scanned %d message(s), flagged %d", outcome.Scanned, outcome.Flagged)
	if outcome.Failed > 0 {
		fmt.Printf(" (%d failed)", outcome.Failed)
	}
	fmt.Println()
}
