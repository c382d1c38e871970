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

// Package scan orchestrates incremental Gmail scans: list recent messages,
// normalize each to analyzable text, submit to the remote analyzer, and
// aggregate scanned/flagged counts under a persisted watermark.
package scan

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/scamshield/scamshield/internal/analyzer"
	"github.com/scamshield/scamshield/internal/gmail"
)

// Query windows. The watermark is a coarse bound: individual message IDs are
// not tracked here, so a message can be re-scanned when runs complete less
// than a day apart and new mail arrives within that day. An optional Seen
// filter tightens this.
const (
	incrementalQuery = "newer_than:1d"
	firstRunQuery    = "newer_than:7d"
)

// Mailbox lists and fetches messages. Implemented by gmail.Gateway.
type Mailbox interface {
	ListMessages(ctx context.Context, token string, maxResults int, q string) (*gmail.MessageList, error)
	GetMessage(ctx context.Context, token, id string) (*gmail.Message, error)
}

// Analyzer submits email text for analysis. Implemented by analyzer.Client.
type Analyzer interface {
	AnalyzeEmail(ctx context.Context, body string) (*analyzer.Result, error)
}

// WatermarkStore persists the last-completed-scan timestamp. The scanner is
// the only writer.
type WatermarkStore interface {
	LastScan(ctx context.Context) (time.Time, bool, error)
	SetLastScan(ctx context.Context, t time.Time) error
}

// Credential is a bearer token with its expiry.
type Credential struct {
	Token     string
	ExpiresAt time.Time
}

// CredentialSource yields the stored Gmail credential, or nil when the
// account is not connected.
type CredentialSource interface {
	Credential(ctx context.Context) (*Credential, error)
}

// Seen is an optional processed-message filter. IsNew returns true when the
// ID has not been seen before and atomically marks it seen.
type Seen interface {
	IsNew(ctx context.Context, id string) (bool, error)
}

// Recorder optionally receives one record per analyzed message, e.g. for
// local history.
type Recorder interface {
	RecordScan(ctx context.Context, messageID string, res *analyzer.Result) error
}

// Outcome summarises one scan run. Flagged <= Scanned always holds; Failed
// counts messages whose fetch or analysis failed and were skipped.
type Outcome struct {
	Scanned int
	Flagged int
	Failed  int
}

// Scanner runs incremental Gmail scans. A run is sequential: both the
// mailbox and the analyzer are rate-limited external services, and the
// aggregate counters need no synchronization this way.
type Scanner struct {
	mailbox     Mailbox
	analyzer    Analyzer
	watermarks  WatermarkStore
	credentials CredentialSource
	seen        Seen     // optional
	recorder    Recorder // optional

	running atomic.Bool
	now     func() time.Time
}

// ScannerConfig holds the scanner's collaborators. Seen and Recorder are
// optional.
type ScannerConfig struct {
	Mailbox     Mailbox
	Analyzer    Analyzer
	Watermarks  WatermarkStore
	Credentials CredentialSource
	Seen        Seen
	Recorder    Recorder
}

// NewScanner creates a scan orchestrator.
func NewScanner(cfg ScannerConfig) *Scanner {
	return &Scanner{
		mailbox:     cfg.Mailbox,
		analyzer:    cfg.Analyzer,
		watermarks:  cfg.Watermarks,
		credentials: cfg.Credentials,
		seen:        cfg.Seen,
		recorder:    cfg.Recorder,
		now:         time.Now,
	}
}

// ScanLatest runs one incremental scan over up to maxMessages recent
// messages and returns the aggregated outcome.
//
// The watermark is advanced after every completed run, including runs that
// listed zero messages and runs with per-message failures. It is not
// advanced when the listing call itself fails (ListError) or when the
// credential check fails before any network call.
func (s *Scanner) ScanLatest(ctx context.Context, maxMessages int) (*Outcome, error) {
	if !s.running.CompareAndSwap(false, true) {
		return nil, ErrScanInProgress
	}
	defer s.running.Store(false)

	cred, err := s.credentials.Credential(ctx)
	if err != nil {
		return nil, fmt.Errorf("load credential: %w", err)
	}
	if cred == nil || cred.Token == "" {
		return nil, ErrNotConnected
	}
	if !cred.ExpiresAt.After(s.now()) {
		return nil, ErrCredentialExpired
	}

	_, hasWatermark, err := s.watermarks.LastScan(ctx)
	if err != nil {
		return nil, fmt.Errorf("read scan watermark: %w", err)
	}

	query := firstRunQuery
	if hasWatermark {
		query = incrementalQuery
	}

	slog.Info("starting gmail scan", "query", query, "max_messages", maxMessages)

	list, err := s.mailbox.ListMessages(ctx, cred.Token, maxMessages, query)
	if err != nil {
		return nil, &ListError{Err: err}
	}

	outcome := &Outcome{}
	for _, ref := range list.Messages {
		s.scanMessage(ctx, cred.Token, ref.ID, outcome)
	}

	// A run with nothing to do still counts as a completed run.
	if err := s.watermarks.SetLastScan(ctx, s.now()); err != nil {
		return nil, fmt.Errorf("advance scan watermark: %w", err)
	}

	slog.Info("gmail scan complete",
		"scanned", outcome.Scanned,
		"flagged", outcome.Flagged,
		"failed", outcome.Failed,
	)

	return outcome, nil
}

// scanMessage processes a single message: fetch, normalize, submit, count.
// Failures are isolated per message so one malformed message cannot void an
// otherwise-successful run.
func (s *Scanner) scanMessage(ctx context.Context, token, id string, outcome *Outcome) {
	if s.seen != nil {
		isNew, err := s.seen.IsNew(ctx, id)
		if err != nil {
			slog.Warn("seen-filter check failed, proceeding", "message_id", id, "error", err)
		} else if !isNew {
			slog.Debug("skipping already-scanned message", "message_id", id)
			return
		}
	}

	msg, err := s.mailbox.GetMessage(ctx, token, id)
	if err != nil {
		slog.Warn("fetch message failed", "message_id", id, "error", err)
		outcome.Failed++
		return
	}

	body := gmail.ToAnalyzeBody(msg)
	if body == "" {
		// Nothing to analyze; does not count toward Scanned.
		slog.Debug("skipping message with empty metadata", "message_id", id)
		return
	}

	res, err := s.analyzer.AnalyzeEmail(ctx, body)
	if err != nil {
		slog.Warn("analyze message failed", "message_id", id, "error", err)
		outcome.Failed++
		return
	}

	outcome.Scanned++
	if res.HighRisk() {
		outcome.Flagged++
		slog.Info("message flagged",
			"message_id", id,
			"risk_level", res.RiskLevel,
			"risk_score", res.RiskScore,
		)
	}

	if s.recorder != nil {
		if err := s.recorder.RecordScan(ctx, id, res); err != nil {
			slog.Warn("record scan result failed", "message_id", id, "error", err)
		}
	}
}
