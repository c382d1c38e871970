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

// Package clipboard watches the system clipboard for newly copied URLs and
// hands them to a callback for analysis intake.
package clipboard

import (
	"context"
	"log/slog"
	"time"

	"github.com/atotto/clipboard"

	"github.com/scamshield/scamshield/internal/intake"
)

// Source reads the current clipboard text. Abstracted for tests.
type Source interface {
	ReadText() (string, error)
}

// SystemSource reads the real OS clipboard.
type SystemSource struct{}

func (SystemSource) ReadText() (string, error) {
	return clipboard.ReadAll()
}

// URLHandler is invoked once per newly observed clipboard URL. The watcher
// itself never blocks on the handler's network work longer than one tick.
type URLHandler func(ctx context.Context, url string)

// Watcher polls a clipboard source and emits the first URL of each new
// clipboard value.
type Watcher struct {
	source   Source
	interval time.Duration
	handler  URLHandler

	lastText string
}

// NewWatcher creates a clipboard URL watcher.
func NewWatcher(source Source, interval time.Duration, handler URLHandler) *Watcher {
	return &Watcher{
		source:   source,
		interval: interval,
		handler:  handler,
	}
}

// Start polls until ctx is cancelled. The first observed clipboard value is
// also inspected, so a URL copied before startup is still caught.
func (w *Watcher) Start(ctx context.Context) error {
	slog.Info("clipboard watcher started", "interval", w.interval)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.check(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("clipboard watcher stopped")
			return ctx.Err()
		case <-ticker.C:
			w.check(ctx)
		}
	}
}

// check reads the clipboard once and emits a URL if the content changed and
// contains one. Read failures are logged and skipped; clipboards go away
// under screen locks and remote sessions.
func (w *Watcher) check(ctx context.Context) {
	text, err := w.source.ReadText()
	if err != nil {
		slog.Debug("clipboard read failed", "error", err)
		return
	}

	if text == "" || text == w.lastText {
		return
	}
	w.lastText = text

	url, ok := intake.ExtractFirstURL(text)
	if !ok {
		return
	}

	slog.Info("clipboard URL detected", "url", url)
	w.handler(ctx, url)
}
