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

package clipboard

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeSource struct {
	text string
	err  error
}

func (f *fakeSource) ReadText() (string, error) {
	return f.text, f.err
}

func collectingWatcher(source Source) (*Watcher, *[]string) {
	var urls []string
	w := NewWatcher(source, time.Minute, func(ctx context.Context, url string) {
		urls = append(urls, url)
	})
	return w, &urls
}

// TestWatcher_EmitsNewURL verifies a copied URL reaches the handler exactly
// once, and copying the same text again does not re-emit it.
func TestWatcher_EmitsNewURL(t *testing.T) {
	source := &fakeSource{text: "check this https://bit.ly/x out"}
	w, urls := collectingWatcher(source)
	ctx := context.Background()

	w.check(ctx)
	w.check(ctx)

	if len(*urls) != 1 {
		t.Fatalf("handler called %d times, want 1", len(*urls))
	}
	if (*urls)[0] != "https://bit.ly/x" {
		t.Errorf("url = %q", (*urls)[0])
	}
}

// TestWatcher_NewValueEmitsAgain verifies a changed clipboard value with a
// different URL is emitted, and re-copying an earlier value counts as new.
func TestWatcher_NewValueEmitsAgain(t *testing.T) {
	source := &fakeSource{text: "https://first.example/"}
	w, urls := collectingWatcher(source)
	ctx := context.Background()

	w.check(ctx)
	source.text = "https://second.example/"
	w.check(ctx)
	source.text = "https://first.example/"
	w.check(ctx)

	want := []string{"https://first.example/", "https://second.example/", "https://first.example/"}
	if len(*urls) != len(want) {
		t.Fatalf("got %v, want %v", *urls, want)
	}
	for i := range want {
		if (*urls)[i] != want[i] {
			t.Errorf("url %d = %q, want %q", i, (*urls)[i], want[i])
		}
	}
}

// TestWatcher_IgnoresNonURLText verifies plain text never reaches the
// handler.
func TestWatcher_IgnoresNonURLText(t *testing.T) {
	source := &fakeSource{text: "meeting notes from tuesday"}
	w, urls := collectingWatcher(source)

	w.check(context.Background())

	if len(*urls) != 0 {
		t.Errorf("handler called for non-URL text: %v", *urls)
	}
}

// TestWatcher_IgnoresEmptyAndErrors verifies empty clipboards and read
// failures are skipped without disturbing change tracking.
func TestWatcher_IgnoresEmptyAndErrors(t *testing.T) {
	source := &fakeSource{text: ""}
	w, urls := collectingWatcher(source)
	ctx := context.Background()

	w.check(ctx)

	source.err = errors.New("clipboard unavailable")
	source.text = "https://evil.tk/"
	w.check(ctx)

	if len(*urls) != 0 {
		t.Fatalf("handler called during empty/error reads: %v", *urls)
	}

	// Once the read recovers the pending URL is picked up.
	source.err = nil
	w.check(ctx)

	if len(*urls) != 1 || (*urls)[0] != "https://evil.tk/" {
		t.Errorf("got %v, want the recovered URL", *urls)
	}
}

// TestWatcher_StartStopsOnCancel verifies Start returns promptly when the
// context is cancelled.
func TestWatcher_StartStopsOnCancel(t *testing.T) {
	w, _ := collectingWatcher(&fakeSource{})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()

	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Start returned %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Start did not return after cancel")
	}
}
