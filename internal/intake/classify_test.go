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

package intake

import "testing"

// TestClassify_ResolvedURLWins verifies that a pre-resolved URL field wins
// over any free-text content.
func TestClassify_ResolvedURLWins(t *testing.T) {
	p := Classify(SharePayload{
		WebURL: "  https://bit.ly/x  ",
		Text:   "Subject: hi\nFrom: a@b.com\n\nbody with http://other.example",
	})

	if p == nil {
		t.Fatal("expected a payload")
	}
	if p.Mode != ModeURL {
		t.Fatalf("mode = %q, want url", p.Mode)
	}
	if p.URL != "https://bit.ly/x" {
		t.Errorf("url = %q, want trimmed resolved URL", p.URL)
	}
}

// TestClassify_ShareIntentURL covers the plain share-a-link case.
func TestClassify_ShareIntentURL(t *testing.T) {
	p := Classify(SharePayload{WebURL: "https://bit.ly/x"})
	if p == nil || p.Mode != ModeURL || p.URL != "https://bit.ly/x" {
		t.Errorf("got %+v, want url payload for https://bit.ly/x", p)
	}
}

// TestClassify_BlankInput verifies that empty or whitespace-only input
// produces no payload at all.
func TestClassify_BlankInput(t *testing.T) {
	if p := Classify(SharePayload{}); p != nil {
		t.Errorf("empty payload: got %+v, want nil", p)
	}
	if p := Classify(SharePayload{WebURL: "   ", Text: " \n\t "}); p != nil {
		t.Errorf("blank payload: got %+v, want nil", p)
	}
}

// TestClassify_URLInTextBeatsEmail documents the precedence rule: a
// forwarded email containing a link is classified as URL mode, not email.
func TestClassify_URLInTextBeatsEmail(t *testing.T) {
	p := Classify(SharePayload{
		Text: "Subject: Urgent\nFrom: x@y.com\n\nclick http://evil.tk",
	})

	if p == nil {
		t.Fatal("expected a payload")
	}
	if p.Mode != ModeURL {
		t.Fatalf("mode = %q, want url", p.Mode)
	}
	if p.URL != "http://evil.tk" {
		t.Errorf("url = %q, want http://evil.tk", p.URL)
	}
}

// TestClassify_TextStartingWithURL verifies the starts-with-scheme path.
func TestClassify_TextStartingWithURL(t *testing.T) {
	p := Classify(SharePayload{Text: "  https://login.example/verify?id=1 "})
	if p == nil || p.Mode != ModeURL {
		t.Fatalf("got %+v, want url payload", p)
	}
	if p.URL != "https://login.example/verify?id=1" {
		t.Errorf("url = %q", p.URL)
	}
}

// TestClassify_EmailContent verifies email-shaped text routes to email mode
// with the full text as body.
func TestClassify_EmailContent(t *testing.T) {
	text := "Subject: Account Verification\nFrom: security@bank.example\n\nPlease verify your account"
	p := Classify(SharePayload{Text: text})

	if p == nil {
		t.Fatal("expected a payload")
	}
	if p.Mode != ModeEmail {
		t.Fatalf("mode = %q, want email", p.Mode)
	}
	if p.Body != text {
		t.Errorf("body = %q, want full original text", p.Body)
	}
}

// TestClassify_EmailDetectionIsFixedPoint verifies that reclassifying an
// email payload's body as plain text yields email mode again.
func TestClassify_EmailDetectionIsFixedPoint(t *testing.T) {
	first := Classify(SharePayload{Text: "Subject: Hello\nTo: me@here.example\n\nno links in this one"})
	if first == nil || first.Mode != ModeEmail {
		t.Fatalf("first pass: got %+v, want email payload", first)
	}

	second := Classify(SharePayload{Text: first.Body})
	if second == nil || second.Mode != ModeEmail {
		t.Fatalf("second pass: got %+v, want email payload", second)
	}
	if second.Body != first.Body {
		t.Errorf("body changed across passes")
	}
}

// TestClassify_CaseInsensitiveEmailHeaders verifies header detection ignores
// case.
func TestClassify_CaseInsensitiveEmailHeaders(t *testing.T) {
	p := Classify(SharePayload{Text: "SUBJECT: win a prize\nFROM: spam@x.example\nclaim now"})
	if p == nil || p.Mode != ModeEmail {
		t.Errorf("got %+v, want email payload", p)
	}
}

// TestClassify_DefaultsToSMS verifies arbitrary text falls through to SMS
// mode unmodified.
func TestClassify_DefaultsToSMS(t *testing.T) {
	p := Classify(SharePayload{Text: "Your package could not be delivered. Reply STOP to opt out"})

	if p == nil {
		t.Fatal("expected a payload")
	}
	if p.Mode != ModeSMS {
		t.Fatalf("mode = %q, want sms", p.Mode)
	}
	if p.Text != "Your package could not be delivered. Reply STOP to opt out" {
		t.Errorf("text = %q", p.Text)
	}
}

// TestClassify_SubjectAloneIsNotEmail verifies that "subject:" without a
// from/to header stays SMS.
func TestClassify_SubjectAloneIsNotEmail(t *testing.T) {
	p := Classify(SharePayload{Text: "subject: just a word someone texted"})
	if p == nil || p.Mode != ModeSMS {
		t.Errorf("got %+v, want sms payload", p)
	}
}
