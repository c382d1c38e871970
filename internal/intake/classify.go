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

import "strings"

// Classify turns a loose share payload into a typed intake payload. It
// returns nil when there is nothing to classify, which is a normal outcome
// and not an error.
//
// Precedence, first applicable rule wins:
//
//  1. A non-blank pre-resolved WebURL field wins outright.
//  2. Blank free text → nil.
//  3. Free text that starts with or contains an http(s) scheme is routed to
//     URL mode using the first extracted URL. This deliberately outranks
//     email detection: a forwarded email containing a link is analyzed as a
//     URL.
//  4. Text containing "subject:" plus "from:" or "to:" is email content.
//  5. Everything else is SMS/plain text.
func Classify(p SharePayload) *Payload {
	if u := strings.TrimSpace(p.WebURL); u != "" {
		return &Payload{Mode: ModeURL, URL: u}
	}

	text := strings.TrimSpace(p.Text)
	if text == "" {
		return nil
	}

	if looksLikeURL(text) {
		if u, ok := ExtractFirstURL(text); ok {
			return &Payload{Mode: ModeURL, URL: u}
		}
	}

	if looksLikeEmailContent(text) {
		return &Payload{Mode: ModeEmail, Body: text}
	}

	return &Payload{Mode: ModeSMS, Text: text}
}

// looksLikeEmailContent reports whether text resembles a pasted email:
// a Subject header plus a From or To header, case-insensitively.
func looksLikeEmailContent(text string) bool {
	t := strings.ToLower(text)
	return strings.Contains(t, "subject:") &&
		(strings.Contains(t, "from:") || strings.Contains(t, "to:"))
}
