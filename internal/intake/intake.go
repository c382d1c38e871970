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

// Package intake classifies loosely-typed external input (OS share payloads,
// clipboard text) into one of three typed analysis modes: URL, email, or
// SMS/plain text. Classification is pure and deterministic; the loose input
// shape never escapes this package.
package intake

// Mode identifies which analysis endpoint and payload shape an input maps to.
type Mode string

const (
	ModeURL   Mode = "url"
	ModeEmail Mode = "email"
	ModeSMS   Mode = "sms"
)

// SharePayload is the loose bag of optional fields a share mechanism hands
// us. Platforms differ in which fields they populate; blank means absent.
type SharePayload struct {
	// WebURL is an already-resolved URL, when the sharing platform parsed
	// one out for us.
	WebURL string

	// Text is free-form shared text.
	Text string
}

// Payload is the classified intake result. Exactly one of URL, Body, or Text
// is populated, matching Mode.
type Payload struct {
	Mode Mode

	// URL is set for ModeURL: a single absolute URL string.
	URL string

	// Body is set for ModeEmail: the full shared text including header lines.
	Body string

	// Text is set for ModeSMS: the shared text as-is.
	Text string
}
