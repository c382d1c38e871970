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

import "regexp"

// urlPattern matches an http(s) URL up to the first terminator character.
// Terminators are whitespace, closing brackets, and quotes — characters that
// commonly follow a pasted or forwarded link. Scheme matching is
// case-insensitive.
var urlPattern = regexp.MustCompile(`(?i)https?://[^\s)\]}>'"]+`)

// startsWithScheme matches text that begins with an http(s) scheme after
// leading whitespace has been trimmed by the caller.
var startsWithScheme = regexp.MustCompile(`(?i)^https?://`)

// containsScheme matches an http(s) scheme anywhere on a word boundary.
var containsScheme = regexp.MustCompile(`(?i)\bhttps?://`)

// ExtractFirstURL scans text left to right and returns the first http(s) URL
// substring verbatim. No normalization or trailing-punctuation trimming is
// applied beyond the terminator set. The second return is false when text
// contains no URL.
func ExtractFirstURL(text string) (string, bool) {
	m := urlPattern.FindString(text)
	if m == "" {
		return "", false
	}
	return m, true
}

// looksLikeURL reports whether text starts with an http(s) scheme or
// contains one anywhere.
func looksLikeURL(text string) bool {
	return startsWithScheme.MatchString(text) || containsScheme.MatchString(text)
}
