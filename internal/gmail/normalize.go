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

package gmail

import "strings"

// ToAnalyzeBody flattens a message's metadata into the text block the
// analyzer's email endpoint expects: one "<Name>: <value>" line per present
// header in Subject, From, To, Date order, a blank separator line, then the
// snippet. Absent or empty headers are omitted entirely. A message with no
// headers and no snippet yields "", which callers must treat as nothing to
// analyze rather than an error.
func ToAnalyzeBody(msg *Message) string {
	var lines []string
	for _, name := range metadataHeaders {
		if v := msg.HeaderValue(name); v != "" {
			lines = append(lines, name+": "+v)
		}
	}

	if len(lines) == 0 && msg.Snippet == "" {
		return ""
	}

	lines = append(lines, "", msg.Snippet)
	return strings.Join(lines, "\n")
}
