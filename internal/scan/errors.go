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

package scan

import "errors"

var (
	// ErrNotConnected means no Gmail credential is stored. Surfaced to the
	// user as a prompt to connect, never silently retried.
	ErrNotConnected = errors.New("gmail account not connected")

	// ErrCredentialExpired means the stored credential is past its expiry.
	// Raised before any network call.
	ErrCredentialExpired = errors.New("gmail credential expired")

	// ErrScanInProgress means another scan run holds the single-flight
	// guard. The caller should simply skip this trigger.
	ErrScanInProgress = errors.New("gmail scan already in progress")
)

// ListError wraps a failure of the mailbox listing call. The run produced no
// partial results and the watermark was not advanced.
type ListError struct {
	Err error
}

func (e *ListError) Error() string { return "list mailbox: " + e.Err.Error() }

func (e *ListError) Unwrap() error { return e.Err }

// IsListError reports whether err is (or wraps) a ListError.
func IsListError(err error) bool {
	var le *ListError
	return errors.As(err, &le)
}
