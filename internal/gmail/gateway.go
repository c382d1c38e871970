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

// Package gmail is a thin gateway to the Gmail REST API for the scan
// orchestrator: list recent message IDs and fetch per-message metadata,
// authorized by a bearer token. Metadata format (headers + snippet) is
// enough for scam analysis; full bodies are never downloaded.
package gmail

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// DefaultBaseURL is the Gmail REST API for the authenticated user.
const DefaultBaseURL = "https://gmail.googleapis.com/gmail/v1"

// metadataHeaders are the only headers the scan pipeline consults.
var metadataHeaders = []string{"Subject", "From", "To", "Date"}

// MessageRef identifies one message in a listing response.
type MessageRef struct {
	ID       string `json:"id"`
	ThreadID string `json:"threadId"`
}

// MessageList is one page of a mailbox listing. A non-empty NextPageToken
// means more results exist beyond the requested page.
type MessageList struct {
	Messages           []MessageRef `json:"messages"`
	NextPageToken      string       `json:"nextPageToken,omitempty"`
	ResultSizeEstimate int          `json:"resultSizeEstimate,omitempty"`
}

// Header is a single message header name/value pair.
type Header struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Message is the metadata view of a single mailbox message.
type Message struct {
	ID           string `json:"id"`
	Snippet      string `json:"snippet,omitempty"`
	InternalDate string `json:"internalDate,omitempty"`
	Payload      struct {
		Headers []Header `json:"headers"`
	} `json:"payload"`
}

// HeaderValue returns the value of the named header, matched
// case-insensitively. The first match wins; absent headers yield "".
func (m *Message) HeaderValue(name string) string {
	for _, h := range m.Payload.Headers {
		if strings.EqualFold(h.Name, name) {
			return h.Value
		}
	}
	return ""
}

// Gateway lists and fetches mailbox messages over the Gmail REST API.
type Gateway struct {
	httpClient *http.Client
	baseURL    string
}

// NewGateway creates a Gmail gateway. A nil httpClient falls back to
// http.DefaultClient; an empty baseURL falls back to DefaultBaseURL.
func NewGateway(httpClient *http.Client, baseURL string) *Gateway {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Gateway{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// ListMessages returns up to maxResults message refs matching the Gmail
// search query q (empty q lists unconditionally). Only the first page is
// requested.
func (g *Gateway) ListMessages(ctx context.Context, token string, maxResults int, q string) (*MessageList, error) {
	params := url.Values{}
	params.Set("maxResults", strconv.Itoa(maxResults))
	if q != "" {
		params.Set("q", q)
	}

	listURL := fmt.Sprintf("%s/users/me/messages?%s", g.baseURL, params.Encode())

	var list MessageList
	if err := g.get(ctx, token, listURL, &list); err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return &list, nil
}

// GetMessage fetches one message's metadata: the Subject/From/To/Date
// headers plus the snippet.
func (g *Gateway) GetMessage(ctx context.Context, token, id string) (*Message, error) {
	params := url.Values{}
	params.Set("format", "metadata")
	for _, h := range metadataHeaders {
		params.Add("metadataHeaders", h)
	}

	getURL := fmt.Sprintf("%s/users/me/messages/%s?%s", g.baseURL, url.PathEscape(id), params.Encode())

	var msg Message
	if err := g.get(ctx, token, getURL, &msg); err != nil {
		return nil, fmt.Errorf("get message %s: %w", id, err)
	}
	return &msg, nil
}

// get performs an authorized GET and decodes the JSON response into out.
func (g *Gateway) get(ctx context.Context, token, reqURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		slog.Error("gmail API error", "status", resp.StatusCode, "body", string(body))
		return fmt.Errorf("gmail API returned HTTP %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}
