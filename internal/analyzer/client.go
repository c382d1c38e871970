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

// Package analyzer is the HTTP client for the remote ScamShield analysis
// backend. Every call is attempted exactly once; retry policy belongs to
// callers, not here.
package analyzer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/scamshield/scamshield/internal/intake"
)

// DefaultBaseURL is the production analysis backend.
const DefaultBaseURL = "https://scamshield-backend-yb1y.onrender.com"

// Client submits content to the remote analyzer.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates an analyzer client. A nil httpClient falls back to
// http.DefaultClient; an empty baseURL falls back to DefaultBaseURL.
func NewClient(httpClient *http.Client, baseURL string) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// AnalyzeEmail submits reconstructed email text (header lines plus body).
func (c *Client) AnalyzeEmail(ctx context.Context, body string) (*Result, error) {
	return c.post(ctx, "/api/v1/analyze-email", map[string]string{"body": body})
}

// AnalyzeSMS submits raw SMS or plain text.
func (c *Client) AnalyzeSMS(ctx context.Context, text string) (*Result, error) {
	return c.post(ctx, "/api/v1/analyze-sms", map[string]string{"text": text})
}

// AnalyzeURL submits a single URL.
func (c *Client) AnalyzeURL(ctx context.Context, url string) (*Result, error) {
	return c.post(ctx, "/api/v1/analyze-url", map[string]string{"url": url})
}

// AnalyzePayload routes a classified intake payload to the matching endpoint.
func (c *Client) AnalyzePayload(ctx context.Context, p *intake.Payload) (*Result, error) {
	switch p.Mode {
	case intake.ModeURL:
		return c.AnalyzeURL(ctx, p.URL)
	case intake.ModeEmail:
		return c.AnalyzeEmail(ctx, p.Body)
	case intake.ModeSMS:
		return c.AnalyzeSMS(ctx, p.Text)
	default:
		return nil, fmt.Errorf("unknown intake mode %q", p.Mode)
	}
}

// post sends a JSON request and decodes the shared Result schema. Any
// non-2xx status or undecodable body is a transport-level failure.
func (c *Client) post(ctx context.Context, path string, payload any) (*Result, error) {
	reqBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal analyze request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("build analyze request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("submit analyze request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		slog.Error("analyzer error response", "path", path, "status", resp.StatusCode, "body", string(body))
		if msg := strings.TrimSpace(string(body)); msg != "" {
			return nil, fmt.Errorf("analyzer returned HTTP %d: %s", resp.StatusCode, msg)
		}
		return nil, fmt.Errorf("analyzer returned HTTP %d", resp.StatusCode)
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode analyze response: %w", err)
	}

	return &result, nil
}
