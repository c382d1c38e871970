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

package analyzer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/scamshield/scamshield/internal/intake"
)

// TestClient_AnalyzeEmail verifies the request shape and response decoding
// for the email endpoint.
func TestClient_AnalyzeEmail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/analyze-email" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("method = %q", r.Method)
		}

		var req map[string]string
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req["body"] != "Subject: hi\n\npreview" {
			t.Errorf("body = %q", req["body"])
		}

		w.Header().Set("Content-Type", "application/json")
		data, _ := json.Marshal(map[string]any{
			"type":       "email",
			"risk_score": 82,
			"risk_level": "high",
			"ml": map[string]any{
				"prob_phish":    0.91,
				"confidence":    0.87,
				"model_version": "v3",
			},
			"reasons":             []string{"urgency language", "suspicious sender"},
			"recommended_actions": []string{"do not reply"},
			"analysis_id":         "an-123",
		})
		w.Write(data)
	}))
	defer server.Close()

	c := NewClient(server.Client(), server.URL)
	res, err := c.AnalyzeEmail(context.Background(), "Subject: hi\n\npreview")
	if err != nil {
		t.Fatalf("AnalyzeEmail failed: %v", err)
	}

	if res.RiskScore != 82 || res.RiskLevel != "high" {
		t.Errorf("verdict = %.0f/%s", res.RiskScore, res.RiskLevel)
	}
	if res.ML.ModelVersion != "v3" {
		t.Errorf("model version = %q", res.ML.ModelVersion)
	}
	if len(res.Reasons) != 2 || res.Reasons[0] != "urgency language" {
		t.Errorf("reasons = %v", res.Reasons)
	}
	if res.AnalysisID != "an-123" {
		t.Errorf("analysis id = %q", res.AnalysisID)
	}
}

// TestClient_AnalyzePayload_Routing verifies each intake mode hits its own
// endpoint with the matching field name.
func TestClient_AnalyzePayload_Routing(t *testing.T) {
	type seen struct {
		path string
		body map[string]string
	}
	var requests []seen

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		json.NewDecoder(r.Body).Decode(&req)
		requests = append(requests, seen{path: r.URL.Path, body: req})
		w.Write([]byte(`{"type": "ok", "risk_score": 1, "risk_level": "low"}`))
	}))
	defer server.Close()

	c := NewClient(server.Client(), server.URL)
	ctx := context.Background()

	payloads := []*intake.Payload{
		{Mode: intake.ModeURL, URL: "https://bit.ly/x"},
		{Mode: intake.ModeEmail, Body: "Subject: x\n\ny"},
		{Mode: intake.ModeSMS, Text: "free prize"},
	}
	for _, p := range payloads {
		if _, err := c.AnalyzePayload(ctx, p); err != nil {
			t.Fatalf("AnalyzePayload(%s) failed: %v", p.Mode, err)
		}
	}

	want := []seen{
		{path: "/api/v1/analyze-url", body: map[string]string{"url": "https://bit.ly/x"}},
		{path: "/api/v1/analyze-email", body: map[string]string{"body": "Subject: x\n\ny"}},
		{path: "/api/v1/analyze-sms", body: map[string]string{"text": "free prize"}},
	}
	if len(requests) != len(want) {
		t.Fatalf("got %d requests, want %d", len(requests), len(want))
	}
	for i, w := range want {
		if requests[i].path != w.path {
			t.Errorf("request %d path = %q, want %q", i, requests[i].path, w.path)
		}
		for k, v := range w.body {
			if requests[i].body[k] != v {
				t.Errorf("request %d field %s = %q, want %q", i, k, requests[i].body[k], v)
			}
		}
	}
}

// TestClient_ErrorStatusIncludesBody verifies a non-2xx response surfaces
// the backend's message.
func TestClient_ErrorStatusIncludesBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("url field is required"))
	}))
	defer server.Close()

	c := NewClient(server.Client(), server.URL)
	_, err := c.AnalyzeURL(context.Background(), "")
	if err == nil {
		t.Fatal("expected error for 400 response")
	}
	if !strings.Contains(err.Error(), "url field is required") {
		t.Errorf("error %q should include the backend message", err)
	}
}

// TestClient_MalformedBody verifies an undecodable success body is an error.
func TestClient_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer server.Close()

	c := NewClient(server.Client(), server.URL)
	if _, err := c.AnalyzeSMS(context.Background(), "hi"); err == nil {
		t.Fatal("expected error for non-JSON body")
	}
}

// TestResult_HighRisk verifies the two independent high-risk triggers.
func TestResult_HighRisk(t *testing.T) {
	cases := []struct {
		level string
		score float64
		want  bool
	}{
		{"medium", 72, true}, // score-only trigger
		{"HIGH", 10, true},   // level-only trigger, case-insensitive
		{"high", 90, true},
		{"low", 50, false},
		{"", 69.9, false},
		{"", 70, true}, // threshold is inclusive
	}

	for _, tc := range cases {
		r := &Result{RiskLevel: tc.level, RiskScore: tc.score}
		if got := r.HighRisk(); got != tc.want {
			t.Errorf("HighRisk(level=%q score=%.1f) = %v, want %v", tc.level, tc.score, got, tc.want)
		}
	}
}

// TestResult_OptionalFieldsDegrade verifies absent optional fields decode to
// zero values rather than failing.
func TestResult_OptionalFieldsDegrade(t *testing.T) {
	var res Result
	if err := json.Unmarshal([]byte(`{"type": "sms", "risk_score": 12}`), &res); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if res.RiskLevel != "" || res.Reasons != nil || res.Intel != nil {
		t.Errorf("optional fields should be zero values: %+v", res)
	}
}
