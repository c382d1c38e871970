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

import "strings"

// HighRiskScore is the numeric threshold at or above which a result is
// treated as high risk regardless of its reported level. It matches the
// backend's own scoring granularity.
const HighRiskScore = 70

// MLSignals carries the model-derived fields of an analysis result.
type MLSignals struct {
	ProbPhish    float64 `json:"prob_phish"`
	Confidence   float64 `json:"confidence"`
	ModelVersion string  `json:"model_version"`
}

// Result is the analysis verdict returned by the remote analyzer. The same
// schema is shared by the email, SMS, and URL endpoints. Optional fields may
// be absent; absence degrades to zero values, never to an error.
type Result struct {
	Type               string         `json:"type"`
	RiskScore          float64        `json:"risk_score"`
	RiskLevel          string         `json:"risk_level"`
	ML                 MLSignals      `json:"ml"`
	Reasons            []string       `json:"reasons"`
	RecommendedActions []string       `json:"recommended_actions"`
	AnalysisID         string         `json:"analysis_id"`
	Intel              map[string]any `json:"intel,omitempty"`
}

// HighRisk reports whether the verdict meets the high-risk threshold: a risk
// level of "high" (case-insensitive) or a risk score of HighRiskScore or
// above. The two triggers are independent — a "medium" level with score 85
// is still high risk.
func (r *Result) HighRisk() bool {
	return strings.EqualFold(r.RiskLevel, "high") || r.RiskScore >= HighRiskScore
}
