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

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/scamshield/scamshield/internal/analyzer"
)

// Analysis is one completed analysis recorded in local history.
type Analysis struct {
	ID         string    `db:"id"`
	Mode       string    `db:"mode"`
	Source     string    `db:"source"` // "manual", "share", "clipboard", "gmail"
	RiskScore  float64   `db:"risk_score"`
	RiskLevel  string    `db:"risk_level"`
	AnalysisID string    `db:"analysis_id"`
	Reasons    []string  `db:"-"`
	Flagged    bool      `db:"flagged"`
	CreatedAt  time.Time `db:"created_at"`

	RawReasons string `db:"reasons"`
}

// RecordAnalysis appends one analysis result to history.
func (s *Store) RecordAnalysis(ctx context.Context, mode, source string, res *analyzer.Result) error {
	reasons, err := json.Marshal(res.Reasons)
	if err != nil {
		return fmt.Errorf("marshal reasons: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO analyses (id, mode, source, risk_score, risk_level, analysis_id, reasons, flagged, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		uuid.New().String(), mode, source,
		res.RiskScore, res.RiskLevel, res.AnalysisID,
		string(reasons), res.HighRisk(), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("record analysis: %w", err)
	}
	return nil
}

// RecordScan implements scan.Recorder: one history row per scanned message.
func (s *Store) RecordScan(ctx context.Context, messageID string, res *analyzer.Result) error {
	return s.RecordAnalysis(ctx, "email", "gmail", res)
}

// RecentAnalyses returns the newest history entries, most recent first.
func (s *Store) RecentAnalyses(ctx context.Context, limit int) ([]Analysis, error) {
	var rows []Analysis
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, mode, source, risk_score, risk_level, analysis_id, reasons, flagged, created_at
		FROM analyses
		ORDER BY created_at DESC, id
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list analyses: %w", err)
	}

	for i := range rows {
		if err := json.Unmarshal([]byte(rows[i].RawReasons), &rows[i].Reasons); err != nil {
			rows[i].Reasons = nil
		}
	}
	return rows, nil
}

// TrendPoint is one day's aggregate of analysis activity.
type TrendPoint struct {
	Day      string  `db:"day"`
	Total    int     `db:"total"`
	Flagged  int     `db:"flagged"`
	AvgScore float64 `db:"avg_score"`
}

// Trends aggregates history per day over the trailing window.
func (s *Store) Trends(ctx context.Context, days int) ([]TrendPoint, error) {
	since := time.Now().UTC().AddDate(0, 0, -days)

	var points []TrendPoint
	err := s.db.SelectContext(ctx, &points, `
		SELECT date(created_at) AS day,
		       COUNT(*) AS total,
		       COALESCE(SUM(flagged), 0) AS flagged,
		       COALESCE(AVG(risk_score), 0) AS avg_score
		FROM analyses
		WHERE created_at >= ?
		GROUP BY date(created_at)
		ORDER BY day`, since)
	if err != nil {
		return nil, fmt.Errorf("aggregate trends: %w", err)
	}
	return points, nil
}
