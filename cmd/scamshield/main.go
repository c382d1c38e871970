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

// ScamShield — Analysis Intake CLI
//
// Submits suspicious content to the remote analysis backend and prints the
// verdict. Input is classified the same way a share-intent payload is:
// an explicit URL wins, then URL-bearing text, then email-shaped text, then
// plain SMS text.
//
// Usage:
//
//	scamshield [--url https://...] [--text "..."] [--mode auto|sms|email|url]
//	scamshield --watch            # watch the clipboard for URLs
//	scamshield --history 20       # show recent analyses
//	scamshield --trends 7         # per-day aggregates
//	scamshield --settings         # show toggles
//	scamshield --set-watch-clipboard=false
//
// With no --text and no --url, text is read from stdin.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/scamshield/scamshield/internal/analyzer"
	"github.com/scamshield/scamshield/internal/clipboard"
	"github.com/scamshield/scamshield/internal/config"
	"github.com/scamshield/scamshield/internal/intake"
	"github.com/scamshield/scamshield/internal/store"
)

func main() {
	// Structured JSON logging for diagnostics; verdicts go to stdout via fmt.
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
	slog.SetDefault(logger)

	// --- CLI Flags ---
	urlFlag := flag.String("url", "", "URL to analyze (wins over --text)")
	textFlag := flag.String("text", "", "Text to analyze (default: read stdin)")
	modeFlag := flag.String("mode", "auto", "Force intake mode: auto, sms, email, or url")
	watchFlag := flag.Bool("watch", false, "Watch the clipboard and analyze newly copied URLs")
	historyFlag := flag.Int("history", 0, "Show the N most recent analyses and exit")
	trendsFlag := flag.Int("trends", 0, "Show per-day aggregates for the last N days and exit")
	settingsFlag := flag.Bool("settings", false, "Show the current settings and exit")
	setWatchFlag := flag.String("set-watch-clipboard", "", "Enable/disable clipboard watching (true|false)")
	setAutoFlag := flag.String("set-auto-analyze", "", "Enable/disable auto-analysis of shared content (true|false)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.StatePath), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Error: create state directory: %v\n", err)
		os.Exit(1)
	}
	st, err := store.Open(cfg.StatePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: open state store: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	client := analyzer.NewClient(nil, cfg.APIBaseURL)

	switch {
	case *setWatchFlag != "" || *setAutoFlag != "":
		if err := updateSettings(st, *setWatchFlag, *setAutoFlag); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case *settingsFlag:
		if err := showSettings(st); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case *historyFlag > 0:
		if err := showHistory(ctx, st, *historyFlag); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case *trendsFlag > 0:
		if err := showTrends(ctx, st, *trendsFlag); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case *watchFlag:
		if err := watchClipboard(ctx, cfg, st, client); err != nil && ctx.Err() == nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	default:
		if err := analyzeOnce(ctx, st, client, *modeFlag, *urlFlag, *textFlag); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
}

// analyzeOnce classifies one payload, submits it, prints the verdict, and
// records it in history.
func analyzeOnce(ctx context.Context, st *store.Store, client *analyzer.Client, mode, urlArg, textArg string) error {
	if urlArg == "" && textArg == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		textArg = string(data)
	}

	payload, err := buildPayload(mode, urlArg, textArg)
	if err != nil {
		return err
	}
	if payload == nil {
		// Nothing classifiable is a normal outcome, not an error.
		fmt.Println("Nothing to analyze.")
		return nil
	}

	res, err := client.AnalyzePayload(ctx, payload)
	if err != nil {
		return fmt.Errorf("analyze: %w", err)
	}

	printResult(payload, res)

	if err := st.RecordAnalysis(ctx, string(payload.Mode), "manual", res); err != nil {
		slog.Warn("record analysis failed", "error", err)
	}
	return nil
}

// buildPayload maps the flags onto an intake payload. Mode "auto" runs the
// share classifier; forced modes bypass it.
func buildPayload(mode, urlArg, textArg string) (*intake.Payload, error) {
	switch mode {
	case "auto":
		return intake.Classify(intake.SharePayload{WebURL: urlArg, Text: textArg}), nil
	case "url":
		u := strings.TrimSpace(urlArg)
		if u == "" {
			u = strings.TrimSpace(textArg)
		}
		if u == "" {
			return nil, nil
		}
		return &intake.Payload{Mode: intake.ModeURL, URL: u}, nil
	case "email":
		if strings.TrimSpace(textArg) == "" {
			return nil, nil
		}
		return &intake.Payload{Mode: intake.ModeEmail, Body: textArg}, nil
	case "sms":
		if strings.TrimSpace(textArg) == "" {
			return nil, nil
		}
		return &intake.Payload{Mode: intake.ModeSMS, Text: textArg}, nil
	default:
		return nil, fmt.Errorf("unknown mode %q (want auto, sms, email, or url)", mode)
	}
}

// watchClipboard runs the clipboard watcher until interrupted, honouring the
// watchClipboard setting.
func watchClipboard(ctx context.Context, cfg *config.Config, st *store.Store, client *analyzer.Client) error {
	settings, err := st.Settings()
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	if !settings.WatchClipboard {
		fmt.Println("Clipboard watching is disabled in settings.")
		return nil
	}

	watcher := clipboard.NewWatcher(clipboard.SystemSource{}, cfg.ClipboardInterval, func(ctx context.Context, url string) {
		payload := &intake.Payload{Mode: intake.ModeURL, URL: url}
		res, err := client.AnalyzePayload(ctx, payload)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Analyze %s failed: %v\n", url, err)
			return
		}
		printResult(payload, res)
		if err := st.RecordAnalysis(ctx, string(payload.Mode), "clipboard", res); err != nil {
			slog.Warn("record analysis failed", "error", err)
		}
	})

	fmt.Println("Watching clipboard for URLs. Ctrl-C to stop.")
	return watcher.Start(ctx)
}

// printResult renders one verdict for the terminal.
func printResult(p *intake.Payload, res *analyzer.Result) {
	fmt.Printf("\n=== ScamShield Verdict (%s) ===\n", p.Mode)
	fmt.Printf("Risk: %.0f/100 (%s)\n", res.RiskScore, strings.ToUpper(nonEmpty(res.RiskLevel, "unknown")))
	if res.ML.ModelVersion != "" {
		fmt.Printf("Model: %s (p=%.2f, confidence %.2f)\n", res.ML.ModelVersion, res.ML.ProbPhish, res.ML.Confidence)
	}
	if len(res.Reasons) > 0 {
		fmt.Println("\nReasons:")
		for _, r := range res.Reasons {
			fmt.Printf("  - %s\n", r)
		}
	}
	if len(res.RecommendedActions) > 0 {
		fmt.Println("\nRecommended actions:")
		for _, a := range res.RecommendedActions {
			fmt.Printf("  - %s\n", a)
		}
	}
	if res.AnalysisID != "" {
		fmt.Printf("\nAnalysis ID: %s\n", res.AnalysisID)
	}
}

func showHistory(ctx context.Context, st *store.Store, limit int) error {
	rows, err := st.RecentAnalyses(ctx, limit)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Println("No analyses recorded yet.")
		return nil
	}
	for _, a := range rows {
		marker := " "
		if a.Flagged {
			marker = "!"
		}
		fmt.Printf("%s %-19s %-6s %-9s %3.0f %s\n",
			marker, a.CreatedAt.Format("2006-01-02 15:04:05"), a.Mode, a.Source, a.RiskScore, a.RiskLevel)
	}
	return nil
}

func showTrends(ctx context.Context, st *store.Store, days int) error {
	points, err := st.Trends(ctx, days)
	if err != nil {
		return err
	}
	if len(points) == 0 {
		fmt.Println("No analyses in the selected window.")
		return nil
	}
	fmt.Printf("%-12s %7s %8s %10s\n", "day", "total", "flagged", "avg score")
	for _, p := range points {
		fmt.Printf("%-12s %7d %8d %10.1f\n", p.Day, p.Total, p.Flagged, p.AvgScore)
	}
	return nil
}

// updateSettings applies the requested toggle changes and prints the result.
func updateSettings(st *store.Store, watchArg, autoArg string) error {
	settings, err := st.Settings()
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	if watchArg != "" {
		v, err := strconv.ParseBool(watchArg)
		if err != nil {
			return fmt.Errorf("invalid --set-watch-clipboard value %q", watchArg)
		}
		settings.WatchClipboard = v
	}
	if autoArg != "" {
		v, err := strconv.ParseBool(autoArg)
		if err != nil {
			return fmt.Errorf("invalid --set-auto-analyze value %q", autoArg)
		}
		settings.AutoAnalyzeShared = v
	}

	if err := st.SaveSettings(settings); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	printSettings(settings)
	return nil
}

func showSettings(st *store.Store) error {
	settings, err := st.Settings()
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	printSettings(settings)
	return nil
}

func printSettings(s store.Settings) {
	fmt.Printf("auto-analyze shared content: %t\n", s.AutoAnalyzeShared)
	fmt.Printf("watch clipboard:             %t\n", s.WatchClipboard)
}

func nonEmpty(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}
