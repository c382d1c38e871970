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

// ScamShield — Gmail Connect Command
//
// Runs the OAuth authorization-code flow for read-only Gmail access and
// persists the resulting bearer token and expiry in the local state store.
//
// Usage:
//
//	connect              # start the flow, paste the code when prompted
//	connect --disconnect # forget the stored credential
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/scamshield/scamshield/internal/auth"
	"github.com/scamshield/scamshield/internal/config"
	"github.com/scamshield/scamshield/internal/store"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
	slog.SetDefault(logger)

	disconnectFlag := flag.Bool("disconnect", false, "Remove the stored Gmail credential")
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

	if *disconnectFlag {
		if err := st.ClearCredential(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: clear credential: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Gmail disconnected.")
		return
	}

	if cfg.Google.ClientID == "" || cfg.Google.ClientSecret == "" {
		fmt.Fprintln(os.Stderr, "Error: GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET are required")
		os.Exit(1)
	}

	oauthCfg := auth.Config(cfg.Google.ClientID, cfg.Google.ClientSecret, cfg.Google.RedirectURL)

	fmt.Println("=== ScamShield Gmail Connect ===")
	fmt.Println("\n1. Visit this URL in your browser:")
	fmt.Printf("\n%s\n\n", auth.AuthURL(oauthCfg))
	fmt.Println("2. Authorize read-only mailbox access")
	fmt.Println("3. Copy the authorization code")
	fmt.Print("\nEnter authorization code: ")

	var code string
	if _, err := fmt.Scan(&code); err != nil {
		fmt.Fprintf(os.Stderr, "Error: read authorization code: %v\n", err)
		os.Exit(1)
	}

	token, expiresAt, err := auth.Exchange(context.Background(), oauthCfg, code)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := st.SaveCredential(token, expiresAt); err != nil {
		fmt.Fprintf(os.Stderr, "Error: save credential: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("\nGmail connected. Credential expires", expiresAt.Format("2006-01-02 15:04:05 MST"))
}
