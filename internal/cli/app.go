// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// app.go - Shared services for command handlers.

package cli

import (
	"errors"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/jeranaias/crowdassist/internal/assist"
	"github.com/jeranaias/crowdassist/internal/config"
	"github.com/jeranaias/crowdassist/internal/ipinfo"
	"github.com/jeranaias/crowdassist/internal/keepalive"
	"github.com/jeranaias/crowdassist/internal/openai"
	"github.com/jeranaias/crowdassist/internal/storage"
)

// =============================================================================
// APP
// =============================================================================

// App carries the loaded settings, the logger and the lazily opened
// services every handler shares.
type App struct {
	Config *config.Config
	Log    zerolog.Logger

	Stdout io.Writer
	Stderr io.Writer

	// Pretty renders Markdown and colors. Set for interactive terminals.
	Pretty bool

	// Interactive allows prompting for missing input.
	Interactive bool

	// DraftsPath overrides the draft database location.
	DraftsPath string

	// NewPrompter opens an interactive prompt for missing input.
	NewPrompter func() Prompter

	drafts *storage.DraftStore
}

// NewApp creates an App writing to the process's stdout and stderr.
func NewApp(cfg *config.Config, log zerolog.Logger) *App {
	if cfg == nil {
		cfg = config.Default()
	}
	return &App{
		Config:      cfg,
		Log:         log,
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
		Pretty:      IsStdoutTTY() && ColorsEnabled(),
		Interactive: IsTTY(),
		NewPrompter: newLinePrompter,
	}
}

// Close releases opened services.
func (a *App) Close() error {
	if a.drafts == nil {
		return nil
	}
	err := a.drafts.Close()
	a.drafts = nil
	return err
}

// Drafts opens the draft history on first use.
func (a *App) Drafts() (*storage.DraftStore, error) {
	if a.drafts != nil {
		return a.drafts, nil
	}
	var (
		store *storage.DraftStore
		err   error
	)
	if a.DraftsPath != "" {
		store, err = storage.Open(a.DraftsPath)
	} else {
		store, err = storage.OpenDefault()
	}
	if err != nil {
		return nil, err
	}
	a.drafts = store
	return store, nil
}

// Client builds a completion client from the configured token. A missing
// token is reported as assist.ErrNoToken.
func (a *App) Client() (*openai.Client, error) {
	token, err := config.LoadToken(a.Config)
	if err != nil {
		return nil, err
	}
	return openai.NewFromConfig(a.Config.OpenAI, token).WithLogger(a.Log), nil
}

// Assistant builds the AI assistant. Drafts are recorded when the history
// can be opened; a broken history only costs the record.
func (a *App) Assistant() (*assist.Assistant, error) {
	client, err := a.Client()
	if err != nil {
		return nil, err
	}

	var saver assist.DraftSaver
	if store, err := a.Drafts(); err == nil {
		saver = store
	} else {
		a.Log.Warn().Err(err).Msg("draft history unavailable")
	}
	return assist.New(client, saver, a.Log).WithModel(a.Config.OpenAI.Model), nil
}

// IPClient returns the public IP lookup client.
func (a *App) IPClient() *ipinfo.Client {
	return ipinfo.NewClient(a.Config.Network.IPLookupURL, a.Log)
}

// Refresher returns the session refresher for the configured cookie source.
func (a *App) Refresher() (*keepalive.Refresher, error) {
	return keepalive.NewRefresherFromConfig(a.Config.Session, a.Log)
}

// isNoToken reports whether err means no API token is configured.
func isNoToken(err error) bool {
	return errors.Is(err, config.ErrNoToken)
}
