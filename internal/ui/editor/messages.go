// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package editor

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/crowdassist/internal/assist"
	"github.com/jeranaias/crowdassist/internal/util"
)

// requestTimeout bounds every network call started from the composer.
const requestTimeout = 90 * time.Second

// =============================================================================
// MESSAGES
// =============================================================================

// SuggestionMsg carries an AI result.
type SuggestionMsg struct {
	Feature    assist.Feature
	Suggestion assist.Suggestion
	Err        error
}

// IPMsg carries a public IP lookup result.
type IPMsg struct {
	IP  string
	Err error
}

// SavedMsg reports a comment save.
type SavedMsg struct {
	Path string
	Err  error
}

// ThemeMsg switches the theme mode at runtime.
type ThemeMsg struct {
	Mode string
}

// PrivacyMsg turns privacy mode on or off for the page context.
type PrivacyMsg struct {
	Enabled bool
}

// acceptedMsg is the result of marking a draft as used.
type acceptedMsg struct {
	Err error
}

// =============================================================================
// COMMANDS
// =============================================================================

func reviewCmd(a Assistant, reply, lastComment string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		s, err := a.ReviewReply(ctx, reply, lastComment)
		return SuggestionMsg{Feature: assist.FeatureReviewReply, Suggestion: s, Err: err}
	}
}

func autoReplyCmd(a Assistant, lastComment string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		s, err := a.AutoReply(ctx, lastComment)
		return SuggestionMsg{Feature: assist.FeatureAutoReply, Suggestion: s, Err: err}
	}
}

func ipCmd(l IPLookup) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		ip, err := l.Lookup(ctx)
		return IPMsg{IP: ip, Err: err}
	}
}

func saveCmd(path, text string) tea.Cmd {
	return func() tea.Msg {
		err := util.AtomicWriteFile(path, []byte(text), 0644)
		return SavedMsg{Path: path, Err: err}
	}
}

func acceptCmd(d DraftMarker, id string) tea.Cmd {
	if d == nil || id == "" {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return acceptedMsg{Err: d.MarkAccepted(ctx, id)}
	}
}
