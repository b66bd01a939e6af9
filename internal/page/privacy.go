// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package page

import (
	"github.com/andybalholm/cascadia"
)

const (
	// Redacted replaces sensitive text in privacy mode.
	Redacted = "[REDACTED]"

	// originalAttr keeps the text a redaction replaced.
	originalAttr = "data-ca-original-text"
)

var (
	// Submission titles, reward amounts and statistics figures.
	selSensitive = cascadia.MustCompile("h2.bc-submission-card__title, span.bc-reward, span.bc-stat__fig")
	selRedacted  = cascadia.MustCompile("[data-ca-original-text]")
)

// Redact hides titles, rewards and statistics. Elements already redacted
// are left alone, so calling it twice is harmless. It returns the number
// of elements newly redacted.
func Redact(d *Document) int {
	count := 0
	for _, n := range cascadia.QueryAll(d.root, selSensitive) {
		if _, done := attr(n, originalAttr); done {
			continue
		}
		setAttr(n, originalAttr, textContent(n))
		setTextContent(n, Redacted)
		count++
	}
	return count
}

// Restore undoes Redact and returns the number of elements restored.
func Restore(d *Document) int {
	nodes := cascadia.QueryAll(d.root, selRedacted)
	for _, n := range nodes {
		original, _ := attr(n, originalAttr)
		setTextContent(n, original)
		removeAttr(n, originalAttr)
	}
	return len(nodes)
}

// ApplyPrivacy redacts when enabled and restores otherwise.
func ApplyPrivacy(d *Document, enabled bool) int {
	if enabled {
		return Redact(d)
	}
	return Restore(d)
}
