// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// helpers.go - Shared helpers used across command handlers.

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/samber/lo"

	"github.com/jeranaias/crowdassist/internal/page"
)

// outputJSON writes data to w as indented JSON.
func outputJSON(w io.Writer, data interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// LoadPage parses a saved page. url, when set, is attached so page
// classification works on files saved without their address.
func LoadPage(path, url string) (*page.Document, error) {
	if path == "" {
		return nil, ErrMissingArgument("--page", "--page submission.html")
	}
	doc, err := page.Load(path)
	if err != nil {
		return nil, err
	}
	if url != "" {
		doc.WithURL(url)
	}
	return doc, nil
}

// readTextArg returns the text given with --text, read from --file, or the
// positional arguments joined.
func readTextArg(p *ArgParser, positionalFrom int) (string, error) {
	if text := p.Flag("text"); text != "" {
		return text, nil
	}
	if path := p.Flag("file"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", path, err)
		}
		return string(data), nil
	}
	return JoinPositionalArgs(p, positionalFrom), nil
}

// SplitList splits a comma separated flag value, dropping blanks.
func SplitList(s string) []string {
	parts := lo.Map(strings.Split(s, ","), func(p string, _ int) string {
		return strings.TrimSpace(p)
	})
	return lo.Compact(parts)
}

// yesNo renders a bool for settings output.
func yesNo(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
