// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package page

import (
	"fmt"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"golang.org/x/net/html"
)

// ToMarkdown converts an HTML subtree to Markdown.
func ToMarkdown(n *html.Node) (string, error) {
	out, err := htmltomarkdown.ConvertNode(n)
	if err != nil {
		return "", fmt.Errorf("failed to convert to markdown: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// SubmissionMarkdown returns the submission block as Markdown.
func (d *Document) SubmissionMarkdown() (string, error) {
	n, err := d.Submission()
	if err != nil {
		return "", err
	}
	return ToMarkdown(n)
}
