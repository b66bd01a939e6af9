// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"strings"
	"time"
)

// =============================================================================
// MARKDOWN EXPORTER
// =============================================================================

// MarkdownExporter exports submissions to Markdown.
type MarkdownExporter struct {
	options *Options
}

// NewMarkdownExporter creates a new Markdown exporter.
func NewMarkdownExporter(opts *Options) *MarkdownExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &MarkdownExporter{options: opts}
}

// Export converts a submission to Markdown. The body is the page's own
// Markdown; metadata only adds front matter.
func (e *MarkdownExporter) Export(sub *Submission) ([]byte, error) {
	if sub == nil {
		return nil, fmt.Errorf("submission is nil")
	}
	body := strings.TrimSpace(sub.Markdown)
	if body == "" {
		return nil, fmt.Errorf("submission has no content")
	}

	var sb strings.Builder

	if e.options.IncludeMetadata {
		exported := sub.ExportedAt
		if exported.IsZero() {
			exported = time.Now()
		}
		sb.WriteString("---\n")
		sb.WriteString(fmt.Sprintf("title: %s\n", escapeYAML(sub.Title)))
		if sub.URL != "" {
			sb.WriteString(fmt.Sprintf("source: %s\n", escapeYAML(sub.URL)))
		}
		if sub.Status != "" {
			sb.WriteString(fmt.Sprintf("status: %s\n", escapeYAML(sub.Status)))
		}
		if sub.Triage != "" {
			sb.WriteString(fmt.Sprintf("triage: %s\n", escapeYAML(sub.Triage)))
		}
		sb.WriteString(fmt.Sprintf("exported: %s\n", exported.Format(time.RFC3339)))
		sb.WriteString("generator: crowdassist\n")
		sb.WriteString("---\n\n")
	}

	sb.WriteString(body)
	sb.WriteString("\n")
	return []byte(sb.String()), nil
}

// FileExtension returns the file extension for Markdown.
func (e *MarkdownExporter) FileExtension() string {
	return ".md"
}

// MimeType returns the MIME type for Markdown.
func (e *MarkdownExporter) MimeType() string {
	return "text/markdown"
}

// =============================================================================
// ESCAPING HELPERS
// =============================================================================

// escapeYAML quotes a front matter value when it holds YAML syntax.
func escapeYAML(s string) string {
	if strings.ContainsAny(s, ":#|>@`\"'[]{}!%&*\n\r\\") || strings.HasPrefix(s, " ") || strings.HasSuffix(s, " ") {
		s = strings.ReplaceAll(s, "\\", "\\\\")
		s = strings.ReplaceAll(s, "\"", "\\\"")
		s = strings.ReplaceAll(s, "\n", "\\n")
		s = strings.ReplaceAll(s, "\r", "\\r")
		return fmt.Sprintf("\"%s\"", s)
	}
	return s
}
