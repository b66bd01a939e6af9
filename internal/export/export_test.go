// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/crowdassist/internal/page"
)

const reportURL = "https://bugcrowd.com/submissions/abc-123"

func loadPage(t *testing.T) *page.Document {
	t.Helper()
	doc, err := page.Load(filepath.Join("..", "page", "testdata", "submission.html"))
	require.NoError(t, err)
	return doc.WithURL(reportURL)
}

func TestFromDocument(t *testing.T) {
	sub, err := FromDocument(loadPage(t))
	require.NoError(t, err)

	assert.Equal(t, "Stored XSS in profile bio", sub.Title)
	assert.Equal(t, reportURL, sub.URL)
	assert.Equal(t, "Triaged", sub.Status)
	assert.Equal(t, "Triaged in 1d 2h 35m", sub.Triage)
	assert.Contains(t, sub.Markdown, "## Summary")
	assert.NotContains(t, sub.Markdown, "Copy as Markdown")

	_, err = FromDocument(nil)
	assert.Error(t, err)
}

func TestMarkdownExporter_FrontMatter(t *testing.T) {
	exported := time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)
	sub := &Submission{
		Title:      "IDOR: read any invoice",
		URL:        reportURL,
		Status:     "Triaged",
		Markdown:   "## Summary\n\nbody\n",
		ExportedAt: exported,
	}

	out, err := NewMarkdownExporter(DefaultOptions()).Export(sub)
	require.NoError(t, err)
	s := string(out)

	assert.True(t, strings.HasPrefix(s, "---\n"))
	assert.Contains(t, s, "title: \"IDOR: read any invoice\"\n")
	assert.Contains(t, s, "source: \""+reportURL+"\"\n")
	assert.Contains(t, s, "status: Triaged\n")
	assert.Contains(t, s, "exported: 2025-03-04T05:06:07Z\n")
	assert.Contains(t, s, "---\n\n## Summary\n\nbody\n")
	assert.NotContains(t, s, "triage:")
}

func TestMarkdownExporter_NoMetadata(t *testing.T) {
	opts := DefaultOptions()
	opts.IncludeMetadata = false

	out, err := NewMarkdownExporter(opts).Export(&Submission{Title: "t", Markdown: "  text  "})
	require.NoError(t, err)
	assert.Equal(t, "text\n", string(out))

	_, err = NewMarkdownExporter(opts).Export(&Submission{Title: "t"})
	assert.Error(t, err)
	_, err = NewMarkdownExporter(opts).Export(nil)
	assert.Error(t, err)
}

func TestEscapeYAML_Newlines(t *testing.T) {
	got := escapeYAML("Test\nInjection: malicious")
	assert.Equal(t, `"Test\nInjection: malicious"`, got)
	assert.Equal(t, "plain", escapeYAML("plain"))
}

func TestJSONExporter(t *testing.T) {
	sub := &Submission{Title: "t", Markdown: "m", ExportedAt: time.Unix(0, 0).UTC()}
	out, err := NewJSONExporter().Export(sub)
	require.NoError(t, err)

	var back map[string]any
	require.NoError(t, json.Unmarshal(out, &back))
	assert.Equal(t, "t", back["title"])
	assert.Equal(t, "m", back["markdown"])
	assert.NotContains(t, back, "url")
}

func TestForFormat(t *testing.T) {
	e, err := ForFormat("md", nil)
	require.NoError(t, err)
	assert.Equal(t, ".md", e.FileExtension())

	e, err = ForFormat("json", nil)
	require.NoError(t, err)
	assert.Equal(t, "application/json", e.MimeType())

	_, err = ForFormat("pdf", nil)
	assert.Error(t, err)
}

func TestFilename(t *testing.T) {
	at := time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)
	assert.Equal(t, "report_stored_xss_in_profile_bio_20250304_050607.md", Filename("Stored XSS in profile bio", at, ".md"))
	assert.Equal(t, "report_submission_20250304_050607.json", Filename("!!!", at, ".json"))
}

func TestExportSubmission_WritesAndOpens(t *testing.T) {
	var opened string
	orig := openFile
	openFile = func(path string) error { opened = path; return nil }
	defer func() { openFile = orig }()

	dir := filepath.Join(t.TempDir(), "exports")
	opts := DefaultOptions()
	opts.OutputDir = dir
	opts.OpenAfterExport = true

	path, err := ExportSubmission(loadPage(t), opts)
	require.NoError(t, err)

	assert.Equal(t, dir, filepath.Dir(path))
	assert.True(t, strings.HasPrefix(filepath.Base(path), "report_stored_xss_in_profile_bio_"))
	assert.Equal(t, ".md", filepath.Ext(path))
	assert.Equal(t, path, opened)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "generator: crowdassist")
	assert.Contains(t, string(data), "**bio**")
}

func TestExportToFile_OpenFailureIsNotFatal(t *testing.T) {
	orig := openFile
	openFile = func(string) error { return errors.New("no viewer") }
	defer func() { openFile = orig }()

	opts := DefaultOptions()
	opts.OutputDir = t.TempDir()
	opts.OpenAfterExport = true

	path, err := ExportToFile(&Submission{Title: "x", Markdown: "y"}, NewMarkdownExporter(opts), opts)
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestCopyToClipboard(t *testing.T) {
	var copied string
	orig := writeClipboard
	writeClipboard = func(s string) error { copied = s; return nil }
	defer func() { writeClipboard = orig }()

	err := CopyToClipboard("## Summary")
	if errors.Is(err, ErrClipboardUnavailable) {
		t.Skip("no clipboard utility on this system")
	}
	require.NoError(t, err)
	assert.Equal(t, "## Summary", copied)
}
