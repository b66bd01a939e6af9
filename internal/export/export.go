// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/atotto/clipboard"
	"github.com/pkg/browser"
	"github.com/rs/zerolog"

	"github.com/jeranaias/crowdassist/internal/page"
	"github.com/jeranaias/crowdassist/internal/util"
)

// =============================================================================
// EXPORT INTERFACE
// =============================================================================

// Exporter renders a submission in a target format.
type Exporter interface {
	// Export converts a submission to the target format and returns the content.
	Export(sub *Submission) ([]byte, error)

	// FileExtension returns the file extension including the dot.
	FileExtension() string

	// MimeType returns the MIME type for the exported format.
	MimeType() string
}

// ErrClipboardUnavailable is returned when no clipboard utility is present.
var ErrClipboardUnavailable = errors.New("clipboard is not available on this system")

// =============================================================================
// SUBMISSION
// =============================================================================

// Submission is the exportable content of a report page.
type Submission struct {
	Title      string    `json:"title"`
	URL        string    `json:"url,omitempty"`
	Status     string    `json:"status,omitempty"`
	Triage     string    `json:"triage,omitempty"`
	Markdown   string    `json:"markdown"`
	ExportedAt time.Time `json:"exported_at"`
}

// FromDocument extracts the submission of a report page.
func FromDocument(doc *page.Document) (*Submission, error) {
	if doc == nil {
		return nil, fmt.Errorf("document is nil")
	}
	md, err := doc.SubmissionMarkdown()
	if err != nil {
		return nil, err
	}

	sub := &Submission{
		Title:      doc.Title(),
		URL:        doc.URL(),
		Markdown:   md,
		ExportedAt: time.Now(),
	}
	if status, err := doc.Status(); err == nil {
		sub.Status = status
	}
	if info, ok := doc.Triage(); ok {
		sub.Triage = info.Indicator()
	}
	return sub, nil
}

// =============================================================================
// EXPORT OPTIONS
// =============================================================================

// Options configures export behavior.
type Options struct {
	// OutputDir is the directory where files will be saved.
	OutputDir string

	// OpenAfterExport opens the file in the default application.
	OpenAfterExport bool

	// IncludeMetadata adds YAML front matter.
	IncludeMetadata bool

	Log zerolog.Logger
}

// DefaultOptions returns default export options.
func DefaultOptions() *Options {
	return &Options{
		OutputDir:       ".",
		IncludeMetadata: true,
		Log:             zerolog.Nop(),
	}
}

// =============================================================================
// EXPORT FUNCTIONS
// =============================================================================

// openFile and writeClipboard are swapped out in tests.
var (
	openFile       = browser.OpenFile
	writeClipboard = clipboard.WriteAll
)

// ExportToFile writes sub to OutputDir using exporter and returns the path.
func ExportToFile(sub *Submission, exporter Exporter, opts *Options) (string, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	content, err := exporter.Export(sub)
	if err != nil {
		return "", fmt.Errorf("export failed: %w", err)
	}

	dir := opts.OutputDir
	if dir == "" {
		dir = "."
	}
	outputPath := filepath.Join(dir, Filename(sub.Title, sub.ExportedAt, exporter.FileExtension()))

	if err := util.AtomicWriteFile(outputPath, content, 0644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	opts.Log.Info().Str("path", outputPath).Str("format", exporter.MimeType()).Msg("submission exported")

	if opts.OpenAfterExport {
		if err := openFile(outputPath); err != nil {
			// The file exists, only the viewer failed.
			opts.Log.Warn().Err(err).Str("path", outputPath).Msg("could not open exported file")
		}
	}

	return outputPath, nil
}

// ExportSubmission exports the page's submission as Markdown.
func ExportSubmission(doc *page.Document, opts *Options) (string, error) {
	sub, err := FromDocument(doc)
	if err != nil {
		return "", err
	}
	return ExportToFile(sub, NewMarkdownExporter(opts), opts)
}

// CopyToClipboard puts markdown on the system clipboard.
func CopyToClipboard(markdown string) error {
	if clipboard.Unsupported {
		return ErrClipboardUnavailable
	}
	if err := writeClipboard(markdown); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	return nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// Filename builds report_<slug>_<timestamp><ext>.
func Filename(title string, at time.Time, ext string) string {
	slug := util.Slug(title, 50)
	if slug == "" {
		slug = "submission"
	}
	if at.IsZero() {
		at = time.Now()
	}
	return fmt.Sprintf("report_%s_%s%s", slug, at.Format("20060102_150405"), ext)
}
