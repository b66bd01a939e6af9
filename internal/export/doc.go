// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export writes a report page's submission to disk or the clipboard.
//
// # Key Types
//
//   - Submission: title, source URL, status and Markdown body of a report
//   - Exporter: format interface (MarkdownExporter, JSONExporter)
//   - Options: output directory, front matter, open-after-export
//
// # Usage
//
// Export the submission and open it:
//
//	opts := export.DefaultOptions()
//	opts.OpenAfterExport = true
//	path, err := export.ExportSubmission(doc, opts)
//
// Copy as Markdown:
//
//	md, _ := doc.SubmissionMarkdown()
//	err := export.CopyToClipboard(md)
package export
