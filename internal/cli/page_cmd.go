// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// page_cmd.go - Commands that work on a saved platform page.
//
// Command: export --page FILE [--format md|json] [--copy] [--open] [--out DIR]
// Command: triage --page FILE
// Command: redact --page FILE [--restore] [--output FILE]
// Command: classify URL
//
// Examples:
//   crowdassist export --page submission.html --copy
//   crowdassist export --page submission.html --format json --out exports
//   crowdassist redact --page dashboard.html --output safe.html
//   crowdassist classify https://bugcrowd.com/submissions/<uuid>

package cli

import (
	"fmt"

	"github.com/jeranaias/crowdassist/internal/export"
	"github.com/jeranaias/crowdassist/internal/page"
	"github.com/jeranaias/crowdassist/internal/util"
)

// =============================================================================
// EXPORT
// =============================================================================

// HandleExport converts the page's submission to Markdown or JSON. With
// --copy the Markdown goes to the clipboard and no file is written unless
// --out is also given.
func HandleExport(app *App, args Args) error {
	p := args.Parser
	doc, err := LoadPage(p.Flag("page"), p.Flag("url"))
	if err != nil {
		return err
	}

	sub, err := export.FromDocument(doc)
	if err != nil {
		return NewCommandError("export", "read", "no submission found on the page", err)
	}

	copyMode := p.BoolFlag("copy")
	if copyMode {
		if err := export.CopyToClipboard(sub.Markdown); err != nil {
			return NewCommandError("export", "copy", "clipboard unavailable", err)
		}
		if !args.Quiet {
			fmt.Fprintf(app.Stdout, "%s Copied %q as Markdown\n", RenderStatus("ok"), sub.Title)
		}
		if p.Flag("out") == "" {
			return nil
		}
	}

	opts := export.DefaultOptions()
	opts.OutputDir = p.FlagOrDefault("out", app.Config.UI.ExportDir)
	opts.OpenAfterExport = p.BoolFlag("open")
	opts.IncludeMetadata = !p.BoolFlag("no-metadata")
	opts.Log = app.Log

	exporter, err := export.ForFormat(p.Flag("format"), opts)
	if err != nil {
		return ErrInvalidValue("--format", p.Flag("format"), "md or json")
	}
	path, err := export.ExportToFile(sub, exporter, opts)
	if err != nil {
		return err
	}

	if args.JSON {
		return outputJSON(app.Stdout, map[string]interface{}{"path": path, "title": sub.Title})
	}
	if !args.Quiet {
		fmt.Fprintf(app.Stdout, "%s Exported to %s\n", RenderStatus("ok"), path)
	}
	return nil
}

// =============================================================================
// TRIAGE
// =============================================================================

// HandleTriage prints how long a triaged report waited.
func HandleTriage(app *App, args Args) error {
	doc, err := LoadPage(args.Parser.Flag("page"), "")
	if err != nil {
		return err
	}

	info, ok := doc.Triage()
	if args.JSON {
		out := map[string]interface{}{"triaged": ok}
		if ok {
			out["indicator"] = info.Indicator()
			out["submitted_at"] = info.SubmittedAt
			out["triaged_at"] = info.TriagedAt
			out["minutes"] = int64(info.Duration.Minutes())
		}
		return outputJSON(app.Stdout, out)
	}

	if !ok {
		status, _ := doc.Status()
		if status == "" {
			status = "unknown"
		}
		fmt.Fprintf(app.Stdout, "Not triaged (status: %s)\n", status)
		return nil
	}
	fmt.Fprintln(app.Stdout, HighlightStyle.Render(info.Indicator()))
	if !args.Quiet {
		fmt.Fprintln(app.Stdout, DimStyle.Render(info.Tooltip()))
	}
	return nil
}

// =============================================================================
// REDACT
// =============================================================================

// HandleRedact hides titles, rewards and statistics on a saved page, or
// puts them back with --restore. The result goes to --output or stdout.
func HandleRedact(app *App, args Args) error {
	p := args.Parser
	doc, err := LoadPage(p.Flag("page"), "")
	if err != nil {
		return err
	}

	restore := p.BoolFlag("restore")
	count := page.ApplyPrivacy(doc, !restore)

	html, err := doc.Render()
	if err != nil {
		return err
	}

	out := p.Flag("output")
	if out == "" {
		fmt.Fprint(app.Stdout, html)
		return nil
	}
	if err := util.AtomicWriteFile(out, []byte(html), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}
	if !args.Quiet {
		verb := "Redacted"
		if restore {
			verb = "Restored"
		}
		fmt.Fprintf(app.Stderr, "%s %s %d elements into %s\n", RenderStatus("ok"), verb, count, out)
	}
	return nil
}

// =============================================================================
// CLASSIFY
// =============================================================================

// HandleClassify tells report pages from report forms by URL.
func HandleClassify(app *App, args Args) error {
	url := args.Parser.Positional(0)
	if url == "" {
		return ErrMissingArgument("URL", "crowdassist classify https://bugcrowd.com/submissions/<id>")
	}

	kind := page.Classify(url)
	if args.JSON {
		return outputJSON(app.Stdout, map[string]string{"url": url, "kind": kind.String()})
	}
	fmt.Fprintln(app.Stdout, kind.String())
	return nil
}
