// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// assist_cmd.go - AI writing commands.
//
// Command: review --text TEXT [--page FILE]
// Short:   Improve a reply; the page's last comment gives context
//
// Command: reply --page FILE | --comment TEXT
// Short:   Draft a reply to the last comment
//
// Command: report review --file FILE | --page FILE
// Command: report generate [--url URL --type TYPE]
// Short:   Review or draft a vulnerability report
//
// Flags:
//   --out FILE    Also write the suggestion to FILE
//   --json        Print the suggestion as JSON
//   --diff        Show reviews as word edits of the input

package cli

import (
	"context"
	"fmt"

	"github.com/jeranaias/crowdassist/internal/assist"
	"github.com/jeranaias/crowdassist/internal/diff"
	"github.com/jeranaias/crowdassist/internal/util"
)

// suggestionOutput is the JSON form of a suggestion.
type suggestionOutput struct {
	DraftID string `json:"draft_id,omitempty"`
	Feature string `json:"feature"`
	Output  string `json:"output"`
}

// HandleReview reviews a reply to the program team.
func HandleReview(ctx context.Context, app *App, args Args) error {
	p := args.Parser
	reply, err := readTextArg(p, 0)
	if err != nil {
		return err
	}
	if reply == "" {
		return ErrMissingArgument("--text", `crowdassist review --text "thanks, fixed the steps"`)
	}

	lastComment := p.Flag("comment")
	if path := p.Flag("page"); path != "" {
		doc, err := LoadPage(path, "")
		if err != nil {
			return err
		}
		lastComment = doc.LastComment()
	}

	a, err := app.Assistant()
	if err != nil {
		return err
	}
	s, err := a.ReviewReply(ctx, reply, lastComment)
	if err != nil {
		return err
	}
	return printSuggestion(app, args, s)
}

// HandleReply drafts a reply to the last comment on a page.
func HandleReply(ctx context.Context, app *App, args Args) error {
	p := args.Parser
	lastComment := p.Flag("comment")
	if path := p.Flag("page"); path != "" {
		doc, err := LoadPage(path, "")
		if err != nil {
			return err
		}
		lastComment = doc.LastComment()
	}
	if lastComment == "" && p.Flag("page") == "" {
		return ErrMissingArgument("--page", "crowdassist reply --page submission.html")
	}

	a, err := app.Assistant()
	if err != nil {
		return err
	}
	s, err := a.AutoReply(ctx, lastComment)
	if err != nil {
		return err
	}
	return printSuggestion(app, args, s)
}

// HandleReport dispatches "report review" and "report generate".
func HandleReport(ctx context.Context, app *App, args Args) error {
	switch args.Subcommand {
	case "review":
		return handleReportReview(ctx, app, args)
	case "generate", "gen":
		return handleReportGenerate(ctx, app, args)
	case "":
		return ErrMissingArgument("subcommand", "crowdassist report review --file report.md")
	default:
		return ErrInvalidValue("subcommand", args.Subcommand, "review or generate")
	}
}

func handleReportReview(ctx context.Context, app *App, args Args) error {
	p := args.Parser
	description, err := readTextArg(p, 1)
	if err != nil {
		return err
	}
	if path := p.Flag("page"); description == "" && path != "" {
		doc, err := LoadPage(path, "")
		if err != nil {
			return err
		}
		if description, err = doc.Description(); err != nil {
			return err
		}
	}
	if description == "" {
		return ErrMissingArgument("--file", "crowdassist report review --file report.md")
	}

	a, err := app.Assistant()
	if err != nil {
		return err
	}
	s, err := a.ReviewReport(ctx, description)
	if err != nil {
		return err
	}
	return printSuggestion(app, args, s)
}

func handleReportGenerate(ctx context.Context, app *App, args Args) error {
	p := args.Parser
	targetURL := p.Flag("url")
	vulnType := p.Flag("type")

	if (targetURL == "" || vulnType == "") && app.Interactive {
		prompter := app.NewPrompter()
		var err error
		if targetURL == "" {
			targetURL, err = ask(prompter, "Target URL: ", false)
		}
		if err == nil && vulnType == "" {
			vulnType, err = ask(prompter, "Vulnerability type: ", false)
		}
		prompter.Close()
		if err != nil {
			return err
		}
	}
	if targetURL == "" || vulnType == "" {
		return assist.ErrMissingReportInput
	}

	a, err := app.Assistant()
	if err != nil {
		return err
	}
	s, err := a.GenerateReport(ctx, targetURL, vulnType)
	if err != nil {
		return err
	}
	return printSuggestion(app, args, s)
}

// printSuggestion shows s and writes it to --out when given.
func printSuggestion(app *App, args Args, s assist.Suggestion) error {
	if out := args.Parser.Flag("out"); out != "" {
		if err := util.AtomicWriteFile(out, []byte(s.Output), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", out, err)
		}
	}

	if args.JSON {
		return outputJSON(app.Stdout, suggestionOutput{
			DraftID: s.DraftID,
			Feature: string(s.Feature),
			Output:  s.Output,
		})
	}

	if !args.Quiet && app.Pretty {
		fmt.Fprintln(app.Stdout, TitleStyle.Render(s.Feature.Title()))
	}
	if args.Parser.BoolFlag("diff") && isReview(s.Feature) {
		printDiff(app, args, s.Input, s.Output)
	} else {
		displayMarkdown(app.Stdout, s.Output, app.Pretty)
	}
	if !args.Quiet && s.DraftID != "" {
		fmt.Fprintln(app.Stderr, DimStyle.Render("saved as draft "+s.DraftID))
	}
	return nil
}

// =============================================================================
// DIFF
// =============================================================================

// isReview reports whether feature rewrites its input, so a diff of input
// and output means something.
func isReview(f assist.Feature) bool {
	return f == assist.FeatureReviewReply || f == assist.FeatureReviewReport
}

// printDiff shows the edits from before to after inline, colored when
// the output is a terminal.
func printDiff(app *App, args Args, before, after string) {
	marks := diff.PlainMarks
	if app.Pretty {
		marks = diff.Marks{
			Insert: func(s string) string { return SuccessStyle.Render(s) },
			Delete: func(s string) string { return ErrorStyle.Strikethrough(true).Render(s) },
		}
	}
	changes := diff.Words(before, after)
	fmt.Fprintln(app.Stdout, diff.Render(changes, marks))
	if !args.Quiet {
		fmt.Fprintln(app.Stderr, DimStyle.Render(diff.Count(changes).Summary()))
	}
}
