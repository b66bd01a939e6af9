// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// drafts_cmd.go - Browse the AI suggestion history.
//
// Command: drafts [subcommand]
//
// Subcommands:
//   list (default)      List recent drafts
//     --feature NAME    Only one feature (review_reply, auto_reply, ...)
//     --limit N         Show at most N drafts (default: 20)
//   show <id>           Print one draft in full
//     --diff            Show a review as word edits of its input
//   prune --keep N      Keep the newest N drafts (default: 100)

package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/jeranaias/crowdassist/internal/assist"
	"github.com/jeranaias/crowdassist/internal/keepalive"
	"github.com/jeranaias/crowdassist/internal/storage"
	"github.com/jeranaias/crowdassist/internal/util"
)

const (
	defaultDraftLimit = 20
	defaultDraftKeep  = 100
)

// HandleDrafts handles the "drafts" command.
func HandleDrafts(ctx context.Context, app *App, args Args) error {
	store, err := app.Drafts()
	if err != nil {
		return NewCommandError("drafts", "open", "draft history unavailable", err)
	}

	p := args.Parser
	switch args.Subcommand {
	case "", "list", "ls":
		limit := defaultDraftLimit
		if v := p.Flag("limit"); v != "" {
			if limit, err = ParseIntWithValidation(v, "--limit"); err != nil {
				return &UsageError{Field: "--limit", Value: v, Reason: err.Error()}
			}
		}
		feature := p.Flag("feature")
		if feature != "" && !validFeature(feature) {
			return ErrInvalidValue("--feature", feature, featureNames())
		}

		drafts, err := store.List(ctx, feature, limit)
		if err != nil {
			return err
		}
		if args.JSON {
			return outputJSON(app.Stdout, drafts)
		}
		if len(drafts) == 0 {
			fmt.Fprintln(app.Stdout, "No drafts yet.")
			return nil
		}
		now := time.Now()
		for _, d := range drafts {
			mark := " "
			if d.Accepted {
				mark = SuccessStyle.Render("*")
			}
			fmt.Fprintf(app.Stdout, "%s %s  %-16s %-9s %s\n",
				mark,
				DimStyle.Render(shortID(d.ID)),
				d.Feature,
				keepalive.Ago(now.Sub(d.CreatedAt)),
				util.TruncateWidth(firstLine(d.Output), 60))
		}
		return nil

	case "show":
		id := p.Positional(1)
		if id == "" {
			return ErrMissingArgument("id", "crowdassist drafts show <id>")
		}
		d, err := findDraft(ctx, store, id)
		if err != nil {
			return err
		}
		if args.JSON {
			return outputJSON(app.Stdout, d)
		}
		fmt.Fprintf(app.Stdout, "%s%s\n", RenderLabel("ID:"), d.ID)
		fmt.Fprintf(app.Stdout, "%s%s\n", RenderLabel("Feature:"), assist.Feature(d.Feature).Title())
		fmt.Fprintf(app.Stdout, "%s%s\n", RenderLabel("Created:"), d.CreatedAt.Local().Format(time.RFC1123))
		fmt.Fprintf(app.Stdout, "%s%t\n", RenderLabel("Used:"), d.Accepted)
		fmt.Fprintln(app.Stdout, SectionStyle.Render("Input"))
		fmt.Fprintln(app.Stdout, d.Input)
		if p.BoolFlag("diff") && isReview(assist.Feature(d.Feature)) {
			fmt.Fprintln(app.Stdout, SectionStyle.Render("Changes"))
			printDiff(app, args, d.Input, d.Output)
			return nil
		}
		fmt.Fprintln(app.Stdout, SectionStyle.Render("Output"))
		displayMarkdown(app.Stdout, d.Output, app.Pretty)
		return nil

	case "prune":
		keep := p.FlagIntOrDefault("keep", defaultDraftKeep)
		if keep < 0 {
			return ErrInvalidValue("--keep", p.Flag("keep"), "a number of drafts to keep, 0 or more")
		}
		n, err := store.Prune(ctx, keep)
		if err != nil {
			return err
		}
		if args.JSON {
			return outputJSON(app.Stdout, map[string]int{"removed": n})
		}
		fmt.Fprintf(app.Stdout, "%s Removed %d drafts\n", RenderStatus("ok"), n)
		return nil

	default:
		return ErrInvalidValue("subcommand", args.Subcommand, "list, show or prune")
	}
}

// findDraft looks id up exactly, then as a unique prefix of a listed ID.
func findDraft(ctx context.Context, store *storage.DraftStore, id string) (storage.Draft, error) {
	d, err := store.Get(ctx, id)
	if !errors.Is(err, storage.ErrNotFound) {
		return d, err
	}
	all, lerr := store.List(ctx, "", 0)
	if lerr != nil {
		return storage.Draft{}, err
	}
	matches := lo.Filter(all, func(d storage.Draft, _ int) bool {
		return strings.HasPrefix(d.ID, id)
	})
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return storage.Draft{}, err
	default:
		return storage.Draft{}, fmt.Errorf("draft id %q is ambiguous (%d matches)", id, len(matches))
	}
}

func validFeature(name string) bool {
	return lo.Contains(assist.Features, assist.Feature(name))
}

func featureNames() string {
	return strings.Join(lo.Map(assist.Features, func(f assist.Feature, _ int) string {
		return string(f)
	}), ", ")
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
