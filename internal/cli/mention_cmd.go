// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// mention_cmd.go - Inspect the @mention matcher from the shell.
//
// Command: mention --text TEXT [--names a,b | --page FILE] [--caret N]
//                  [--accept | --commit NAME]
// Short:   Print the matcher state for TEXT with the caret at N
//
// --accept behaves like Enter in the composer and --commit like picking a
// name from the list. The caret defaults to the end of TEXT.

package cli

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/jeranaias/crowdassist/internal/mention"
)

// mentionOutput is the JSON form of a matcher run.
type mentionOutput struct {
	State     string   `json:"state"`
	Trigger   int      `json:"trigger"`
	Query     string   `json:"query,omitempty"`
	Matches   []string `json:"matches,omitempty"`
	Text      string   `json:"text"`
	Caret     int      `json:"caret"`
	Committed bool     `json:"committed"`
}

// HandleMention runs the matcher over a text snapshot.
func HandleMention(app *App, args Args) error {
	p := args.Parser
	text := p.Flag("text")
	if text == "" && !p.HasFlag("text") {
		return ErrMissingArgument("--text", `crowdassist mention --names hunter42,helen --text "thanks @he"`)
	}

	names := SplitList(p.Flag("names"))
	if path := p.Flag("page"); path != "" {
		doc, err := LoadPage(path, "")
		if err != nil {
			return err
		}
		names = append(doc.Candidates(), names...)
	}

	caret := utf8.RuneCountInString(text)
	if v := p.Flag("caret"); v != "" {
		n, err := p.FlagInt("caret")
		if err != nil || n < 0 {
			return ErrInvalidValue("--caret", v, "a rune offset between 0 and the text length")
		}
		caret = n
	}

	m := mention.NewMatcher(mention.NewStatic(names...))
	buf := mention.Buffer{Text: text, Caret: caret}
	state := m.Update(buf)

	out := mentionOutput{
		State:   state.Kind.String(),
		Trigger: state.Trigger,
		Query:   state.Query,
		Matches: state.Matches,
		Text:    buf.Text,
		Caret:   buf.Caret,
	}

	switch {
	case p.BoolFlag("accept"):
		buf, out.Committed = m.HandleAccept(buf)
	case p.Flag("commit") != "":
		buf, out.Committed = m.Commit(buf, p.Flag("commit"))
	}
	out.Text, out.Caret = buf.Text, buf.Caret

	if args.JSON {
		return outputJSON(app.Stdout, out)
	}
	printMention(app, out, caretMarker(text, caret))
	return nil
}

func printMention(app *App, out mentionOutput, input string) {
	w := app.Stdout
	fmt.Fprintf(w, "%s%s\n", RenderLabel("Input:"), input)
	fmt.Fprintf(w, "%s%s\n", RenderLabel("State:"), out.State)
	if out.State == mention.Matching.String() {
		fmt.Fprintf(w, "%s%d\n", RenderLabel("Trigger:"), out.Trigger)
		fmt.Fprintf(w, "%s%q\n", RenderLabel("Query:"), out.Query)
		for i, name := range out.Matches {
			line := "  @" + name
			if i == 0 {
				line = HighlightStyle.Render("> @" + name)
			}
			fmt.Fprintln(w, line)
		}
	}
	if out.Committed {
		fmt.Fprintf(w, "%s%q\n", RenderLabel("Result:"), out.Text)
		fmt.Fprintf(w, "%s%d\n", RenderLabel("Caret:"), out.Caret)
	}
}

// caretMarker shows text with a bar at caret and newlines escaped.
func caretMarker(text string, caret int) string {
	runes := []rune(text)
	caret = max(0, min(caret, len(runes)))
	return strings.ReplaceAll(string(runes[:caret])+"|"+string(runes[caret:]), "\n", "\\n")
}
