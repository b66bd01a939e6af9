// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package page

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
	"unicode"

	"github.com/andybalholm/cascadia"
	"github.com/samber/lo"
	"golang.org/x/net/html"
	"golang.org/x/text/unicode/norm"
)

// ErrNotFound is returned when the page lacks a required element.
var ErrNotFound = errors.New("element not found")

// =============================================================================
// SELECTORS
// =============================================================================

var (
	selUsernames   = cascadia.MustCompile("span.owner-name[data-tooltip-id]")
	selComments    = cascadia.MustCompile("div > div.activity-block__content > div.bc-markdown.bc-markdown--image-with-cursor.bc-markdown--bordered")
	selCommentBody = cascadia.MustCompile("#create-comment-body")
	selSubmission  = cascadia.MustCompile(".bc-helper-nopadding")
	selInjected    = cascadia.MustCompile("#ca-copy-feature-container")
	// The first description field that exists wins.
	selDescription = []cascadia.Matcher{
		cascadia.MustCompile("#submission_description"),
		cascadia.MustCompile(`textarea[name="description"]`),
		cascadia.MustCompile(`textarea[placeholder*="description"]`),
		cascadia.MustCompile("textarea"),
	}

	selStatus      = cascadia.MustCompile("#researcher-submission > div.row > div.col-md-3.col-md-push-9 > div:nth-child(1) > p:nth-child(2) > span")
	selSubmittedAt = cascadia.MustCompile("#researcher-submission > div.row > div.col-md-9.col-md-pull-3 > div > ul > li > ul > li:nth-child(2) > div.col-md-9.cc-tabular-nums > time")
	selTriageBadge = cascadia.MustCompile(".activity-block__content .bc-badge--triaged")
	selActivity    = cascadia.MustCompile(".activity-block__content")
	selStampTime   = cascadia.MustCompile(".cc-datetime-stamp__absolute time")
	selAnyTime     = cascadia.MustCompile("time")

	selTitle = []cascadia.Matcher{
		cascadia.MustCompile("#researcher-submission h1"),
		cascadia.MustCompile("h1"),
		cascadia.MustCompile("title"),
	}
)

// =============================================================================
// DOCUMENT
// =============================================================================

// Document is a parsed platform page.
type Document struct {
	root *html.Node
	url  string
}

// Parse parses an HTML page.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}
	return &Document{root: root}, nil
}

// ParseString parses an HTML page held in a string.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// Load parses the saved page at path.
func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open page: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// WithURL records the address the page was saved from.
func (d *Document) WithURL(url string) *Document {
	d.url = url
	return d
}

// URL returns the address set with WithURL.
func (d *Document) URL() string {
	return d.url
}

// Kind classifies the page by its URL.
func (d *Document) Kind() Kind {
	return Classify(d.url)
}

// Root returns the parsed tree.
func (d *Document) Root() *html.Node {
	return d.root
}

// Render serializes the document, including any redactions.
func (d *Document) Render() (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, d.root); err != nil {
		return "", fmt.Errorf("failed to render page: %w", err)
	}
	return buf.String(), nil
}

// Usernames returns the names of people active on the page, in page
// order, without duplicates. Names are NFC-normalized; empty names and
// names containing whitespace are dropped.
func (d *Document) Usernames() []string {
	names := lo.Map(cascadia.QueryAll(d.root, selUsernames), func(n *html.Node, _ int) string {
		return norm.NFC.String(strings.TrimSpace(textContent(n)))
	})
	names = lo.Filter(names, func(name string, _ int) bool {
		return name != "" && strings.IndexFunc(name, unicode.IsSpace) < 0
	})
	return lo.Uniq(names)
}

// Candidates makes a Document usable as a mention source.
func (d *Document) Candidates() []string {
	return d.Usernames()
}

// LastComment returns the most recent comment on the activity feed, or ""
// when there is none.
func (d *Document) LastComment() string {
	comments := cascadia.QueryAll(d.root, selComments)
	if len(comments) == 0 {
		return ""
	}
	return strings.TrimSpace(textContent(comments[len(comments)-1]))
}

// CommentBody returns the text of the comment composer.
func (d *Document) CommentBody() (string, error) {
	n := cascadia.Query(d.root, selCommentBody)
	if n == nil {
		return "", fmt.Errorf("%w: comment box", ErrNotFound)
	}
	return formValue(n), nil
}

// Description returns the report description field's text.
func (d *Document) Description() (string, error) {
	for _, sel := range selDescription {
		if n := cascadia.Query(d.root, sel); n != nil {
			return formValue(n), nil
		}
	}
	return "", fmt.Errorf("%w: description field", ErrNotFound)
}

// Title returns the report title, falling back to the page title.
func (d *Document) Title() string {
	for _, sel := range selTitle {
		for _, n := range cascadia.QueryAll(d.root, sel) {
			if t := strings.Join(strings.Fields(textContent(n)), " "); t != "" {
				return t
			}
		}
	}
	return ""
}

// Submission returns a detached copy of the submission block with the
// injected copy-feature container removed.
func (d *Document) Submission() (*html.Node, error) {
	n := cascadia.Query(d.root, selSubmission)
	if n == nil {
		return nil, fmt.Errorf("%w: submission content", ErrNotFound)
	}
	clone := cloneNode(n)
	for _, injected := range cascadia.QueryAll(clone, selInjected) {
		if injected.Parent != nil {
			injected.Parent.RemoveChild(injected)
		}
	}
	return clone, nil
}

// Status returns the submission's status badge text, e.g. "Triaged".
func (d *Document) Status() (string, error) {
	n := cascadia.Query(d.root, selStatus)
	if n == nil {
		return "", fmt.Errorf("%w: status", ErrNotFound)
	}
	return strings.TrimSpace(textContent(n)), nil
}

// SubmittedAt returns when the report was submitted.
func (d *Document) SubmittedAt() (time.Time, error) {
	n := cascadia.Query(d.root, selSubmittedAt)
	if n == nil {
		return time.Time{}, fmt.Errorf("%w: submission time", ErrNotFound)
	}
	return datetimeOf(n)
}

// TriagedAt returns when the report was triaged, read from the activity
// block that carries the triaged badge.
func (d *Document) TriagedAt() (time.Time, error) {
	badge := cascadia.Query(d.root, selTriageBadge)
	if badge == nil {
		return time.Time{}, fmt.Errorf("%w: triaged badge", ErrNotFound)
	}
	block := closest(badge, selActivity)
	if block == nil {
		return time.Time{}, fmt.Errorf("%w: triaged activity block", ErrNotFound)
	}
	t := cascadia.Query(block, selStampTime)
	if t == nil {
		t = cascadia.Query(block, selAnyTime)
	}
	if t == nil {
		return time.Time{}, fmt.Errorf("%w: triage time", ErrNotFound)
	}
	return datetimeOf(t)
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05Z0700",
	"2006-01-02 15:04:05 -0700 MST",
	"2006-01-02 15:04:05 MST",
	"2006-01-02 15:04:05 -0700",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func datetimeOf(n *html.Node) (time.Time, error) {
	raw, ok := attr(n, "datetime")
	raw = strings.TrimSpace(raw)
	if !ok || raw == "" {
		return time.Time{}, fmt.Errorf("%w: datetime attribute", ErrNotFound)
	}
	return ParseTime(raw)
}

// ParseTime parses the datetime formats the platform emits.
func ParseTime(raw string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized datetime %q", raw)
}
