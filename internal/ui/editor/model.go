// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package editor

import (
	"context"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/jeranaias/crowdassist/internal/assist"
	"github.com/jeranaias/crowdassist/internal/mention"
	"github.com/jeranaias/crowdassist/internal/page"
	"github.com/jeranaias/crowdassist/internal/ui/components"
	"github.com/jeranaias/crowdassist/internal/ui/styles"
)

// DefaultOutPath is where ctrl+s writes when no output file is given.
const DefaultOutPath = "comment.txt"

// =============================================================================
// DEPENDENCIES
// =============================================================================

// Assistant produces AI suggestions. *assist.Assistant satisfies it.
type Assistant interface {
	ReviewReply(ctx context.Context, reply, lastComment string) (assist.Suggestion, error)
	AutoReply(ctx context.Context, lastComment string) (assist.Suggestion, error)
}

// IPLookup resolves the public IP. *ipinfo.Client satisfies it.
type IPLookup interface {
	Lookup(ctx context.Context) (string, error)
}

// DraftMarker flags a suggestion as used. *storage.DraftStore satisfies it.
type DraftMarker interface {
	MarkAccepted(ctx context.Context, id string) error
}

// KeepaliveStatus polls the keep-alive scheduler. *keepalive.Scheduler
// satisfies it.
type KeepaliveStatus interface {
	TickCmd() tea.Cmd
}

// Deps are the composer's collaborators. Nil members disable the matching
// action.
type Deps struct {
	Assistant Assistant
	IP        IPLookup
	Drafts    DraftMarker
	Keepalive KeepaliveStatus
	Log       zerolog.Logger
}

// Options configure a composer.
type Options struct {
	// Page is the report page the comment is written for. Optional.
	Page *page.Document

	// Names adds mention candidates on top of the page's usernames.
	Names []string

	// Initial is the starting comment text. Defaults to the page's comment box.
	Initial string

	OutPath   string
	ThemeMode string
	Privacy   bool
}

// =============================================================================
// MODEL
// =============================================================================

// Model is the Bubble Tea model of the composer.
type Model struct {
	input   textarea.Model
	matcher *mention.Matcher
	popup   *components.MentionPopup
	modal   *components.Modal
	status  *components.StatusBar
	spinner components.Spinner

	// pending is the suggestion shown in the modal.
	pending *assist.Suggestion

	keys  KeyMap
	theme *styles.Theme
	deps  Deps

	doc         *page.Document
	lastComment string // shown above the editor and sent to the assistant
	title       string // header text, hidden in privacy mode
	privacy     bool
	outPath     string

	width    int
	height   int
	quitting bool
}

// New creates a composer.
func New(opts Options, deps Deps) Model {
	theme := styles.NewTheme(opts.ThemeMode)

	ta := textarea.New()
	ta.Placeholder = "Write a comment. Type @ to mention someone."
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetWidth(78)
	ta.SetHeight(8)
	ta.Focus()

	m := Model{
		input:   ta,
		popup:   components.NewMentionPopup(theme),
		status:  components.NewStatusBar(theme),
		spinner: components.NewSpinner(theme),
		keys:    DefaultKeyMap(),
		theme:   theme,
		deps:    deps,
		doc:     opts.Page,
		outPath: opts.OutPath,
		width:   80,
		height:  24,
	}
	if m.outPath == "" {
		m.outPath = DefaultOutPath
	}

	m.matcher = mention.NewMatcher(candidateSource(opts.Page, opts.Names))
	popup := m.popup
	m.matcher.OnStateChange(func(s mention.State) {
		if s.IsMatching() {
			popup.SetMatches(s.Matches)
		} else {
			popup.Clear()
		}
	})

	initial := opts.Initial
	if opts.Page != nil {
		m.lastComment = opts.Page.LastComment()
		if initial == "" {
			if body, err := opts.Page.CommentBody(); err == nil {
				initial = body
			}
		}
		if info, ok := opts.Page.Triage(); ok {
			m.status.Triage = info.Indicator()
		}
	}
	if initial != "" {
		m.input.SetValue(initial)
	}
	m.setPrivacy(opts.Privacy)
	m.syncMatcher()
	return m
}

// candidateSource pulls page usernames fresh on every recompute so privacy
// toggles and reloads are reflected.
func candidateSource(doc *page.Document, extra []string) mention.Source {
	return mention.SourceFunc(func() []string {
		var names []string
		if doc != nil {
			names = append(names, doc.Candidates()...)
		}
		return mention.CleanCandidates(append(names, extra...))
	})
}

// Init starts the keep-alive status poll and the cursor blink.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textarea.Blink}
	if m.deps.Keepalive != nil {
		cmds = append(cmds, m.deps.Keepalive.TickCmd())
	}
	return tea.Batch(cmds...)
}

// Value returns the comment text.
func (m Model) Value() string {
	return m.input.Value()
}

// Buffer returns the comment text and caret as a mention buffer.
func (m Model) Buffer() mention.Buffer {
	return mention.Buffer{Text: m.input.Value(), Caret: caretOffset(m.input)}
}

// MentionState returns the matcher's current state.
func (m Model) MentionState() mention.State {
	return m.matcher.State()
}

// Quitting reports whether the composer asked to exit.
func (m Model) Quitting() bool {
	return m.quitting
}

func (m *Model) syncMatcher() {
	m.matcher.Update(m.Buffer())
}

func (m *Model) setPrivacy(enabled bool) {
	m.privacy = enabled
	if m.doc == nil {
		m.title = ""
		return
	}
	page.ApplyPrivacy(m.doc, enabled)
	if enabled {
		m.title = page.Redacted
	} else {
		m.title = m.doc.Title()
	}
}
