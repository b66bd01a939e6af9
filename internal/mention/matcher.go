// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package mention

import (
	"slices"
	"strings"
	"unicode"
)

// =============================================================================
// CONSTANTS
// =============================================================================

const (
	// Trigger starts a mention token.
	Trigger = '@'

	// SuppressThreshold is the largest candidate set shown for a bare "@".
	// Larger sets stay hidden until at least one character narrows them.
	SuppressThreshold = 3
)

// =============================================================================
// STATE
// =============================================================================

// Kind is the matcher state.
type Kind int

const (
	// Idle means no list should be shown.
	Idle Kind = iota
	// Matching means an active trigger with at least one match.
	Matching
)

// String returns the state name.
func (k Kind) String() string {
	switch k {
	case Matching:
		return "matching"
	default:
		return "idle"
	}
}

// Buffer is a snapshot of an editable field.
// Caret is a rune offset into Text.
type Buffer struct {
	Text  string
	Caret int
}

// State is the result of a recompute. Trigger, Query and Matches are only
// meaningful when Kind is Matching.
type State struct {
	Kind    Kind
	Trigger int
	Query   string
	Matches []string
}

// IsMatching reports whether a list should be shown.
func (s State) IsMatching() bool {
	return s.Kind == Matching
}

// Equal reports whether two states would render identically.
func (s State) Equal(other State) bool {
	return s.Kind == other.Kind &&
		s.Trigger == other.Trigger &&
		s.Query == other.Query &&
		slices.Equal(s.Matches, other.Matches)
}

func idleState() State {
	return State{Kind: Idle, Trigger: -1}
}

// =============================================================================
// MATCHER
// =============================================================================

// Matcher tracks one editor's mention context. Create one per editor; matchers
// share nothing.
//
// Matcher is not safe for concurrent use. It is driven synchronously from the
// host's event loop.
type Matcher struct {
	source   Source
	state    State
	onChange func(State)
}

// NewMatcher creates an idle matcher pulling candidates from source.
// A nil source behaves as an empty candidate set.
func NewMatcher(source Source) *Matcher {
	return &Matcher{
		source: source,
		state:  idleState(),
	}
}

// OnStateChange registers the render hook. It fires after a recompute or commit
// whenever the new state differs from the previous one.
func (m *Matcher) OnStateChange(fn func(State)) {
	m.onChange = fn
}

// SetSource replaces the candidate source. The current state is kept until the
// next Update.
func (m *Matcher) SetSource(source Source) {
	m.source = source
}

// State returns the current state.
func (m *Matcher) State() State {
	return m.state
}

// Reset drops the match context.
func (m *Matcher) Reset() {
	m.setState(idleState())
}

// Update recomputes the state for a buffer snapshot. Call it on every text or
// caret change.
func (m *Matcher) Update(buf Buffer) State {
	m.setState(m.compute(buf))
	return m.state
}

func (m *Matcher) compute(buf Buffer) State {
	runes := []rune(buf.Text)
	caret := clampCaret(buf.Caret, len(runes))
	prefix := runes[:caret]

	trigger := lastTrigger(prefix)
	if trigger < 0 {
		return idleState()
	}

	tail := prefix[trigger:]
	if slices.ContainsFunc(tail, unicode.IsSpace) {
		return idleState()
	}
	query := string(tail[1:])

	candidates := m.candidates()
	if len(candidates) > SuppressThreshold && query == "" {
		return idleState()
	}

	matches := FilterPrefix(candidates, query)
	if len(matches) == 0 {
		return idleState()
	}

	return State{
		Kind:    Matching,
		Trigger: trigger,
		Query:   query,
		Matches: matches,
	}
}

func (m *Matcher) candidates() []string {
	if m.source == nil {
		return nil
	}
	return m.source.Candidates()
}

func (m *Matcher) setState(next State) {
	prev := m.state
	m.state = next
	if m.onChange != nil && !prev.Equal(next) {
		m.onChange(next)
	}
}

// =============================================================================
// COMMIT
// =============================================================================

// Commit inserts name at the active mention. The replaced span starts after
// the "@" and runs to the caret of buf, so text typed since the last Update is
// replaced too and text after the caret is kept. The caret lands after the
// inserted space and the matcher goes idle.
//
// It returns the buffer unchanged and false when there is no active mention.
func (m *Matcher) Commit(buf Buffer, name string) (Buffer, bool) {
	if !m.state.IsMatching() {
		return buf, false
	}

	runes := []rune(buf.Text)
	trigger := m.state.Trigger
	if trigger < 0 || trigger >= len(runes) || runes[trigger] != Trigger {
		trigger = lastTrigger(runes[:clampCaret(buf.Caret, len(runes))])
	}
	if trigger < 0 {
		m.Reset()
		return buf, false
	}

	start := trigger + 1
	end := max(clampCaret(buf.Caret, len(runes)), start)

	insert := []rune(name + " ")
	out := make([]rune, 0, len(runes)-(end-start)+len(insert))
	out = append(out, runes[:start]...)
	out = append(out, insert...)
	out = append(out, runes[end:]...)

	m.Reset()
	return Buffer{Text: string(out), Caret: start + len(insert)}, true
}

// HandleAccept routes an accept key (Enter) through the matcher. While
// matching it commits the first match and returns consumed=true; the host must
// then skip the key's default handling.
func (m *Matcher) HandleAccept(buf Buffer) (result Buffer, consumed bool) {
	if !m.state.IsMatching() || len(m.state.Matches) == 0 {
		return buf, false
	}
	out, _ := m.Commit(buf, m.state.Matches[0])
	return out, true
}

// =============================================================================
// HELPERS
// =============================================================================

// FilterPrefix returns the candidates whose lower-cased form starts with the
// lower-cased query, keeping candidate order.
func FilterPrefix(candidates []string, query string) []string {
	q := strings.ToLower(query)
	var out []string
	for _, c := range candidates {
		if strings.HasPrefix(strings.ToLower(c), q) {
			out = append(out, c)
		}
	}
	return out
}

func lastTrigger(runes []rune) int {
	for i := len(runes) - 1; i >= 0; i-- {
		if runes[i] == Trigger {
			return i
		}
	}
	return -1
}

func clampCaret(caret, n int) int {
	if caret < 0 {
		return 0
	}
	if caret > n {
		return n
	}
	return caret
}
