// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/crowdassist/internal/keepalive"
	"github.com/jeranaias/crowdassist/internal/ui/styles"
)

func testTheme() *styles.Theme {
	return styles.NewTheme(styles.ModeLight)
}

// =============================================================================
// MENTION POPUP
// =============================================================================

func TestMentionPopup_Selection(t *testing.T) {
	p := NewMentionPopup(testTheme())
	assert.False(t, p.Visible())
	_, ok := p.Selected()
	assert.False(t, ok)
	assert.Equal(t, "", p.View())

	p.SetMatches([]string{"alice", "alan", "albert"})
	require.True(t, p.Visible())
	name, ok := p.Selected()
	require.True(t, ok)
	assert.Equal(t, "alice", name)

	p.Next()
	p.Next()
	name, _ = p.Selected()
	assert.Equal(t, "albert", name)
	p.Next()
	assert.Equal(t, 0, p.SelectedIndex(), "wraps forward")
	p.Prev()
	assert.Equal(t, 2, p.SelectedIndex(), "wraps backward")

	p.SetMatches([]string{"alan"})
	assert.Equal(t, 0, p.SelectedIndex(), "new matches reset the highlight")

	p.Clear()
	assert.False(t, p.Visible())
}

func TestMentionPopup_Window(t *testing.T) {
	p := NewMentionPopup(testTheme())
	p.SetMaxVisible(3)
	p.SetMatches([]string{"a1", "a2", "a3", "a4", "a5", "a6"})

	start, end := p.window()
	assert.Equal(t, 0, start)
	assert.Equal(t, 3, end)

	for i := 0; i < 3; i++ {
		p.Next()
	}
	start, end = p.window()
	assert.Equal(t, 2, start)
	assert.Equal(t, 5, end)

	p.Prev()
	p.Prev()
	p.Prev()
	p.Prev() // wraps to a6
	start, end = p.window()
	assert.Equal(t, 3, start)
	assert.Equal(t, 6, end)
}

func TestMentionPopup_View(t *testing.T) {
	p := NewMentionPopup(testTheme())
	p.SetWidth(14)
	p.SetMaxVisible(2)
	p.SetMatches([]string{"bob", "a_really_long_username", "carol"})

	view := p.View()
	assert.Contains(t, view, "@bob")
	assert.Contains(t, view, "...")
	assert.NotContains(t, view, "carol")
	assert.Contains(t, view, "1 of 3")
}

// =============================================================================
// MODAL
// =============================================================================

func TestModal_Confirm(t *testing.T) {
	m := NewModal(testTheme(), "AI Generated Reply", "  Thanks, here is the request.  ", "Use This Reply")
	assert.Equal(t, "Thanks, here is the request.", m.Content)
	assert.True(t, m.Confirmed())

	choice, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, ModalConfirm, choice)
}

func TestModal_CancelPaths(t *testing.T) {
	m := NewModal(testTheme(), "t", "body", "")
	assert.Equal(t, "Use This Text", m.ConfirmText)

	choice, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, ModalCancel, choice)

	choice, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, ModalPending, choice)
	assert.False(t, m.Confirmed())

	choice, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, ModalCancel, choice, "enter on Cancel dismisses")
}

func TestModal_View(t *testing.T) {
	m := NewModal(testTheme(), "AI Improved Text", strings.Repeat("line\n", 60), "Use This Reply")
	m.SetSize(80, 20)

	view := m.View()
	assert.Contains(t, view, "AI Improved Text")
	assert.Contains(t, view, "Cancel")
	assert.Contains(t, view, "Use This Reply")
	assert.Contains(t, view, "scroll")

	choice, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, ModalPending, choice)
}

// =============================================================================
// STATUS BAR
// =============================================================================

func TestStatusBar_View(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	s := NewStatusBar(testTheme())
	s.now = func() time.Time { return now }
	s.Width = 100

	s.SetNotice("Saved comment.txt", false)
	s.Triage = "Triaged in 1d 2h 35m"
	s.SetKeepalive(keepalive.Status{Enabled: true, LastAttempt: now, LastRefresh: now.Add(-2 * time.Minute)})

	view := s.View()
	assert.Contains(t, view, "Saved comment.txt")
	assert.Contains(t, view, "keepalive ok 2m ago")
	assert.Contains(t, view, "Triaged in 1d 2h 35m")
	assert.Contains(t, view, "ctrl+r")
	assert.Contains(t, view, "review")

	s.Busy = "working"
	assert.Contains(t, s.View(), "working")
	assert.NotContains(t, s.View(), "Saved comment.txt")
}

func TestStatusBar_NarrowAndErrors(t *testing.T) {
	s := NewStatusBar(testTheme())
	s.Width = 20
	s.SetKeepalive(keepalive.Status{Enabled: true, LastAttempt: time.Now(), LastErr: errors.New("x")})

	lines := strings.Split(s.View(), "\n")
	require.Len(t, lines, 2)
	assert.NotContains(t, lines[1], "review", "descriptions dropped when narrow")
	assert.Contains(t, lines[0], "keepalive failed")
}
