// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/crowdassist/internal/ui/styles"
)

// =============================================================================
// RESULT MODAL
// =============================================================================

// ModalChoice is the outcome of a key press in a Modal.
type ModalChoice int

const (
	// ModalPending means the modal is still open.
	ModalPending ModalChoice = iota
	// ModalConfirm means the primary button was chosen.
	ModalConfirm
	// ModalCancel means the modal was dismissed.
	ModalCancel
)

const (
	focusCancel = iota
	focusConfirm
)

// Modal shows a generated text with Cancel and a primary button. The body
// scrolls when it does not fit.
type Modal struct {
	Title       string
	Content     string
	ConfirmText string

	focus    int
	viewport viewport.Model
	width    int
	height   int
	theme    *styles.Theme
}

// NewModal creates a modal. The primary button starts focused.
func NewModal(theme *styles.Theme, title, content, confirmText string) *Modal {
	if confirmText == "" {
		confirmText = "Use This Text"
	}
	m := &Modal{
		Title:       title,
		Content:     strings.TrimSpace(content),
		ConfirmText: confirmText,
		focus:       focusConfirm,
		theme:       theme,
	}
	m.SetSize(80, 24)
	return m
}

// SetSize fits the modal into a terminal of w x h cells.
func (m *Modal) SetSize(w, h int) {
	m.width = clamp(w-4, 20, 100)
	m.height = clamp(h-4, 8, 40)

	// modal padding+border (6), body padding (4)
	bodyWidth := m.width - 10
	// title (2), buttons (3), frame (4)
	bodyHeight := m.height - 9
	if bodyHeight < 3 {
		bodyHeight = 3
	}

	m.viewport = viewport.New(bodyWidth, bodyHeight)
	m.viewport.SetContent(lipgloss.NewStyle().Width(bodyWidth).Render(m.Content))
}

// Confirmed reports whether the primary button is focused.
func (m *Modal) Confirmed() bool {
	return m.focus == focusConfirm
}

// Update handles a key. Enter activates the focused button, Esc cancels,
// Tab and the arrow keys switch buttons, and other keys scroll the body.
func (m *Modal) Update(msg tea.Msg) (ModalChoice, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return ModalPending, cmd
	}

	switch key.String() {
	case "esc", "ctrl+c":
		return ModalCancel, nil
	case "enter":
		if m.focus == focusConfirm {
			return ModalConfirm, nil
		}
		return ModalCancel, nil
	case "tab", "shift+tab", "left", "right", "h", "l":
		if m.focus == focusConfirm {
			m.focus = focusCancel
		} else {
			m.focus = focusConfirm
		}
		return ModalPending, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return ModalPending, cmd
}

// View renders the modal box.
func (m *Modal) View() string {
	cancel := m.theme.ButtonSecondary.Render("Cancel")
	confirm := m.theme.ButtonPrimary.Render(m.ConfirmText)
	if m.focus == focusCancel {
		cancel = m.theme.ButtonFocused.Render("Cancel")
	} else {
		confirm = m.theme.ButtonFocused.Render(m.ConfirmText)
	}

	body := m.theme.ModalBody.Render(m.viewport.View())
	buttons := lipgloss.JoinHorizontal(lipgloss.Center, cancel, confirm)

	var scroll string
	if !(m.viewport.AtTop() && m.viewport.AtBottom()) {
		scroll = m.theme.Help.Render("up/down to scroll")
	}

	parts := []string{m.theme.ModalTitle.Render(m.Title), body}
	if scroll != "" {
		parts = append(parts, scroll)
	}
	parts = append(parts, "", buttons)

	return m.theme.Modal.Width(m.width).Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
