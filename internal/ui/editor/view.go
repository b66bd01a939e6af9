// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package editor

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/crowdassist/internal/util"
)

// View renders the composer.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.modal != nil {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.modal.View())
	}

	var b strings.Builder

	header := m.theme.HeaderBrand.Render("CrowdAssist")
	if m.title != "" {
		header += "  " + m.theme.HeaderPage.Render(util.TruncateWidth(m.title, max(0, m.width-16)))
	}
	b.WriteString(m.theme.Header.Render(header))
	b.WriteString("\n")

	if m.lastComment != "" {
		b.WriteString(m.theme.ContextLabel.Render("Last comment"))
		b.WriteString("\n")
		b.WriteString(m.theme.Context.Width(max(10, m.width-2)).Render(util.TruncateRunes(m.lastComment, 280)))
		b.WriteString("\n")
	}

	b.WriteString(m.theme.EditorFocused.Render(m.input.View()))
	b.WriteString("\n")

	if popup := m.popup.View(); popup != "" {
		// Under the caret column, kept on screen.
		indent := m.input.LineInfo().CharOffset
		if limit := m.width - lipgloss.Width(popup); indent > limit {
			indent = max(0, limit)
		}
		b.WriteString(lipgloss.NewStyle().MarginLeft(indent).Render(popup))
		b.WriteString("\n")
	}

	b.WriteString(m.status.View())
	return b.String()
}
