// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package editor

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/crowdassist/internal/mention"
)

// =============================================================================
// CARET MAPPING
// =============================================================================

// caretOffset converts the textarea's row/column cursor into a rune offset
// into Value().
func caretOffset(ta textarea.Model) int {
	lines := strings.Split(ta.Value(), "\n")
	row := ta.Line()

	offset := 0
	for i := 0; i < row && i < len(lines); i++ {
		offset += utf8.RuneCountInString(lines[i]) + 1
	}

	li := ta.LineInfo()
	col := li.StartColumn + li.ColumnOffset
	if row < len(lines) {
		if n := utf8.RuneCountInString(lines[row]); col > n {
			col = n
		}
	}
	return offset + col
}

// lineBounds returns the rune range of the line holding caret.
func lineBounds(runes []rune, caret int) (start, end int) {
	if caret < 0 {
		caret = 0
	}
	if caret > len(runes) {
		caret = len(runes)
	}
	start = caret
	for start > 0 && runes[start-1] != '\n' {
		start--
	}
	end = caret
	for end < len(runes) && runes[end] != '\n' {
		end++
	}
	return start, end
}

// applyLineEdit moves the textarea to next, a buffer that differs from the
// current one only on the caret's line. Committing a mention never crosses
// a line since the token holds no whitespace. Any mismatch falls back to a
// full replace.
func (m *Model) applyLineEdit(next mention.Buffer) {
	runes := []rune(next.Text)
	start, end := lineBounds(runes, next.Caret)

	m.input.CursorStart()
	m.input, _ = m.input.Update(tea.KeyMsg{Type: tea.KeyCtrlK})
	m.input.InsertString(string(runes[start:end]))
	m.input.SetCursor(next.Caret - start)

	if m.input.Value() != next.Text {
		m.input.SetValue(next.Text)
	}
}
