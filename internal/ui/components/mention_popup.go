// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"

	"github.com/jeranaias/crowdassist/internal/ui/styles"
	"github.com/jeranaias/crowdassist/internal/util"
)

// =============================================================================
// MENTION POPUP COMPONENT
// =============================================================================

// MentionPopup lists "@name" matches under the editor. The first entry is
// highlighted whenever the match list changes.
type MentionPopup struct {
	matches    []string
	selected   int
	maxVisible int
	width      int
	theme      *styles.Theme
}

// NewMentionPopup creates an empty popup.
func NewMentionPopup(theme *styles.Theme) *MentionPopup {
	return &MentionPopup{
		maxVisible: 6,
		width:      28,
		theme:      theme,
	}
}

// SetMatches replaces the list and selects the first entry.
func (p *MentionPopup) SetMatches(matches []string) {
	p.matches = append(p.matches[:0:0], matches...)
	p.selected = 0
}

// Matches returns the current list.
func (p *MentionPopup) Matches() []string {
	return p.matches
}

// Visible reports whether there is anything to show.
func (p *MentionPopup) Visible() bool {
	return len(p.matches) > 0
}

// Selected returns the highlighted name.
func (p *MentionPopup) Selected() (string, bool) {
	if p.selected < 0 || p.selected >= len(p.matches) {
		return "", false
	}
	return p.matches[p.selected], true
}

// SelectedIndex returns the highlighted position.
func (p *MentionPopup) SelectedIndex() int {
	return p.selected
}

// Next moves the highlight down, wrapping.
func (p *MentionPopup) Next() {
	if len(p.matches) == 0 {
		return
	}
	p.selected = (p.selected + 1) % len(p.matches)
}

// Prev moves the highlight up, wrapping.
func (p *MentionPopup) Prev() {
	if len(p.matches) == 0 {
		return
	}
	p.selected--
	if p.selected < 0 {
		p.selected = len(p.matches) - 1
	}
}

// Clear hides the popup.
func (p *MentionPopup) Clear() {
	p.matches = nil
	p.selected = 0
}

// SetTheme switches styles, keeping the list.
func (p *MentionPopup) SetTheme(theme *styles.Theme) {
	p.theme = theme
}

// SetWidth sets the outer width including the border.
func (p *MentionPopup) SetWidth(width int) {
	if width < 8 {
		width = 8
	}
	p.width = width
}

// SetMaxVisible sets how many rows are shown before scrolling.
func (p *MentionPopup) SetMaxVisible(n int) {
	if n < 1 {
		n = 1
	}
	p.maxVisible = n
}

// window returns the visible slice bounds, keeping the selection centered
// once the list scrolls.
func (p *MentionPopup) window() (start, end int) {
	end = len(p.matches)
	if len(p.matches) <= p.maxVisible {
		return 0, end
	}
	start = p.selected - p.maxVisible/2
	if start < 0 {
		start = 0
	}
	end = start + p.maxVisible
	if end > len(p.matches) {
		end = len(p.matches)
		start = end - p.maxVisible
	}
	return start, end
}

// View renders the popup, or "" when hidden.
func (p *MentionPopup) View() string {
	if len(p.matches) == 0 {
		return ""
	}

	// border (2) + item padding (2)
	inner := p.width - 4
	start, end := p.window()

	rows := make([]string, 0, end-start+1)
	for i := start; i < end; i++ {
		label := util.PadWidth(util.TruncateWidth("@"+p.matches[i], inner), inner)
		if i == p.selected {
			rows = append(rows, p.theme.PopupSelected.Render(label))
		} else {
			rows = append(rows, p.theme.PopupItem.Render(label))
		}
	}
	if hidden := len(p.matches) - (end - start); hidden > 0 {
		rows = append(rows, p.theme.PopupMore.Render(util.TruncateWidth(fmt.Sprintf("%d of %d", p.selected+1, len(p.matches)), inner)))
	}

	return p.theme.Popup.Render(strings.Join(rows, "\n"))
}
