// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/crowdassist/internal/keepalive"
	"github.com/jeranaias/crowdassist/internal/ui/styles"
	"github.com/jeranaias/crowdassist/internal/util"
)

// =============================================================================
// STATUS BAR COMPONENT
// =============================================================================

// Shortcut is one key hint in the status bar.
type Shortcut struct {
	Key  string
	Desc string
}

// DefaultShortcuts are the composer's key bindings.
var DefaultShortcuts = []Shortcut{
	{"ctrl+r", "review"},
	{"ctrl+g", "auto-reply"},
	{"ctrl+p", "my IP"},
	{"ctrl+s", "save"},
	{"esc", "quit"},
}

// StatusBar is the bottom line of the composer: a notice on the left,
// keep-alive and triage state on the right, shortcuts below.
type StatusBar struct {
	Width int

	Notice        string
	NoticeIsError bool
	Busy          string

	Keepalive    keepalive.Status
	HasKeepalive bool
	Triage       string

	Shortcuts []Shortcut

	theme *styles.Theme
	now   func() time.Time
}

// NewStatusBar creates a status bar.
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{
		Width:     80,
		Shortcuts: DefaultShortcuts,
		theme:     theme,
		now:       time.Now,
	}
}

// SetTheme switches styles.
func (s *StatusBar) SetTheme(theme *styles.Theme) {
	s.theme = theme
}

// SetNotice shows a message until replaced.
func (s *StatusBar) SetNotice(msg string, isErr bool) {
	s.Notice = msg
	s.NoticeIsError = isErr
}

// SetKeepalive records the latest keep-alive snapshot.
func (s *StatusBar) SetKeepalive(st keepalive.Status) {
	s.Keepalive = st
	s.HasKeepalive = true
}

// View renders the two status lines.
func (s *StatusBar) View() string {
	right := s.rightSegment()

	left := s.Busy
	leftStyle := s.theme.StatusBar
	if left == "" {
		left = s.Notice
		if s.NoticeIsError {
			leftStyle = s.theme.StatusError
		}
	}

	avail := s.Width - lipgloss.Width(right) - 3
	if avail < 0 {
		avail = 0
	}
	left = util.PadWidth(util.TruncateWidth(left, avail), avail)

	line := leftStyle.Render(left) + " " + right
	return line + "\n" + s.shortcutLine()
}

func (s *StatusBar) rightSegment() string {
	var parts []string
	if s.HasKeepalive {
		summary := s.Keepalive.Summary(s.now())
		style := s.theme.StatusOK
		switch {
		case !s.Keepalive.Enabled:
			style = s.theme.Help
		case s.Keepalive.LastErr != nil:
			style = s.theme.StatusError
		case s.Keepalive.LastAttempt.IsZero():
			style = s.theme.StatusWarn
		}
		parts = append(parts, style.Render(summary))
	}
	if s.Triage != "" {
		parts = append(parts, s.theme.Triage.Render(s.Triage))
	}
	return strings.Join(parts, s.theme.Help.Render(" | "))
}

func (s *StatusBar) shortcutLine() string {
	items := make([]string, 0, len(s.Shortcuts))
	for _, sc := range s.Shortcuts {
		items = append(items, s.theme.ShortcutKey.Render(sc.Key)+" "+s.theme.Help.Render(sc.Desc))
	}
	line := strings.Join(items, "  ")
	if lipgloss.Width(line) > s.Width && s.Width > 0 {
		// Keys only when narrow.
		keys := make([]string, 0, len(s.Shortcuts))
		for _, sc := range s.Shortcuts {
			keys = append(keys, s.theme.ShortcutKey.Render(sc.Key))
		}
		line = strings.Join(keys, " ")
	}
	return line
}
