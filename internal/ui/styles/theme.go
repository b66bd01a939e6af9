// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Resolved modes. "system" is resolved to one of these.
const (
	ModeLight  = "light"
	ModeDark   = "dark"
	ModeSystem = "system"
)

// hasDarkBackground is replaced in tests.
var hasDarkBackground = termenv.HasDarkBackground

// ResolveMode maps a configured theme mode to light or dark. "system" and
// unknown values follow the terminal background.
func ResolveMode(mode string) string {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case ModeLight:
		return ModeLight
	case ModeDark:
		return ModeDark
	default:
		if hasDarkBackground() {
			return ModeDark
		}
		return ModeLight
	}
}

// Theme holds all the styled components for the application.
type Theme struct {
	// Mode is the resolved mode, never "system".
	Mode         string
	Palette      Palette
	ColorProfile termenv.Profile

	// ==========================================================================
	// LAYOUT
	// ==========================================================================

	App         lipgloss.Style
	Header      lipgloss.Style
	HeaderBrand lipgloss.Style
	HeaderPage  lipgloss.Style

	// ==========================================================================
	// EDITOR
	// ==========================================================================

	Editor        lipgloss.Style
	EditorFocused lipgloss.Style
	Context       lipgloss.Style
	ContextLabel  lipgloss.Style

	// ==========================================================================
	// MENTION POPUP
	// ==========================================================================

	Popup         lipgloss.Style
	PopupItem     lipgloss.Style
	PopupSelected lipgloss.Style
	PopupMore     lipgloss.Style

	// ==========================================================================
	// MODAL
	// ==========================================================================

	Modal           lipgloss.Style
	ModalTitle      lipgloss.Style
	ModalBody       lipgloss.Style
	Button          lipgloss.Style
	ButtonPrimary   lipgloss.Style
	ButtonFocused   lipgloss.Style
	ButtonSecondary lipgloss.Style

	// ==========================================================================
	// STATUS BAR
	// ==========================================================================

	StatusBar   lipgloss.Style
	StatusOK    lipgloss.Style
	StatusWarn  lipgloss.Style
	StatusError lipgloss.Style
	Triage      lipgloss.Style
	ShortcutKey lipgloss.Style
	Help        lipgloss.Style

	// ==========================================================================
	// NOTICES
	// ==========================================================================

	Success lipgloss.Style
	Error   lipgloss.Style
}

// NewTheme creates a theme for a configured mode.
func NewTheme(mode string) *Theme {
	resolved := ResolveMode(mode)
	t := &Theme{
		Mode:         resolved,
		Palette:      PaletteFor(resolved),
		ColorProfile: termenv.ColorProfile(),
	}
	t.initStyles()
	return t
}

// IsDark reports whether the dark palette is in use.
func (t *Theme) IsDark() bool {
	return t.Mode == ModeDark
}

func (t *Theme) initStyles() {
	p := t.Palette

	t.App = lipgloss.NewStyle().Padding(0, 1)

	t.Header = lipgloss.NewStyle().
		Foreground(Color(p.Header)).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(Color(p.InputBorder))

	t.HeaderBrand = lipgloss.NewStyle().
		Bold(true).
		Foreground(Color(p.Button))

	t.HeaderPage = lipgloss.NewStyle().
		Foreground(Color(p.HelpText)).
		Italic(true)

	// Editor
	t.Editor = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Color(p.InputBorder)).
		Foreground(Color(p.InputText)).
		Padding(0, 1)

	t.EditorFocused = t.Editor.
		BorderForeground(Color(p.Button))

	t.Context = lipgloss.NewStyle().
		Foreground(Color(p.Text)).
		Background(Color(p.CodeBackground)).
		Padding(0, 1)

	t.ContextLabel = lipgloss.NewStyle().
		Foreground(Color(p.Label)).
		Bold(true)

	// Mention popup
	t.Popup = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Color(p.InputBorder)).
		Background(Color(p.Background))

	t.PopupItem = lipgloss.NewStyle().
		Foreground(Color(p.Text)).
		Padding(0, 1)

	t.PopupSelected = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#ffffff")).
		Background(Color(p.Button)).
		Bold(true).
		Padding(0, 1)

	t.PopupMore = lipgloss.NewStyle().
		Foreground(Color(p.Muted)).
		Italic(true).
		Padding(0, 1)

	// Modal
	t.Modal = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Color(p.InputBorder)).
		Background(Color(p.Background)).
		Foreground(Color(p.Text)).
		Padding(1, 2)

	t.ModalTitle = lipgloss.NewStyle().
		Foreground(Color(p.Text)).
		Bold(true).
		MarginBottom(1)

	t.ModalBody = lipgloss.NewStyle().
		Foreground(Color(p.Text)).
		Background(Color(p.CodeBackground)).
		Padding(1, 2)

	t.Button = lipgloss.NewStyle().
		Padding(0, 2).
		MarginRight(1)

	t.ButtonPrimary = t.Button.
		Foreground(lipgloss.Color("#ffffff")).
		Background(Color(p.Button))

	t.ButtonFocused = t.Button.
		Foreground(lipgloss.Color("#ffffff")).
		Background(Color(p.ButtonHover)).
		Bold(true).
		Underline(true)

	t.ButtonSecondary = t.Button.
		Foreground(Color(p.ButtonSecondaryText)).
		Background(Color(p.ButtonSecondary)).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(Color(p.InputBorder))

	// Status bar
	t.StatusBar = lipgloss.NewStyle().
		Foreground(Color(p.HelpText)).
		Padding(0, 1)

	t.StatusOK = lipgloss.NewStyle().Foreground(Color(p.SuccessText))
	t.StatusWarn = lipgloss.NewStyle().Foreground(Color(p.Button))
	t.StatusError = lipgloss.NewStyle().Foreground(Color(p.ErrorText))

	t.Triage = lipgloss.NewStyle().
		Foreground(Color(p.Muted)).
		Italic(true)

	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(Color(p.Button)).
		Bold(true)

	t.Help = lipgloss.NewStyle().
		Foreground(Color(p.HelpText))

	// Notices
	t.Success = lipgloss.NewStyle().
		Foreground(Color(p.SuccessText)).
		Background(Color(p.SuccessBackground)).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(Color(p.SuccessBorder)).
		Padding(0, 1)

	t.Error = lipgloss.NewStyle().
		Foreground(Color(p.ErrorText)).
		Background(Color(p.ErrorBackground)).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(Color(p.ErrorBorder)).
		Padding(0, 1)
}
