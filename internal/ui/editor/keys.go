// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package editor

import "github.com/charmbracelet/bubbles/key"

// =============================================================================
// KEY MAP DEFINITION
// =============================================================================

// KeyMap defines the composer's bindings.
type KeyMap struct {
	Accept    key.Binding
	Up        key.Binding
	Down      key.Binding
	Complete  key.Binding
	InsertIP  key.Binding
	Review    key.Binding
	AutoReply key.Binding
	Save      key.Binding
	Cancel    key.Binding
	ForceQuit key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Accept: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "accept highlighted mention / newline"),
		),
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("up", "previous mention"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("down", "next mention"),
		),
		Complete: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "complete highlighted mention"),
		),
		InsertIP: key.NewBinding(
			key.WithKeys("ctrl+p"),
			key.WithHelp("C-p", "insert my IP"),
		),
		Review: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("C-r", "AI review"),
		),
		AutoReply: key.NewBinding(
			key.WithKeys("ctrl+g"),
			key.WithHelp("C-g", "AI auto-reply"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("C-s", "save"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close / quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("C-c", "quit"),
		),
	}
}

// ShortHelp returns the bindings shown in the status bar.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Review, k.AutoReply, k.InsertIP, k.Save, k.Cancel}
}
