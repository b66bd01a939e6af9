// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package editor

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/crowdassist/internal/assist"
	"github.com/jeranaias/crowdassist/internal/diff"
	"github.com/jeranaias/crowdassist/internal/ipinfo"
	"github.com/jeranaias/crowdassist/internal/keepalive"
	"github.com/jeranaias/crowdassist/internal/ui/components"
	"github.com/jeranaias/crowdassist/internal/ui/styles"
)

// Modal titles per feature.
var modalTitles = map[assist.Feature]string{
	assist.FeatureReviewReply: "AI Improved Text",
	assist.FeatureAutoReply:   "AI Generated Reply",
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if m.modal != nil {
			return m.updateModal(msg)
		}
		return m.handleKey(msg)

	case SuggestionMsg:
		return m.handleSuggestion(msg), nil

	case IPMsg:
		m.stopBusy()
		if msg.Err != nil {
			m.status.SetNotice(fmt.Sprintf("Failed to get IP address: %v", msg.Err), true)
			return m, nil
		}
		m.input.SetValue(ipinfo.Insert(m.input.Value(), msg.IP))
		m.syncMatcher()
		m.status.SetNotice("IP address inserted.", false)
		return m, nil

	case SavedMsg:
		if msg.Err != nil {
			m.status.SetNotice(fmt.Sprintf("Save failed: %v", msg.Err), true)
		} else {
			m.status.SetNotice("Saved to "+msg.Path, false)
		}
		return m, nil

	case acceptedMsg:
		if msg.Err != nil {
			m.deps.Log.Warn().Err(msg.Err).Msg("failed to mark draft accepted")
		}
		return m, nil

	case ThemeMsg:
		m.setTheme(msg.Mode)
		return m, nil

	case PrivacyMsg:
		m.setPrivacy(msg.Enabled)
		return m, nil

	case keepalive.StatusMsg:
		m.status.SetKeepalive(keepalive.Status(msg))
		if m.deps.Keepalive != nil {
			return m, m.deps.Keepalive.TickCmd()
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if m.spinner.Active() {
			m.status.Busy = m.spinner.View()
		}
		return m, cmd
	}

	if m.modal != nil {
		_, cmd := m.modal.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	popupOpen := m.popup.Visible()

	switch {
	case key.Matches(msg, m.keys.ForceQuit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Cancel):
		if popupOpen {
			m.matcher.Reset()
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit

	case popupOpen && key.Matches(msg, m.keys.Up):
		m.popup.Prev()
		return m, nil

	case popupOpen && key.Matches(msg, m.keys.Down):
		m.popup.Next()
		return m, nil

	case popupOpen && key.Matches(msg, m.keys.Complete):
		if name, ok := m.popup.Selected(); ok {
			m.commit(name)
		}
		return m, nil

	case key.Matches(msg, m.keys.Accept):
		if m.acceptMention() {
			return m, nil
		}

	case key.Matches(msg, m.keys.InsertIP):
		if m.deps.IP == nil {
			m.status.SetNotice("IP lookup is not available.", true)
			return m, nil
		}
		if m.busy() {
			return m, nil
		}
		return m, tea.Batch(m.startBusy("Getting IP address"), ipCmd(m.deps.IP))

	case key.Matches(msg, m.keys.Review):
		if m.deps.Assistant == nil {
			m.status.SetNotice(assist.ErrNoToken.Error(), true)
			return m, nil
		}
		if m.busy() {
			return m, nil
		}
		return m, tea.Batch(m.startBusy("Reviewing"), reviewCmd(m.deps.Assistant, m.input.Value(), m.lastComment))

	case key.Matches(msg, m.keys.AutoReply):
		if m.deps.Assistant == nil {
			m.status.SetNotice(assist.ErrNoToken.Error(), true)
			return m, nil
		}
		if m.busy() {
			return m, nil
		}
		return m, tea.Batch(m.startBusy("Generating reply"), autoReplyCmd(m.deps.Assistant, m.lastComment))

	case key.Matches(msg, m.keys.Save):
		return m, saveCmd(m.outPath, m.input.Value())
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.syncMatcher()
	return m, cmd
}

// acceptMention routes Enter to the matcher. The highlighted entry is
// committed when the user moved off the first one.
func (m *Model) acceptMention() bool {
	buf := m.Buffer()
	if m.popup.Visible() && m.popup.SelectedIndex() > 0 {
		name, _ := m.popup.Selected()
		next, ok := m.matcher.Commit(buf, name)
		if ok {
			m.applyLineEdit(next)
		}
		return ok
	}

	next, consumed := m.matcher.HandleAccept(buf)
	if consumed {
		m.applyLineEdit(next)
	}
	return consumed
}

func (m *Model) commit(name string) {
	next, ok := m.matcher.Commit(m.Buffer(), name)
	if !ok {
		return
	}
	m.applyLineEdit(next)
	m.syncMatcher()
}

func (m Model) handleSuggestion(msg SuggestionMsg) Model {
	m.stopBusy()
	if msg.Err != nil {
		text := msg.Err.Error()
		if errors.Is(msg.Err, assist.ErrNoToken) {
			text = assist.ErrNoToken.Error()
		}
		m.status.SetNotice(text, true)
		return m
	}

	s := msg.Suggestion
	m.pending = &s
	m.modal = components.NewModal(m.theme, modalTitles[msg.Feature], s.Output, "Use This Reply")
	m.modal.SetSize(m.width, m.height)
	if msg.Feature == assist.FeatureReviewReply {
		m.status.SetNotice("Suggested edits: "+diff.Count(diff.Words(s.Input, s.Output)).Summary(), false)
	}
	return m
}

func (m Model) updateModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	choice, cmd := m.modal.Update(msg)
	switch choice {
	case components.ModalConfirm:
		var accept tea.Cmd
		if m.pending != nil {
			m.input.SetValue(m.pending.Output)
			m.syncMatcher()
			accept = acceptCmd(m.deps.Drafts, m.pending.DraftID)
			m.status.SetNotice("Comment replaced with the suggestion.", false)
		}
		m.modal = nil
		m.pending = nil
		return m, accept

	case components.ModalCancel:
		m.modal = nil
		m.pending = nil
		return m, nil
	}
	return m, cmd
}

// =============================================================================
// HELPERS
// =============================================================================

func (m *Model) busy() bool {
	if m.spinner.Active() {
		m.status.SetNotice("A request is already running.", true)
		return true
	}
	return false
}

func (m *Model) startBusy(label string) tea.Cmd {
	cmd := m.spinner.Start(label)
	m.status.Busy = m.spinner.View()
	return cmd
}

func (m *Model) stopBusy() {
	m.spinner.Stop()
	m.status.Busy = ""
}

func (m *Model) setTheme(mode string) {
	m.theme = styles.NewTheme(mode)
	m.popup.SetTheme(m.theme)
	m.status.SetTheme(m.theme)
}

func (m *Model) resize(w, h int) {
	m.width, m.height = w, h

	m.input.SetWidth(max(20, w-4))
	m.input.SetHeight(max(3, h-14))
	m.popup.SetWidth(min(32, max(8, w-2)))
	m.status.Width = w
	if m.modal != nil {
		m.modal.SetSize(w, h)
	}
}
