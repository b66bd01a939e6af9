// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package editor is the Bubble Tea comment composer.
//
// The composer wraps a bubbles textarea with one mention.Matcher fed from the
// report page's usernames. Enter is offered to the matcher first so that an
// open "@" popup commits a name instead of inserting a newline.
//
// # Key Bindings
//
//   - enter: accept the highlighted mention, otherwise newline
//   - up/down: move through the mention popup
//   - tab: commit the highlighted mention
//   - ctrl+p: append "My IP is: ..." to the comment
//   - ctrl+r: AI review of the comment (opens a modal)
//   - ctrl+g: AI auto-reply to the last comment (opens a modal)
//   - ctrl+s: save the comment to the output file
//   - esc: close the popup or modal, otherwise quit
//
// # Usage
//
//	m := editor.New(editor.Options{Page: doc, OutPath: "comment.txt"}, editor.Deps{
//	    Assistant: assistant,
//	    IP:        ipinfo.NewClient(cfg.Network.IPLookupURL, log),
//	    Keepalive: scheduler,
//	    Log:       log,
//	})
//	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
package editor
