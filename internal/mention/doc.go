// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package mention implements "@name" autocomplete for comment editors.
//
// A Matcher watches a text buffer and its caret. When the caret sits inside a
// token that starts with "@" and holds no whitespace, the matcher filters a
// candidate list by case-insensitive prefix and reports the matches. Anything
// else leaves it Idle. Nothing in this package fails, blocks or performs I/O.
//
// # Key Types
//
//   - Matcher: per-editor state machine (Idle / Matching)
//   - Buffer: text plus rune caret offset
//   - State: current kind, trigger offset, query and matches
//   - Source: pull-based candidate supplier (Static, SourceFunc)
//
// # Usage
//
//	m := mention.NewMatcher(mention.NewStatic("alice", "bob"))
//	m.OnStateChange(func(s mention.State) { popup.SetMatches(s.Matches) })
//
//	m.Update(mention.Buffer{Text: "hi @al", Caret: 6})
//	buf, consumed := m.HandleAccept(mention.Buffer{Text: "hi @al", Caret: 6})
//	// buf.Text == "hi @alice ", consumed == true
package mention
