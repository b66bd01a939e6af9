// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package diff shows what a suggestion changed in the text it was given.
//
// Replies are short and often a single line, so the comparison works on
// words rather than lines.
//
// # Key Types
//
//   - Op: Kind of change (equal, insert, delete)
//   - Change: A run of text with one op
//   - Stats: Inserted and deleted word counts
//   - Marks: How Render wraps inserted and deleted text
//
// # Usage
//
//	changes := diff.Words(draft, suggestion)
//	fmt.Println(diff.Render(changes, diff.PlainMarks))
//	fmt.Println(diff.Count(changes).Summary())
package diff
