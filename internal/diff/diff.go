// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package diff

import (
	"fmt"
	"strings"
	"unicode"
)

// =============================================================================
// CHANGE TYPES
// =============================================================================

// Op is the kind of a change.
type Op int

const (
	// Equal marks text present on both sides.
	Equal Op = iota
	// Insert marks text only in the suggestion.
	Insert
	// Delete marks text only in the original.
	Delete
)

// String returns the name of the op.
func (o Op) String() string {
	switch o {
	case Equal:
		return "equal"
	case Insert:
		return "insert"
	case Delete:
		return "delete"
	default:
		return "unknown"
	}
}

// Change is a run of tokens with the same op.
type Change struct {
	Op   Op
	Text string
}

// Stats counts changed words.
type Stats struct {
	Inserted int
	Deleted  int
}

// Summary returns "+N -M words" or "no changes".
func (s Stats) Summary() string {
	if s.Inserted == 0 && s.Deleted == 0 {
		return "no changes"
	}
	return fmt.Sprintf("+%d -%d words", s.Inserted, s.Deleted)
}

// =============================================================================
// WORD DIFF
// =============================================================================

// Words compares before and after word by word. Whitespace runs are
// tokens too, so joining the Equal and Delete texts gives back before and
// joining Equal and Insert gives back after.
func Words(before, after string) []Change {
	a, b := tokenize(before), tokenize(after)
	ops := align(a, b)

	var out []Change
	for _, t := range ops {
		if n := len(out); n > 0 && out[n-1].Op == t.op {
			out[n-1].Text += t.text
			continue
		}
		out = append(out, Change{Op: t.op, Text: t.text})
	}
	return out
}

// Count returns word counts for changes. Whitespace-only runs do not count.
func Count(changes []Change) Stats {
	var s Stats
	for _, c := range changes {
		n := len(strings.Fields(c.Text))
		switch c.Op {
		case Insert:
			s.Inserted += n
		case Delete:
			s.Deleted += n
		}
	}
	return s
}

// tokenize splits s into alternating word and whitespace tokens.
func tokenize(s string) []string {
	var tokens []string
	start := 0
	inSpace := false
	for i, r := range s {
		space := unicode.IsSpace(r)
		if i > 0 && space != inSpace {
			tokens = append(tokens, s[start:i])
			start = i
		}
		inSpace = space
	}
	if start < len(s) {
		tokens = append(tokens, s[start:])
	}
	return tokens
}

type opToken struct {
	op   Op
	text string
}

// align walks the longest common subsequence of a and b. Deletions are
// emitted before insertions at the same position.
func align(a, b []string) []opToken {
	m, n := len(a), len(b)
	dp := make([][]int, m+1)
	for i := range dp {
		dp[i] = make([]int, n+1)
	}
	for i := m - 1; i >= 0; i-- {
		for j := n - 1; j >= 0; j-- {
			if a[i] == b[j] {
				dp[i][j] = dp[i+1][j+1] + 1
			} else {
				dp[i][j] = max(dp[i+1][j], dp[i][j+1])
			}
		}
	}

	out := make([]opToken, 0, m+n)
	i, j := 0, 0
	for i < m && j < n {
		switch {
		case a[i] == b[j]:
			out = append(out, opToken{Equal, a[i]})
			i++
			j++
		case dp[i+1][j] >= dp[i][j+1]:
			out = append(out, opToken{Delete, a[i]})
			i++
		default:
			out = append(out, opToken{Insert, b[j]})
			j++
		}
	}
	for ; i < m; i++ {
		out = append(out, opToken{Delete, a[i]})
	}
	for ; j < n; j++ {
		out = append(out, opToken{Insert, b[j]})
	}
	return out
}

// =============================================================================
// FORMATTING
// =============================================================================

// Marks wraps inserted and deleted text when rendering.
type Marks struct {
	Insert func(string) string
	Delete func(string) string
}

// PlainMarks renders changes the way "git diff --word-diff" does.
var PlainMarks = Marks{
	Insert: func(s string) string { return "{+" + s + "+}" },
	Delete: func(s string) string { return "[-" + s + "-]" },
}

// Render writes changes inline with m marking edits. Surrounding
// whitespace stays outside the marks and deleted whitespace is dropped.
func Render(changes []Change, m Marks) string {
	var sb strings.Builder
	for _, c := range changes {
		if c.Op == Equal {
			sb.WriteString(c.Text)
			continue
		}
		core := strings.TrimSpace(c.Text)
		if c.Op == Delete {
			if core != "" {
				sb.WriteString(m.Delete(core))
			}
			continue
		}
		if core == "" {
			sb.WriteString(c.Text)
			continue
		}
		lead := c.Text[:strings.Index(c.Text, core)]
		sb.WriteString(lead)
		sb.WriteString(m.Insert(core))
		sb.WriteString(c.Text[len(lead)+len(core):])
	}
	return sb.String()
}
