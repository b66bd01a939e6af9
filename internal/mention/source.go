// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package mention

import (
	"strings"
	"unicode"

	"github.com/samber/lo"
)

// Source supplies mentionable names on demand. Implementations must return
// names without duplicates or whitespace, in a stable order.
type Source interface {
	Candidates() []string
}

// SourceFunc adapts a function to Source.
type SourceFunc func() []string

// Candidates calls f.
func (f SourceFunc) Candidates() []string {
	return f()
}

// Static is a fixed candidate list.
type Static []string

// Candidates returns the list as-is.
func (s Static) Candidates() []string {
	return s
}

// NewStatic builds a Static from raw names, cleaning them first.
func NewStatic(names ...string) Static {
	return Static(CleanCandidates(names))
}

// CleanCandidates trims names, drops empty ones and ones containing
// whitespace, and removes duplicates keeping the first occurrence.
func CleanCandidates(names []string) []string {
	trimmed := lo.Map(names, func(n string, _ int) string {
		return strings.TrimSpace(n)
	})
	kept := lo.Filter(trimmed, func(n string, _ int) bool {
		return n != "" && strings.IndexFunc(n, unicode.IsSpace) < 0
	})
	return lo.Uniq(kept)
}
