// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package mention

import (
	"reflect"
	"testing"
)

func TestCleanCandidates(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"nil", nil, []string{}},
		{"trims and dedupes", []string{" alice ", "bob", "alice"}, []string{"alice", "bob"}},
		{"drops empty", []string{"", "   ", "carol"}, []string{"carol"}},
		{"drops inner whitespace", []string{"mary ann", "joe\tx", "dan"}, []string{"dan"}},
		{"case sensitive", []string{"Alice", "alice"}, []string{"Alice", "alice"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CleanCandidates(tt.in)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("CleanCandidates(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSourceFunc(t *testing.T) {
	var s Source = SourceFunc(func() []string { return []string{"x"} })
	if got := s.Candidates(); len(got) != 1 || got[0] != "x" {
		t.Errorf("Candidates() = %v, want [x]", got)
	}
}
