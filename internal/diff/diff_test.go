// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package diff

import (
	"strings"
	"testing"
)

func join(changes []Change, keep Op) string {
	var sb strings.Builder
	for _, c := range changes {
		if c.Op == Equal || c.Op == keep {
			sb.WriteString(c.Text)
		}
	}
	return sb.String()
}

func TestWords_RoundTrip(t *testing.T) {
	tests := []struct {
		before, after string
	}{
		{"thx fixed it", "Thanks, I fixed it."},
		{"", "new text"},
		{"old text", ""},
		{"same words here", "same words here"},
		{"line one\nline two", "line one\n\nline 2"},
		{"  padded  ", "padded"},
		{"héllo wörld", "hello wörld"},
	}

	for _, tt := range tests {
		changes := Words(tt.before, tt.after)
		if got := join(changes, Delete); got != tt.before {
			t.Errorf("before of %q -> %q = %q", tt.before, tt.after, got)
		}
		if got := join(changes, Insert); got != tt.after {
			t.Errorf("after of %q -> %q = %q", tt.before, tt.after, got)
		}
		for i := 1; i < len(changes); i++ {
			if changes[i].Op == changes[i-1].Op {
				t.Errorf("adjacent changes share op %s in %+v", changes[i].Op, changes)
			}
		}
	}
}

func TestWords_Identical(t *testing.T) {
	changes := Words("no edits", "no edits")
	if len(changes) != 1 || changes[0].Op != Equal {
		t.Fatalf("expected one equal run, got %+v", changes)
	}
	if s := Count(changes).Summary(); s != "no changes" {
		t.Errorf("Summary = %q", s)
	}
	if Words("", "") != nil {
		t.Error("empty inputs should give no changes")
	}
}

func TestRender_Plain(t *testing.T) {
	tests := []struct {
		before, after, want string
	}{
		{"thx for the review", "thanks for the review", "[-thx-]{+thanks+} for the review"},
		{"steps attached", "steps are attached", "steps {+are+} attached"},
		{"please check asap", "please check", "please check[-asap-]"},
		{"a  b", "a b", "a b"},
	}

	for _, tt := range tests {
		if got := Render(Words(tt.before, tt.after), PlainMarks); got != tt.want {
			t.Errorf("Render(%q -> %q) = %q, want %q", tt.before, tt.after, got, tt.want)
		}
	}
}

func TestCount(t *testing.T) {
	s := Count(Words("thx fixed", "Thanks, I have fixed it."))
	if s.Inserted != 4 || s.Deleted != 1 {
		t.Errorf("Count = %+v, want +4 -1", s)
	}
	if got := s.Summary(); got != "+4 -1 words" {
		t.Errorf("Summary = %q", got)
	}
}

func TestOpString(t *testing.T) {
	for op, want := range map[Op]string{Equal: "equal", Insert: "insert", Delete: "delete", Op(9): "unknown"} {
		if got := op.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", op, got, want)
		}
	}
}
