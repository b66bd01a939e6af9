// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
)

func newTestStore(t *testing.T) *DraftStore {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "drafts.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// clock returns a now func that advances one second per call.
func clock(start time.Time) func() time.Time {
	t := start
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

// =============================================================================
// DRAFT STORE TESTS
// =============================================================================

func TestDraftStore_SaveAndGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	saved, err := store.Save(ctx, Draft{Feature: "auto_reply", Input: "Can you retest?", Output: "Sure, retesting now."})
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, err := uuid.Parse(saved.ID); err != nil {
		t.Errorf("ID %q is not a UUID: %v", saved.ID, err)
	}
	if saved.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}

	got, err := store.Get(ctx, saved.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Feature != "auto_reply" || got.Input != "Can you retest?" || got.Output != "Sure, retesting now." {
		t.Errorf("Get returned %+v", got)
	}
	if !got.CreatedAt.Equal(saved.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, saved.CreatedAt)
	}
	if got.Accepted {
		t.Error("new drafts should not be accepted")
	}
}

func TestDraftStore_GetMissing(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Get(context.Background(), "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(nope) = %v, want ErrNotFound", err)
	}
}

func TestDraftStore_SaveUpdatesExisting(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	d, _ := store.Save(ctx, Draft{Feature: "review_reply", Input: "a", Output: "b"})
	d.Output = "c"
	if _, err := store.Save(ctx, d); err != nil {
		t.Fatalf("re-Save failed: %v", err)
	}

	got, _ := store.Get(ctx, d.ID)
	if got.Output != "c" {
		t.Errorf("Output = %q, want c", got.Output)
	}
	if n, _ := store.Count(ctx); n != 1 {
		t.Errorf("Count = %d, want 1", n)
	}
}

func TestDraftStore_ListNewestFirst(t *testing.T) {
	store := newTestStore(t)
	store.now = clock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	ctx := context.Background()

	for _, f := range []string{"auto_reply", "review_report", "auto_reply", "generate_report"} {
		if _, err := store.Save(ctx, Draft{Feature: f, Input: "in", Output: f}); err != nil {
			t.Fatal(err)
		}
	}

	all, err := store.List(ctx, "", 0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("List returned %d drafts, want 4", len(all))
	}
	if all[0].Feature != "generate_report" || all[3].Feature != "auto_reply" {
		t.Errorf("List not newest first: %v, %v", all[0].Feature, all[3].Feature)
	}

	replies, _ := store.List(ctx, "auto_reply", 0)
	if len(replies) != 2 {
		t.Errorf("filtered List returned %d, want 2", len(replies))
	}

	limited, _ := store.List(ctx, "", 2)
	if len(limited) != 2 || limited[0].Feature != "generate_report" {
		t.Errorf("limited List = %+v", limited)
	}
}

func TestDraftStore_MarkAccepted(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	d, _ := store.Save(ctx, Draft{Feature: "auto_reply", Input: "x", Output: "y"})
	if err := store.MarkAccepted(ctx, d.ID); err != nil {
		t.Fatalf("MarkAccepted failed: %v", err)
	}
	got, _ := store.Get(ctx, d.ID)
	if !got.Accepted {
		t.Error("draft should be accepted")
	}

	if err := store.MarkAccepted(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("MarkAccepted(missing) = %v, want ErrNotFound", err)
	}
}

func TestDraftStore_Prune(t *testing.T) {
	store := newTestStore(t)
	store.now = clock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	ctx := context.Background()

	var last Draft
	for i := 0; i < 5; i++ {
		last, _ = store.Save(ctx, Draft{Feature: "auto_reply", Input: "in", Output: "out"})
	}

	removed, err := store.Prune(ctx, 2)
	if err != nil {
		t.Fatalf("Prune failed: %v", err)
	}
	if removed != 3 {
		t.Errorf("Prune removed %d, want 3", removed)
	}
	if _, err := store.Get(ctx, last.ID); err != nil {
		t.Errorf("newest draft was pruned: %v", err)
	}

	removed, _ = store.Prune(ctx, 0)
	if removed != 2 {
		t.Errorf("Prune(0) removed %d, want 2", removed)
	}
}

func TestDraftStore_PersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "drafts.db")
	ctx := context.Background()

	store, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	d, _ := store.Save(ctx, Draft{Feature: "review_report", Input: "i", Output: "o"})
	if err := store.Close(); err != nil {
		t.Fatal(err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer reopened.Close()
	if _, err := reopened.Get(ctx, d.ID); err != nil {
		t.Errorf("draft lost after reopen: %v", err)
	}
}

func TestDraftStore_Closed(t *testing.T) {
	store, err := Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Close(); err != nil {
		t.Fatal(err)
	}
	if err := store.Close(); err != nil {
		t.Errorf("second Close = %v", err)
	}
	if _, err := store.Save(context.Background(), Draft{}); !errors.Is(err, ErrClosed) {
		t.Errorf("Save after Close = %v, want ErrClosed", err)
	}
}
