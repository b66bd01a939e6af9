// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides draft history persistence for crowdassist.
//
// Every AI suggestion is stored so earlier drafts can be reviewed or reused.
// The database is SQLite (modernc.org/sqlite, no cgo) at
// ~/.crowdassist/drafts.db.
//
// # Key Types
//
//   - Draft: one suggestion with its feature, input and output
//   - DraftStore: SQLite-backed store
//
// # Usage
//
//	store, err := storage.OpenDefault()
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
//
//	d, _ := store.Save(ctx, storage.Draft{Feature: "auto_reply", Input: in, Output: out})
//	recent, _ := store.List(ctx, "", 10)
package storage
