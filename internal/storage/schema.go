// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

// Schema creates the draft history tables.
const Schema = `
CREATE TABLE IF NOT EXISTS metadata (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
) WITHOUT ROWID;

CREATE TABLE IF NOT EXISTS drafts (
    id TEXT PRIMARY KEY,
    feature TEXT NOT NULL,       -- review_reply, auto_reply, review_report, generate_report
    input TEXT NOT NULL,
    output TEXT NOT NULL,
    created_at INTEGER NOT NULL, -- Unix nanoseconds
    accepted INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_drafts_created ON drafts(created_at DESC);
CREATE INDEX IF NOT EXISTS idx_drafts_feature ON drafts(feature, created_at DESC);
`

// SchemaVersion is recorded in the metadata table.
const SchemaVersion = "1"
