// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/jeranaias/crowdassist/internal/config"
)

// DefaultFile is the database file name inside the config directory.
const DefaultFile = "drafts.db"

var (
	// ErrNotFound is returned when a draft ID does not exist.
	ErrNotFound = errors.New("draft not found")

	// ErrClosed is returned after Close.
	ErrClosed = errors.New("draft store closed")
)

// =============================================================================
// DRAFT TYPE
// =============================================================================

// Draft is one AI suggestion kept in the history.
type Draft struct {
	ID        string    `json:"id"`
	Feature   string    `json:"feature"`
	Input     string    `json:"input"`
	Output    string    `json:"output"`
	CreatedAt time.Time `json:"created_at"`
	Accepted  bool      `json:"accepted"`
}

// =============================================================================
// DRAFT STORE
// =============================================================================

// DraftStore persists drafts in SQLite.
type DraftStore struct {
	db   *sql.DB
	path string
	now  func() time.Time
}

// OpenDefault opens the store at ~/.crowdassist/drafts.db.
func OpenDefault() (*DraftStore, error) {
	path, err := config.DataPath(DefaultFile)
	if err != nil {
		return nil, err
	}
	return Open(path)
}

// Open opens (creating if needed) the store at path. ":memory:" is allowed.
func Open(path string) (*DraftStore, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// One writer at a time; a single connection also keeps :memory: alive.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	if _, err := db.Exec(
		"INSERT OR REPLACE INTO metadata (key, value) VALUES ('schema_version', ?)", SchemaVersion,
	); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &DraftStore{db: db, path: path, now: time.Now}, nil
}

// Path returns the database location.
func (s *DraftStore) Path() string {
	return s.path
}

// Save stores d. A missing ID or CreatedAt is filled in, and the stored
// draft is returned.
func (s *DraftStore) Save(ctx context.Context, d Draft) (Draft, error) {
	if s.db == nil {
		return Draft{}, ErrClosed
	}
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = s.now()
	}
	d.CreatedAt = d.CreatedAt.UTC()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO drafts (id, feature, input, output, created_at, accepted)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   feature = excluded.feature, input = excluded.input, output = excluded.output,
		   created_at = excluded.created_at, accepted = excluded.accepted`,
		d.ID, d.Feature, d.Input, d.Output, d.CreatedAt.UnixNano(), boolToInt(d.Accepted),
	)
	if err != nil {
		return Draft{}, fmt.Errorf("failed to save draft: %w", err)
	}
	return d, nil
}

// Get returns the draft with id.
func (s *DraftStore) Get(ctx context.Context, id string) (Draft, error) {
	if s.db == nil {
		return Draft{}, ErrClosed
	}
	row := s.db.QueryRowContext(ctx,
		"SELECT id, feature, input, output, created_at, accepted FROM drafts WHERE id = ?", id)

	d, err := scanDraft(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Draft{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return Draft{}, fmt.Errorf("failed to read draft: %w", err)
	}
	return d, nil
}

// List returns drafts newest first. An empty feature matches all features;
// limit <= 0 means no limit.
func (s *DraftStore) List(ctx context.Context, feature string, limit int) ([]Draft, error) {
	if s.db == nil {
		return nil, ErrClosed
	}
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, feature, input, output, created_at, accepted FROM drafts
		 WHERE (? = '' OR feature = ?)
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`, feature, feature, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list drafts: %w", err)
	}
	defer rows.Close()

	var drafts []Draft
	for rows.Next() {
		d, err := scanDraft(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to read draft: %w", err)
		}
		drafts = append(drafts, d)
	}
	return drafts, rows.Err()
}

// MarkAccepted records that the user used the draft.
func (s *DraftStore) MarkAccepted(ctx context.Context, id string) error {
	if s.db == nil {
		return ErrClosed
	}
	res, err := s.db.ExecContext(ctx, "UPDATE drafts SET accepted = 1 WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to update draft: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

// Prune keeps the newest keep drafts and deletes the rest. It returns the
// number of drafts removed.
func (s *DraftStore) Prune(ctx context.Context, keep int) (int, error) {
	if s.db == nil {
		return 0, ErrClosed
	}
	if keep < 0 {
		keep = 0
	}
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM drafts WHERE id NOT IN (
		   SELECT id FROM drafts ORDER BY created_at DESC, rowid DESC LIMIT ?
		 )`, keep)
	if err != nil {
		return 0, fmt.Errorf("failed to prune drafts: %w", err)
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

// Count returns the number of stored drafts.
func (s *DraftStore) Count(ctx context.Context) (int, error) {
	if s.db == nil {
		return 0, ErrClosed
	}
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM drafts").Scan(&n)
	return n, err
}

// Close closes the database. Further calls return ErrClosed.
func (s *DraftStore) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDraft(sc scanner) (Draft, error) {
	var d Draft
	var created int64
	var accepted int
	if err := sc.Scan(&d.ID, &d.Feature, &d.Input, &d.Output, &created, &accepted); err != nil {
		return Draft{}, err
	}
	d.CreatedAt = time.Unix(0, created).UTC()
	d.Accepted = accepted != 0
	return d, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
