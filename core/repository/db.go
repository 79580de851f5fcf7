package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a referenced entity does not exist.
var ErrNotFound = errors.New("not found")

// DB wraps the record store connection
type DB struct {
	*sql.DB
}

// NewDB opens the local record store. Use ":memory:" for an ephemeral
// store in tests.
func NewDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open record store: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		_ = db.Close()
		return nil, err
	}
	// The store is accessed from concurrent handler goroutines; a single
	// connection serializes writers without busy errors.
	db.SetMaxOpenConns(1)
	return &DB{DB: db}, nil
}

// migration is one additive schema step. Steps are applied in version
// order and recorded in schema_migrations, so Migrate is idempotent.
type migration struct {
	version int
	stmts   string
}

var migrations = []migration{
	{
		version: 1,
		stmts: `
CREATE TABLE jobs (
	id     TEXT PRIMARY KEY,
	title  TEXT NOT NULL,
	slug   TEXT NOT NULL,
	status TEXT NOT NULL,
	tags   TEXT NOT NULL DEFAULT '[]',
	ord    INTEGER NOT NULL
);
CREATE INDEX idx_jobs_ord ON jobs(ord);

CREATE TABLE candidates (
	id     TEXT PRIMARY KEY,
	name   TEXT NOT NULL,
	email  TEXT NOT NULL,
	job_id TEXT NOT NULL,
	stage  TEXT NOT NULL
);
CREATE INDEX idx_candidates_stage ON candidates(stage);

CREATE TABLE assessments (
	job_id    TEXT PRIMARY KEY,
	questions TEXT NOT NULL DEFAULT '[]'
);

CREATE TABLE users (
	email         TEXT PRIMARY KEY,
	password_hash TEXT NOT NULL
);
`,
	},
	{
		version: 2,
		stmts: `
CREATE TABLE candidate_events (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	candidate_id TEXT NOT NULL,
	from_stage   TEXT,
	to_stage     TEXT NOT NULL,
	note         TEXT NOT NULL DEFAULT '',
	created_at   TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX idx_candidate_events_candidate ON candidate_events(candidate_id, created_at);
`,
	},
}

// Migrate brings the store schema forward to the current version.
func (db *DB) Migrate(ctx context.Context) error {
	if _, err := db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS schema_migrations (
	version    INTEGER PRIMARY KEY,
	applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);`); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	var current int
	if err := db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&current); err != nil {
		return err
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}
		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		committed := false
		defer func() {
			if !committed {
				_ = tx.Rollback()
			}
		}()
		if _, err := tx.ExecContext(ctx, m.stmts); err != nil {
			return fmt.Errorf("migration %d: %w", m.version, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO schema_migrations (version) VALUES (?)`, m.version); err != nil {
			return fmt.Errorf("migration %d: %w", m.version, err)
		}
		if err := tx.Commit(); err != nil {
			return err
		}
		committed = true
		log.Printf("[store] applied migration %d", m.version)
	}
	return nil
}
