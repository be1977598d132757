// Package sqlitedb opens the sqlite database used by the operator CLI and the
// tests. The embedding service owns its own schema and connections; this
// package only mirrors the tables the policy layer reads and deletes from.
package sqlitedb

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

const driverName = "sqlite"

// Table names shared with the query layer.
const (
	UserTable    = "_user"
	SessionTable = "_session"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS _user (
		id            BLOB PRIMARY KEY NOT NULL CHECK(length(id) = 16),
		email         TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL DEFAULT '',
		verified      INTEGER NOT NULL DEFAULT 0,
		admin         INTEGER NOT NULL DEFAULT 0,
		created       INTEGER NOT NULL DEFAULT (unixepoch()),
		updated       INTEGER NOT NULL DEFAULT (unixepoch())
	) STRICT`,
	`CREATE TABLE IF NOT EXISTS _session (
		id            INTEGER PRIMARY KEY,
		user          BLOB NOT NULL REFERENCES _user(id) ON DELETE CASCADE,
		refresh_token TEXT NOT NULL UNIQUE,
		created       INTEGER NOT NULL DEFAULT (unixepoch()),
		updated       INTEGER NOT NULL DEFAULT (unixepoch())
	) STRICT`,
	`CREATE INDEX IF NOT EXISTS _session__user_index ON _session (user)`,
}

// Open opens (creating if needed) the database at path and applies the schema.
// Use ":memory:" for a private in-memory database.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("[sqlitedb Open] path is required")
	}

	dsn := path
	if path == ":memory:" {
		dsn = "file::memory:"
	} else if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("[sqlitedb Open] create data folder: %w", err)
	}

	db, err := sql.Open(driverName, dsn+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("[sqlitedb Open] open sqlite: %w", err)
	}
	if path == ":memory:" {
		// Every pooled connection to :memory: would get its own empty database.
		db.SetMaxOpenConns(1)
	}

	if err := Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// Migrate creates the user and session tables if they do not exist.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("[sqlitedb Migrate] migrate step: %w", err)
		}
	}
	return nil
}
