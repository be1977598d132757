// Package sqlitedbtest provides an in-memory database and fixtures for tests.
package sqlitedbtest

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/jrsteele09/go-auth-policy/internal/sqlitedb"
	"github.com/stretchr/testify/require"
)

// NewDB returns a migrated in-memory database closed at the end of the test.
func NewDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sqlitedb.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// ClosedDB returns a database whose every query fails.
func ClosedDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sqlitedb.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	require.NoError(t, db.Close())
	return db
}

// InsertUser stores a user row and returns its id.
func InsertUser(t *testing.T, db *sql.DB, email string, admin bool) uuid.UUID {
	t.Helper()
	id := uuid.New()
	_, err := db.ExecContext(context.Background(),
		`INSERT INTO _user (id, email, password_hash, verified, admin, created, updated) VALUES (?1, ?2, ?3, 1, ?4, ?5, ?5)`,
		id[:], email, "hash", admin, int64(1_700_000_000))
	require.NoError(t, err)
	return id
}

// InsertSession stores a session row for userID keyed by refreshToken.
func InsertSession(t *testing.T, db *sql.DB, userID uuid.UUID, refreshToken string) {
	t.Helper()
	_, err := db.ExecContext(context.Background(),
		`INSERT INTO _session (user, refresh_token) VALUES (?1, ?2)`, userID[:], refreshToken)
	require.NoError(t, err)
}

// CountSessions returns the number of sessions stored for userID.
func CountSessions(t *testing.T, db *sql.DB, userID uuid.UUID) int {
	t.Helper()
	var n int
	err := db.QueryRowContext(context.Background(),
		`SELECT COUNT(*) FROM _session WHERE user = ?1`, userID[:]).Scan(&n)
	require.NoError(t, err)
	return n
}
