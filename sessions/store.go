// Package sessions revokes persisted login sessions.
//
// A session row links a user to the refresh token handed to that user's
// browser. Rows are created elsewhere; this package only deletes them.
package sessions

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

const (
	deleteAllForUserQuery = `DELETE FROM _session WHERE user = ?1`
	deleteByTokenQuery    = `DELETE FROM _session WHERE refresh_token = ?1`
)

// Execer is satisfied by *sql.DB, *sql.Tx and *sql.Conn.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// DeleteAllForUser deletes every session of userID and returns how many were
// removed. Zero is not an error. Storage errors are returned as-is.
func DeleteAllForUser(ctx context.Context, db Execer, userID uuid.UUID) (int64, error) {
	return execCount(ctx, db, deleteAllForUserQuery, userID[:])
}

// Delete deletes the session keyed by refreshToken and returns the number of
// rows removed, 0 when the token is unknown. Storage errors are returned as-is.
func Delete(ctx context.Context, db Execer, refreshToken string) (int64, error) {
	return execCount(ctx, db, deleteByTokenQuery, refreshToken)
}

func execCount(ctx context.Context, db Execer, query string, args ...any) (int64, error) {
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
