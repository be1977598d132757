package users

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	autherrors "github.com/jrsteele09/go-auth-policy/internal/errors"
	"github.com/rs/zerolog/log"
)

const (
	byEmailQuery = `SELECT ` + userColumns + ` FROM _user WHERE email = ?1`
	byIDQuery    = `SELECT ` + userColumns + ` FROM _user WHERE id = ?1`
	existsQuery  = `SELECT EXISTS(SELECT 1 FROM _user WHERE email = ?1)`
	adminQuery   = `SELECT admin FROM _user WHERE id = ?1`
)

// lookupFailed is the detail shared by every failed lookup.
const lookupFailed = "user lookup failed"

// ByEmail fetches the user with the given email.
func ByEmail(ctx context.Context, db Querier, email string) (*User, error) {
	u, err := fetch(ctx, db, byEmailQuery, email)
	if err != nil {
		log.Debug().Err(err).Msg("User lookup by email failed")
		return nil, autherrors.Unauthorized(lookupFailed)
	}
	return u, nil
}

// ByID fetches the user with the given id.
func ByID(ctx context.Context, db Querier, id uuid.UUID) (*User, error) {
	u, err := fetch(ctx, db, byIDQuery, id[:])
	if err != nil {
		log.Debug().Err(err).Str("user_id", id.String()).Msg("User lookup by id failed")
		return nil, autherrors.Unauthorized(lookupFailed)
	}
	return u, nil
}

// Exists reports whether a user with the given email is stored.
func Exists(ctx context.Context, db Querier, email string) (bool, error) {
	var exists bool
	if err := db.QueryRowContext(ctx, existsQuery, email).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// IsAdmin reports whether user has the admin flag set. It fails closed: any
// error, including an unknown user, yields false.
func IsAdmin(ctx context.Context, db Querier, user *User) bool {
	if user == nil {
		return false
	}
	admin, err := adminFlag(ctx, db, user.ID)
	if err != nil {
		log.Debug().Err(err).Str("user_id", user.ID.String()).Msg("Admin check failed")
		return false
	}
	return admin
}

// adminFlag reads the stored admin flag, reporting lookup and decode failures
// as errors rather than as false.
func adminFlag(ctx context.Context, db Querier, id uuid.UUID) (bool, error) {
	var raw any
	if err := db.QueryRowContext(ctx, adminQuery, id[:]).Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, ErrNotFound
		}
		return false, err
	}
	return decodeBool("admin", raw)
}

// fetch runs a single row user query, separating not found, decode and
// storage failures.
func fetch(ctx context.Context, db Querier, query string, arg any) (*User, error) {
	u, err := scanUser(db.QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return u, err
}
