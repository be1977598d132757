// Package users looks up the authenticated principal.
//
// Lookups never tell the caller why they failed: a missing row, a row that
// does not decode and a storage failure all surface as the same redacted
// unauthorized error, so the endpoints built on top cannot be used to
// enumerate which emails or ids exist.
package users

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned internally when no row matches.
	ErrNotFound = errors.New("user not found")
	// ErrDecode is returned internally when a row does not have the expected shape.
	ErrDecode = errors.New("decode user row")
)

// User is the read-only view of a user row. Only ID, Email and Admin carry
// meaning for the policy layer; the rest is passed through.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // never serialize
	Verified     bool      `json:"verified"`
	Admin        bool      `json:"admin"`
	Created      time.Time `json:"created"`
	Updated      time.Time `json:"updated"`
}

// userColumns is the column order decodeUser expects.
const userColumns = `id, email, password_hash, verified, admin, created, updated`

type rowScanner interface {
	Scan(dest ...any) error
}

// scanUser reads one row. Scanning into raw values cannot fail on shape, so a
// Scan error is always a storage error or sql.ErrNoRows.
func scanUser(row rowScanner) (*User, error) {
	var raw [7]any
	if err := row.Scan(&raw[0], &raw[1], &raw[2], &raw[3], &raw[4], &raw[5], &raw[6]); err != nil {
		return nil, err
	}
	return decodeUser(raw)
}

func decodeUser(raw [7]any) (*User, error) {
	var (
		u   User
		err error
	)
	if u.ID, err = decodeUUID("id", raw[0]); err != nil {
		return nil, err
	}
	if u.Email, err = decodeString("email", raw[1]); err != nil {
		return nil, err
	}
	if u.PasswordHash, err = decodeString("password_hash", raw[2]); err != nil {
		return nil, err
	}
	if u.Verified, err = decodeBool("verified", raw[3]); err != nil {
		return nil, err
	}
	if u.Admin, err = decodeBool("admin", raw[4]); err != nil {
		return nil, err
	}
	if u.Created, err = decodeUnix("created", raw[5]); err != nil {
		return nil, err
	}
	if u.Updated, err = decodeUnix("updated", raw[6]); err != nil {
		return nil, err
	}
	return &u, nil
}

func decodeErr(column string, v any) error {
	return fmt.Errorf("%w: column %s: unexpected value of type %T", ErrDecode, column, v)
}

func decodeUUID(column string, v any) (uuid.UUID, error) {
	b, ok := v.([]byte)
	if !ok {
		return uuid.Nil, decodeErr(column, v)
	}
	id, err := uuid.FromBytes(b)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: column %s: %v", ErrDecode, column, err)
	}
	return id, nil
}

func decodeString(column string, v any) (string, error) {
	switch s := v.(type) {
	case string:
		return s, nil
	case []byte:
		return string(s), nil
	default:
		return "", decodeErr(column, v)
	}
}

func decodeBool(column string, v any) (bool, error) {
	switch b := v.(type) {
	case bool:
		return b, nil
	case int64:
		if b == 0 || b == 1 {
			return b == 1, nil
		}
	}
	return false, decodeErr(column, v)
}

func decodeUnix(column string, v any) (time.Time, error) {
	switch ts := v.(type) {
	case int64:
		return time.Unix(ts, 0).UTC(), nil
	case time.Time:
		return ts.UTC(), nil
	default:
		return time.Time{}, decodeErr(column, v)
	}
}
