package users_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	autherrors "github.com/jrsteele09/go-auth-policy/internal/errors"
	"github.com/jrsteele09/go-auth-policy/internal/sqlitedb/sqlitedbtest"
	"github.com/jrsteele09/go-auth-policy/users"
	"github.com/stretchr/testify/require"
)

const testUserEmail = "john.doe@example.com"

func TestByEmail(t *testing.T) {
	ctx := context.Background()
	db := sqlitedbtest.NewDB(t)
	id := sqlitedbtest.InsertUser(t, db, testUserEmail, true)

	t.Run("found", func(t *testing.T) {
		u, err := users.ByEmail(ctx, db, testUserEmail)
		require.NoError(t, err)
		require.Equal(t, id, u.ID)
		require.Equal(t, testUserEmail, u.Email)
		require.True(t, u.Admin)
		require.True(t, u.Verified)
		require.EqualValues(t, 1_700_000_000, u.Created.Unix())
	})

	t.Run("not found is unauthorized", func(t *testing.T) {
		u, err := users.ByEmail(ctx, db, "nobody@example.com")
		require.Nil(t, u)
		require.ErrorIs(t, err, autherrors.ErrUnauthorized)
		require.Equal(t, "unauthorized", err.Error())
	})
}

func TestByID(t *testing.T) {
	ctx := context.Background()
	db := sqlitedbtest.NewDB(t)
	id := sqlitedbtest.InsertUser(t, db, testUserEmail, false)

	t.Run("found", func(t *testing.T) {
		u, err := users.ByID(ctx, db, id)
		require.NoError(t, err)
		require.Equal(t, testUserEmail, u.Email)
		require.False(t, u.Admin)
	})

	t.Run("not found is unauthorized", func(t *testing.T) {
		_, err := users.ByID(ctx, db, uuid.New())
		require.ErrorIs(t, err, autherrors.ErrUnauthorized)
	})
}

func TestLookupFailuresAreIndistinguishable(t *testing.T) {
	ctx := context.Background()
	db := sqlitedbtest.NewDB(t)

	// admin = 2 is storable but does not decode into a bool.
	broken := uuid.New()
	_, err := db.ExecContext(ctx, `INSERT INTO _user (id, email, admin) VALUES (?1, ?2, 2)`, broken[:], "broken@example.com")
	require.NoError(t, err)

	_, notFound := users.ByEmail(ctx, db, "missing@example.com")
	_, undecodable := users.ByEmail(ctx, db, "broken@example.com")
	_, storage := users.ByEmail(ctx, sqlitedbtest.ClosedDB(t), testUserEmail)

	for _, err := range []error{notFound, undecodable, storage} {
		require.ErrorIs(t, err, autherrors.ErrUnauthorized)
	}
	require.Equal(t, notFound, undecodable)
	require.Equal(t, notFound, storage)

	_, byID := users.ByID(ctx, db, broken)
	require.Equal(t, notFound, byID)
}

func TestExists(t *testing.T) {
	ctx := context.Background()
	db := sqlitedbtest.NewDB(t)
	sqlitedbtest.InsertUser(t, db, testUserEmail, false)

	exists, err := users.Exists(ctx, db, testUserEmail)
	require.NoError(t, err)
	require.True(t, exists)

	exists, err = users.Exists(ctx, db, "nobody@example.com")
	require.NoError(t, err)
	require.False(t, exists)

	_, err = users.Exists(ctx, sqlitedbtest.ClosedDB(t), testUserEmail)
	require.Error(t, err)
}

func TestIsAdmin(t *testing.T) {
	ctx := context.Background()
	db := sqlitedbtest.NewDB(t)
	adminID := sqlitedbtest.InsertUser(t, db, "admin@example.com", true)
	userID := sqlitedbtest.InsertUser(t, db, "user@example.com", false)

	t.Run("admin", func(t *testing.T) {
		require.True(t, users.IsAdmin(ctx, db, &users.User{ID: adminID}))
	})

	t.Run("not admin", func(t *testing.T) {
		require.False(t, users.IsAdmin(ctx, db, &users.User{ID: userID}))
	})

	t.Run("stale struct does not grant admin", func(t *testing.T) {
		require.False(t, users.IsAdmin(ctx, db, &users.User{ID: userID, Admin: true}))
	})

	t.Run("unknown user", func(t *testing.T) {
		require.False(t, users.IsAdmin(ctx, db, &users.User{ID: uuid.New()}))
	})

	t.Run("nil user", func(t *testing.T) {
		require.False(t, users.IsAdmin(ctx, db, nil))
	})

	t.Run("storage failure", func(t *testing.T) {
		require.False(t, users.IsAdmin(ctx, sqlitedbtest.ClosedDB(t), &users.User{ID: adminID}))
	})
}
