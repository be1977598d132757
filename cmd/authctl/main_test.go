package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jrsteele09/go-auth-policy/internal/sqlitedb"
	"github.com/stretchr/testify/require"
)

func setupDB(t *testing.T) (string, uuid.UUID) {
	t.Helper()
	t.Setenv("ENV", "DEV")
	t.Setenv("LOG_LEVEL", "disabled")

	path := filepath.Join(t.TempDir(), "main.db")
	db, err := sqlitedb.Open(context.Background(), path)
	require.NoError(t, err)
	defer db.Close()

	id := uuid.New()
	_, err = db.Exec(`INSERT INTO _user (id, email, admin) VALUES (?1, ?2, 1)`, id[:], "admin@example.com")
	require.NoError(t, err)
	for _, tok := range []string{"r-1", "r-2"} {
		_, err = db.Exec(`INSERT INTO _session (user, refresh_token) VALUES (?1, ?2)`, id[:], tok)
		require.NoError(t, err)
	}
	return path, id
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := run(context.Background(), append([]string{"-q"}, args...), &out)
	return strings.TrimSpace(out.String()), err
}

func TestRun(t *testing.T) {
	path, id := setupDB(t)

	t.Run("challenge", func(t *testing.T) {
		out, err := runCLI(t, "challenge", "dBjftJeZ4CVP-mB92K27uhbUJU1p1r_wW1gFWFOEjXk")
		require.NoError(t, err)
		require.Equal(t, "E9Melhoa2OwvFrEMTJguCHaoeK1t8URWbuGJSstw-cM", out)
	})

	t.Run("is-admin", func(t *testing.T) {
		out, err := runCLI(t, "-db", path, "is-admin", id.String())
		require.NoError(t, err)
		require.Equal(t, "true", out)

		out, err = runCLI(t, "-db", path, "is-admin", uuid.NewString())
		require.NoError(t, err)
		require.Equal(t, "false", out)
	})

	t.Run("user-exists", func(t *testing.T) {
		out, err := runCLI(t, "-db", path, "user-exists", "admin@example.com")
		require.NoError(t, err)
		require.Equal(t, "true", out)
	})

	t.Run("revoke-token", func(t *testing.T) {
		out, err := runCLI(t, "-db", path, "revoke-token", "r-1")
		require.NoError(t, err)
		require.Equal(t, "deleted 1 session(s)", out)

		out, err = runCLI(t, "-db", path, "revoke-token", "unknown")
		require.NoError(t, err)
		require.Equal(t, "deleted 0 session(s)", out)
	})

	t.Run("revoke-user", func(t *testing.T) {
		out, err := runCLI(t, "-db", path, "revoke-user", id.String())
		require.NoError(t, err)
		require.Equal(t, "deleted 1 session(s)", out)
	})

	t.Run("invalid uuid", func(t *testing.T) {
		_, err := runCLI(t, "-db", path, "revoke-user", "nope")
		require.ErrorContains(t, err, `invalid user id "nope"`)
	})

	t.Run("unknown command", func(t *testing.T) {
		out, err := runCLI(t, "frobnicate", "x")
		require.ErrorIs(t, err, errUsage)
		require.Contains(t, out, "usage: authctl")
	})
}

func TestRun_Banner(t *testing.T) {
	t.Setenv("ENV", "DEV")
	t.Setenv("LOG_LEVEL", "disabled")
	t.Setenv("APP_NAME", "authctl")

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), []string{"challenge", "v"}, &out))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Greater(t, len(lines), 1)
}
