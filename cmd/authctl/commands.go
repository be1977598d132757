package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	autherrors "github.com/jrsteele09/go-auth-policy/internal/errors"
	"github.com/jrsteele09/go-auth-policy/pkce"
	"github.com/jrsteele09/go-auth-policy/sessions"
	"github.com/jrsteele09/go-auth-policy/users"
)

var errUsage = errors.New("usage")

type command struct {
	help string
	pure bool
	run  func(ctx context.Context, db *sql.DB, arg string, out io.Writer) error
}

var commandOrder = []string{"revoke-user", "revoke-token", "is-admin", "user-exists", "challenge"}

var commands = map[string]command{
	"revoke-user": {
		help: "delete every session of the user <uuid>",
		run: func(ctx context.Context, db *sql.DB, arg string, out io.Writer) error {
			id, err := uuid.Parse(arg)
			if err != nil {
				return autherrors.Wrapf(err, "invalid user id %q", arg)
			}
			n, err := sessions.DeleteAllForUser(ctx, db, id)
			if err != nil {
				return autherrors.Wrapf(err, "revoke sessions")
			}
			_, err = fmt.Fprintf(out, "deleted %d session(s)\n", n)
			return err
		},
	},
	"revoke-token": {
		help: "delete the session keyed by refresh <token>",
		run: func(ctx context.Context, db *sql.DB, arg string, out io.Writer) error {
			n, err := sessions.Delete(ctx, db, arg)
			if err != nil {
				return autherrors.Wrapf(err, "revoke session")
			}
			_, err = fmt.Fprintf(out, "deleted %d session(s)\n", n)
			return err
		},
	},
	"is-admin": {
		help: "print whether the user <uuid> is an admin",
		run: func(ctx context.Context, db *sql.DB, arg string, out io.Writer) error {
			id, err := uuid.Parse(arg)
			if err != nil {
				return autherrors.Wrapf(err, "invalid user id %q", arg)
			}
			_, err = fmt.Fprintln(out, users.IsAdmin(ctx, db, &users.User{ID: id}))
			return err
		},
	},
	"user-exists": {
		help: "print whether a user with <email> exists",
		run: func(ctx context.Context, db *sql.DB, arg string, out io.Writer) error {
			exists, err := users.Exists(ctx, db, arg)
			if err != nil {
				return autherrors.Wrapf(err, "lookup user")
			}
			_, err = fmt.Fprintln(out, exists)
			return err
		},
	},
	"challenge": {
		help: "print the S256 PKCE challenge of <verifier>",
		pure: true,
		run: func(_ context.Context, _ *sql.DB, arg string, out io.Writer) error {
			_, err := fmt.Fprintln(out, pkce.Challenge(arg))
			return err
		},
	},
}
