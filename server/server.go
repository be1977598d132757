// Package server wires the auth policy layer into net/http: authentication
// and admin middleware, logout, and the cookie side of an OAuth login.
//
// It never decides how an error becomes a status code; the embedding service
// passes an ErrorWriter for that.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/jrsteele09/go-auth-policy/internal/config"
	"github.com/jrsteele09/go-auth-policy/redirect"
	"github.com/jrsteele09/go-auth-policy/token"
)

// ErrorWriter renders err for the client.
type ErrorWriter func(w http.ResponseWriter, r *http.Request, err error)

// DB is the connection the handlers issue their queries on.
type DB interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Server struct {
	dev        bool
	db         DB
	tokens     *token.Manager
	redirects  *redirect.Validator
	refreshTTL time.Duration
	writeError ErrorWriter
}

func New(cfg config.Config, db DB, tokens *token.Manager, writeError ErrorWriter) (*Server, error) {
	if db == nil {
		return nil, fmt.Errorf("[Server New] db is required")
	}
	if tokens == nil {
		return nil, fmt.Errorf("[Server New] token manager is required")
	}
	if writeError == nil {
		return nil, fmt.Errorf("[Server New] error writer is required")
	}
	return &Server{
		dev:        cfg.IsDev(),
		db:         db,
		tokens:     tokens,
		redirects:  redirect.NewValidator(cfg.IsDev(), cfg.GetSiteURL()),
		refreshTTL: cfg.GetRefreshTokenTTL(),
		writeError: writeError,
	}, nil
}
