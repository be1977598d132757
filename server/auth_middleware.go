package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/jrsteele09/go-auth-policy/cookies"
	autherrors "github.com/jrsteele09/go-auth-policy/internal/errors"
	"github.com/jrsteele09/go-auth-policy/users"
)

type contextKey string

const contextKeyUser contextKey = "user"

// WithUser returns a copy of ctx carrying the authenticated user.
func WithUser(ctx context.Context, user *users.User) context.Context {
	return context.WithValue(ctx, contextKeyUser, user)
}

// UserFromContext returns the user stored by RequireUser, or nil.
func UserFromContext(ctx context.Context) *users.User {
	user, _ := ctx.Value(contextKeyUser).(*users.User)
	return user
}

// RequireUser authenticates the request from a Bearer auth token or the auth
// token cookie and stores the user in the request context.
func (s *Server) RequireUser(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := s.authenticate(r)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		next(w, r.WithContext(WithUser(r.Context(), user)))
	}
}

// RequireAdmin is RequireUser plus a fresh admin check against storage.
// Any failure of that check denies access.
func (s *Server) RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return s.RequireUser(func(w http.ResponseWriter, r *http.Request) {
		if !users.IsAdmin(r.Context(), s.db, UserFromContext(r.Context())) {
			s.writeError(w, r, autherrors.Unauthorized("admin required"))
			return
		}
		next(w, r)
	})
}

func (s *Server) authenticate(r *http.Request) (*users.User, error) {
	raw, err := authToken(r)
	if err != nil {
		return nil, err
	}
	claims, err := s.tokens.ParseAuthToken(raw)
	if err != nil {
		return nil, err
	}
	id, err := claims.UserID()
	if err != nil {
		return nil, autherrors.Unauthorized("invalid auth token subject")
	}
	return users.ByID(r.Context(), s.db, id)
}

// authToken prefers the Authorization header and falls back to the cookie.
func authToken(r *http.Request) (string, error) {
	if header := r.Header.Get("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
			return "", autherrors.Unauthorized("invalid authorization header")
		}
		return strings.TrimSpace(parts[1]), nil
	}

	jar, err := cookies.FromRequest(r)
	if err != nil {
		return "", err
	}
	c := jar.Get(cookies.AuthTokenName)
	if c == nil || c.Value == "" {
		return "", autherrors.Unauthorized("missing auth token")
	}
	return c.Value, nil
}
