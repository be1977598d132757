package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/jrsteele09/go-auth-policy/cookies"
	autherrors "github.com/jrsteele09/go-auth-policy/internal/errors"
	"github.com/jrsteele09/go-auth-policy/sessions"
	"github.com/jrsteele09/go-auth-policy/users"
	"github.com/rs/zerolog/log"
)

// CompleteLogin attaches the auth and refresh cookies for user and redirects
// to the validated redirect_to / next target, or "/". The refresh token must
// already be persisted by the caller.
//
// The redirect is validated before any cookie is minted so a rejected target
// leaves the response untouched.
func (s *Server) CompleteLogin(w http.ResponseWriter, r *http.Request, user *users.User, refreshToken string) {
	jar, err := cookies.FromRequest(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	target, err := s.redirects.ValidateQuery(r.URL.Query(), paramRedirectTo, paramNext)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	authToken, err := s.tokens.MintAuthToken(user)
	if err != nil {
		log.Err(err).Msg("CompleteLogin: Failed to mint auth token")
		s.writeError(w, r, autherrors.Internal("token error"))
		return
	}
	jar.Add(cookies.Build(cookies.AuthTokenName, authToken, s.tokens.AuthTTL(), s.dev))
	jar.Add(cookies.Build(cookies.RefreshTokenName, refreshToken, s.refreshTTL, s.dev))

	http.Redirect(w, r, destination(target), http.StatusSeeOther)
}

// LogoutHandler revokes the current session and clears every auth cookie.
//
// The session keyed by the refresh token cookie is deleted; without one, all
// sessions of the user named by the auth token are. Revocation failures are
// logged and the cookies are cleared regardless.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		jar, err := cookies.FromRequest(r)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		target, err := s.redirects.ValidateQuery(r.URL.Query(), paramRedirectTo)
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		ctx := r.Context()
		if c := jar.Get(cookies.RefreshTokenName); c != nil && c.Value != "" {
			if _, err := sessions.Delete(ctx, s.db, c.Value); err != nil {
				log.Err(err).Msg("Logout: Failed to delete session")
			}
		} else if user, err := s.authenticate(r); err == nil {
			if _, err := sessions.DeleteAllForUser(ctx, s.db, user.ID); err != nil {
				log.Err(err).Str("user_id", user.ID.String()).Msg("Logout: Failed to delete sessions")
			}
		}

		cookies.RemoveAll(jar)
		http.Redirect(w, r, destination(target), http.StatusSeeOther)
	}
}

// RevokeUserSessionsHandler deletes every session of the user in the path.
// It must sit behind RequireAdmin.
func (s *Server) RevokeUserSessionsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(r.PathValue("id"))
		if err != nil {
			s.writeError(w, r, autherrors.BadRequest("invalid user id"))
			return
		}
		deleted, err := sessions.DeleteAllForUser(r.Context(), s.db, id)
		if err != nil {
			log.Err(err).Str("user_id", id.String()).Msg("Failed to revoke sessions")
			s.writeError(w, r, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]int64{"deleted": deleted})
	}
}

func destination(target *string) string {
	if target == nil {
		return "/"
	}
	return *target
}
