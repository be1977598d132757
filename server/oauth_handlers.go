package server

import (
	"crypto/subtle"
	"net/http"

	"github.com/jrsteele09/go-auth-policy/cookies"
	autherrors "github.com/jrsteele09/go-auth-policy/internal/errors"
	"github.com/jrsteele09/go-auth-policy/pkce"
	"github.com/jrsteele09/go-auth-policy/token"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

const csrfLength = 32

// OAuthLoginHandler starts an authorization code flow with PKCE.
//
// The csrf value, PKCE verifier and validated redirect are signed into the
// oauth state cookie; the provider only receives the csrf value as state and
// the S256 challenge. The cookie is SameSite=Lax because the provider's
// redirect back to us is a cross-site navigation.
func (s *Server) OAuthLoginHandler(providers map[string]*oauth2.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		provider, ok := providers[r.PathValue("provider")]
		if !ok {
			s.writeError(w, r, autherrors.BadRequest("unknown provider"))
			return
		}
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

		csrf, err := token.RandomString(csrfLength)
		if err != nil {
			log.Err(err).Msg("OAuthLogin: Failed to generate csrf token")
			s.writeError(w, r, autherrors.Internal("random source"))
			return
		}
		verifier := pkce.NewVerifier()

		redirectTo := ""
		if target != nil {
			redirectTo = *target
		}
		state, err := s.tokens.MintOAuthState(csrf, verifier, redirectTo)
		if err != nil {
			log.Err(err).Msg("OAuthLogin: Failed to mint state")
			s.writeError(w, r, autherrors.Internal("token error"))
			return
		}

		jar.Add(cookies.BuildExplicit(cookies.OAuthStateName, state, s.tokens.StateTTL(), !s.dev, false))
		http.Redirect(w, r, provider.AuthCodeURL(csrf, pkce.AuthCodeOptions(verifier)...), http.StatusSeeOther)
	}
}

// OAuthCallbackState recovers the state stored by OAuthLoginHandler on the
// provider callback and removes the cookie so it cannot be replayed. The
// caller exchanges the code using the returned PKCE verifier.
func (s *Server) OAuthCallbackState(r *http.Request) (*token.OAuthState, error) {
	jar, err := cookies.FromRequest(r)
	if err != nil {
		return nil, err
	}
	c := jar.Get(cookies.OAuthStateName)
	if c == nil || c.Value == "" {
		return nil, autherrors.BadRequest("missing oauth state")
	}
	cookies.Remove(jar, cookies.OAuthStateName)

	q := r.URL.Query()
	if providerErr := q.Get("error"); providerErr != "" {
		return nil, autherrors.BadRequest("provider error: " + providerErr)
	}

	state, err := s.tokens.ParseOAuthState(c.Value)
	if err != nil {
		return nil, err
	}
	if subtle.ConstantTimeCompare([]byte(q.Get("state")), []byte(state.CSRF)) != 1 {
		return nil, autherrors.BadRequest("oauth state mismatch")
	}
	if q.Get("code") == "" {
		return nil, autherrors.BadRequest("missing authorization code")
	}
	return state, nil
}
