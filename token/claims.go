package token

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AuthClaims are carried in the auth token cookie.
type AuthClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// UserID parses the subject as a user id.
func (c *AuthClaims) UserID() (uuid.UUID, error) {
	return uuid.Parse(c.Subject)
}

// OAuthState is carried in the oauth state cookie while the browser visits
// the provider. The PKCE verifier only travels in this HttpOnly cookie; the
// provider sees its challenge.
type OAuthState struct {
	CSRF         string `json:"csrf"`
	PKCEVerifier string `json:"pkce_verifier"`
	RedirectTo   string `json:"redirect_to,omitempty"`
	jwt.RegisteredClaims
}
