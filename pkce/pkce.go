// Package pkce derives Proof Key for Code Exchange values (RFC 7636).
package pkce

import (
	"crypto/sha256"
	"encoding/base64"

	"golang.org/x/oauth2"
)

// Method is the only challenge method we issue.
const Method = "S256"

// Challenge derives the code challenge as base64url-no-pad(sha256(verifier)).
func Challenge(verifier string) string {
	hash := sha256.Sum256([]byte(verifier))
	return base64.RawURLEncoding.EncodeToString(hash[:])
}

// NewVerifier returns a fresh high-entropy verifier.
func NewVerifier() string {
	return oauth2.GenerateVerifier()
}

// AuthCodeOptions returns the authorization request parameters carrying the
// challenge for verifier. The verifier itself never leaves the server.
func AuthCodeOptions(verifier string) []oauth2.AuthCodeOption {
	return []oauth2.AuthCodeOption{
		oauth2.SetAuthURLParam("code_challenge", Challenge(verifier)),
		oauth2.SetAuthURLParam("code_challenge_method", Method),
	}
}
