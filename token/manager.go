// Package token mints and parses the signed tokens stored in auth cookies.
package token

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jrsteele09/go-auth-policy/internal/config"
	autherrors "github.com/jrsteele09/go-auth-policy/internal/errors"
	"github.com/jrsteele09/go-auth-policy/users"
)

// Config is the subset of the service configuration the Manager needs.
type Config interface {
	config.SecurityConfig
	config.TokenConfig
}

type Manager struct {
	signer   Signer
	authTTL  time.Duration
	stateTTL time.Duration
	nowFunc  func() time.Time
}

type ManagerOption func(*Manager)

// WithNowFunc overrides the clock, for tests.
func WithNowFunc(now func() time.Time) ManagerOption {
	return func(m *Manager) {
		m.nowFunc = now
	}
}

// WithSigner replaces the HMAC signer derived from the configured secret.
func WithSigner(signer Signer) ManagerOption {
	return func(m *Manager) {
		m.signer = signer
	}
}

// New creates a Manager signing with the configured token secret.
func New(cfg Config, options ...ManagerOption) (*Manager, error) {
	m := &Manager{
		authTTL:  cfg.GetAuthTokenTTL(),
		stateTTL: cfg.GetOAuthStateTTL(),
		nowFunc:  time.Now,
	}
	for _, opt := range options {
		opt(m)
	}
	if m.signer == nil {
		signer, err := NewHMACSigner(cfg.GetTokenSecret())
		if err != nil {
			return nil, fmt.Errorf("[token New] %w", err)
		}
		m.signer = signer
	}
	return m, nil
}

// AuthTTL is the lifetime of auth tokens and of the cookie carrying them.
func (m *Manager) AuthTTL() time.Duration {
	return m.authTTL
}

// StateTTL is the lifetime of OAuth state tokens and of the cookie carrying them.
func (m *Manager) StateTTL() time.Duration {
	return m.stateTTL
}

// MintAuthToken signs an auth token for user.
func (m *Manager) MintAuthToken(user *users.User) (string, error) {
	now := m.nowFunc()
	claims := &AuthClaims{
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.authTTL)),
			ID:        uuid.NewString(),
		},
	}
	return m.signer.Sign(claims)
}

// ParseAuthToken verifies raw and returns its claims. Every failure is an
// unauthorized error.
func (m *Manager) ParseAuthToken(raw string) (*AuthClaims, error) {
	claims := &AuthClaims{}
	if err := m.parse(raw, claims); err != nil {
		return nil, autherrors.Unauthorized("invalid auth token: " + err.Error())
	}
	if _, err := claims.UserID(); err != nil {
		return nil, autherrors.Unauthorized("invalid auth token subject")
	}
	return claims, nil
}

// MintOAuthState signs the state kept across a provider round trip.
func (m *Manager) MintOAuthState(csrf, pkceVerifier, redirectTo string) (string, error) {
	now := m.nowFunc()
	claims := &OAuthState{
		CSRF:         csrf,
		PKCEVerifier: pkceVerifier,
		RedirectTo:   redirectTo,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.stateTTL)),
		},
	}
	return m.signer.Sign(claims)
}

// ParseOAuthState verifies raw and returns the state. Failures are bad requests.
func (m *Manager) ParseOAuthState(raw string) (*OAuthState, error) {
	state := &OAuthState{}
	if err := m.parse(raw, state); err != nil {
		return nil, autherrors.BadRequest("invalid oauth state")
	}
	if state.CSRF == "" || state.PKCEVerifier == "" {
		return nil, autherrors.BadRequest("incomplete oauth state")
	}
	return state, nil
}

func (m *Manager) parse(raw string, claims jwt.Claims) error {
	_, err := jwt.ParseWithClaims(raw, claims, m.signer.GetVerificationKey,
		jwt.WithValidMethods([]string{m.signer.GetSigningMethod().Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.nowFunc),
	)
	return err
}

// RandomString returns n random bytes encoded as base64url.
func RandomString(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
