package config

import "time"

type TokenConfig interface {
	GetAuthTokenTTL() time.Duration
	GetRefreshTokenTTL() time.Duration
	GetOAuthStateTTL() time.Duration
}

type Tokens struct {
	AuthTokenTTL    time.Duration `env:"AUTH_TOKEN_TTL" envDefault:"1h"`
	RefreshTokenTTL time.Duration `env:"REFRESH_TOKEN_TTL" envDefault:"720h"`
	OAuthStateTTL   time.Duration `env:"OAUTH_STATE_TTL" envDefault:"5m"`
}

var _ TokenConfig = Tokens{}

func (t Tokens) GetAuthTokenTTL() time.Duration {
	return t.AuthTokenTTL
}

func (t Tokens) GetRefreshTokenTTL() time.Duration {
	return t.RefreshTokenTTL
}

// GetOAuthStateTTL bounds how long an OAuth round trip through the provider may take.
func (t Tokens) GetOAuthStateTTL() time.Duration {
	return t.OAuthStateTTL
}
