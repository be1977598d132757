package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config interface {
	EnvConfig
	SecurityConfig
	TokenConfig
}

type EnvConfig interface {
	GetAppName() string
	GetEnv() string
	IsDev() bool
	GetSiteURL() string
	GetDBPath() string
	GetLogLevel() string
}

type mainConfig struct {
	EnvVars
	Security
	Tokens
}

// New reads the configuration from the environment.
func New() (Config, error) {
	var c mainConfig
	if err := env.Parse(&c); err != nil {
		return nil, fmt.Errorf("[config New] parse environment: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c mainConfig) validate() error {
	if !c.IsDev() && c.GetTokenSecret() == "" {
		return fmt.Errorf("[config New] %s must be set outside of DEV", tokenSecretEnvVar)
	}
	for name, ttl := range map[string]time.Duration{
		"auth token":    c.GetAuthTokenTTL(),
		"refresh token": c.GetRefreshTokenTTL(),
		"oauth state":   c.GetOAuthStateTTL(),
	} {
		if ttl < time.Second {
			return fmt.Errorf("[config New] %s ttl must be at least one second", name)
		}
	}
	return nil
}
