package config

const tokenSecretEnvVar = "AUTH_TOKEN_SECRET"

// devTokenSecret is only used when ENV=DEV and no secret is configured.
const devTokenSecret = "dev-only-insecure-token-secret"

type SecurityConfig interface {
	GetTokenSecret() string
}

type Security struct {
	TokenSecret string `env:"AUTH_TOKEN_SECRET"`
}

var _ SecurityConfig = Security{}

func (s Security) GetTokenSecret() string {
	return s.TokenSecret
}

// GetTokenSecret falls back to a fixed secret in DEV so local runs work without setup.
func (c mainConfig) GetTokenSecret() string {
	if c.Security.TokenSecret == "" && c.IsDev() {
		return devTokenSecret
	}
	return c.Security.TokenSecret
}
