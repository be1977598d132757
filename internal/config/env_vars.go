package config

import "strings"

const devEnv = "DEV"

type EnvVars struct {
	AppName  string `env:"APP_NAME" envDefault:"Go Auth Policy"`
	Env      string `env:"ENV" envDefault:"DEV"`
	SiteURL  string `env:"SITE_URL"`
	DBPath   string `env:"DB_PATH" envDefault:"./data/main.db"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

var _ EnvConfig = EnvVars{}

func (e EnvVars) GetAppName() string {
	return e.AppName
}

func (e EnvVars) GetEnv() string {
	if e.Env == "" {
		return devEnv
	}
	return strings.ToUpper(e.Env)
}

// IsDev relaxes cookie security and allows localhost redirects.
func (e EnvVars) IsDev() bool {
	return e.GetEnv() == devEnv
}

// GetSiteURL returns the public site, e.g. "https://example.com". Empty means unset.
func (e EnvVars) GetSiteURL() string {
	return strings.TrimSpace(e.SiteURL)
}

func (e EnvVars) GetDBPath() string {
	return e.DBPath
}

func (e EnvVars) GetLogLevel() string {
	return e.LogLevel
}
