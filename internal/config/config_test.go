package config_test

import (
	"testing"
	"time"

	"github.com/jrsteele09/go-auth-policy/internal/config"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	t.Setenv("ENV", "")
	t.Setenv("AUTH_TOKEN_SECRET", "")

	c, err := config.New()
	require.NoError(t, err)
	require.Equal(t, "DEV", c.GetEnv())
	require.True(t, c.IsDev())
	require.Empty(t, c.GetSiteURL())
	require.NotEmpty(t, c.GetTokenSecret())
	require.Equal(t, time.Hour, c.GetAuthTokenTTL())
	require.Equal(t, 720*time.Hour, c.GetRefreshTokenTTL())
	require.Equal(t, 5*time.Minute, c.GetOAuthStateTTL())
}

func TestNew_Production(t *testing.T) {
	t.Run("requires token secret", func(t *testing.T) {
		t.Setenv("ENV", "prod")
		t.Setenv("AUTH_TOKEN_SECRET", "")

		_, err := config.New()
		require.Error(t, err)
		require.Contains(t, err.Error(), "AUTH_TOKEN_SECRET")
	})

	t.Run("reads site and secret", func(t *testing.T) {
		t.Setenv("ENV", "prod")
		t.Setenv("AUTH_TOKEN_SECRET", "s3cret")
		t.Setenv("SITE_URL", " https://example.com ")

		c, err := config.New()
		require.NoError(t, err)
		require.False(t, c.IsDev())
		require.Equal(t, "PROD", c.GetEnv())
		require.Equal(t, "https://example.com", c.GetSiteURL())
		require.Equal(t, "s3cret", c.GetTokenSecret())
	})
}

func TestNew_RejectsSubSecondTTL(t *testing.T) {
	t.Setenv("ENV", "DEV")
	t.Setenv("OAUTH_STATE_TTL", "10ms")

	_, err := config.New()
	require.Error(t, err)
	require.Contains(t, err.Error(), "oauth state")
}
