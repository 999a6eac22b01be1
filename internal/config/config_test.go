package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "secret")

	_, err := Load()

	require.Error(t, err)
	require.Contains(t, err.Error(), "DATABASE_URL")
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/gatherly")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()

	require.Error(t, err)
	require.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/gatherly")
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := Load()

	require.NoError(t, err)
	require.Equal(t, "0.0.0.0", cfg.Server.Host)
	require.Equal(t, 8080, cfg.Server.Port)
	require.Equal(t, 10, cfg.API.PageSize)
	require.Equal(t, time.Hour, cfg.Auth.AccessExpiry)
	require.Equal(t, 24*time.Hour, cfg.Auth.RefreshExpiry)
	require.Equal(t, "development", cfg.Environment)
	require.False(t, cfg.Email.Enabled)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/gatherly")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("API_PAGE_SIZE", "25")
	t.Setenv("EMAIL_ENABLED", "true")
	t.Setenv("ENVIRONMENT", "test")
	t.Setenv("JOB_RETRY_INVITE_EMAIL", "5")
	t.Setenv("JOB_RETRY_RSVP_EMAIL", "1")

	cfg, err := Load()

	require.NoError(t, err)
	require.Equal(t, 9090, cfg.Server.Port)
	require.Equal(t, 25, cfg.API.PageSize)
	require.True(t, cfg.Email.Enabled)
	require.Equal(t, "test", cfg.Environment)
	require.Equal(t, 5, cfg.Jobs.RetryInviteEmail)
	require.Equal(t, 1, cfg.Jobs.RetryRSVPEmail)
}

func TestLoadAuthRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := LoadAuth()

	require.Error(t, err)
	require.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoadAuthDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := LoadAuth()

	require.NoError(t, err)
	require.Equal(t, time.Hour, cfg.AccessExpiry)
	require.Equal(t, "gatherly", cfg.Issuer)
}

func TestLoadRejectsBadPageSize(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/gatherly")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("API_PAGE_SIZE", "0")

	_, err := Load()

	require.Error(t, err)
	require.Contains(t, err.Error(), "API_PAGE_SIZE")
}
