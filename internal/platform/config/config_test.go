package config_test

import (
	"testing"
	"time"

	"github.com/SscSPs/dealflow/internal/platform/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("JWT_EXPIRY_DURATION", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	t.Setenv("GOOGLE_CLIENT_ID", "")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, 30*time.Minute, cfg.JWTExpiryDuration)
	assert.Equal(t, "dealflow", cfg.JWTIssuer)
	assert.False(t, cfg.GoogleOAuthEnabled())
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_EXPIRY_DURATION", "2h")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test ,")
	t.Setenv("AUTH_RATE_LIMIT", "10-S")
	t.Setenv("IS_PRODUCTION", "true")
	t.Setenv("GOOGLE_CLIENT_ID", "id")
	t.Setenv("GOOGLE_CLIENT_SECRET", "secret")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 2*time.Hour, cfg.JWTExpiryDuration)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "10-S", cfg.AuthRateLimit)
	assert.True(t, cfg.IsProduction)
	assert.True(t, cfg.GoogleOAuthEnabled())
}

func TestLoadConfig_InvalidExpiryFallsBack(t *testing.T) {
	t.Setenv("JWT_EXPIRY_DURATION", "soon")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, cfg.JWTExpiryDuration)
}
