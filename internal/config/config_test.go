package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "3000", cfg.ServerPort)
	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, "users.json", cfg.UsersFile)
	assert.Equal(t, "customers.json", cfg.CustomersFile)
	assert.Equal(t, time.Hour, cfg.JWTExpiresIn)
	assert.False(t, cfg.RateLimitEnabled)
	assert.Equal(t, 15*time.Minute, cfg.RateLimitWindow)
	assert.Equal(t, 100, cfg.RateLimitMax)
	assert.Empty(t, cfg.RedisAddr)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("PORT", "8081")
	t.Setenv("JWT_EXPIRES_IN", "30m")
	t.Setenv("RATE_LIMIT_ENABLED", "true")
	t.Setenv("RATE_LIMIT_MAX", "5")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "8081", cfg.ServerPort)
	assert.Equal(t, 30*time.Minute, cfg.JWTExpiresIn)
	assert.True(t, cfg.RateLimitEnabled)
	assert.Equal(t, 5, cfg.RateLimitMax)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
}

func TestLoad_InvalidExpiry(t *testing.T) {
	t.Setenv("JWT_EXPIRES_IN", "soon")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.yaml")
	require.NoError(t, os.WriteFile(path, []byte("PORT: \"9090\"\nDATA_DIR: /var/lib/customerhub\n"), 0o600))
	t.Setenv("CONFIG_FILE", path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, "/var/lib/customerhub", cfg.DataDir)
}

func TestLoad_MissingConfigFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_InvalidRateLimit(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"zero max", map[string]string{"RATE_LIMIT_MAX": "0"}},
		{"negative max", map[string]string{"RATE_LIMIT_MAX": "-3"}},
		{"zero window", map[string]string{"RATE_LIMIT_WINDOW": "0s"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("RATE_LIMIT_ENABLED", "true")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoad_RateLimitIgnoredWhenDisabled(t *testing.T) {
	t.Setenv("RATE_LIMIT_MAX", "0")

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.RateLimitEnabled)
}
