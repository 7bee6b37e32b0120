package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var keys = []string{
	"PORT", "DB_PATH", "JWT_SECRET", "TOKEN_TTL", "REDIS_ADDR", "IDEMPOTENCY_TTL",
	"LOG_LEVEL", "LOG_FORMAT", "ALLOWED_ORIGINS", "DEV_MODE",
}

// clearEnv unsets every config variable for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func missingFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "missing.env")
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("DEV_MODE", "true")

	cfg, err := Load(missingFile(t))
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "./data/expenseflow.db", cfg.DBPath)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 10*time.Minute, cfg.IdempotencyTTL)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Empty(t, cfg.RedisAddr)
	assert.Equal(t, devSecret, cfg.JWTSecret)
}

func TestLoad_RequiresSecret(t *testing.T) {
	clearEnv(t)

	_, err := Load(missingFile(t))
	assert.Error(t, err)
}

func TestLoad_EnvFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("LOG_LEVEL", "debug")

	path := filepath.Join(t.TempDir(), "test.env")
	content := "PORT=9090\nJWT_SECRET=from-file\nLOG_LEVEL=error\nALLOWED_ORIGINS=http://a.test, http://b.test\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "from-file", cfg.JWTSecret)
	assert.Equal(t, "debug", cfg.LogLevel, "environment wins over the file")
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins)
}

func TestLoad_InvalidValues(t *testing.T) {
	for key, value := range map[string]string{
		"PORT":            "eighty",
		"TOKEN_TTL":       "a day",
		"IDEMPOTENCY_TTL": "10",
		"DEV_MODE":        "maybe",
	} {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("JWT_SECRET", "s")
			t.Setenv(key, value)

			_, err := Load(missingFile(t))
			assert.Error(t, err)
		})
	}
}
