package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "STORE_DRIVER", "DATABASE_URL", "JWT_SECRET", "JWT_PREVIOUS_SECRETS", "JWT_TTL", "CORS_ORIGINS", "DB_HOST", "DB_NAME"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, DriverPostgres, cfg.StoreDriver)
	assert.Equal(t, 72*time.Hour, cfg.TokenTTL)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Empty(t, cfg.JWTPreviousSecrets)
	assert.True(t, cfg.UsesDevSecret())
	assert.Contains(t, cfg.DatabaseURL, "host=localhost")
	assert.Contains(t, cfg.DatabaseURL, "dbname=discuss")
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("STORE_DRIVER", "Memory")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/board")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_PREVIOUS_SECRETS", "old-1, ,old-2")
	t.Setenv("CORS_ORIGINS", "http://localhost:3000,https://board.example")

	cfg := Load()

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, DriverMemory, cfg.StoreDriver)
	assert.Equal(t, "postgres://u:p@db:5432/board", cfg.DatabaseURL)
	assert.False(t, cfg.UsesDevSecret())
	assert.Equal(t, []string{"old-1", "old-2"}, cfg.JWTPreviousSecrets)
	assert.Equal(t, []string{"http://localhost:3000", "https://board.example"}, cfg.CORSOrigins)
}

func TestTokenTTLFormats(t *testing.T) {
	cases := map[string]time.Duration{
		"":      72 * time.Hour,
		"15m":   15 * time.Minute,
		"3600":  time.Hour,
		"-5":    72 * time.Hour,
		"bogus": 72 * time.Hour,
	}
	for raw, want := range cases {
		t.Setenv("JWT_TTL", raw)
		assert.Equal(t, want, Load().TokenTTL, "JWT_TTL=%q", raw)
	}
}
