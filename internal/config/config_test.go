package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// unsetEnv clears key for the duration of the test.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	os.Unsetenv(key)
}

func TestLoadDefaults(t *testing.T) {
	unsetEnv(t, "APP_PORT")
	unsetEnv(t, "PORT")
	unsetEnv(t, "CHAT_UPSTREAM_URL")
	unsetEnv(t, "PYTHON_CHAT_URL")
	unsetEnv(t, "UPLOAD_MAX_BYTES")
	unsetEnv(t, "CHAT_HISTORY_TTL")
	unsetEnv(t, "GO_ENV")
	unsetEnv(t, "DB_SSLMODE")
	t.Setenv("CHAT_TIMEOUT", "not-a-duration")

	cfg := Load()

	assert.Equal(t, "3000", cfg.App.Port)
	assert.Equal(t, "http://127.0.0.1:8000/chat", cfg.Chat.UpstreamURL)
	assert.Equal(t, 60*time.Second, cfg.Chat.Timeout)
	assert.Equal(t, int64(5*1024*1024), cfg.Storage.MaxSize)
	assert.Zero(t, cfg.Chat.HistoryTTL, "history never expires unless configured")
	assert.Empty(t, cfg.Database.SSLMode)
}

func TestLoadSSLMode(t *testing.T) {
	t.Run("production requires tls", func(t *testing.T) {
		t.Setenv("GO_ENV", "production")
		unsetEnv(t, "DB_SSLMODE")

		assert.Equal(t, "require", Load().Database.SSLMode)
	})

	t.Run("explicit mode wins", func(t *testing.T) {
		t.Setenv("GO_ENV", "production")
		t.Setenv("DB_SSLMODE", "verify-full")

		assert.Equal(t, "verify-full", Load().Database.SSLMode)
	})

	t.Run("development leaves dsn alone", func(t *testing.T) {
		t.Setenv("GO_ENV", "development")
		unsetEnv(t, "DB_SSLMODE")

		assert.Empty(t, Load().Database.SSLMode)
	})
}

func TestLoadLegacyFallbacks(t *testing.T) {
	unsetEnv(t, "APP_PORT")
	unsetEnv(t, "CHAT_UPSTREAM_URL")
	t.Setenv("PORT", "8080")
	t.Setenv("PYTHON_CHAT_URL", "http://python:8000/chat")

	cfg := Load()

	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "http://python:8000/chat", cfg.Chat.UpstreamURL)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("CHAT_HISTORY_BACKEND", "redis")
	t.Setenv("CHAT_HISTORY_TTL", "2h")
	t.Setenv("GO_ENV", "production")
	t.Setenv("UPLOAD_MAX_BYTES", "1024")

	cfg := Load()

	assert.Equal(t, "redis", cfg.Chat.HistoryBackend)
	assert.Equal(t, 2*time.Hour, cfg.Chat.HistoryTTL)
	assert.Equal(t, int64(1024), cfg.Storage.MaxSize)
	assert.True(t, cfg.IsProduction())
}
