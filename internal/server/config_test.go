package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, 80, cfg.Port)
	assert.Equal(t, []string{"http://localhost"}, cfg.AllowedOrigins)
	assert.Equal(t, int64(512), cfg.MaxMessageSize)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("CHAT_PORT", "9090")
	t.Setenv("CHAT_ALLOWED_ORIGINS", "https://example.com,http://other.test")
	t.Setenv("CHAT_MAX_MESSAGE_SIZE", "1024")
	t.Setenv("CHAT_LOG_LEVEL", "debug")
	t.Setenv("CHAT_LOG_FORMAT", "json")
	t.Setenv("CHAT_SHUTDOWN_TIMEOUT", "5s")

	cfg := LoadConfig()

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, []string{"https://example.com", "http://other.test"}, cfg.AllowedOrigins)
	assert.Equal(t, int64(1024), cfg.MaxMessageSize)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
}

func TestLoadConfigUnparseablePortFallsBack(t *testing.T) {
	t.Setenv("CHAT_PORT", "not-a-number")

	cfg := LoadConfig()

	assert.Equal(t, 80, cfg.Port)
}

func TestLoadConfigOutOfRangeValuesSanitized(t *testing.T) {
	t.Setenv("CHAT_PORT", "-5")
	t.Setenv("CHAT_MAX_MESSAGE_SIZE", "0")
	t.Setenv("CHAT_SHUTDOWN_TIMEOUT", "0s")

	cfg := LoadConfig()

	assert.Equal(t, 80, cfg.Port)
	assert.Equal(t, int64(512), cfg.MaxMessageSize)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestConfigAddr(t *testing.T) {
	cfg := NewConfig()
	assert.Equal(t, ":80", cfg.Addr())

	cfg.Port = 8080
	assert.Equal(t, ":8080", cfg.Addr())
}
