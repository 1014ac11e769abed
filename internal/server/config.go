// Package server provides configuration loading with runtime defaults
// and a sanitize pass for out-of-range values.
package server

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the server settings. Values come from CHAT_*
// environment variables; anything absent or invalid falls back to a
// default.
type Config struct {
	Port            int           `envconfig:"PORT" default:"80"`
	AllowedOrigins  []string      `envconfig:"ALLOWED_ORIGINS" default:"http://localhost"`
	MaxMessageSize  int64         `envconfig:"MAX_MESSAGE_SIZE" default:"512"`
	LogLevel        string        `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat       string        `envconfig:"LOG_FORMAT" default:"text"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

func defaultConfig() Config {
	return Config{
		Port:            80,
		AllowedOrigins:  []string{"http://localhost"},
		MaxMessageSize:  512,
		LogLevel:        "info",
		LogFormat:       "text",
		ShutdownTimeout: 10 * time.Second,
	}
}

// NewConfig returns a Config populated with defaults only.
func NewConfig() *Config {
	cfg := defaultConfig()
	return &cfg
}

// LoadConfig reads CHAT_* environment variables. Unparseable values
// fall back to defaults rather than failing startup.
func LoadConfig() *Config {
	var cfg Config
	if err := envconfig.Process("chat", &cfg); err != nil {
		slog.Warn("invalid environment configuration, using defaults", "error", err)
		return NewConfig()
	}
	return sanitizeConfig(cfg)
}

func sanitizeConfig(cfg Config) *Config {
	if cfg.Port <= 0 || cfg.Port > 65535 {
		cfg.Port = 80
	}
	if cfg.MaxMessageSize <= 0 {
		cfg.MaxMessageSize = 512
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}
	return &cfg
}

// Addr returns the listen address for the configured port.
func (c *Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}
