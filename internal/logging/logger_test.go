package logging

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitSetsDefaultLogger(t *testing.T) {
	logger := Init("info", "text")

	require.NotNil(t, logger)
	assert.Same(t, logger, slog.Default())
}

func TestInitLevels(t *testing.T) {
	tests := []struct {
		level        string
		debugEnabled bool
	}{
		{level: "debug", debugEnabled: true},
		{level: "info", debugEnabled: false},
		{level: "warn", debugEnabled: false},
		{level: "error", debugEnabled: false},
		{level: "garbage", debugEnabled: false},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logger := Init(tt.level, "json")
			assert.Equal(t, tt.debugEnabled, logger.Enabled(context.Background(), slog.LevelDebug))
		})
	}
}
