package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verdantlab/gardenbot/pkg/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{" Error ", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, ParseLevel(tc.input), "input %q", tc.input)
	}
}

func TestNewReturnsAdjustableLevel(t *testing.T) {
	log, levelVar := New(config.LoggingConfig{Level: "warn"}, false)

	require.NotNil(t, log)
	require.NotNil(t, levelVar)
	assert.False(t, log.Enabled(context.Background(), slog.LevelInfo))

	levelVar.Set(slog.LevelDebug)
	assert.True(t, log.Enabled(context.Background(), slog.LevelDebug))
}

func TestNewWithSentryFanout(t *testing.T) {
	log, _ := New(config.LoggingConfig{Level: "info"}, true)

	require.NotNil(t, log)
	log.Info("sentry fanout smoke", slog.String("component", "logger"))
}

func TestMaskingHandlerHidesSensitiveAttrs(t *testing.T) {
	var buf bytes.Buffer
	handler := NewMaskingHandler(slog.NewJSONHandler(&buf, nil))
	log := slog.New(handler)

	log.Info("connecting",
		slog.String("token", "123:secret-value"),
		slog.String("handle", "sarah_green"),
	)

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))

	assert.Equal(t, "***", record["token"])
	assert.Equal(t, "sarah_green", record["handle"])
}
