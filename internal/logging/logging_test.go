package logging_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/gigdash/internal/logging"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{" warn ", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"loud", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, logging.ParseLevel(tt.in))
		})
	}
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer

	logger := logging.New(&buf, "warn", "json", "api")
	logger.Info("hidden")
	logger.Warn("budget exceeded", "category", "Shops")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "budget exceeded", entry["msg"])
	assert.Equal(t, "api", entry["component"])
	assert.Equal(t, "Shops", entry["category"])
}

func TestNew_Text(t *testing.T) {
	var buf bytes.Buffer

	logging.New(&buf, "info", "text", "").Info("started", "port", 8080)

	assert.Contains(t, buf.String(), "msg=started")
	assert.Contains(t, buf.String(), "port=8080")
	assert.NotContains(t, buf.String(), "component=")
}
