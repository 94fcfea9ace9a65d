package util

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected LogLevel
	}{
		{"debug", LevelDebug},
		{"DEBUG", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"bogus", LevelInfo},
		{"", LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLogLevel(tt.input))
		})
	}
}

func TestParseLogFormat(t *testing.T) {
	assert.Equal(t, FormatJSON, ParseLogFormat("json"))
	assert.Equal(t, FormatJSON, ParseLogFormat("JSON"))
	assert.Equal(t, FormatText, ParseLogFormat("text"))
	assert.Equal(t, FormatText, ParseLogFormat("yaml"))
}

func TestLoggerTextOutput(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(LoggerOptions{Level: "info", Console: &buf})
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("loaded series", F("points", 2), F("file", "adev.dat"))

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "[INFO] loaded series file=adev.dat points=2")
}

func TestLoggerJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(LoggerOptions{Level: "debug", Format: FormatJSON, Console: &buf})
	require.NoError(t, err)

	logger.With(F("component", "parser")).Debug("skip line", F("line", 3))

	var entry map[string]interface{}
	require.NoError(t, sonic.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "DEBUG", entry["level"])
	assert.Equal(t, "skip line", entry["message"])

	fields, ok := entry["fields"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "parser", fields["component"])
	assert.EqualValues(t, 3, fields["line"])
}

func TestLoggerFileOutput(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "logs", "app.log")
	logger, err := NewLogger(LoggerOptions{Level: "warn", File: logFile})
	require.NoError(t, err)

	logger.Info("ignored")
	logger.Warnf("point %d is not positive", 4)
	require.NoError(t, logger.Close())

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "[WARN] point 4 is not positive")
}

func TestLoggerSetLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(LoggerOptions{Level: "error", Console: &buf})
	require.NoError(t, err)

	logger.Info("before")
	logger.SetLevel(LevelDebug)
	logger.Info("after")

	assert.NotContains(t, buf.String(), "before")
	assert.Contains(t, buf.String(), "after")
}

func TestLoggerWithoutOutputs(t *testing.T) {
	logger, err := NewLogger(LoggerOptions{})
	require.NoError(t, err)
	assert.NotPanics(t, func() {
		logger.Error("nobody listens")
	})
	assert.NoError(t, logger.Close())
}
