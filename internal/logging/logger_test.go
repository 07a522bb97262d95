// internal/logging/logger_test.go
package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warn"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestNewHandler_JSON(t *testing.T) {
	var buf bytes.Buffer
	slog.New(newHandler(&buf, "info", "json")).Info("client admitted", "slot", 2)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "client admitted", rec["msg"])
	assert.EqualValues(t, 2, rec["slot"])
}

func TestNewHandler_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	slog.New(newHandler(&buf, "warn", "text")).Info("dropped")
	assert.Empty(t, buf.String())
}

func TestInitLogger_FileOutput(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	path := filepath.Join(t.TempDir(), "stateserver.log")
	logger, closeLog := InitLogger(Options{Level: "info", Format: "text", File: path, MaxSizeMB: 1, MaxBackups: 1})
	logger.Info("state server started")
	require.NoError(t, closeLog())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "state server started")
}
