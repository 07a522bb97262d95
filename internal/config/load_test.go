// internal/config/load_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
server:
  listen: ":6000"
  max_clients: 2
controller:
  variant: dx200
  interpolation_period_ms: 8
  status_base: 100
  alarm_base: 200
  groups:
    - no: 0
      axes: 6
      feedback_base: 0
    - no: 1
      axes: 1
      feedback_base: 24
io:
  endpoint: "192.168.255.1:502"
  feedback_coil_base: 800
`

func TestParse_YAML(t *testing.T) {
	cfg, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)
	require.NoError(t, Validate(cfg))

	assert.Equal(t, ":6000", cfg.Server.Listen)
	assert.Equal(t, 2, cfg.Server.MaxClients)
	assert.Equal(t, 8, cfg.Controller.InterpolationPeriodMs)
	assert.Len(t, cfg.Controller.Groups, 2)
	assert.Equal(t, uint16(800), cfg.IO.FeedbackCoilBase)

	// defaults still filled
	assert.Equal(t, 50, cfg.Server.SendTimeoutMs)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestParse_UnknownKeyRejected(t *testing.T) {
	_, err := Parse([]byte("server:\n  listne: \":1\"\n"))
	assert.Error(t, err)
}

func TestParse_EnvOverrides(t *testing.T) {
	t.Setenv("STATESERVER_SERVER_LISTEN", ":7000")
	t.Setenv("STATESERVER_IO_ENDPOINT", "plc:1502")
	t.Setenv("STATESERVER_LOG_FORMAT", "json")

	cfg, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, ":7000", cfg.Server.Listen)
	assert.Equal(t, "plc:1502", cfg.IO.Endpoint)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 2, cfg.Server.MaxClients, "unset env keeps file value")
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stateserver.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "dx200", cfg.Controller.Variant)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
