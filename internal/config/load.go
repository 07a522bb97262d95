// internal/config/load.go
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Load reads the YAML file, applies environment overrides and fills defaults.
// A .env file in the working directory is honored when present.
// Callers still run Validate and Normalize.
func Load(path string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML strictly (unknown keys rejected), then applies
// environment overrides and defaults.
func Parse(raw []byte) (*Config, error) {
	var cfg Config

	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("env overrides: %w", err)
	}

	ApplyDefaults(&cfg)
	return &cfg, nil
}

// ApplyDefaults fills zero values. Explicit values are never replaced.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Listen == "" {
		cfg.Server.Listen = fmt.Sprintf(":%d", TCPPortState)
	}
	if cfg.Server.MaxClients == 0 {
		cfg.Server.MaxClients = 4
	}
	if cfg.Server.SendTimeoutMs == 0 {
		cfg.Server.SendTimeoutMs = 50
	}

	if cfg.Controller.Variant == "" {
		cfg.Controller.Variant = "yrc1000"
	}
	if cfg.Controller.InterpolationPeriodMs == 0 {
		cfg.Controller.InterpolationPeriodMs = 4
	}
	if cfg.Controller.StatusPollMs == 0 {
		cfg.Controller.StatusPollMs = 10
	}

	if cfg.IO.UnitID == 0 {
		cfg.IO.UnitID = 1
	}
	if cfg.IO.TimeoutMs == 0 {
		cfg.IO.TimeoutMs = 1000
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
	if cfg.Log.MaxSizeMB == 0 {
		cfg.Log.MaxSizeMB = 20
	}
	if cfg.Log.MaxBackups == 0 {
		cfg.Log.MaxBackups = 5
	}
}
