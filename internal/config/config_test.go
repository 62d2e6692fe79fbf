package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "unknown transport",
			mutate:  func(c *Config) { c.Transport = "grpc" },
			wantErr: "Transport",
		},
		{
			name:    "http without listen address",
			mutate:  func(c *Config) { c.Transport = "http"; c.ListenAddr = "" },
			wantErr: "ListenAddr",
		},
		{
			name:    "endpoint path missing slash",
			mutate:  func(c *Config) { c.EndpointPath = "mcp" },
			wantErr: "EndpointPath",
		},
		{
			name:    "negative slope threshold",
			mutate:  func(c *Config) { c.StableSlopeBelow = -1 },
			wantErr: "StableSlopeBelow",
		},
		{
			name:    "zero forecast cap",
			mutate:  func(c *Config) { c.MaxForecastPoints = 0 },
			wantErr: "MaxForecastPoints",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "transport: http\nlistenAddr: \":9090\"\nlogLevel: debug\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "http", cfg.Transport)
	assert.Equal(t, ":9090", cfg.ListenAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	// Unset keys keep defaults.
	assert.Equal(t, "/mcp", cfg.EndpointPath)
	assert.Equal(t, 10, cfg.MaxForecastPoints)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadFileInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("transport: carrier-pigeon\n"), 0o644))

	_, err := LoadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}
