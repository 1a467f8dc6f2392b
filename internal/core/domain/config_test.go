package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateDefaultConfig_IsValid(t *testing.T) {
	config := CreateDefaultConfig()

	require.NoError(t, config.Validate())
	limits, err := config.LoadLimits()
	require.NoError(t, err)
	assert.Equal(t, DefaultLoadLimits(), limits)
}

func TestConfig_LoadLimits_ParsesQuantities(t *testing.T) {
	config := Config{Limits: Limits{SyncLoadLimit: "512Ki", MaxFileSize: "2M", ChunkSize: "4096"}}

	limits, err := config.LoadLimits()

	require.NoError(t, err)
	assert.Equal(t, int64(512*1024), limits.SyncLoadLimit)
	assert.Equal(t, int64(2000000), limits.MaxFileSize)
	assert.Equal(t, int64(4096), limits.ChunkSize)
}

func TestConfig_ApplyDefaults_FillsMissingFields(t *testing.T) {
	config := Config{Limits: Limits{ChunkSize: "64Ki"}}

	config.ApplyDefaults()

	assert.Equal(t, "10Mi", config.Limits.SyncLoadLimit)
	assert.Equal(t, "100Mi", config.Limits.MaxFileSize)
	assert.Equal(t, "64Ki", config.Limits.ChunkSize)
	assert.Equal(t, "sudo", config.Elevation.Command)
	assert.Equal(t, DefaultProtectedPaths, config.Elevation.ProtectedPaths)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"invalid quantity", func(c *Config) { c.Limits.ChunkSize = "lots" }, "limits.chunkSize"},
		{"zero chunk", func(c *Config) { c.Limits.ChunkSize = "0" }, "chunkSize must be positive"},
		{"zero max", func(c *Config) { c.Limits.MaxFileSize = "0"; c.Limits.SyncLoadLimit = "0" }, "maxFileSize must be positive"},
		{"sync above max", func(c *Config) { c.Limits.SyncLoadLimit = "200Mi" }, "must not exceed"},
		{"empty command", func(c *Config) { c.Elevation.Command = " " }, "elevation.command"},
		{"empty protected path", func(c *Config) { c.Elevation.ProtectedPaths = []string{"/etc", ""} }, "protectedPaths[1]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := CreateDefaultConfig()
			tt.mutate(&config)

			err := config.Validate()

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
