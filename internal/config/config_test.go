package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "course-ical.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, "America/Los_Angeles", cfg.Timezone)
	assert.Equal(t, "berkeley-classes", cfg.FilePrefix)
	require.NoError(t, cfg.Validate())
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
timezone: America/New_York
output_dir: ./calendars
timeout: 45s
concurrency: 8
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "America/New_York", cfg.Timezone)
	assert.Equal(t, "./calendars", cfg.OutputDir)
	assert.Equal(t, 45*time.Second, cfg.Timeout)
	assert.Equal(t, 8, cfg.Concurrency)
	assert.Equal(t, "berkeley-classes", cfg.FilePrefix, "unset keys keep defaults")
}

func TestLoad_EmptyFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "timezone: [not, a, string\n"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "time_zone: America/Chicago\n"))
	assert.Error(t, err, "unknown keys are rejected")
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "timezone: America/New_York\nconcurrency: 8\n")
	t.Setenv(EnvTimezone, "America/Chicago")
	t.Setenv(EnvConcurrency, "2")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "America/Chicago", cfg.Timezone)
	assert.Equal(t, 2, cfg.Concurrency)
}

func TestLoad_BadEnvConcurrency(t *testing.T) {
	t.Setenv(EnvConcurrency, "many")

	_, err := Load("")
	assert.ErrorContains(t, err, EnvConcurrency)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero concurrency", func(c *Config) { c.Concurrency = 0 }},
		{"negative timeout", func(c *Config) { c.Timeout = -time.Second }},
		{"empty timezone", func(c *Config) { c.Timezone = "" }},
		{"unknown timezone", func(c *Config) { c.Timezone = "Bogus/Zone" }},
		{"timezone breaks TZID", func(c *Config) { c.Timezone = "America/Los_Angeles:20250101" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
