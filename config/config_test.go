package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	dir := t.TempDir()
	t.Setenv("ENV_PATH", filepath.Join(dir, "missing.env"))
	t.Setenv("CONFIG_FILE", "")
	for _, key := range []string{"PORT", "RATE_API_URL", "REFRESH_INTERVAL", "HTTP_TIMEOUT", "DEFAULT_RATE", "FIXED_AMOUNTS", "LOG_LEVEL"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, Default(), *cfg)
	assert.Equal(t, ":8080", cfg.Addr())
}

func TestLoad_Env(t *testing.T) {
	isolate(t)
	t.Setenv("PORT", "9090")
	t.Setenv("REFRESH_INTERVAL", "15m")
	t.Setenv("DEFAULT_RATE", "1600.5")
	t.Setenv("FIXED_AMOUNTS", "10,20,30")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 15*time.Minute, cfg.RefreshInterval)
	assert.Equal(t, 1600.5, cfg.DefaultRate)
	assert.Equal(t, []float64{10, 20, 30}, cfg.FixedAmounts)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(path, []byte("LOG_LEVEL=debug\nHTTP_TIMEOUT=2s\n"), 0o600))
	t.Setenv("ENV_PATH", path)

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 2*time.Second, cfg.HttpTimeout)
}

func TestLoad_YAMLThenEnv(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.yaml")
	yml := `
port: 7070
refresh_interval: 30m
fixed_amounts: [5, 15]
log_level: warn
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o600))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("LOG_LEVEL", "error")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Port)
	assert.Equal(t, 30*time.Minute, cfg.RefreshInterval)
	assert.Equal(t, []float64{5, 15}, cfg.FixedAmounts)
	assert.Equal(t, "error", cfg.LogLevel)
	assert.Equal(t, 1500.0, cfg.DefaultRate)
}

func TestLoad_Invalid(t *testing.T) {
	isolate(t)
	t.Setenv("PORT", "70000")

	_, err := Load()

	assert.Error(t, err)
}

func TestLoad_MissingConfigFile(t *testing.T) {
	dir := isolate(t)
	t.Setenv("CONFIG_FILE", filepath.Join(dir, "nope.yaml"))

	_, err := Load()

	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
	}{
		{"port", func(c *Config) { c.Port = 0 }},
		{"url", func(c *Config) { c.RateApiUrl = "" }},
		{"interval", func(c *Config) { c.RefreshInterval = 0 }},
		{"timeout", func(c *Config) { c.HttpTimeout = -time.Second }},
		{"rate", func(c *Config) { c.DefaultRate = 0 }},
		{"no amounts", func(c *Config) { c.FixedAmounts = nil }},
		{"negative amount", func(c *Config) { c.FixedAmounts = []float64{10, -1} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	assert.NoError(t, Default().Validate())
}
