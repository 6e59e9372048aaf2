package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
store:
  backend: sqlite
  path: /tmp/countdown.db
alert:
  mode: bell
  volume: 0.5
tick_interval: 250ms
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Store.Backend)
	assert.Equal(t, "/tmp/countdown.db", cfg.Store.Path)
	assert.Equal(t, "bell", cfg.Alert.Mode)
	assert.Equal(t, 0.5, cfg.Alert.Volume)
	assert.Equal(t, 44100, cfg.Alert.SampleRate)
	assert.Equal(t, 250*time.Millisecond, cfg.TickInterval)
}

func TestEnvOverridesFile(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv(EnvStore, "memory")
	t.Setenv(EnvAlert, "none")
	t.Setenv(EnvLogLevel, "verbose")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.Store.Backend)
	assert.Equal(t, "none", cfg.Alert.Mode)
	assert.Equal(t, "verbose", cfg.Log.Level)
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown backend", func(c *Config) { c.Store.Backend = "redis" }},
		{"unknown alert", func(c *Config) { c.Alert.Mode = "siren" }},
		{"volume too loud", func(c *Config) { c.Alert.Volume = 2 }},
		{"sample rate too low", func(c *Config) { c.Alert.SampleRate = 100 }},
		{"bad log level", func(c *Config) { c.Log.Level = "chatty" }},
		{"zero tick", func(c *Config) { c.TickInterval = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			require.Error(t, cfg.Validate())
		})
	}
}

func TestStorePathDefaultsPerBackend(t *testing.T) {
	cfg := Default()
	assert.Empty(t, cfg.Store.Path)

	for _, backend := range []string{"memory", "file", "sqlite"} {
		cfg.Store.Backend = backend
		require.NoError(t, cfg.Validate(), backend)
	}
}

func TestExpandTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := ExpandTilde("~/countdown/prefs.yaml")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "countdown/prefs.yaml"), got)

	got, err = ExpandTilde("/tmp/prefs.yaml")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/prefs.yaml", got)
}

func TestLoadRejectsBadYAML(t *testing.T) {
	t.Chdir(t.TempDir())
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("store: [oops"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
}
