package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolateXDG(t *testing.T) {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv("HOME", tmp)
	t.Setenv("XDG_CONFIG_HOME", tmp+"/config")
	t.Setenv("XDG_DATA_HOME", tmp+"/data")
	t.Setenv("XDG_STATE_HOME", tmp+"/state")
	t.Setenv("ENV", "")
}

func TestManagerLoad_Defaults(t *testing.T) {
	isolateXDG(t)

	m, err := NewManager()
	require.NoError(t, err)
	require.NoError(t, m.Load())

	cfg := m.Get()
	assert.Equal(t, "lru", cfg.Cache.Policy)
	assert.Equal(t, 1024, cfg.Cache.Capacity)
	assert.Equal(t, "127.0.0.1:8080", cfg.Server.ListenAddr)
	assert.Equal(t, 10, cfg.Server.PageSize)
	assert.NotEmpty(t, cfg.Database.Path, "database path is derived from XDG data dir")
}

func TestManagerLoad_CreatesDefaultConfigFile(t *testing.T) {
	isolateXDG(t)

	m, err := NewManager()
	require.NoError(t, err)
	require.NoError(t, m.Load())

	configFile, err := GetConfigFile()
	require.NoError(t, err)
	assert.FileExists(t, configFile)
}

func TestManagerLoad_EnvOverride(t *testing.T) {
	isolateXDG(t)
	t.Setenv("POLYCACHE_CACHE_POLICY", "lfu")
	t.Setenv("POLYCACHE_CACHE_CAPACITY", "3")

	m, err := NewManager()
	require.NoError(t, err)
	require.NoError(t, m.Load())

	cfg := m.Get()
	assert.Equal(t, "lfu", cfg.Cache.Policy)
	assert.Equal(t, 3, cfg.Cache.Capacity)
}

func TestManagerLoad_ExplicitConfigFile(t *testing.T) {
	isolateXDG(t)

	path := filepath.Join(t.TempDir(), "custom.yaml")
	content := "cache:\n  policy: mru\n  capacity: 7\nserver:\n  page_size: 3\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	m, err := NewManager()
	require.NoError(t, err)
	m.SetConfigFile(path)
	require.NoError(t, m.Load())

	cfg := m.Get()
	assert.Equal(t, "mru", cfg.Cache.Policy)
	assert.Equal(t, 7, cfg.Cache.Capacity)
	assert.Equal(t, 3, cfg.Server.PageSize)
	assert.Equal(t, "127.0.0.1:8080", cfg.Server.ListenAddr, "unset keys still fall back to defaults")

	// An explicit file must not be replaced by a generated default.
	configFile, err := GetConfigFile()
	require.NoError(t, err)
	assert.NoFileExists(t, configFile)
}

func TestManagerLoad_ExplicitConfigFileMissing(t *testing.T) {
	isolateXDG(t)

	m, err := NewManager()
	require.NoError(t, err)
	m.SetConfigFile(filepath.Join(t.TempDir(), "absent.yaml"))

	assert.Error(t, m.Load(), "an explicitly requested config file must exist")
}

func TestValidateConfig(t *testing.T) {
	valid := DefaultConfig()
	valid.Database.Path = "/tmp/test.sqlite"
	require.NoError(t, validateConfig(valid))

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "unknown policy", mutate: func(c *Config) { c.Cache.Policy = "clock" }},
		{name: "zero capacity", mutate: func(c *Config) { c.Cache.Capacity = 0 }},
		{name: "negative capacity", mutate: func(c *Config) { c.Cache.Capacity = -5 }},
		{name: "empty listen addr", mutate: func(c *Config) { c.Server.ListenAddr = "" }},
		{name: "zero page size", mutate: func(c *Config) { c.Server.PageSize = 0 }},
		{name: "bad log level", mutate: func(c *Config) { c.Logging.Level = "loud" }},
		{name: "bad log format", mutate: func(c *Config) { c.Logging.Format = "xml" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, validateConfig(cfg))
		})
	}
}

func TestGetXDGDirs(t *testing.T) {
	isolateXDG(t)

	dirs, err := GetXDGDirs()
	require.NoError(t, err)
	assert.Contains(t, dirs.ConfigHome, appName)
	assert.Contains(t, dirs.DataHome, appName)
	assert.Contains(t, dirs.StateHome, appName)
}
