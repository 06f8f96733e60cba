package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points HOME and the working directory at an empty temp dir so no
// real config file is picked up.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Chdir(dir)
	return dir
}

func validCfg() *Config {
	return &Config{
		Store:   StoreConfig{Path: "/tmp/people.json"},
		Roster:  RosterConfig{SeedSize: 50},
		Logging: LoggingConfig{Level: "info", Format: "text"},
	}
}

func TestLoad_Defaults(t *testing.T) {
	home := isolate(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".zodiac-roster", "people.json"), cfg.Store.Path)
	assert.Equal(t, "", cfg.Store.Format)
	assert.Equal(t, DefaultSeedSize, cfg.Roster.SeedSize)
	assert.False(t, cfg.Roster.RevalidateOnLoad)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("ZODIAC_ROSTER_STORE_PATH", "/data/roster.yaml")
	t.Setenv("ZODIAC_ROSTER_STORE_FORMAT", "yaml")
	t.Setenv("ZODIAC_ROSTER_SEED_SIZE", "7")
	t.Setenv("ZODIAC_ROSTER_REVALIDATE_ON_LOAD", "true")
	t.Setenv("ZODIAC_ROSTER_LOGGING_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/data/roster.yaml", cfg.Store.Path)
	assert.Equal(t, "yaml", cfg.Store.Format)
	assert.Equal(t, 7, cfg.Roster.SeedSize)
	assert.True(t, cfg.Roster.RevalidateOnLoad)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_HomeConfigFile(t *testing.T) {
	home := isolate(t)
	dir := filepath.Join(home, ".zodiac-roster")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	content := "store:\n  path: ~/people.yaml\nroster:\n  seed_size: 12\nlogging:\n  format: json\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "people.yaml"), cfg.Store.Path)
	assert.Equal(t, 12, cfg.Roster.SeedSize)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadFile_Explicit(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("roster:\n  revalidate_on_load: true\n"), 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.True(t, cfg.Roster.RevalidateOnLoad)

	_, err = LoadFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_InvalidValueFails(t *testing.T) {
	isolate(t)
	t.Setenv("ZODIAC_ROSTER_SEED_SIZE", "0")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "seed_size")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"empty path", func(c *Config) { c.Store.Path = " " }, "store.path"},
		{"bad format", func(c *Config) { c.Store.Format = "xml" }, "store.format"},
		{"zero seed", func(c *Config) { c.Roster.SeedSize = 0 }, "seed_size"},
		{"negative seed", func(c *Config) { c.Roster.SeedSize = -3 }, "seed_size"},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validCfg()
			tc.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}

	assert.NoError(t, validCfg().Validate())
	yaml := validCfg()
	yaml.Store.Format = "YAML"
	assert.NoError(t, yaml.Validate())
}

func TestExpandHome(t *testing.T) {
	home := isolate(t)
	assert.Equal(t, home, expandHome("~"))
	assert.Equal(t, filepath.Join(home, "a", "b.json"), expandHome("~/a/b.json"))
	assert.Equal(t, "/abs/path.json", expandHome("/abs/path.json"))
	assert.Equal(t, "~user/x", expandHome("~user/x"))
}
