package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	// DefaultSeedSize is the number of people generated for an empty store.
	DefaultSeedSize = 50

	// EnvPrefix prefixes every environment override.
	EnvPrefix = "ZODIAC_ROSTER"
)

// Config holds all configuration for zodiac-roster.
type Config struct {
	Store   StoreConfig   `mapstructure:"store"`
	Roster  RosterConfig  `mapstructure:"roster"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// StoreConfig locates the roster document.
type StoreConfig struct {
	Path   string `mapstructure:"path"`
	Format string `mapstructure:"format"` // "", "json" or "yaml"
}

// RosterConfig holds roster behavior settings.
type RosterConfig struct {
	SeedSize         int  `mapstructure:"seed_size"`
	RevalidateOnLoad bool `mapstructure:"revalidate_on_load"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from the default locations and environment
// variables.
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile reads configuration from file, or from the default locations when
// file is empty. A missing default config file is not an error.
func LoadFile(file string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("store.path", filepath.Join(homeDir(), ".zodiac-roster", "people.json"))
	v.SetDefault("store.format", "")

	v.SetDefault("roster.seed_size", DefaultSeedSize)
	v.SetDefault("roster.revalidate_on_load", false)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")

	// Config file
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(filepath.Join(homeDir(), ".zodiac-roster"))
		v.AddConfigPath(".")
	}

	// Environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("store.path", "ZODIAC_ROSTER_STORE_PATH")
	_ = v.BindEnv("store.format", "ZODIAC_ROSTER_STORE_FORMAT")
	_ = v.BindEnv("roster.seed_size", "ZODIAC_ROSTER_SEED_SIZE")
	_ = v.BindEnv("roster.revalidate_on_load", "ZODIAC_ROSTER_REVALIDATE_ON_LOAD")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || file != "" {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	cfg.Store.Path = expandHome(cfg.Store.Path)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// Validate checks that required configuration fields are set and consistent.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Store.Path) == "" {
		return fmt.Errorf("store.path must not be empty")
	}
	switch strings.ToLower(c.Store.Format) {
	case "", "json", "yaml", "yml":
	default:
		return fmt.Errorf("store.format must be json or yaml, got %q", c.Store.Format)
	}
	if c.Roster.SeedSize <= 0 {
		return fmt.Errorf("roster.seed_size must be greater than 0")
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn or error, got %q", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format must be text or json, got %q", c.Logging.Format)
	}
	return nil
}

func expandHome(path string) string {
	if path == "~" {
		return homeDir()
	}
	if rest, ok := strings.CutPrefix(path, "~/"); ok {
		return filepath.Join(homeDir(), rest)
	}
	return path
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
