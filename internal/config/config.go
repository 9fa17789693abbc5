// Package config provides configuration management for the tracker.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	apperrors "proptrack/internal/errors"
)

// Config holds all application configuration.
type Config struct {
	Storage StorageConfig `mapstructure:"storage"`
	Sync    SyncConfig    `mapstructure:"sync"`
	Logging LoggingConfig `mapstructure:"logging"`
	UI      UIConfig      `mapstructure:"ui"`
}

// StorageConfig holds local persistence configuration.
type StorageConfig struct {
	Path string `mapstructure:"path"` // SQLite database file
}

// SyncConfig holds remote sync configuration. Sync is disabled until an
// endpoint is configured.
type SyncConfig struct {
	Endpoint        string `mapstructure:"endpoint"`
	Token           string `mapstructure:"token"`
	DebounceSeconds int    `mapstructure:"debounce_seconds"`
	TimeoutSeconds  int    `mapstructure:"timeout_seconds"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level   string `mapstructure:"level"`
	Console bool   `mapstructure:"console"`
	File    bool   `mapstructure:"file"`
}

// UIConfig holds output configuration.
type UIConfig struct {
	ColorEnabled bool   `mapstructure:"color_enabled"`
	DateFormat   string `mapstructure:"date_format"`
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/proptrack"
	}
	return filepath.Join(home, ".config", "proptrack")
}

// Load loads configuration from the specified directory. If configDir is
// empty, the default config directory is used; a missing config file gets
// a commented template written in its place and defaults apply.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	v.SetDefault("storage.path", filepath.Join(configDir, "proptrack.db"))
	v.SetDefault("sync.debounce_seconds", 2)
	v.SetDefault("sync.timeout_seconds", 15)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.console", false)
	v.SetDefault("logging.file", true)
	v.SetDefault("ui.color_enabled", true)
	v.SetDefault("ui.date_format", "2006-01-02")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config.toml: %w", err)
		}
		if err := writeTemplate(configDir); err != nil {
			return nil, fmt.Errorf("writing config template: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PROPTRACK_DB"); v != "" {
		cfg.Storage.Path = v
	}
	if v := os.Getenv("PROPTRACK_SYNC_ENDPOINT"); v != "" {
		cfg.Sync.Endpoint = v
	}
	if v := os.Getenv("PROPTRACK_SYNC_TOKEN"); v != "" {
		cfg.Sync.Token = v
	}
	if v := os.Getenv("PROPTRACK_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return apperrors.Wrapf(apperrors.ErrConfigInvalid, "unknown log level %q", c.Logging.Level)
	}
	if c.Sync.Endpoint != "" && c.Sync.Token == "" {
		return apperrors.Wrap(apperrors.ErrConfigInvalid, "sync.token is required when sync.endpoint is set")
	}
	if c.Sync.DebounceSeconds < 0 {
		return apperrors.Wrap(apperrors.ErrConfigInvalid, "sync.debounce_seconds must be non-negative")
	}
	return nil
}

// SyncEnabled reports whether remote sync is configured.
func (c *Config) SyncEnabled() bool {
	return c.Sync.Endpoint != ""
}

// Debounce returns the sync debounce as a duration.
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.Sync.DebounceSeconds) * time.Second
}

// SyncTimeout returns the sync request timeout as a duration.
func (c *Config) SyncTimeout() time.Duration {
	return time.Duration(c.Sync.TimeoutSeconds) * time.Second
}
