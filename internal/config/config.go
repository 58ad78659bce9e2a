// Package config loads ccsbridge configuration from an optional YAML file
// and CCSBRIDGE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment overrides:
// CCSBRIDGE_STORE_PATH overrides store.path.
const EnvPrefix = "CCSBRIDGE"

// Config holds all ccsbridge configuration.
type Config struct {
	Store   StoreConfig   `mapstructure:"store"`
	Log     LogConfig     `mapstructure:"log"`
	Output  OutputConfig  `mapstructure:"output"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// StoreConfig locates the SQLite journal and EPSG registry.
type StoreConfig struct {
	Path    string `mapstructure:"path"`
	Journal bool   `mapstructure:"journal"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// OutputConfig controls command output. Precision is the number of
// decimal places used when rendering doubles as text.
type OutputConfig struct {
	Format    string `mapstructure:"format"`
	Precision int32  `mapstructure:"precision"`
}

type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// Load reads configuration. An empty path searches for ccsbridge.yaml in
// the working directory and is fine when none exists; an explicit path must
// be readable.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("store.path", "ccsbridge.db")
	v.SetDefault("store.journal", true)
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "text")
	v.SetDefault("output.format", "text")
	v.SetDefault("output.precision", 6)
	v.SetDefault("metrics.enabled", false)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("ccsbridge")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that configuration values are sane.
func (c *Config) Validate() error {
	var errs []string

	if c.Store.Path == "" {
		errs = append(errs, "store.path is required")
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err.Error())
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		errs = append(errs, fmt.Sprintf("log.format must be text or json, got %q", c.Log.Format))
	}
	if c.Output.Format != "text" && c.Output.Format != "json" {
		errs = append(errs, fmt.Sprintf("output.format must be text or json, got %q", c.Output.Format))
	}
	if c.Output.Precision < 0 || c.Output.Precision > 15 {
		errs = append(errs, fmt.Sprintf("output.precision must be 0-15, got %d", c.Output.Precision))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// ParseLevel maps a level name to its slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("log.level must be debug, info, warn or error, got %q", s)
	}
}
