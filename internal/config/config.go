// Package config provides configuration management.
package config

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/spf13/viper"

	apperrors "barodeal/internal/errors"
	"barodeal/internal/logging"
)

// EnvPrefix is prepended to every environment override, e.g. BARODEAL_SERVER_ADDR.
const EnvPrefix = "BARODEAL"

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `mapstructure:"version"`

	// Schedule selects the fee schedule table
	Schedule ScheduleConfig `mapstructure:"schedule"`

	// Server contains HTTP API settings
	Server ServerConfig `mapstructure:"server"`

	// Pager contains section pager tuning
	Pager PagerConfig `mapstructure:"pager"`

	// Output contains output configuration
	Output OutputConfig `mapstructure:"output"`

	// Logging contains logging configuration
	Logging logging.Config `mapstructure:"logging"`
}

// ScheduleConfig contains fee schedule settings
type ScheduleConfig struct {
	// Path is an HCL schedule file; empty uses the embedded table
	Path string `mapstructure:"path"`

	// Region is the region used when a request does not name one
	Region string `mapstructure:"region"`
}

// ServerConfig contains HTTP API settings
type ServerConfig struct {
	Addr string `mapstructure:"addr"`

	// RateLimit is the sustained requests per second accepted by the API
	RateLimit float64 `mapstructure:"rate_limit"`

	// Burst is the token bucket size
	Burst int `mapstructure:"burst"`
}

// PagerConfig mirrors pager.Config in config-file friendly units
type PagerConfig struct {
	Sections       int     `mapstructure:"sections"`
	WheelThreshold float64 `mapstructure:"wheel_threshold"`
	SwipeThreshold float64 `mapstructure:"swipe_threshold"`
	CooldownMs     int     `mapstructure:"cooldown_ms"`
	StepCooldownMs int     `mapstructure:"step_cooldown_ms"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	// DefaultFormat is the default output format
	DefaultFormat string `mapstructure:"default_format"`
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Version: "1.0",
		Schedule: ScheduleConfig{
			Region: "seoul",
		},
		Server: ServerConfig{
			Addr:      ":8080",
			RateLimit: 20,
			Burst:     40,
		},
		Pager: PagerConfig{
			Sections:       8,
			WheelThreshold: 10,
			SwipeThreshold: 50,
			CooldownMs:     1000,
			StepCooldownMs: 300,
		},
		Output: OutputConfig{
			DefaultFormat: "cli",
		},
		Logging: logging.DefaultConfig(),
	}
}

// setDefaults registers every Default() value with v so env overrides resolve
// even when the key is absent from the file.
func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("version", d.Version)
	v.SetDefault("schedule.path", d.Schedule.Path)
	v.SetDefault("schedule.region", d.Schedule.Region)
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.rate_limit", d.Server.RateLimit)
	v.SetDefault("server.burst", d.Server.Burst)
	v.SetDefault("pager.sections", d.Pager.Sections)
	v.SetDefault("pager.wheel_threshold", d.Pager.WheelThreshold)
	v.SetDefault("pager.swipe_threshold", d.Pager.SwipeThreshold)
	v.SetDefault("pager.cooldown_ms", d.Pager.CooldownMs)
	v.SetDefault("pager.step_cooldown_ms", d.Pager.StepCooldownMs)
	v.SetDefault("output.default_format", d.Output.DefaultFormat)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.output", d.Logging.Output)
	v.SetDefault("logging.development", d.Logging.Development)
}

// Load loads configuration from a file. An empty path or a missing file yields
// the defaults; BARODEAL_* environment variables override either.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return nil, apperrors.Config("failed to read config file", err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, apperrors.Config("failed to decode config", err)
	}
	return cfg, nil
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
