// Package config loads calculator settings from the environment.
package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Prefix is the prefix of every environment variable config reads.
const Prefix = "CALC"

// Config holds the settings of the calc command. The embedded structs are
// anonymous so that their variables carry only the CALC_ prefix.
type Config struct {
	DisplayConfig
	LogConfig
}

// DisplayConfig holds the initial display context of a calculator.
type DisplayConfig struct {
	Precision uint `envconfig:"PRECISION" default:"3"`
	Exact     bool `envconfig:"EXACT" default:"true"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"warn"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// Load loads configuration from CALC_ environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.Precision == 0 {
		return nil, fmt.Errorf("failed to load config: %s_PRECISION must be positive", Prefix)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from the environment or returns the
// default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		DisplayConfig: DisplayConfig{
			Precision: 3,
			Exact:     true,
		},
		LogConfig: LogConfig{
			Level:       "warn",
			Development: false,
		},
	}
}
