package config

import (
	"encoding/json"
	"fmt"
)

// Config represents the main notiz configuration
type Config struct {
	// Directory holding the notes and the metadata file
	RootPath string `json:"root_path" mapstructure:"root_path"`

	// Logging
	Logging LoggingConfig `json:"logging" mapstructure:"logging"`

	// Watch
	Watch WatchConfig `json:"watch" mapstructure:"watch"`

	// Metrics
	Metrics MetricsConfig `json:"metrics" mapstructure:"metrics"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level   string `json:"level" mapstructure:"level"`
	File    string `json:"file" mapstructure:"file"`
	Console bool   `json:"console" mapstructure:"console"`
	Pretty  bool   `json:"pretty" mapstructure:"pretty"`
}

// WatchConfig holds file watcher configuration
type WatchConfig struct {
	IgnoreHidden bool `json:"ignore_hidden" mapstructure:"ignore_hidden"`
}

// MetricsConfig holds the Prometheus endpoint configuration
type MetricsConfig struct {
	Enabled bool   `json:"enabled" mapstructure:"enabled"`
	Addr    string `json:"addr" mapstructure:"addr"`
}

// DefaultConfig returns a config with default values
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:   "info",
			Console: true,
			Pretty:  true,
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Addr:    "127.0.0.1:9464",
		},
	}
}

// String returns a JSON representation of the config
func (c *Config) String() string {
	data, _ := json.MarshalIndent(c, "", "  ")
	return string(data)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	v := NewValidator()

	if err := v.ValidateLogLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging: %w", err)
	}

	if c.Metrics.Enabled {
		if err := v.ValidateListenAddr(c.Metrics.Addr); err != nil {
			return fmt.Errorf("metrics: %w", err)
		}
	}

	if err := v.ValidateRootPath(c.RootPath); err != nil {
		return fmt.Errorf("root_path: %w", err)
	}

	return nil
}
