// Package config loads settings for the tempoch command.
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/Siderust/tempoch"
)

// Config holds the runtime configuration of a tempoch session.
// Values are populated from .tempoch.yaml, TEMPOCH_* env vars, and CLI flags.
type Config struct {
	Prompt       string `mapstructure:"prompt"`
	HistoryFile  string `mapstructure:"history_file"`
	DefaultScale string `mapstructure:"default_scale"`
	Verbose      bool   `mapstructure:"verbose"`
}

// Load reads configuration from v, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load(v *viper.Viper) (Config, error) {
	v.SetDefault("prompt", ">>> ")
	v.SetDefault("history_file", "")
	v.SetDefault("default_scale", "JD")
	v.SetDefault("verbose", false)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if _, err := tempoch.ParseScale(cfg.DefaultScale); err != nil {
		return Config{}, fmt.Errorf("default_scale: %w", err)
	}
	return cfg, nil
}

// Scale returns the parsed default scale. Load has already rejected
// unknown names, so an invalid Config falls back to JD.
func (c Config) Scale() tempoch.ScaleID {
	id, err := tempoch.ParseScale(c.DefaultScale)
	if err != nil {
		return tempoch.ScaleJD
	}
	return id
}
