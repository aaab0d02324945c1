// Package config loads runtime settings for the mcu command.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// CacheConfig holds settings for the blob cache commands.
type CacheConfig struct {
	CapacityBytes int64  `mapstructure:"capacity_bytes"`
	Store         string `mapstructure:"store"`
}

// ImageHashConfig holds settings for image comparison.
type ImageHashConfig struct {
	// Threshold is the similarity at or above which two images are
	// reported as matching.
	Threshold float64 `mapstructure:"threshold"`
}

// Config holds all runtime configuration.
// Values are populated from .mcu.yaml, MCU_* env vars, and CLI flags.
type Config struct {
	Seed          uint64          `mapstructure:"seed"`
	LogLevel      string          `mapstructure:"log_level"`
	LogColor      bool            `mapstructure:"log_color"`
	Verbose       bool            `mapstructure:"verbose"`
	TelemetryPath string          `mapstructure:"telemetry_path"`
	Cache         CacheConfig     `mapstructure:"cache"`
	ImageHash     ImageHashConfig `mapstructure:"imghash"`
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() (Config, error) {
	viper.SetDefault("seed", 0x5eed)
	viper.SetDefault("log_level", "info")
	viper.SetDefault("log_color", true)
	viper.SetDefault("verbose", false)
	viper.SetDefault("telemetry_path", "")
	viper.SetDefault("cache.capacity_bytes", 64<<20)
	viper.SetDefault("cache.store", "sqlite://.mcu/blobs.db")
	viper.SetDefault("imghash.threshold", 0.9)

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	if cfg.Cache.CapacityBytes <= 0 {
		return Config{}, fmt.Errorf("config: cache.capacity_bytes must be positive, got %d", cfg.Cache.CapacityBytes)
	}
	if cfg.ImageHash.Threshold < 0 || cfg.ImageHash.Threshold > 1 {
		return Config{}, fmt.Errorf("config: imghash.threshold must be within [0, 1], got %v", cfg.ImageHash.Threshold)
	}
	return cfg, nil
}
