package config

import (
	"strings"
	"testing"

	"github.com/spf13/viper"
)

// resetViper clears all viper state between tests to avoid cross-contamination.
func resetViper() {
	viper.Reset()
}

func TestLoad_Defaults(t *testing.T) {
	resetViper()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"Seed", cfg.Seed, uint64(0x5eed)},
		{"LogLevel", cfg.LogLevel, "info"},
		{"LogColor", cfg.LogColor, true},
		{"Verbose", cfg.Verbose, false},
		{"TelemetryPath", cfg.TelemetryPath, ""},
		{"Cache.CapacityBytes", cfg.Cache.CapacityBytes, int64(64 << 20)},
		{"Cache.Store", cfg.Cache.Store, "sqlite://.mcu/blobs.db"},
		{"ImageHash.Threshold", cfg.ImageHash.Threshold, 0.9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
			}
		})
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	tests := []struct {
		name   string
		envKey string
		envVal string
		field  func(Config) any
		want   any
	}{
		{
			name:   "seed",
			envKey: "MCU_SEED",
			envVal: "99",
			field:  func(c Config) any { return c.Seed },
			want:   uint64(99),
		},
		{
			name:   "log_level",
			envKey: "MCU_LOG_LEVEL",
			envVal: "debug",
			field:  func(c Config) any { return c.LogLevel },
			want:   "debug",
		},
		{
			name:   "cache.capacity_bytes",
			envKey: "MCU_CACHE_CAPACITY_BYTES",
			envVal: "1024",
			field:  func(c Config) any { return c.Cache.CapacityBytes },
			want:   int64(1024),
		},
		{
			name:   "cache.store",
			envKey: "MCU_CACHE_STORE",
			envVal: "bolt:///tmp/blobs.db",
			field:  func(c Config) any { return c.Cache.Store },
			want:   "bolt:///tmp/blobs.db",
		},
		{
			name:   "imghash.threshold",
			envKey: "MCU_IMGHASH_THRESHOLD",
			envVal: "0.75",
			field:  func(c Config) any { return c.ImageHash.Threshold },
			want:   0.75,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetViper()
			// Map MCU_CACHE_STORE onto cache.store.
			viper.SetEnvPrefix("MCU")
			viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
			viper.AutomaticEnv()

			t.Setenv(tt.envKey, tt.envVal)

			cfg, err := Load()
			if err != nil {
				t.Fatalf("Load() returned unexpected error: %v", err)
			}
			got := tt.field(cfg)
			if got != tt.want {
				t.Errorf("%s: got %v (%T), want %v (%T)", tt.name, got, got, tt.want, tt.want)
			}
		})
	}
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	tests := []struct {
		key string
		val any
	}{
		{"cache.capacity_bytes", 0},
		{"imghash.threshold", 1.5},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			resetViper()
			viper.Set(tt.key, tt.val)
			if _, err := Load(); err == nil {
				t.Errorf("Load() with %s=%v returned nil error", tt.key, tt.val)
			}
		})
	}
}
