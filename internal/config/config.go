package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all runtime configuration for a waypoint invocation.
// Values are populated from .waypoint.yaml, WAYPOINT_* env vars, and CLI
// flags. Algorithmic tuning constants (health weights, advisor ratios,
// the critical-float tolerance) live with their algorithms, not here.
type Config struct {
	DatabasePath    string `mapstructure:"database_path"`
	TelemetryPath   string `mapstructure:"telemetry_path"`
	MaxCascadeDepth int    `mapstructure:"max_cascade_depth"`
	Color           bool   `mapstructure:"color"`
	Verbose         bool   `mapstructure:"verbose"`
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() Config {
	viper.SetDefault("database_path", defaultDatabasePath())
	viper.SetDefault("telemetry_path", "")
	viper.SetDefault("max_cascade_depth", 1000)
	viper.SetDefault("color", true)
	viper.SetDefault("verbose", false)

	var cfg Config
	_ = viper.Unmarshal(&cfg)
	return cfg
}

// defaultDatabasePath places the database under the user's home directory,
// falling back to the working directory when home cannot be resolved.
func defaultDatabasePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "waypoint.db"
	}
	return filepath.Join(home, ".waypoint", "waypoint.db")
}
