package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type Config struct {
	DB    DBConfig    `toml:"database"`
	Plot  PlotConfig  `toml:"plot"`
	Cache CacheConfig `toml:"cache"`
}

type DBConfig struct {
	ConnectionString string `toml:"connection_string"` // The entire DB connection string.
}

type PlotConfig struct {
	OffsetUnit float64 `toml:"offset_unit"` // Vertical distance between channel baselines.
	LineWidth  float64 `toml:"line_width"`
	GapFactor  float64 `toml:"gap_factor"` // Threshold multiplier for gap detection.
	WidthIn    float64 `toml:"width_inches"`
	HeightIn   float64 `toml:"height_inches"`
}

type CacheConfig struct {
	PatientsTTLSeconds int `toml:"patients_ttl_seconds"`
	SessionsTTLSeconds int `toml:"sessions_ttl_seconds"`
}

// Returns the path to the config file.
func GetConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	dir := filepath.Join(home, ".config", "emgdash")
	return filepath.Join(dir, "config.toml"), nil
}

// Reads the configuration from the config file. A missing file is fine,
// every field has a default.
func LoadConfig() (*Config, error) {
	cfg := Defaults()

	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, err
		}
	}

	// Check for a DEV_MODE environment variable.
	if os.Getenv("DEV_MODE") == "true" {
		cfg.DB.ConnectionString = "file:./local.db?cache=shared&mode=rwc"
	}

	return cfg, nil
}

// Defaults mirrors the tuning the dashboard has always shipped with.
func Defaults() *Config {
	return &Config{
		Plot: PlotConfig{
			OffsetUnit: 2000,
			LineWidth:  0.8,
			GapFactor:  5.0,
			WidthIn:    12,
			HeightIn:   4,
		},
		Cache: CacheConfig{
			PatientsTTLSeconds: 300,
			SessionsTTLSeconds: 60, // Sessions change more often than patients.
		},
	}
}
