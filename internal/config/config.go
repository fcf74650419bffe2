package config

import (
	"os"
	"strconv"

	"datadash/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig
	Paths     PathConfig
	Profiling ProfilingConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// PathConfig holds file system paths
type PathConfig struct {
	// DataFile is the spreadsheet the dashboard explores. Defaults to
	// data.xlsx beside the binary, matching the conventional layout.
	DataFile string
	// NotesFile is an optional markdown file rendered in the notes panel.
	NotesFile string
}

// ProfilingConfig holds settings for the ops side-server
type ProfilingConfig struct {
	Port    string
	Enabled bool
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:    getEnvOrDefault("PORT", "8080"),
			GinMode: getEnvOrDefault("GIN_MODE", "debug"),
		},
		Paths: PathConfig{
			DataFile:  getEnvOrDefault("DATA_FILE", "data.xlsx"),
			NotesFile: getEnvOrDefault("NOTES_FILE", ""),
		},
		Profiling: ProfilingConfig{
			Port:    getEnvOrDefault("PPROF_PORT", "6060"),
			Enabled: getEnvBoolOrDefault("PPROF_ENABLED", true),
		},
	}

	if err := validateConfig(cfg); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return cfg, nil
}

func validateConfig(cfg *Config) error {
	if cfg.Paths.DataFile == "" {
		return errors.ConfigInvalid("DATA_FILE must not be empty")
	}
	if cfg.Server.Port == "" {
		return errors.ConfigInvalid("PORT must not be empty")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
