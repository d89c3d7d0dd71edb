package config

import (
	"os"
	"strconv"

	"salesdash/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server ServerConfig
	Data   DataConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port        string
	MaxUploadMB int64
}

// DataConfig holds ingestion and aggregation settings
type DataConfig struct {
	SampleFile  string // optional CSV auto-loaded at startup
	DefaultTopN int    // default N for top-N rankings
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port:        getEnvOrDefault("PORT", "8080"),
			MaxUploadMB: int64(getEnvIntOrDefault("MAX_UPLOAD_MB", 50)),
		},
		Data: DataConfig{
			SampleFile:  getEnvOrDefault("SAMPLE_FILE", ""),
			DefaultTopN: getEnvIntOrDefault("DEFAULT_TOP_N", 10),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("server port is required")
	}
	if config.Server.MaxUploadMB <= 0 {
		return errors.ConfigInvalid("MAX_UPLOAD_MB must be positive")
	}
	if config.Data.DefaultTopN <= 0 {
		// Mirror the aggregation engine's sanitization rather than failing
		config.Data.DefaultTopN = 10
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

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
