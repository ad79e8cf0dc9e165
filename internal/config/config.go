package config

import (
	"os"
	"strconv"

	"statlab/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Paths    PathConfig
	Batch    BatchConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port string
}

// DatabaseConfig holds database connection settings. Persistence is
// optional: an empty URL disables it.
type DatabaseConfig struct {
	URL string
}

// PathConfig holds file system paths
type PathConfig struct {
	SamplesDir string
	ReportsDir string
}

// BatchConfig holds batch analysis settings
type BatchConfig struct {
	Concurrency int
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Database: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
		Paths: PathConfig{
			SamplesDir: getEnv("STATLAB_SAMPLES_DIR", "samples"),
			ReportsDir: getEnv("STATLAB_REPORTS_DIR", "reports"),
		},
		Batch: BatchConfig{
			Concurrency: getEnvInt("STATLAB_BATCH_CONCURRENCY", 4),
		},
	}

	if config.Paths.SamplesDir == "" {
		return nil, errors.ConfigInvalid("STATLAB_SAMPLES_DIR must not be empty")
	}
	if config.Batch.Concurrency < 0 {
		return nil, errors.ConfigInvalid("STATLAB_BATCH_CONCURRENCY must not be negative")
	}

	return config, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
