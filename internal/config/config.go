package config

import (
	"os"
	"strconv"

	"github.com/Divyaeh-iitm/Simpledashboard/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	Upload   UploadConfig
	Analysis AnalysisConfig
	LogLevel string
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// UploadConfig holds upload handling settings
type UploadConfig struct {
	MaxSizeMB int64
}

// AnalysisConfig holds analysis execution settings
type AnalysisConfig struct {
	MaxConcurrent int
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:    getEnv("PORT", "8080"),
			GinMode: getEnv("GIN_MODE", "release"),
		},
		LogLevel: getEnv("LOG_LEVEL", "INFO"),
	}

	maxSize, err := getEnvInt("MAX_UPLOAD_MB", 50)
	if err != nil {
		return nil, err
	}
	if maxSize <= 0 {
		return nil, errors.ConfigInvalid("MAX_UPLOAD_MB must be positive")
	}
	cfg.Upload.MaxSizeMB = int64(maxSize)

	maxConcurrent, err := getEnvInt("ANALYSIS_MAX_CONCURRENT", 4)
	if err != nil {
		return nil, err
	}
	if maxConcurrent <= 0 {
		return nil, errors.ConfigInvalid("ANALYSIS_MAX_CONCURRENT must be positive")
	}
	cfg.Analysis.MaxConcurrent = maxConcurrent

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.Wrapf(err, "%s must be an integer", key)
	}
	return n, nil
}
