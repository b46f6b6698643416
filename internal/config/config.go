// Package config loads server configuration from the environment. A .env
// file in the working directory is read first when present.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all server configuration.
type Config struct {
	HTTPAddr        string
	DBPath          string
	ImagesDir       string
	JWTSecret       string
	LogLevel        string
	Development     bool
	BackupInterval  time.Duration
	ShutdownTimeout time.Duration
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	// Missing .env is fine; the environment still applies.
	_ = godotenv.Load()

	cfg := &Config{
		HTTPAddr:        getEnv("TILLBOOK_ADDR", ":8080"),
		DBPath:          getEnv("TILLBOOK_DB_PATH", "tillbook.db"),
		ImagesDir:       getEnv("TILLBOOK_IMAGES_DIR", "images"),
		JWTSecret:       getEnv("TILLBOOK_JWT_SECRET", ""),
		LogLevel:        getEnv("TILLBOOK_LOG_LEVEL", "info"),
		Development:     getEnvBool("TILLBOOK_DEV", false),
		BackupInterval:  getEnvDuration("TILLBOOK_BACKUP_INTERVAL", time.Hour),
		ShutdownTimeout: getEnvDuration("TILLBOOK_SHUTDOWN_TIMEOUT", 10*time.Second),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("TILLBOOK_JWT_SECRET is required")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
