package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Server
	Port int
	Env  string

	// CORS
	AllowedOrigins []string

	// Aggregate data
	DataBaseURL  string
	DataDir      string
	FetchTimeout time.Duration
	SlidesFile   string

	// Sharing; empty RedisURL disables share links
	RedisURL     string
	ShareTTL     time.Duration
	ShareBaseURL string
}

// Load loads configuration from environment variables.
// It returns an error if critical configuration is missing.
func Load() (*Config, error) {
	cfg := &Config{
		Port: getEnvInt("PORT", 8080),
		Env:  getEnv("ENV", "development"),

		DataDir:      getEnv("DATA_DIR", ""),
		FetchTimeout: getEnvDuration("FETCH_TIMEOUT", 10*time.Second),
		SlidesFile:   getEnv("SLIDES_FILE", ""),

		RedisURL:     getEnv("REDIS_URL", ""),
		ShareTTL:     getEnvDuration("SHARE_TTL", 7*24*time.Hour),
		ShareBaseURL: strings.TrimRight(getEnv("SHARE_BASE_URL", ""), "/"),
	}

	// CORS
	origins := getEnv("ALLOWED_ORIGINS", "http://localhost:3000")
	for _, o := range strings.Split(origins, ",") {
		if trimmed := strings.TrimSpace(o); trimmed != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, trimmed)
		}
	}

	// Critical configuration - fail if missing
	var err error
	if cfg.DataBaseURL, err = getEnvRequired("DATA_BASE_URL"); err != nil {
		return nil, err
	}

	if cfg.FetchTimeout <= 0 {
		return nil, fmt.Errorf("FETCH_TIMEOUT must be positive, got %s", cfg.FetchTimeout)
	}

	return cfg, nil
}

// IsProduction reports whether ENV selects production logging and docs.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvRequired(key string) (string, error) {
	if value := os.Getenv(key); value != "" {
		return value, nil
	}
	return "", fmt.Errorf("missing required environment variable: %s", key)
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
