package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the console needs to talk to the notification
// platform API and to keep its local state.
type Config struct {
	// Remote API
	APIBaseURL  string        `env:"API_BASE_URL" default:"http://localhost:8080"`
	HTTPTimeout time.Duration `env:"HTTP_TIMEOUT" default:"10s"`

	// Requests per second allowed against the API.
	RequestRate float64 `env:"REQUEST_RATE" default:"10"`

	// Local state (session, category mirror)
	StateDir string `env:"STATE_DIR" default:"~/.notifyhub"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" default:"info"`
	LogFormat string `env:"LOG_FORMAT" default:"text"`
}

// Load reads configuration from environment variables, optionally seeded
// from a .env file in the working directory.
func Load() (*Config, error) {
	// Missing .env is fine, system env vars still apply.
	_ = godotenv.Load(".env")

	config := &Config{}

	if err := loadEnvString(&config.APIBaseURL, "API_BASE_URL", "http://localhost:8080"); err != nil {
		return nil, err
	}
	if err := loadEnvDuration(&config.HTTPTimeout, "HTTP_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if err := loadEnvFloat(&config.RequestRate, "REQUEST_RATE", 10); err != nil {
		return nil, err
	}
	if err := loadEnvString(&config.StateDir, "STATE_DIR", defaultStateDir()); err != nil {
		return nil, err
	}
	if err := loadEnvString(&config.LogLevel, "LOG_LEVEL", "info"); err != nil {
		return nil, err
	}
	if err := loadEnvString(&config.LogFormat, "LOG_FORMAT", "text"); err != nil {
		return nil, err
	}

	return config, nil
}

func defaultStateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".notifyhub"
	}
	return filepath.Join(home, ".notifyhub")
}

// Helper functions for type conversion and validation
func loadEnvString(target *string, key, defaultValue string) error {
	if value := os.Getenv(key); value != "" {
		*target = value
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvFloat(target *float64, key string, defaultValue float64) error {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid numeric value for %s: %v", key, err)
		}
		*target = parsed
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvDuration(target *time.Duration, key string, defaultValue time.Duration) error {
	if value := os.Getenv(key); value != "" {
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration value for %s: %v", key, err)
		}
		*target = parsed
	} else {
		*target = defaultValue
	}
	return nil
}

// Validate performs validation on the loaded configuration.
func (c *Config) Validate() error {
	var errors []string

	if u, err := url.Parse(c.APIBaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errors = append(errors, "API_BASE_URL must be an absolute http(s) URL")
	}

	if c.HTTPTimeout <= 0 {
		errors = append(errors, "HTTP_TIMEOUT must be positive")
	}

	if c.RequestRate <= 0 {
		errors = append(errors, "REQUEST_RATE must be positive")
	}

	if c.StateDir == "" {
		errors = append(errors, "STATE_DIR must not be empty")
	}

	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLogLevels, c.LogLevel) {
		errors = append(errors, fmt.Sprintf("LOG_LEVEL must be one of: %s", strings.Join(validLogLevels, ", ")))
	}

	validLogFormats := []string{"text", "json"}
	if !contains(validLogFormats, c.LogFormat) {
		errors = append(errors, fmt.Sprintf("LOG_FORMAT must be one of: %s", strings.Join(validLogFormats, ", ")))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errors, "; "))
	}

	return nil
}

// Helper function to check if slice contains a string
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
