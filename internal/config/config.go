package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server settings
	Port string `json:"port"`
	Host string `json:"host"`

	// Remote store settings
	StoreBaseURL      string `json:"store_base_url"`
	StorePingSchedule string `json:"store_ping_schedule"` // cron expression, empty disables the probe

	// Identity settings
	DefaultUsername string `json:"default_username"`

	// Browsing settings
	PageSize int `json:"page_size"`

	// Session settings
	SessionFile string `json:"session_file"`
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	config := &Config{
		Port:              getEnvOrDefault("PORT", "8080"),
		Host:              getEnvOrDefault("HOST", "0.0.0.0"),
		StoreBaseURL:      strings.TrimRight(getEnvOrDefault("STORE_BASE_URL", "http://localhost:3000"), "/"),
		StorePingSchedule: getEnvOrDefault("STORE_PING_SCHEDULE", "*/5 * * * *"),
		DefaultUsername:   getEnvOrDefault("DEFAULT_USERNAME", "Sandra"),
		PageSize:          getEnvOrDefaultInt("PAGE_SIZE", 5),
		SessionFile:       getEnvOrDefault("SESSION_FILE", ".blogboard-session.json"),
	}

	return config, config.validate()
}

// validate checks if required configuration values are present
func (c *Config) validate() error {
	if c.StoreBaseURL == "" {
		return &ConfigError{Field: "STORE_BASE_URL", Message: "remote store base URL is required"}
	}
	if !strings.HasPrefix(c.StoreBaseURL, "http://") && !strings.HasPrefix(c.StoreBaseURL, "https://") {
		return &ConfigError{Field: "STORE_BASE_URL", Message: "must be an http or https URL"}
	}
	if c.PageSize <= 0 {
		return &ConfigError{Field: "PAGE_SIZE", Message: "page size must be positive"}
	}
	return nil
}

// getEnvOrDefault returns environment variable value or default if not set
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvOrDefaultInt returns environment variable value as int or default if not set
func getEnvOrDefaultInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
