package config

import (
	"os"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.StoreBaseURL != "http://localhost:3000" {
		t.Errorf("Expected default store URL, got '%s'", cfg.StoreBaseURL)
	}
	if cfg.DefaultUsername != "Sandra" {
		t.Errorf("Expected default username 'Sandra', got '%s'", cfg.DefaultUsername)
	}
	if cfg.PageSize != 5 {
		t.Errorf("Expected default page size 5, got %d", cfg.PageSize)
	}
	if cfg.Port != "8080" {
		t.Errorf("Expected Port to be '8080', got '%s'", cfg.Port)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	os.Setenv("STORE_BASE_URL", "https://store.example.com/")
	os.Setenv("DEFAULT_USERNAME", "Tom")
	os.Setenv("PAGE_SIZE", "10")
	defer os.Unsetenv("STORE_BASE_URL")
	defer os.Unsetenv("DEFAULT_USERNAME")
	defer os.Unsetenv("PAGE_SIZE")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.StoreBaseURL != "https://store.example.com" {
		t.Errorf("Expected trailing slash trimmed, got '%s'", cfg.StoreBaseURL)
	}
	if cfg.DefaultUsername != "Tom" {
		t.Errorf("Expected DefaultUsername to be 'Tom', got '%s'", cfg.DefaultUsername)
	}
	if cfg.PageSize != 10 {
		t.Errorf("Expected page size 10, got %d", cfg.PageSize)
	}
}

func TestConfigValidation(t *testing.T) {
	os.Setenv("PAGE_SIZE", "-3")
	defer os.Unsetenv("PAGE_SIZE")

	_, err := Load()
	if err == nil {
		t.Fatal("Expected validation error for negative page size")
	}

	cfgErr, ok := err.(*ConfigError)
	if !ok {
		t.Fatalf("Expected *ConfigError, got %T", err)
	}
	if cfgErr.Field != "PAGE_SIZE" {
		t.Errorf("Expected field 'PAGE_SIZE', got '%s'", cfgErr.Field)
	}
}

func TestConfigValidationStoreURL(t *testing.T) {
	os.Setenv("STORE_BASE_URL", "localhost:3000")
	defer os.Unsetenv("STORE_BASE_URL")

	_, err := Load()
	if err == nil {
		t.Error("Expected validation error for non-http URL")
	}
}

func TestGetEnvOrDefaultInt(t *testing.T) {
	os.Setenv("TEST_INT_VALUE", "not a number")
	defer os.Unsetenv("TEST_INT_VALUE")

	if got := getEnvOrDefaultInt("TEST_INT_VALUE", 7); got != 7 {
		t.Errorf("Expected fallback 7 for unparseable value, got %d", got)
	}
	if got := getEnvOrDefaultInt("TEST_INT_MISSING", 3); got != 3 {
		t.Errorf("Expected fallback 3 for missing value, got %d", got)
	}
}
