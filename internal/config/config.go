package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	DatabaseURL    string
	HTTPListenAddr string
	LogLevel       string
	ServiceName    string

	// ProviderAPIURL is the base URL of the storage provider's control-plane
	// REST API.
	ProviderAPIURL string
	// SpacesEndpoint is the S3-compatible endpoint pattern for the data
	// plane. %s is replaced with the bucket's region.
	SpacesEndpoint string

	// FanoutConcurrency bounds how many tenant accounts are queried at once
	// during a fan-out read.
	FanoutConcurrency int
	// TenantCallTimeout is the per-tenant deadline for one provider call.
	TenantCallTimeout time.Duration

	// MigrationsDir, when set, runs pending goose migrations at startup.
	MigrationsDir string
}

func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		HTTPListenAddr:    getEnv("HTTP_LISTEN_ADDR", ":8080"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		ServiceName:       getEnv("SERVICE_NAME", "cloudwin-api"),
		ProviderAPIURL:    getEnv("PROVIDER_API_URL", "https://api.digitalocean.com"),
		SpacesEndpoint:    getEnv("SPACES_ENDPOINT", "https://%s.digitaloceanspaces.com"),
		FanoutConcurrency: getEnvInt("FANOUT_CONCURRENCY", 8),
		TenantCallTimeout: getEnvDuration("TENANT_CALL_TIMEOUT", 15*time.Second),
		MigrationsDir:     getEnv("MIGRATIONS_DIR", ""),
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.ProviderAPIURL == "" {
		return fmt.Errorf("PROVIDER_API_URL is required")
	}
	if c.FanoutConcurrency < 1 {
		return fmt.Errorf("FANOUT_CONCURRENCY must be at least 1")
	}
	if c.TenantCallTimeout <= 0 {
		return fmt.Errorf("TENANT_CALL_TIMEOUT must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
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
