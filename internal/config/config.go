package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	Port string

	// Auth
	RepricerAPIKey string

	// Request limits
	MaxBodyBytes int64

	// Pipeline defaults
	DefaultMarker string
	DefaultLimit  int
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8091"),

		RepricerAPIKey: os.Getenv("REPRICER_API_KEY"),

		MaxBodyBytes: envInt64("MAX_BODY_BYTES", 10485760), // 10MB

		DefaultMarker: envOr("DEFAULT_MARKER", "$"),
		DefaultLimit:  envInt("DEFAULT_LIMIT", 0),
	}

	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = 10485760
	}
	if len(cfg.DefaultMarker) != 1 {
		cfg.DefaultMarker = "$"
	}
	if cfg.DefaultLimit < 0 {
		cfg.DefaultLimit = 0
	}

	return cfg
}

func (c Config) Validate() error {
	if c.RepricerAPIKey == "" {
		return fmt.Errorf("REPRICER_API_KEY is required")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}
