package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds all process configuration. It is loaded once at startup from
// environment variables and treated as immutable afterwards.
type Config struct {
	DatabaseURL  string
	JWTSecret    string
	TokenTTL     time.Duration
	StoreTimeout time.Duration
	Port         string
	GinMode      string
	CORSOrigins  []string
}

// Load reads the configuration from the environment. A missing required
// variable is a startup error, not something deferred to request time.
func Load() (*Config, error) {
	cfg := &Config{}

	var missing []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}

	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	cfg.TokenTTL = getEnvAsDuration("TOKEN_TTL", 24*time.Hour)
	cfg.StoreTimeout = getEnvAsDuration("STORE_TIMEOUT", 5*time.Second)
	cfg.Port = getEnv("PORT", "8080")
	cfg.GinMode = getEnv("GIN_MODE", "debug")
	cfg.CORSOrigins = strings.Split(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"), ",")

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	return defaultValue
}
