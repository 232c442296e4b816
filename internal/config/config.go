package config

import (
	"fmt"
	"os"
)

// Config holds process configuration read from the environment.
type Config struct {
	Port        string
	Environment string

	DatabaseURL string

	RedisHost     string
	RedisPort     string
	RedisPassword string

	JWTSecret []byte

	GoogleClientID     string
	GoogleClientSecret string
	OAuthRedirectURL   string

	LogLevel string
	LogFile  string

	// OTLPEndpoint enables tracing when non-empty.
	OTLPEndpoint string
}

// Load reads configuration from environment variables. JWT_SECRET is
// required; everything else has a development default or is optional.
func Load() (*Config, error) {
	cfg := &Config{
		Port:               getEnvOrDefault("PORT", "8787"),
		Environment:        getEnvOrDefault("ENVIRONMENT", "development"),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		RedisHost:          os.Getenv("REDIS_HOST"),
		RedisPort:          os.Getenv("REDIS_PORT"),
		RedisPassword:      os.Getenv("REDIS_PASSWORD"),
		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		OAuthRedirectURL:   os.Getenv("OAUTH_REDIRECT_URL"),
		LogLevel:           getEnvOrDefault("LOG_LEVEL", "info"),
		LogFile:            getEnvOrDefault("LOG_FILE", "server.log"),
		OTLPEndpoint:       os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}
	cfg.JWTSecret = []byte(secret)

	return cfg, nil
}

// GoogleOAuthEnabled reports whether Google sign-in is configured.
func (c *Config) GoogleOAuthEnabled() bool {
	return c.GoogleClientID != "" && c.GoogleClientSecret != ""
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
