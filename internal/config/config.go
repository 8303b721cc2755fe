// Package config provides configuration management for the social API.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config holds all configuration for the social API server and seed tool.
type Config struct {
	// Server settings
	Port            string `validate:"required,numeric"`
	Playground      bool
	ShutdownTimeout time.Duration `validate:"gt=0"`

	// Database settings
	DatabaseURL  string `validate:"required"`
	MaxOpenConns int    `validate:"gte=1"`
	MaxIdleConns int    `validate:"gte=0,ltefield=MaxOpenConns"`
	AutoMigrate  bool

	// Logging settings
	LogLevel  string `validate:"oneof=debug info warn error"`
	LogFormat string `validate:"oneof=json text"`

	// Auth settings
	JWTSecret    string
	AuthIssuer   string
	AuthAudience string
	AuthDebug    bool

	// Telemetry settings
	TraceStdout bool
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Port:            getEnv("SOCIAL_API_PORT", "8502"),
		Playground:      getEnvBool("SOCIAL_API_PLAYGROUND", true),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),

		DatabaseURL:  getEnv("DATABASE_URL", ""),
		MaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 25),
		MaxIdleConns: getEnvInt("DB_MAX_IDLE_CONNS", 5),
		AutoMigrate:  getEnvBool("SOCIAL_API_AUTO_MIGRATE", true),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),

		JWTSecret:    getEnv("AUTH_JWT_SECRET", ""),
		AuthIssuer:   getEnv("AUTH_ISSUER", ""),
		AuthAudience: getEnv("AUTH_AUDIENCE", ""),
		AuthDebug:    getEnvBool("AUTH_DEBUG", false),

		TraceStdout: getEnvBool("OTEL_TRACES_STDOUT", false),
	}
}

var validate = validator.New()

// Validate checks required fields and value ranges.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
