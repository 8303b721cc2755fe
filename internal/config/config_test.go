package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SOCIAL_API_PORT", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("LOG_LEVEL", "")

	cfg := Load()

	assert.Equal(t, "8502", cfg.Port)
	assert.Equal(t, 25, cfg.MaxOpenConns)
	assert.Equal(t, 5, cfg.MaxIdleConns)
	assert.True(t, cfg.AutoMigrate)
	assert.True(t, cfg.Playground)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Empty(t, cfg.JWTSecret)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SOCIAL_API_PORT", "9000")
	t.Setenv("DATABASE_URL", "postgres://localhost/social")
	t.Setenv("DB_MAX_OPEN_CONNS", "10")
	t.Setenv("SOCIAL_API_AUTO_MIGRATE", "false")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")
	t.Setenv("OTEL_TRACES_STDOUT", "true")

	cfg := Load()

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "postgres://localhost/social", cfg.DatabaseURL)
	assert.Equal(t, 10, cfg.MaxOpenConns)
	assert.False(t, cfg.AutoMigrate)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
	assert.True(t, cfg.TraceStdout)
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("DB_MAX_OPEN_CONNS", "lots")
	t.Setenv("SOCIAL_API_PLAYGROUND", "maybe")
	t.Setenv("SHUTDOWN_TIMEOUT", "soon")

	cfg := Load()

	assert.Equal(t, 25, cfg.MaxOpenConns)
	assert.True(t, cfg.Playground)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Port:            "8502",
			ShutdownTimeout: time.Second,
			DatabaseURL:     "postgres://localhost/social",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			LogLevel:        "info",
			LogFormat:       "json",
		}
	}

	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"missing database url", func(c *Config) { c.DatabaseURL = "" }},
		{"non numeric port", func(c *Config) { c.Port = "http" }},
		{"idle above open", func(c *Config) { c.MaxIdleConns = 30 }},
		{"zero open conns", func(c *Config) { c.MaxOpenConns = 0 }},
		{"unknown log level", func(c *Config) { c.LogLevel = "trace" }},
		{"unknown log format", func(c *Config) { c.LogFormat = "xml" }},
		{"zero shutdown timeout", func(c *Config) { c.ShutdownTimeout = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
