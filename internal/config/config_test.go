package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	return &Config{
		JWTSecret: "a-development-secret",
		Port:      "5000",
		DBHost:    "localhost",
		DBSSLMode: "disable",
		Env:       "development",
	}
}

func TestConfigValidate(t *testing.T) {
	t.Run("valid development config", func(t *testing.T) {
		assert.NoError(t, validConfig().Validate())
	})

	t.Run("missing port", func(t *testing.T) {
		cfg := validConfig()
		cfg.Port = ""
		assert.ErrorContains(t, cfg.Validate(), "PORT")
	})

	t.Run("missing JWT secret is fatal", func(t *testing.T) {
		cfg := validConfig()
		cfg.JWTSecret = ""
		assert.ErrorContains(t, cfg.Validate(), "JWT_SECRET")
	})

	t.Run("default secret rejected in production", func(t *testing.T) {
		cfg := validConfig()
		cfg.Env = "production"
		cfg.JWTSecret = "your-secret-key-change-in-production"
		assert.Error(t, cfg.Validate())
	})

	t.Run("short secret rejected in production", func(t *testing.T) {
		cfg := validConfig()
		cfg.Env = "production"
		cfg.JWTSecret = "short"
		assert.Error(t, cfg.Validate())
	})

	t.Run("empty DB host is non-fatal", func(t *testing.T) {
		cfg := validConfig()
		cfg.DBHost = ""
		assert.NoError(t, cfg.Validate())
	})
}
