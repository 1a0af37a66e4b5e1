package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	return &Config{
		JWTSecret:          "development-secret",
		Port:               "8080",
		DBPassword:         "password",
		Env:                "development",
		MaxUploadSizeMB:    5,
		ResumeParseTimeout: 30,
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, validConfig().Validate())

	t.Run("MissingPort", func(t *testing.T) {
		cfg := validConfig()
		cfg.Port = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("MissingJWTSecret", func(t *testing.T) {
		cfg := validConfig()
		cfg.JWTSecret = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("NonPositiveUploadSize", func(t *testing.T) {
		cfg := validConfig()
		cfg.MaxUploadSizeMB = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("NonPositiveParseTimeout", func(t *testing.T) {
		cfg := validConfig()
		cfg.ResumeParseTimeout = -1
		assert.Error(t, cfg.Validate())
	})
}

func TestValidateProductionHardening(t *testing.T) {
	strong := strings.Repeat("s", 40)

	t.Run("DefaultSecretRejected", func(t *testing.T) {
		cfg := validConfig()
		cfg.Env = "production"
		cfg.JWTSecret = "your-secret-key-change-in-production"
		cfg.DBPassword = "actually-strong"
		assert.Error(t, cfg.Validate())
	})

	t.Run("ShortSecretRejected", func(t *testing.T) {
		cfg := validConfig()
		cfg.Env = "production"
		cfg.JWTSecret = "short"
		cfg.DBPassword = "actually-strong"
		assert.Error(t, cfg.Validate())
	})

	t.Run("WeakDBPasswordRejected", func(t *testing.T) {
		cfg := validConfig()
		cfg.Env = "production"
		cfg.JWTSecret = strong
		cfg.DBPassword = "password"
		assert.Error(t, cfg.Validate())
	})

	t.Run("HardenedConfigAccepted", func(t *testing.T) {
		cfg := validConfig()
		cfg.Env = "prod"
		cfg.JWTSecret = strong
		cfg.DBPassword = "actually-strong"
		assert.NoError(t, cfg.Validate())
	})
}

func TestIsProduction(t *testing.T) {
	cfg := validConfig()
	assert.False(t, cfg.IsProduction())

	cfg.Env = "production"
	assert.True(t, cfg.IsProduction())

	cfg.Env = "prod"
	assert.True(t, cfg.IsProduction())
}
