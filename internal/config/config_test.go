package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Default Values", func(t *testing.T) {
		cfg, err := LoadConfig()
		assert.NoError(t, err)
		assert.Equal(t, "local", cfg.AppEnv)
		assert.Equal(t, "8080", cfg.Port)
		assert.Equal(t, "default", cfg.Domain)
		assert.Equal(t, "http://localhost:8080", cfg.PublicURL)
	})

	t.Run("Environment Variables", func(t *testing.T) {
		os.Setenv("DOMAIN", "jane.example.com")
		defer os.Unsetenv("DOMAIN")

		cfg, err := LoadConfig()
		assert.NoError(t, err)
		assert.Equal(t, "jane.example.com", cfg.Domain)
	})
}
