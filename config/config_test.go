package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "test-secret")
		t.Setenv("OPENAI_API_KEY", "")
		t.Setenv("REQUIRE_GENERATION_BACKEND", "")
		t.Setenv("GENERATION_DELAY_MS", "")
		t.Setenv("REDIS_DB", "")

		cfg, err := LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, "8080", cfg.ServerPort)
		assert.Equal(t, "localhost", cfg.DBHost)
		assert.Equal(t, "gpt-4", cfg.OpenAIModel)
		assert.Equal(t, 500*time.Millisecond, cfg.GenerationDelay)
		assert.False(t, cfg.RequireBackend)
	})

	t.Run("requires JWT secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")

		_, err := LoadConfig()
		assert.Error(t, err)
	})

	t.Run("rejects backend requirement without API key", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "test-secret")
		t.Setenv("OPENAI_API_KEY", "")
		t.Setenv("REQUIRE_GENERATION_BACKEND", "true")

		_, err := LoadConfig()
		assert.Error(t, err)
	})

	t.Run("parses generation delay override", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "test-secret")
		t.Setenv("REQUIRE_GENERATION_BACKEND", "")
		t.Setenv("GENERATION_DELAY_MS", "250")

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, 250*time.Millisecond, cfg.GenerationDelay)
	})

	t.Run("rejects malformed redis db", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "test-secret")
		t.Setenv("REQUIRE_GENERATION_BACKEND", "")
		t.Setenv("GENERATION_DELAY_MS", "")
		t.Setenv("REDIS_DB", "not-a-number")

		_, err := LoadConfig()
		assert.Error(t, err)
	})
}
