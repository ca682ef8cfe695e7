package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "memory", cfg.StoreBackend)
	require.Equal(t, "coverage-length", cfg.DefaultStrategy)
	require.Equal(t, 2*time.Hour, cfg.DialogueSessionTTL)
	require.Equal(t, 30, cfg.EvaluationRateLimit)
	require.Equal(t, ":8080", cfg.HTTPAddress())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("SALES_APP_PORT", ":9090")
	t.Setenv("SALES_STORE_BACKEND", "Redis")
	t.Setenv("SALES_REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("SALES_EVALUATION_STRATEGY", "Bucketed")
	t.Setenv("SALES_DIALOGUE_SESSION_TTL", "15m")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.HTTPAddress())
	require.Equal(t, "redis", cfg.StoreBackend)
	require.Equal(t, "bucketed", cfg.DefaultStrategy)
	require.Equal(t, 15*time.Minute, cfg.DialogueSessionTTL)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Run("strategy", func(t *testing.T) {
		t.Setenv("SALES_EVALUATION_STRATEGY", "llm")
		_, err := Load()
		require.Error(t, err)
	})

	t.Run("backend", func(t *testing.T) {
		t.Setenv("SALES_STORE_BACKEND", "localstorage")
		_, err := Load()
		require.Error(t, err)
	})

	t.Run("sql without database", func(t *testing.T) {
		t.Setenv("SALES_STORE_BACKEND", "sql")
		_, err := Load()
		require.Error(t, err)
	})

	t.Run("ttl", func(t *testing.T) {
		t.Setenv("SALES_DIALOGUE_SESSION_TTL", "soon")
		_, err := Load()
		require.Error(t, err)
	})
}
