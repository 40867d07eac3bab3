package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetEnv removes keys for the duration of the test.
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		if prev, ok := os.LookupEnv(key); ok {
			t.Cleanup(func() { _ = os.Setenv(key, prev) })
		} else {
			t.Cleanup(func() { _ = os.Unsetenv(key) })
		}
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoad_Defaults(t *testing.T) {
	unsetEnv(t, "APP_ENV", "CACHE_BACKEND", "CACHE_TTL", "REQUEST_TIMEOUT", "BREAKER_MIN_REQUESTS", "INCLUDE_RAW_DATA")
	t.Setenv("SERP_API_KEY", "test-key")

	cfg, err := Load("", "")
	require.NoError(t, err)

	assert.Equal(t, "test-key", cfg.SerpAPI.APIKey)
	assert.Equal(t, "production", cfg.App.Env)
	assert.Equal(t, 3*time.Second, cfg.SerpAPI.RequestTimeout)
	assert.Equal(t, 10*time.Second, cfg.Breaker.Window)
	assert.Equal(t, 30*time.Second, cfg.Breaker.Cooldown)
	assert.Equal(t, 0.5, cfg.Breaker.FailureRatio)
	assert.Equal(t, uint32(10), cfg.Breaker.MinRequests)
	assert.Equal(t, "memory", cfg.Cache.Backend)
	assert.Equal(t, 600*time.Second, cfg.Cache.TTL)
	assert.Equal(t, 120*time.Second, cfg.Cache.SweepInterval)
	assert.True(t, cfg.App.IncludeRawData)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SERP_API_KEY", "test-key")
	t.Setenv("CACHE_BACKEND", "none")
	t.Setenv("BREAKER_COOLDOWN", "45s")
	t.Setenv("RATE_LIMIT_RPS", "2.5")

	cfg, err := Load("", "")
	require.NoError(t, err)

	assert.Equal(t, "none", cfg.Cache.Backend)
	assert.Equal(t, 45*time.Second, cfg.Breaker.Cooldown)
	assert.Equal(t, 2.5, cfg.RateLimit.RequestsPerSecond)
}

func TestLoad_MissingAPIKey(t *testing.T) {
	unsetEnv(t, "SERP_API_KEY")

	_, err := Load("", "")
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestLoad_MissingAPIKeyInConfigFile(t *testing.T) {
	unsetEnv(t, "SERP_API_KEY")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cache:\n  backend: none\n"), 0o600))

	_, err := Load(path, "")
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestLoad_BlankAPIKey(t *testing.T) {
	t.Setenv("SERP_API_KEY", "   ")

	_, err := Load("", "")
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestLoad_EnvFile(t *testing.T) {
	unsetEnv(t, "SERP_API_KEY")

	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("SERP_API_KEY=from-file\n"), 0o600))

	cfg, err := Load("", path)
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.SerpAPI.APIKey)
}

func TestLoad_MissingEnvFile(t *testing.T) {
	_, err := Load("", filepath.Join(t.TempDir(), "absent.env"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load env file")
}

func TestLoad_YAMLFile(t *testing.T) {
	t.Setenv("SERP_API_KEY", "test-key")
	unsetEnv(t, "CACHE_BACKEND", "REDIS_HOST")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cache:\n  backend: redis\nredis:\n  host: cache.internal\n"), 0o600))

	cfg, err := Load(path, "")
	require.NoError(t, err)
	assert.Equal(t, "redis", cfg.Cache.Backend)
	assert.Equal(t, "cache.internal", cfg.Redis.Host)
}

func TestLoad_RejectsBadValues(t *testing.T) {
	t.Setenv("SERP_API_KEY", "test-key")

	t.Run("cache backend", func(t *testing.T) {
		t.Setenv("CACHE_BACKEND", "disk")
		_, err := Load("", "")
		assert.ErrorContains(t, err, "CACHE_BACKEND")
	})

	t.Run("failure ratio", func(t *testing.T) {
		t.Setenv("BREAKER_FAILURE_RATIO", "1.5")
		_, err := Load("", "")
		assert.ErrorContains(t, err, "BREAKER_FAILURE_RATIO")
	})
}
