package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"ENV", "STORAGE", "DB_DSN", "HTTP_ADDR", "TELEGRAM_TOKEN",
	"ANALYTICS_CACHE_TTL", "ANALYTICS_CACHE_SIZE", "CACHE_SWEEP_INTERVAL", "SHUTDOWN_TIMEOUT",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range configKeys {
		t.Setenv(k, "")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_DSN", "postgres://localhost/timetable")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, StoragePostgres, cfg.Storage)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 5*time.Minute, cfg.AnalyticsCacheTTL)
	assert.Equal(t, 256, cfg.AnalyticsCacheSize)
	assert.Equal(t, time.Minute, cfg.CacheSweepInterval)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.False(t, cfg.BotEnabled())
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENV", "production")
	t.Setenv("STORAGE", "memory")
	t.Setenv("HTTP_ADDR", "127.0.0.1:9000")
	t.Setenv("TELEGRAM_TOKEN", "123:abc")
	t.Setenv("ANALYTICS_CACHE_TTL", "30s")
	t.Setenv("ANALYTICS_CACHE_SIZE", "10")
	t.Setenv("CACHE_SWEEP_INTERVAL", "2s")
	t.Setenv("SHUTDOWN_TIMEOUT", "1s")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, StorageMemory, cfg.Storage)
	assert.Equal(t, "127.0.0.1:9000", cfg.HTTPAddr)
	assert.True(t, cfg.BotEnabled())
	assert.Equal(t, 30*time.Second, cfg.AnalyticsCacheTTL)
	assert.Equal(t, 10, cfg.AnalyticsCacheSize)
	assert.Equal(t, 2*time.Second, cfg.CacheSweepInterval)
	assert.Equal(t, time.Second, cfg.ShutdownTimeout)
}

func TestFromEnv_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "missing dsn", env: map[string]string{"STORAGE": "postgres"}},
		{name: "unknown storage", env: map[string]string{"STORAGE": "redis"}},
		{name: "bad ttl", env: map[string]string{"STORAGE": "memory", "ANALYTICS_CACHE_TTL": "soon"}},
		{name: "negative ttl", env: map[string]string{"STORAGE": "memory", "ANALYTICS_CACHE_TTL": "-1s"}},
		{name: "bad size", env: map[string]string{"STORAGE": "memory", "ANALYTICS_CACHE_SIZE": "many"}},
		{name: "zero size", env: map[string]string{"STORAGE": "memory", "ANALYTICS_CACHE_SIZE": "0"}},
		{name: "bad sweep", env: map[string]string{"STORAGE": "memory", "CACHE_SWEEP_INTERVAL": "1"}},
		{name: "bad shutdown", env: map[string]string{"STORAGE": "memory", "SHUTDOWN_TIMEOUT": "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := FromEnv()
			assert.Error(t, err)
		})
	}
}
