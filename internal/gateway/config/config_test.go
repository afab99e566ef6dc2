package config_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cryptovest/internal/gateway/config"
	pkgconfig "cryptovest/pkg/config"
	"cryptovest/pkg/logger"
)

func TestLoad(t *testing.T) {
	prev := pkgconfig.DefaultEnvFile
	pkgconfig.DefaultEnvFile = filepath.Join(t.TempDir(), "missing.env")
	t.Cleanup(func() { pkgconfig.DefaultEnvFile = prev })

	t.Setenv("GATEWAY_HTTP_PORT", "9000")
	t.Setenv("GATEWAY_LOGGER_MODE", "production")

	cfg, err := config.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9000", cfg.HTTP.GetAddress())
	assert.Equal(t, "/login", cfg.Session.LoginPath)
	assert.Equal(t, "token", cfg.Session.CookieName)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "localhost:6379", cfg.Redis.GetAddress())
	assert.Equal(t, 24*time.Hour, cfg.Directory.CountriesTTL)
	assert.Equal(t, time.Minute, cfg.Directory.MarketTTL)
	assert.Equal(t, logger.Production, cfg.Logging.GetEnvironment())
	assert.Equal(t, 5*time.Second, cfg.Shutdown.GetTimeout())
}

func TestLoad_ShutdownAndRedisOverrides(t *testing.T) {
	prev := pkgconfig.DefaultEnvFile
	pkgconfig.DefaultEnvFile = filepath.Join(t.TempDir(), "missing.env")
	t.Cleanup(func() { pkgconfig.DefaultEnvFile = prev })

	t.Setenv("GATEWAY_GRACEFUL_SHUTDOWN_TIMEOUT", "750ms")
	t.Setenv("GATEWAY_REDIS_KEY_PREFIX", "cv-test:")

	cfg, err := config.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 750*time.Millisecond, cfg.Shutdown.GetTimeout())
	assert.Equal(t, "cv-test:", cfg.Redis.KeyPrefix)
}

func TestShutdownConfig_GetTimeoutFallback(t *testing.T) {
	for _, timeout := range []time.Duration{0, -time.Second} {
		cfg := config.ShutdownConfig{Timeout: timeout}
		assert.Equal(t, config.DefaultShutdownTimeout, cfg.GetTimeout())
	}
}
