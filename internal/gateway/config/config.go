// Package config содержит конфигурацию HTTP шлюза.
package config

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	pkgconfig "cryptovest/pkg/config"
	"cryptovest/pkg/logger"
)

const (
	serviceName = "gateway"

	LogConfigLoaded     = "gateway configuration loaded"
	ErrFailedLoadConfig = "failed to load gateway configuration"
)

// Config представляет полную конфигурацию шлюза.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Session   SessionConfig   `yaml:"session"`
	Redis     RedisConfig     `yaml:"redis"`
	Directory DirectoryConfig `yaml:"directory"`
	Logging   LoggingConfig   `yaml:"logging"`
	Shutdown  ShutdownConfig  `yaml:"shutdown"`
}

// Load загружает конфигурацию из окружения и deploy/.env.
func Load(ctx context.Context) (*Config, error) {
	cfg, err := pkgconfig.Load[Config](ctx, serviceName)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrFailedLoadConfig, err)
	}

	logger.Log(ctx).Info(ctx, LogConfigLoaded,
		zap.String("http_address", cfg.HTTP.GetAddress()),
		zap.String("login_path", cfg.Session.LoginPath),
		zap.Bool("redis_enabled", cfg.Redis.Enabled),
		zap.String("redis_address", cfg.Redis.GetAddress()),
		zap.Duration("profile_ttl", cfg.Redis.DefaultTTL),
		zap.String("countries_url", cfg.Directory.CountriesURL),
		zap.String("market_url", cfg.Directory.MarketURL),
		zap.String("log_level", cfg.Logging.Level),
		zap.String("log_mode", cfg.Logging.Mode),
		zap.Duration("shutdown_timeout", cfg.Shutdown.GetTimeout()))

	return cfg, nil
}
