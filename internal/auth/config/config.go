// Package config содержит конфигурацию сервиса регистрации.
package config

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	pkgconfig "cryptovest/pkg/config"
	"cryptovest/pkg/logger"
)

const (
	serviceName = "auth"

	LogConfigLoaded     = "authentication configuration loaded"
	ErrFailedLoadConfig = "failed to load authentication configuration"
	ErrInvalidConfig    = "invalid authentication configuration"
)

// Config представляет полную конфигурацию сервиса регистрации.
type Config struct {
	Postgres PostgresConfig `yaml:"postgres"`
	JWT      JWTConfig      `yaml:"jwt"`
	Storage  StorageConfig  `yaml:"storage"`
}

// Load загружает конфигурацию из окружения и deploy/.env.
func Load(ctx context.Context) (*Config, error) {
	cfg, err := pkgconfig.Load[Config](ctx, serviceName)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrFailedLoadConfig, err)
	}
	if err := cfg.Storage.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrInvalidConfig, err)
	}

	logger.Log(ctx).Info(ctx, LogConfigLoaded,
		zap.String("storage_driver", cfg.Storage.Driver),
		zap.String("postgres_host", cfg.Postgres.Host),
		zap.Int("postgres_port", cfg.Postgres.Port),
		zap.Int32("postgres_min_conn", cfg.Postgres.MinConn),
		zap.Int32("postgres_max_conn", cfg.Postgres.MaxConn),
		zap.Duration("token_ttl", cfg.JWT.TokenTTL),
		zap.Int("bcrypt_cost", cfg.JWT.BCryptCost))

	return cfg, nil
}
