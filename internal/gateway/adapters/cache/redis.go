// Package cache содержит реализации кэша шлюза.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"cryptovest/internal/gateway/config"
	"cryptovest/internal/gateway/ports/cache"
	"cryptovest/pkg/logger"
)

const (
	LogRedisConnected = "connected to redis"

	ErrorFailedToConnect = "failed to connect to redis"
	ErrorFailedToGet     = "failed to get value from redis"
	ErrorFailedToSet     = "failed to set value in redis"
	ErrorFailedToDelete  = "failed to delete value from redis"
	ErrorFailedToClose   = "failed to close redis connection"
)

// RedisCache хранит профили и ответы справочников в Redis.
// Все ключи получают общий префикс, чтобы не пересекаться с другими приложениями в той же базе.
type RedisCache struct {
	client     *redis.Client
	defaultTTL time.Duration
	prefix     string
}

// NewRedisCache подключается к Redis. Первая проверка соединения ограничена ConnectTimeout.
func NewRedisCache(ctx context.Context, cfg *config.RedisConfig) (cache.Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:            cfg.GetAddress(),
		Password:        cfg.Password,
		DB:              cfg.DB,
		DialTimeout:     cfg.ConnectTimeout,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		PoolSize:        cfg.PoolSize,
		MinIdleConns:    cfg.MinIdle,
		ConnMaxIdleTime: cfg.IdleTimeout,
		ConnMaxLifetime: cfg.MaxConnLifetime,
	})

	pingCtx := ctx
	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		pingCtx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%s %s: %w", ErrorFailedToConnect, cfg.GetAddress(), err)
	}

	logger.Log(ctx).Info(ctx, LogRedisConnected,
		zap.String("address", cfg.GetAddress()),
		zap.String("key_prefix", cfg.KeyPrefix),
		zap.Duration("default_ttl", cfg.DefaultTTL))

	return NewRedisCacheFromClient(client, cfg.DefaultTTL, cfg.KeyPrefix), nil
}

// NewRedisCacheFromClient оборачивает готовый клиент.
func NewRedisCacheFromClient(client *redis.Client, defaultTTL time.Duration, prefix string) cache.Cache {
	return &RedisCache{client: client, defaultTTL: defaultTTL, prefix: prefix}
}

func (c *RedisCache) key(key string) string {
	return c.prefix + key
}

// fail логирует ошибку Redis и заворачивает ее. Ключ пишется без префикса, как его видит вызывающий.
func (c *RedisCache) fail(ctx context.Context, msg, key string, err error) error {
	logger.Log(ctx).Warn(ctx, msg, zap.String("key", key), zap.Error(err))
	return fmt.Errorf("%s: %w", msg, err)
}

// Get возвращает "" без ошибки для отсутствующего ключа.
func (c *RedisCache) Get(ctx context.Context, key string) (string, error) {
	value, err := c.client.Get(ctx, c.key(key)).Result()
	switch {
	case errors.Is(err, redis.Nil):
		return "", nil
	case err != nil:
		return "", c.fail(ctx, ErrorFailedToGet, key, err)
	}
	return value, nil
}

// Set сохраняет значение. Нулевой ttl заменяется на TTL по умолчанию (TTL профиля).
func (c *RedisCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}
	if err := c.client.Set(ctx, c.key(key), value, ttl).Err(); err != nil {
		return c.fail(ctx, ErrorFailedToSet, key, err)
	}
	return nil
}

func (c *RedisCache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, c.key(key)).Err(); err != nil {
		return c.fail(ctx, ErrorFailedToDelete, key, err)
	}
	return nil
}

func (c *RedisCache) Close() error {
	if err := c.client.Close(); err != nil {
		return fmt.Errorf("%s: %w", ErrorFailedToClose, err)
	}
	return nil
}
