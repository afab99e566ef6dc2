// Package cache определяет интерфейс кэша шлюза.
package cache

import (
	"context"
	"time"
)

// Cache хранит строковые значения с TTL.
// Get возвращает пустую строку и nil, если ключа нет.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)

	Set(ctx context.Context, key string, value string, ttl time.Duration) error

	Delete(ctx context.Context, key string) error

	Close() error
}
