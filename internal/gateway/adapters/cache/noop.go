package cache

import (
	"context"
	"time"

	"cryptovest/internal/gateway/ports/cache"
)

// Noop ничего не хранит. Используется, когда Redis выключен.
type Noop struct{}

// NewNoop создает пустой кэш.
func NewNoop() cache.Cache { return Noop{} }

func (Noop) Get(context.Context, string) (string, error)              { return "", nil }
func (Noop) Set(context.Context, string, string, time.Duration) error { return nil }
func (Noop) Delete(context.Context, string) error                     { return nil }
func (Noop) Close() error                                             { return nil }
