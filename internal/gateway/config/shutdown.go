package config

import "time"

// DefaultShutdownTimeout используется, если таймаут не задан или не положителен.
const DefaultShutdownTimeout = 5 * time.Second

// ShutdownConfig задает общий бюджет на остановку HTTP, закрытие кэша и пула Postgres.
type ShutdownConfig struct {
	Timeout time.Duration `yaml:"timeout" env:"GATEWAY_GRACEFUL_SHUTDOWN_TIMEOUT" env-default:"5s"`
}

func (c *ShutdownConfig) GetTimeout() time.Duration {
	if c.Timeout <= 0 {
		return DefaultShutdownTimeout
	}
	return c.Timeout
}
