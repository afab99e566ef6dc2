package config

import (
	"fmt"
	"time"
)

// HTTPConfig представляет конфигурацию HTTP сервера.
type HTTPConfig struct {
	Host         string        `yaml:"host" env:"GATEWAY_HTTP_HOST" env-default:"0.0.0.0"`
	Port         int           `yaml:"port" env:"GATEWAY_HTTP_PORT" env-default:"8080"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"GATEWAY_HTTP_READ_TIMEOUT" env-default:"5s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"GATEWAY_HTTP_WRITE_TIMEOUT" env-default:"10s"`
}

// GetAddress возвращает адрес HTTP сервера.
func (c *HTTPConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// SessionConfig управляет cookie сессии и перенаправлением защищенных страниц.
type SessionConfig struct {
	LoginPath    string `yaml:"login_path" env:"GATEWAY_LOGIN_PATH" env-default:"/login"`
	CookieName   string `yaml:"cookie_name" env:"GATEWAY_SESSION_COOKIE" env-default:"token"`
	CookieSecure bool   `yaml:"cookie_secure" env:"GATEWAY_SESSION_COOKIE_SECURE" env-default:"false"`
}
