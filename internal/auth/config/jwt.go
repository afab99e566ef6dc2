package config

import "time"

// JWTConfig содержит настройки токена сессии и хэширования паролей.
type JWTConfig struct {
	SecretKey  string        `yaml:"secret_key" env:"AUTH_JWT_SECRET_KEY" env-default:"super-secret-key-change-me-in-production"`
	TokenTTL   time.Duration `yaml:"token_ttl" env:"AUTH_JWT_TOKEN_TTL" env-default:"24h"`
	BCryptCost int           `yaml:"bcrypt_cost" env:"AUTH_BCRYPT_COST" env-default:"10"`
}
