package config

import "cryptovest/pkg/logger"

// LoggingConfig представляет конфигурацию логирования.
type LoggingConfig struct {
	Level string `yaml:"level" env:"GATEWAY_LOGGER_LEVEL" env-default:"info"`
	Mode  string `yaml:"mode" env:"GATEWAY_LOGGER_MODE" env-default:"development"`
}

// GetEnvironment возвращает режим работы логгера.
func (c *LoggingConfig) GetEnvironment() logger.Environment {
	if c.Mode == string(logger.Production) {
		return logger.Production
	}
	return logger.Development
}
