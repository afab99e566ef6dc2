package config

import (
	"errors"
	"fmt"
)

// Драйверы хранилища пользователей.
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// ErrUnknownStorageDriver возвращается для неподдерживаемого значения AUTH_STORAGE_DRIVER.
var ErrUnknownStorageDriver = errors.New("unknown storage driver")

// StorageConfig выбирает реализацию хранилища пользователей.
type StorageConfig struct {
	Driver string `yaml:"driver" env:"AUTH_STORAGE_DRIVER" env-default:"postgres"`
}

// Validate проверяет имя драйвера.
func (s *StorageConfig) Validate() error {
	switch s.Driver {
	case DriverPostgres, DriverMemory:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStorageDriver, s.Driver)
	}
}
