// Package config загружает конфигурацию сервисов из переменных окружения
// и необязательного .env файла.
package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ilyakaznacheev/cleanenv"
	"go.uber.org/zap"

	"cryptovest/pkg/logger"
)

const (
	msgLoadingConfiguration = "loading configuration"
	msgConfigurationLoaded  = "configuration loaded successfully"
	msgEnvFileMissing       = "env file not found, using process environment only"

	errFailedLoadConfiguration = "failed to load configuration"

	attrService = "service"
	attrPath    = "path"
)

// DefaultEnvFile - путь к .env файлу относительно рабочего каталога.
var DefaultEnvFile = filepath.Join("deploy", ".env")

// Load читает конфигурацию типа T из DefaultEnvFile и переменных окружения.
func Load[T any](ctx context.Context, serviceName string) (*T, error) {
	return LoadFrom[T](ctx, serviceName, DefaultEnvFile)
}

// LoadFrom читает конфигурацию типа T. Переменные окружения имеют приоритет над файлом;
// отсутствующий файл не считается ошибкой.
func LoadFrom[T any](ctx context.Context, serviceName, envPath string) (*T, error) {
	log := logger.Log(ctx).With(zap.String(attrService, serviceName))
	log.Info(ctx, msgLoadingConfiguration, zap.String(attrPath, envPath))

	var cfg T

	_, statErr := os.Stat(envPath)
	switch {
	case envPath != "" && statErr == nil:
		if err := cleanenv.ReadConfig(envPath, &cfg); err != nil {
			log.Error(ctx, errFailedLoadConfiguration, zap.Error(err))
			return nil, fmt.Errorf("%s: %w", errFailedLoadConfiguration, err)
		}
	case envPath == "" || errors.Is(statErr, fs.ErrNotExist):
		log.Debug(ctx, msgEnvFileMissing)
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			log.Error(ctx, errFailedLoadConfiguration, zap.Error(err))
			return nil, fmt.Errorf("%s: %w", errFailedLoadConfiguration, err)
		}
	default:
		log.Error(ctx, errFailedLoadConfiguration, zap.Error(statErr))
		return nil, fmt.Errorf("%s: %w", errFailedLoadConfiguration, statErr)
	}

	log.Info(ctx, msgConfigurationLoaded)
	return &cfg, nil
}
