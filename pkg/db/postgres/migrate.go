package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"

	"cryptovest/pkg/logger"
)

const (
	LogMigrationsApplied = "database schema is up to date"

	ErrCreateMigrationInstance = "failed to create migration instance"
	ErrApplyMigrations         = "failed to apply migrations"
	ErrReadSchemaVersion       = "failed to read schema version"
)

// ErrDirtySchema означает, что предыдущая миграция оборвалась и схему нужно исправить вручную
// (migrate force <version>).
var ErrDirtySchema = errors.New("database schema is dirty")

// Migrate применяет все up-миграции из sourceURL (например, file:///app/migrations/auth)
// и возвращает итоговую версию схемы. Версия 0 означает, что миграций нет.
func Migrate(ctx context.Context, dsn, sourceURL string) (uint, error) {
	log := logger.Log(ctx).With(zap.String("source", sourceURL))

	m, err := migrate.New(sourceURL, dsn)
	if err != nil {
		log.Error(ctx, ErrCreateMigrationInstance, zap.Error(err))
		return 0, fmt.Errorf("%s: %w", ErrCreateMigrationInstance, err)
	}
	defer func() {
		if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
			log.Warn(ctx, "closing migrator", zap.NamedError("source_error", srcErr), zap.NamedError("db_error", dbErr))
		}
	}()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		var dirty migrate.ErrDirty
		if errors.As(err, &dirty) {
			log.Error(ctx, ErrApplyMigrations, zap.Int("dirty_version", dirty.Version))
			return 0, fmt.Errorf("%s: %w: version %d", ErrApplyMigrations, ErrDirtySchema, dirty.Version)
		}
		log.Error(ctx, ErrApplyMigrations, zap.Error(err))
		return 0, fmt.Errorf("%s: %w", ErrApplyMigrations, err)
	}

	version, dirty, err := m.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		version = 0
	case err != nil:
		return 0, fmt.Errorf("%s: %w", ErrReadSchemaVersion, err)
	case dirty:
		return 0, fmt.Errorf("%s: %w: version %d", ErrApplyMigrations, ErrDirtySchema, version)
	}

	log.Info(ctx, LogMigrationsApplied, zap.Uint("version", version))
	return version, nil
}
