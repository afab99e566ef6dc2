// Package db поднимает базу данных пользователей: миграции и пул соединений.
package db

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"cryptovest/internal/auth/config"
	"cryptovest/pkg/db/postgres"
	"cryptovest/pkg/logger"
)

const (
	LogDBInitializing    = "initializing user database"
	LogDBInitialized     = "user database initialized successfully"
	LogMigrationStarting = "starting user database migrations"
)

const (
	ErrDBMigrations = "failed to apply user database migrations"
	ErrDBConnection = "failed to connect to user database"
	ErrGetPath      = "failed to get path"
)

// DB представляет соединение с базой данных пользователей.
type DB struct {
	database *postgres.Database
}

// MigrationsSource возвращает file:// URL каталога миграций.
func MigrationsSource(dir string) (string, error) {
	if filepath.IsAbs(dir) {
		return "file://" + filepath.ToSlash(dir), nil
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("%s: %w", ErrGetPath, err)
	}
	return "file://" + filepath.ToSlash(abs), nil
}

// PoolOptions переводит конфигурацию в параметры пула.
func PoolOptions(cfg *config.PostgresConfig) postgres.Options {
	return postgres.Options{
		DSN:            cfg.GetDSN(),
		MinConns:       cfg.MinConn,
		MaxConns:       cfg.MaxConn,
		ConnectTimeout: cfg.ConnectTimeout,
	}
}

// New применяет миграции и открывает пул соединений.
func New(ctx context.Context, cfg *config.PostgresConfig) (*DB, error) {
	log := logger.Log(ctx)

	log.Info(ctx, LogDBInitializing,
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("database", cfg.Database),
		zap.Int32("min_conn", cfg.MinConn),
		zap.Int32("max_conn", cfg.MaxConn))

	source, err := MigrationsSource(cfg.MigrationsDir)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDBMigrations, err)
	}

	log.Info(ctx, LogMigrationStarting, zap.String("migrations_path", source))
	version, err := postgres.Migrate(ctx, cfg.GetConnectionURL(), source)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDBMigrations, err)
	}

	database, err := postgres.New(ctx, PoolOptions(cfg))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDBConnection, err)
	}

	log.Info(ctx, LogDBInitialized, zap.Uint("schema_version", version))

	return &DB{database: database}, nil
}

// Close закрывает пул соединений.
func (db *DB) Close(ctx context.Context) {
	db.database.Close(ctx)
}

// Pool возвращает пул соединений.
func (db *DB) Pool() *pgxpool.Pool {
	return db.database.Pool()
}

// Ping проверяет соединение с базой данных.
func (db *DB) Ping(ctx context.Context) error {
	return db.database.Ping(ctx)
}
