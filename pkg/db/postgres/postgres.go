// Package postgres предоставляет пул соединений pgx и запуск миграций.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"cryptovest/pkg/logger"
)

const (
	LogConnecting = "connecting to Postgres database"
	LogConnected  = "successfully connected to Postgres"
	LogClosing    = "closing Postgres connection pool"

	ErrParseConfig  = "failed to parse connection config"
	ErrInvalidPool  = "invalid pool size"
	ErrCreatePool   = "failed to create connection pool"
	ErrPingDatabase = "failed to ping database"
)

// DefaultConnectTimeout ограничивает первую проверку соединения, если Options.ConnectTimeout не задан.
const DefaultConnectTimeout = 5 * time.Second

// Options описывает пул.
type Options struct {
	DSN            string
	MinConns       int32
	MaxConns       int32
	ConnectTimeout time.Duration
}

func (o Options) poolConfig() (*pgxpool.Config, error) {
	if o.MinConns < 0 || o.MaxConns < 1 || o.MinConns > o.MaxConns {
		return nil, fmt.Errorf("%s: min=%d max=%d", ErrInvalidPool, o.MinConns, o.MaxConns)
	}

	cfg, err := pgxpool.ParseConfig(o.DSN)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrParseConfig, err)
	}
	cfg.MinConns = o.MinConns
	cfg.MaxConns = o.MaxConns

	if o.ConnectTimeout > 0 {
		cfg.ConnConfig.ConnectTimeout = o.ConnectTimeout
	}
	return cfg, nil
}

// Database - пул соединений с Postgres.
type Database struct {
	pool *pgxpool.Pool
}

// New открывает пул и ждет первого успешного ping не дольше ConnectTimeout.
func New(ctx context.Context, opts Options) (*Database, error) {
	log := logger.Log(ctx).With(zap.Int32("min_conns", opts.MinConns), zap.Int32("max_conns", opts.MaxConns))
	log.Info(ctx, LogConnecting)

	poolCfg, err := opts.poolConfig()
	if err != nil {
		log.Error(ctx, ErrParseConfig, zap.Error(err))
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		log.Error(ctx, ErrCreatePool, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrCreatePool, err)
	}

	timeout := opts.ConnectTimeout
	if timeout <= 0 {
		timeout = DefaultConnectTimeout
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		log.Error(ctx, ErrPingDatabase, zap.Duration("timeout", timeout), zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrPingDatabase, err)
	}

	log.Info(ctx, LogConnected)
	return &Database{pool: pool}, nil
}

// Pool возвращает пул.
func (db *Database) Pool() *pgxpool.Pool {
	return db.pool
}

func (db *Database) Close(ctx context.Context) {
	logger.Log(ctx).Info(ctx, LogClosing, zap.Int32("open_conns", db.pool.Stat().TotalConns()))
	db.pool.Close()
}

// Ping используется проверкой /healthz.
func (db *Database) Ping(ctx context.Context) error {
	if err := db.pool.Ping(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrPingDatabase, err)
	}
	return nil
}
