// Package main реализует точку входа HTTP сервера CryptoVest.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"cryptovest/internal/auth/adapters/memory"
	"cryptovest/internal/auth/adapters/postgres"
	authservices "cryptovest/internal/auth/adapters/services"
	"cryptovest/internal/auth/app"
	authconfig "cryptovest/internal/auth/config"
	"cryptovest/internal/auth/db"
	"cryptovest/internal/auth/ports/repositories"
	"cryptovest/internal/gateway/adapters/cache"
	"cryptovest/internal/gateway/adapters/directory"
	httpServer "cryptovest/internal/gateway/adapters/http"
	"cryptovest/internal/gateway/app/services"
	"cryptovest/internal/gateway/config"
	portcache "cryptovest/internal/gateway/ports/cache"
	"cryptovest/pkg/logger"
	"cryptovest/pkg/shutdown"
)

const (
	EnvLoggerMode  = "GATEWAY_LOGGER_MODE"
	EnvLoggerLevel = "GATEWAY_LOGGER_LEVEL"
)

const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrInitDB               = "failed to initialize database"
	ErrCreateRedisClient    = "failed to create Redis client"
	ErrStartHTTPServer      = "failed to start HTTP server"
)

const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

const (
	LogServiceStarted      = "cryptovest server started"
	LogServiceShutdownDone = "cryptovest server shutdown complete"
	LogStoppingHTTP        = "stopping HTTP server"
	LogClosingDB           = "closing database connections"
	LogClosingCache        = "closing cache"
	LogInitRepo            = "initializing user repository"
	LogInitCache           = "initializing cache"
	LogCacheDisabled       = "redis disabled, caching turned off"
	LogInitServices        = "initializing services"
	LogInitHTTPServer      = "initializing HTTP server"
	LogStartingHTTP        = "starting HTTP server"
)

func main() {
	env := logger.Development
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == "production" {
		env = logger.Production
	}

	log, err := logger.NewLogger(env, os.Getenv(EnvLoggerLevel))
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}

	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	var exitCode int

	func() {
		defer func() {
			if err := log.Sync(); err != nil {
				errMsg := err.Error()
				if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
					return
				}
				if _, writeErr := fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err); writeErr != nil {
					panic(writeErr)
				}
			}
		}()

		cfg, err := config.Load(ctx)
		if err != nil {
			log.Error(ctx, ErrLoadConfig, zap.Error(err))
			exitCode = 1
			return
		}

		authCfg, err := authconfig.Load(ctx)
		if err != nil {
			log.Error(ctx, ErrLoadConfig, zap.Error(err))
			exitCode = 1
			return
		}

		finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
		if err != nil {
			log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
			exitCode = 1
			return
		}
		logger.SetGlobalLogger(finalLogger)
		log = finalLogger

		log.Info(ctx, LogServiceStarted,
			zap.String("environment", string(cfg.Logging.GetEnvironment())),
			zap.String("log_level", cfg.Logging.Level),
			zap.String("storage_driver", authCfg.Storage.Driver),
			zap.String("startup_time", time.Now().Format(time.RFC3339)))

		var hooks []shutdown.Hook

		log.Info(ctx, LogInitRepo)
		var userRepo repositories.UserRepository
		var pinger httpServer.Pinger
		switch authCfg.Storage.Driver {
		case authconfig.DriverMemory:
			userRepo = memory.NewUserRepository()
		default:
			database, err := db.New(ctx, &authCfg.Postgres)
			if err != nil {
				log.Error(ctx, ErrInitDB, zap.Error(err))
				exitCode = 1
				return
			}
			userRepo = postgres.NewRepositoryFactory(database.Pool()).UserRepository()
			pinger = database
			hooks = append(hooks, func(ctx context.Context) error {
				log.Info(ctx, LogClosingDB)
				database.Close(ctx)
				return nil
			})
		}

		log.Info(ctx, LogInitCache)
		var appCache portcache.Cache
		if cfg.Redis.Enabled {
			appCache, err = cache.NewRedisCache(ctx, &cfg.Redis)
			if err != nil {
				log.Error(ctx, ErrCreateRedisClient, zap.Error(err))
				exitCode = 1
				return
			}
		} else {
			log.Info(ctx, LogCacheDisabled)
			appCache = cache.NewNoop()
		}

		log.Info(ctx, LogInitServices)
		serviceFactory := authservices.NewServiceFactory(authCfg.JWT.SecretKey, authCfg.JWT.TokenTTL, authCfg.JWT.BCryptCost)
		tokenService := serviceFactory.TokenService()

		authService := services.NewAuthService(
			app.NewAuthUseCase(userRepo, serviceFactory.PasswordService(), tokenService),
			app.NewUserUseCase(userRepo),
			tokenService,
			appCache,
		)
		marketService := services.NewMarketService(
			directory.NewCountriesClient(cfg.Directory.CountriesURL, cfg.Directory.Timeout),
			directory.NewMarketClient(cfg.Directory.MarketURL, cfg.Directory.Timeout),
			appCache,
			cfg.Directory.CountriesTTL,
			cfg.Directory.MarketTTL,
		)

		log.Info(ctx, LogInitHTTPServer)
		fiberApp := fiber.New(fiber.Config{
			ReadTimeout:  cfg.HTTP.ReadTimeout,
			WriteTimeout: cfg.HTTP.WriteTimeout,
		})

		httpServer.SetupRouter(fiberApp, authService, marketService, cfg.Session, pinger)

		log.Info(ctx, LogStartingHTTP, zap.String("address", cfg.HTTP.GetAddress()))

		// После HTTP закрываются кэш и база.
		hooks = append([]shutdown.Hook{
			func(ctx context.Context) error {
				log.Info(ctx, LogClosingCache)
				return appCache.Close()
			},
		}, hooks...)

		if err := serve(ctx, fiberApp, cfg.HTTP.GetAddress(), cfg.Shutdown.GetTimeout(), hooks...); err != nil {
			log.Error(ctx, ErrStartHTTPServer, zap.Error(err))
			exitCode = 1
		}

		log.Info(ctx, LogServiceShutdownDone)
	}()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}

// serve слушает addr до сигнала завершения или ошибки Listen и затем выполняет
// остановку HTTP и hooks. Ошибка Listen до начала остановки возвращается.
func serve(ctx context.Context, app *fiber.App, addr string, timeout time.Duration, hooks ...shutdown.Hook) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var stopping atomic.Bool
	listenErr := make(chan error, 1)

	go func() {
		err := app.Listen(addr, fiber.ListenConfig{DisableStartupMessage: true})
		if err != nil && !stopping.Load() {
			listenErr <- err
			cancel()
		}
	}()

	shutdown.Wait(ctx, timeout, append([]shutdown.Hook{
		func(ctx context.Context) error {
			stopping.Store(true)
			logger.Log(ctx).Info(ctx, LogStoppingHTTP)
			return app.ShutdownWithContext(ctx)
		},
	}, hooks...)...)

	select {
	case err := <-listenErr:
		return fmt.Errorf("listening on %s: %w", addr, err)
	default:
		return nil
	}
}
