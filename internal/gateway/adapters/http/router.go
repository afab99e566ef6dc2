// Package http содержит компоненты HTTP сервера.
package http

import (
	"context"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"cryptovest/internal/gateway/adapters/http/auth"
	"cryptovest/internal/gateway/adapters/http/dashboard"
	"cryptovest/internal/gateway/adapters/http/market"
	"cryptovest/internal/gateway/adapters/http/middleware"
	"cryptovest/internal/gateway/config"
	"cryptovest/internal/gateway/ports/services"
	"cryptovest/pkg/logger"
)

// Pinger проверяет доступность хранилища для /healthz.
type Pinger interface {
	Ping(ctx context.Context) error
}

// SetupRouter настраивает маршрутизацию HTTP сервера. db может быть nil, если хранилище в памяти.
func SetupRouter(
	app *fiber.App,
	authService services.AuthService,
	marketService services.MarketService,
	sessionCfg config.SessionConfig,
	db Pinger,
) {
	authHandler := auth.NewHandler(authService, sessionCfg)
	marketHandler := market.NewHandler(marketService)
	dashboardHandler := dashboard.NewHandler(sessionCfg)

	app.Use(middleware.NewRequestIDMiddleware())
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())

	app.Get("/healthz", func(c fiber.Ctx) error {
		if db != nil {
			ctx := middleware.RequestContext(c)
			if err := db.Ping(ctx); err != nil {
				logger.Log(ctx).Warn(ctx, "health check failed", zap.Error(err))
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable"})
			}
		}
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	api.Post("/auth/register", authHandler.Register)

	userRoutes := api.Group("/user")
	userRoutes.Use(middleware.NewBearerAuthMiddleware(authService))
	userRoutes.Get("/me", authHandler.GetProfile)

	api.Get("/countries", marketHandler.Countries)
	api.Get("/market", marketHandler.Market)

	app.Get("/dashboard", dashboardHandler.Dashboard)

	app.Use(func(c fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Route not found",
		})
	})
}
