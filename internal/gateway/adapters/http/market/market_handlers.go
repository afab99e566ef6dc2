// Package market содержит HTTP обработчики справочника стран и котировок.
package market

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"cryptovest/internal/gateway/adapters/http/middleware"
	"cryptovest/internal/gateway/app/dto"
	"cryptovest/internal/gateway/ports/services"
	"cryptovest/internal/gateway/resilience"
	"cryptovest/pkg/logger"
)

const (
	LogHandlerCountries = "market handler: countries"
	LogHandlerMarket    = "market handler: market"

	ErrorUpstreamUnavailable = "Upstream service unavailable"
)

// Handler содержит обработчики справочников.
type Handler struct {
	marketService services.MarketService
}

// NewHandler создает обработчик.
func NewHandler(marketService services.MarketService) *Handler {
	return &Handler{marketService: marketService}
}

func upstreamStatus(err error) int {
	if errors.Is(err, resilience.ErrCircuitOpen) {
		return http.StatusServiceUnavailable
	}
	return http.StatusBadGateway
}

func respond(ctx fiber.Ctx, method string, payload any, err error) error {
	requestCtx := middleware.RequestContext(ctx)
	if err != nil {
		logger.Log(requestCtx).Error(requestCtx, method, zap.Error(err))
		if sendErr := ctx.Status(upstreamStatus(err)).JSON(dto.ErrorResponse{Error: ErrorUpstreamUnavailable}); sendErr != nil {
			return fmt.Errorf("error sending response: %w", sendErr)
		}
		return nil
	}

	if err := ctx.Status(http.StatusOK).JSON(payload); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// Countries обрабатывает GET /api/countries.
func (h *Handler) Countries(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	logger.Log(requestCtx).Info(requestCtx, LogHandlerCountries)

	countries, err := h.marketService.Countries(requestCtx)
	return respond(ctx, LogHandlerCountries, countries, err)
}

// Market обрабатывает GET /api/market.
func (h *Handler) Market(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	logger.Log(requestCtx).Info(requestCtx, LogHandlerMarket)

	snapshot, err := h.marketService.Market(requestCtx)
	return respond(ctx, LogHandlerMarket, snapshot, err)
}
