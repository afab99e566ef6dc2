// Package dashboard отдает оболочку защищенной страницы.
package dashboard

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"cryptovest/internal/gateway/adapters/http/cookie"
	"cryptovest/internal/gateway/adapters/http/middleware"
	"cryptovest/internal/gateway/app/dto"
	"cryptovest/internal/gateway/config"
	"cryptovest/internal/session"
	"cryptovest/pkg/logger"
)

const LogHandlerDashboard = "dashboard handler"

// Sidebar - пункты боковой навигации.
var Sidebar = []dto.NavItem{
	{Label: "Dashboard", Path: "/dashboard"},
	{Label: "Portfolio", Path: "/dashboard/portfolio"},
	{Label: "Invest", Path: "/dashboard"},
	{Label: "Profile", Path: "/dashboard"},
}

// Handler проверяет сессию из cookie перед выдачей страницы.
type Handler struct {
	sessionCfg config.SessionConfig
	now        func() time.Time
}

// NewHandler создает обработчик.
func NewHandler(sessionCfg config.SessionConfig) *Handler {
	return &Handler{sessionCfg: sessionCfg, now: time.Now}
}

// Dashboard обрабатывает GET /dashboard. Без действующей сессии отвечает 302 на страницу входа,
// просроченный или поврежденный токен при этом удаляется из cookie.
func (h *Handler) Dashboard(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx)

	holder := session.NewHolder(cookie.NewStorage(ctx, h.sessionCfg))
	decision := session.NewGuard(holder, session.WithClock(h.now)).Check(requestCtx)

	if decision.State != session.StateAuthorized {
		log.Info(requestCtx, LogHandlerDashboard,
			zap.String("state", decision.State.String()),
			zap.String("reason", decision.Reason),
			zap.Bool("cleared", decision.Cleared),
		)
		if err := ctx.Redirect().Status(fiber.StatusFound).To(h.sessionCfg.LoginPath); err != nil {
			return fmt.Errorf("redirecting to login: %w", err)
		}
		return nil
	}

	if err := ctx.Status(http.StatusOK).JSON(dto.DashboardResponse{Sidebar: Sidebar}); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}
