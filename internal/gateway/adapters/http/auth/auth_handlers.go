// Package auth содержит HTTP обработчики регистрации и профиля.
package auth

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"cryptovest/internal/auth/domain/entities"
	"cryptovest/internal/gateway/adapters/http/cookie"
	"cryptovest/internal/gateway/adapters/http/middleware"
	"cryptovest/internal/gateway/app/dto"
	"cryptovest/internal/gateway/config"
	"cryptovest/internal/gateway/ports/services"
	"cryptovest/internal/session"
	"cryptovest/pkg/logger"
)

const (
	LogHandlerRegister   = "auth handler: register"
	LogHandlerGetProfile = "auth handler: get profile"

	ErrorInvalidRequest   = "Invalid request body"
	ErrorEmailTaken       = "Email already in use"
	ErrorUsernameTaken    = "Username already taken"
	ErrorUserNotFound     = "User not found"
	ErrorUnauthorized     = "Unauthorized"
	ErrorSomethingWrong   = middleware.ErrorInternal
	ErrorFailedToRegister = "failed to register user"
	ErrorFailedToSetToken = "failed to store session token"
)

func sendErrorResponse(ctx fiber.Ctx, statusCode int, message string) error {
	if err := ctx.Status(statusCode).JSON(dto.ErrorResponse{Error: message}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// Handler содержит HTTP обработчики регистрации и профиля.
type Handler struct {
	authService services.AuthService
	sessionCfg  config.SessionConfig
}

// NewHandler создает обработчик.
func NewHandler(authService services.AuthService, sessionCfg config.SessionConfig) *Handler {
	return &Handler{
		authService: authService,
		sessionCfg:  sessionCfg,
	}
}

// registerStatus сопоставляет ошибку регистрации с HTTP статусом и текстом для клиента.
func registerStatus(err error) (int, string) {
	var validationErr *entities.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, validationErr.Message
	case errors.Is(err, entities.ErrEmailTaken):
		return http.StatusConflict, ErrorEmailTaken
	case errors.Is(err, entities.ErrUsernameTaken):
		return http.StatusConflict, ErrorUsernameTaken
	default:
		return http.StatusInternalServerError, ErrorSomethingWrong
	}
}

// Register обрабатывает POST /api/auth/register. При успехе токен также
// сохраняется в cookie сессии.
func (h *Handler) Register(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerRegister)

	var req dto.RegisterRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Debug(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return sendErrorResponse(ctx, http.StatusBadRequest, ErrorInvalidRequest)
	}

	response, err := h.authService.Register(requestCtx, &req)
	if err != nil {
		status, message := registerStatus(err)
		if status == http.StatusInternalServerError {
			log.Error(requestCtx, ErrorFailedToRegister, zap.Error(err))
		} else {
			log.Info(requestCtx, ErrorFailedToRegister, zap.Int("status", status), zap.String("reason", message))
		}
		return sendErrorResponse(ctx, status, message)
	}

	store := cookie.NewStorage(ctx, h.sessionCfg).WithExpiry(response.ExpiresAt)
	if err := session.NewHolder(store).Set(requestCtx, response.Token); err != nil {
		log.Warn(requestCtx, ErrorFailedToSetToken, zap.Error(err))
	}

	if err := ctx.Status(http.StatusCreated).JSON(response); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// GetProfile обрабатывает GET /api/user/me.
func (h *Handler) GetProfile(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerGetProfile)

	userID, ok := middleware.UserID(ctx)
	if !ok {
		return sendErrorResponse(ctx, http.StatusUnauthorized, ErrorUnauthorized)
	}

	profile, err := h.authService.GetUserProfile(requestCtx, userID)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			return sendErrorResponse(ctx, http.StatusNotFound, ErrorUserNotFound)
		}
		log.Error(requestCtx, LogHandlerGetProfile, zap.Error(err))
		return sendErrorResponse(ctx, http.StatusInternalServerError, ErrorSomethingWrong)
	}

	if err := ctx.Status(http.StatusOK).JSON(profile); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}
