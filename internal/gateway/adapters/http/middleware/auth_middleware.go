package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"cryptovest/internal/gateway/ports/services"
	"cryptovest/pkg/logger"
)

const (
	bearerPrefix = "Bearer "

	ErrorNoAuthHeader       = "Authorization header required"
	ErrorInvalidTokenFormat = "Invalid token format"
	ErrorInvalidToken       = "Invalid or expired token"
)

// NewBearerAuthMiddleware проверяет подпись и срок действия Bearer токена
// и сохраняет ID пользователя для обработчиков.
func NewBearerAuthMiddleware(authService services.AuthService) fiber.Handler {
	return func(c fiber.Ctx) error {
		requestCtx := RequestContext(c)
		log := logger.Log(requestCtx).With(zap.String("middleware", "auth"))

		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			log.Debug(requestCtx, ErrorNoAuthHeader)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": ErrorNoAuthHeader})
		}

		token, found := strings.CutPrefix(header, bearerPrefix)
		if !found || strings.TrimSpace(token) == "" {
			log.Debug(requestCtx, ErrorInvalidTokenFormat)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": ErrorInvalidTokenFormat})
		}

		userID, err := authService.VerifyToken(requestCtx, strings.TrimSpace(token))
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": ErrorInvalidToken})
		}

		c.Locals(localUserID, userID)
		return c.Next()
	}
}
