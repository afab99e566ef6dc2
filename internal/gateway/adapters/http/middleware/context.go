// Package middleware содержит промежуточное ПО HTTP шлюза.
package middleware

import (
	"context"

	"github.com/gofiber/fiber/v3"
)

const (
	localRequestContext = "requestContext"
	localUserID         = "userID"
)

// RequestContext возвращает контекст запроса с логгером и request_id.
func RequestContext(c fiber.Ctx) context.Context {
	if ctx, ok := c.Locals(localRequestContext).(context.Context); ok {
		return ctx
	}
	return c.Context()
}

func setRequestContext(c fiber.Ctx, ctx context.Context) {
	c.Locals(localRequestContext, ctx)
}

// UserID возвращает ID пользователя, проверенный NewBearerAuthMiddleware.
func UserID(c fiber.Ctx) (string, bool) {
	id, ok := c.Locals(localUserID).(string)
	return id, ok && id != ""
}
