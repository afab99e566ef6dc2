package middleware

import (
	"github.com/gofiber/fiber/v3"

	"cryptovest/pkg/logger"
)

// HeaderRequestID - заголовок с идентификатором запроса.
const HeaderRequestID = "X-Request-ID"

// NewRequestIDMiddleware берет X-Request-ID из запроса или создает новый и
// кладет его в контекст запроса и в ответ.
func NewRequestIDMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		requestID := c.Get(HeaderRequestID)
		if requestID == "" {
			requestID = logger.GenerateRequestID()
		}

		ctx := logger.NewRequestIDContext(c.Context(), requestID)
		setRequestContext(c, ctx)
		c.Set(HeaderRequestID, requestID)

		return c.Next()
	}
}
