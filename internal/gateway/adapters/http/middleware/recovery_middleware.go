package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"cryptovest/pkg/logger"
)

// ErrorInternal - тело ответа 500. Детали ошибки клиенту не передаются.
const ErrorInternal = "Something went wrong"

// NewRecoveryMiddleware превращает панику обработчика в ответ 500.
func NewRecoveryMiddleware() fiber.Handler {
	return func(c fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				requestCtx := RequestContext(c)
				log := logger.Log(requestCtx)

				log.Error(requestCtx, "server panic",
					zap.String("error", fmt.Sprintf("%v", r)),
					zap.String("stack", string(debug.Stack())),
				)

				err = c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": ErrorInternal,
				})
			}
		}()

		return c.Next()
	}
}
