// Package directory содержит HTTP клиенты справочника стран и котировок.
package directory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/client"

	"cryptovest/internal/gateway/resilience"
)

// ErrUpstreamStatus возвращается при неуспешном статусе внешнего API.
var ErrUpstreamStatus = errors.New("unexpected upstream status")

const (
	errCtxRequest = "requesting upstream"
	errCtxDecode  = "decoding upstream response"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// getJSON выполняет GET и декодирует JSON в out. Ответы 4xx и ошибки
// декодирования помечаются как неповторяемые.
func getJSON(ctx context.Context, cc *client.Client, url string, params map[string]string, out any) error {
	resp, err := cc.Get(url, client.Config{
		Ctx:    ctx,
		Param:  params,
		Header: map[string]string{fiber.HeaderAccept: fiber.MIMEApplicationJSON},
	})
	if err != nil {
		return fmt.Errorf("%s: %w", errCtxRequest, err)
	}
	defer resp.Close()

	status := resp.StatusCode()
	switch {
	case status >= fiber.StatusInternalServerError || status == fiber.StatusTooManyRequests:
		return fmt.Errorf("%s: %w: %d", errCtxRequest, ErrUpstreamStatus, status)
	case status != fiber.StatusOK:
		return resilience.Permanent(fmt.Errorf("%s: %w: %d", errCtxRequest, ErrUpstreamStatus, status))
	}

	if err := resp.JSON(out); err != nil {
		return resilience.Permanent(fmt.Errorf("%s: %w", errCtxDecode, err))
	}
	return nil
}

func newClient(timeout time.Duration) *client.Client {
	return client.New().SetTimeout(timeout)
}
