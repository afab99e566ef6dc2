// Package client - консольный клиент CryptoVest: регистрация, защищенная страница и выход.
package client

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	fiberclient "github.com/gofiber/fiber/v3/client"
	"go.uber.org/zap"

	"cryptovest/internal/gateway/app/dto"
	"cryptovest/internal/session"
	"cryptovest/pkg/logger"
)

const (
	pathRegister = "/api/auth/register"
	pathProfile  = "/api/user/me"

	methodRegister  = "Register"
	methodDashboard = "Dashboard"
	methodLogout    = "Logout"

	msgTokenStored   = "session token stored"
	msgLoginRequired = "login required"

	errCtxRequest     = "requesting server"
	errCtxDecode      = "decoding server response"
	errCtxStoreToken  = "storing session token"
	errCtxClearToken  = "clearing session token"
	errCtxSessionOpen = "checking session"
)

// ErrLoginRequired возвращается, когда Session Guard отправляет пользователя на вход.
var ErrLoginRequired = errors.New("login required")

// APIError - ответ сервера со статусом ошибки.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server responded %d: %s", e.Status, e.Message)
}

// Client обращается к HTTP API и хранит токен через session.Holder.
type Client struct {
	baseURL string
	http    *fiberclient.Client
	holder  *session.Holder
	now     func() time.Time
}

// New создает клиента для сервера baseURL.
func New(baseURL string, timeout time.Duration, holder *session.Holder) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    fiberclient.New().SetTimeout(timeout),
		holder:  holder,
		now:     time.Now,
	}
}

func decodeResponse(resp *fiberclient.Response, wantStatus int, out any) error {
	if resp.StatusCode() != wantStatus {
		var body dto.ErrorResponse
		if err := resp.JSON(&body); err != nil || body.Error == "" {
			body.Error = resp.String()
		}
		return &APIError{Status: resp.StatusCode(), Message: body.Error}
	}
	if err := resp.JSON(out); err != nil {
		return fmt.Errorf("%s: %w", errCtxDecode, err)
	}
	return nil
}

// Register отправляет форму регистрации и сохраняет выданный токен.
func (c *Client) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	log := logger.Log(ctx).With(zap.String("method", methodRegister))

	resp, err := c.http.Post(c.baseURL+pathRegister, fiberclient.Config{
		Ctx:  ctx,
		Body: req,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxRequest, err)
	}
	defer resp.Close()

	var out dto.RegisterResponse
	if err := decodeResponse(resp, fiber.StatusCreated, &out); err != nil {
		return nil, err
	}

	if err := c.holder.Set(ctx, out.Token); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxStoreToken, err)
	}
	log.Debug(ctx, msgTokenStored, zap.Time("expiresAt", out.ExpiresAt))

	return &out, nil
}

// Dashboard проходит Session Guard и загружает профиль с сервера.
// Если Guard перенаправляет на вход, возвращается ErrLoginRequired.
func (c *Client) Dashboard(ctx context.Context) (*dto.UserResponse, error) {
	log := logger.Log(ctx).With(zap.String("method", methodDashboard))

	decision := session.NewGuard(c.holder, session.WithClock(c.now)).Check(ctx)
	if decision.State != session.StateAuthorized {
		log.Info(ctx, msgLoginRequired, zap.String("reason", decision.Reason))
		return nil, fmt.Errorf("%s: %w: %s", errCtxSessionOpen, ErrLoginRequired, decision.Reason)
	}

	token, _, err := c.holder.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxSessionOpen, err)
	}

	resp, err := c.http.Get(c.baseURL+pathProfile, fiberclient.Config{
		Ctx:    ctx,
		Header: map[string]string{fiber.HeaderAuthorization: "Bearer " + token},
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxRequest, err)
	}
	defer resp.Close()

	var profile dto.UserResponse
	if err := decodeResponse(resp, fiber.StatusOK, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// Logout удаляет сохраненный токен.
func (c *Client) Logout(ctx context.Context) error {
	logger.Log(ctx).Debug(ctx, methodLogout)
	if err := c.holder.Clear(ctx); err != nil {
		return fmt.Errorf("%s: %w", errCtxClearToken, err)
	}
	return nil
}
