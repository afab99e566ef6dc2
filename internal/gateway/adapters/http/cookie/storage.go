// Package cookie хранит токен сессии в HTTP cookie.
package cookie

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"

	"cryptovest/internal/gateway/config"
	"cryptovest/internal/session"
)

// Storage реализует session.Storage поверх cookie текущего запроса.
type Storage struct {
	c       fiber.Ctx
	cfg     config.SessionConfig
	expires time.Time
}

var _ session.Storage = (*Storage)(nil)

// NewStorage создает хранилище для одного запроса.
func NewStorage(c fiber.Ctx, cfg config.SessionConfig) *Storage {
	return &Storage{c: c, cfg: cfg}
}

// WithExpiry задает срок жизни cookie, обычно равный exp токена.
func (s *Storage) WithExpiry(expires time.Time) *Storage {
	s.expires = expires
	return s
}

func (s *Storage) Load(context.Context) (string, error) {
	return s.c.Cookies(s.cfg.CookieName), nil
}

func (s *Storage) Save(_ context.Context, token string) error {
	s.c.Cookie(&fiber.Cookie{
		Name:     s.cfg.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  s.expires,
		HTTPOnly: true,
		Secure:   s.cfg.CookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return nil
}

func (s *Storage) Delete(context.Context) error {
	s.c.ClearCookie(s.cfg.CookieName)
	return nil
}
