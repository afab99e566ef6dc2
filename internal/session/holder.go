// Package session хранит токен сессии на стороне клиента и решает,
// можно ли показывать защищенную страницу.
//
// Проверка срока действия здесь не проверяет подпись токена и служит только
// для перенаправления на страницу входа. Доступ к данным сервер проверяет
// отдельно, с полной проверкой подписи.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Ошибки разбора токена.
var (
	ErrMalformedToken = errors.New("malformed session token")
	ErrMissingExpiry  = errors.New("session token has no expiry claim")
)

const (
	errCtxLoadingToken  = "loading session token"
	errCtxSavingToken   = "saving session token"
	errCtxClearingToken = "clearing session token"
)

// Storage - место хранения одной строки токена.
// Load возвращает пустую строку, если токена нет.
type Storage interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Delete(ctx context.Context) error
}

// Holder - явный владелец клиентского токена сессии.
type Holder struct {
	store Storage
}

// NewHolder создает Holder поверх хранилища.
func NewHolder(store Storage) *Holder {
	return &Holder{store: store}
}

// Get возвращает токен и признак его наличия.
func (h *Holder) Get(ctx context.Context) (string, bool, error) {
	token, err := h.store.Load(ctx)
	if err != nil {
		return "", false, fmt.Errorf("%s: %w", errCtxLoadingToken, err)
	}
	return token, token != "", nil
}

// Set сохраняет токен.
func (h *Holder) Set(ctx context.Context, token string) error {
	if err := h.store.Save(ctx, token); err != nil {
		return fmt.Errorf("%s: %w", errCtxSavingToken, err)
	}
	return nil
}

// Clear удаляет токен.
func (h *Holder) Clear(ctx context.Context) error {
	if err := h.store.Delete(ctx); err != nil {
		return fmt.Errorf("%s: %w", errCtxClearingToken, err)
	}
	return nil
}

// tokenState - результат проверки сохраненного токена.
type tokenState int

const (
	tokenValid tokenState = iota
	tokenMissing
	tokenMalformed
	tokenExpired
)

// inspect загружает токен и классифицирует его относительно now.
// Токен с exp, равным now, еще действителен.
func (h *Holder) inspect(ctx context.Context, now time.Time) (tokenState, time.Time, error) {
	token, ok, err := h.Get(ctx)
	if err != nil {
		return tokenMissing, time.Time{}, err
	}
	if !ok {
		return tokenMissing, time.Time{}, nil
	}
	exp, err := ExpiresAt(token)
	if err != nil {
		return tokenMalformed, time.Time{}, nil
	}
	if exp.Before(now) {
		return tokenExpired, exp, nil
	}
	return tokenValid, exp, nil
}

// Expired сообщает, что сохраненный токен отсутствует, не разбирается или истек к моменту now.
func (h *Holder) Expired(ctx context.Context, now time.Time) (bool, error) {
	state, _, err := h.inspect(ctx, now)
	if err != nil {
		return true, err
	}
	return state != tokenValid, nil
}

// ExpiresAt читает claim exp без проверки подписи.
func ExpiresAt(token string) (time.Time, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, fmt.Errorf("%w: %w", ErrMalformedToken, err)
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %w", ErrMalformedToken, err)
	}
	if exp == nil {
		return time.Time{}, ErrMissingExpiry
	}
	return exp.Time, nil
}
