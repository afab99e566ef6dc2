package services

import (
	"errors"
	"time"

	"cryptovest/internal/auth/domain/entities"
)

// Ошибки домена аутентификации.
var (
	ErrTokenGenerationFailed = errors.New("failed to generate session token")
	ErrHashingFailed         = errors.New("failed to hash password")
	ErrInvalidPassword       = errors.New("invalid password")
)

// Session - выданный при регистрации токен сессии.
type Session struct {
	Token     string
	ExpiresAt time.Time
}

// RegistrationResult - результат успешной регистрации.
type RegistrationResult struct {
	User    *entities.User
	Session Session
}
