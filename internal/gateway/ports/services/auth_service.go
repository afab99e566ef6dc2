// Package services определяет интерфейсы сервисов шлюза.
package services

import (
	"context"

	"cryptovest/internal/gateway/app/dto"
)

// AuthService - регистрация и профиль пользователя.
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error)

	// VerifyToken проверяет подпись и срок действия токена и возвращает ID пользователя.
	VerifyToken(ctx context.Context, token string) (string, error)

	GetUserProfile(ctx context.Context, userID string) (*dto.UserResponse, error)
}
