package api

import (
	"context"

	"cryptovest/internal/auth/domain/entities"
)

// UserUseCase определяет порт для чтения профиля пользователя.
type UserUseCase interface {
	GetUserProfile(ctx context.Context, userID string) (*entities.User, error)
}
