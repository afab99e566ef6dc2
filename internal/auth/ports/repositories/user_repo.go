package repositories

import (
	"context"

	"cryptovest/internal/auth/domain/entities"
)

// UserRepository определяет операции хранилища пользователей.
//
// Find* возвращают entities.ErrUserNotFound, если запись отсутствует.
// Create возвращает entities.ErrEmailTaken или entities.ErrUsernameTaken,
// если запись нарушает ограничение уникальности хранилища.
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) (*entities.User, error)

	FindByID(ctx context.Context, id string) (*entities.User, error)

	FindByEmail(ctx context.Context, email string) (*entities.User, error)

	FindByUsername(ctx context.Context, username string) (*entities.User, error)
}
