package services

import "context"

// PasswordService хэширует пароли.
type PasswordService interface {
	Hash(ctx context.Context, password string) (string, error)
}
