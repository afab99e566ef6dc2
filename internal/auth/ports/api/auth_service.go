package api

import (
	"context"

	"cryptovest/internal/auth/domain/entities"
	"cryptovest/internal/auth/domain/services"
)

// AuthUseCase определяет основной порт регистрации.
type AuthUseCase interface {
	Register(ctx context.Context, form entities.Registration) (*services.RegistrationResult, error)
}
