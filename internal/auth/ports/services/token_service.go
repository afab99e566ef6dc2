package services

import (
	"context"
	"time"

	"cryptovest/internal/auth/domain/services"
)

// TokenService выпускает и проверяет токены сессии.
type TokenService interface {
	GenerateAccessToken(ctx context.Context, userID, email string) (string, time.Time, error)

	ValidateAccessToken(ctx context.Context, token string) (*services.JWTClaims, error)
}
