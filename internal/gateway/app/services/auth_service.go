// Package services содержит сервисы шлюза поверх сценариев регистрации и внешних справочников.
package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"cryptovest/internal/auth/ports/api"
	tokens "cryptovest/internal/auth/ports/services"
	"cryptovest/internal/gateway/app/dto"
	"cryptovest/internal/gateway/ports/cache"
	"cryptovest/internal/gateway/ports/services"
	"cryptovest/pkg/logger"
)

const (
	LogServiceRegister   = "auth service: register user"
	LogServiceGetProfile = "auth service: get user profile"

	MsgUserRegistered = "User registered successfully"

	ErrorRegisterFailed    = "failed to register user"
	ErrorVerifyTokenFailed = "failed to verify token"
	ErrorGetProfileFailed  = "failed to get user profile"
)

// ProfileCacheKeyPrefix - префикс ключа кэша профиля.
const ProfileCacheKeyPrefix = "profile:"

// AuthServiceImpl реализует интерфейс AuthService.
type AuthServiceImpl struct {
	authUseCase api.AuthUseCase
	userUseCase api.UserUseCase
	tokens      tokens.TokenService
	cache       cache.Cache
}

// NewAuthService создает сервис регистрации и профиля.
func NewAuthService(
	authUseCase api.AuthUseCase,
	userUseCase api.UserUseCase,
	tokenService tokens.TokenService,
	cache cache.Cache,
) services.AuthService {
	return &AuthServiceImpl{
		authUseCase: authUseCase,
		userUseCase: userUseCase,
		tokens:      tokenService,
		cache:       cache,
	}
}

// Register регистрирует пользователя. Повторов нет: запись в хранилище выполняется не более одного раза.
func (s *AuthServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	logger.Log(ctx).Info(ctx, LogServiceRegister)

	result, err := s.authUseCase.Register(ctx, req.ToRegistration())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrorRegisterFailed, err)
	}

	return &dto.RegisterResponse{
		Message:   MsgUserRegistered,
		Token:     result.Session.Token,
		ExpiresAt: result.Session.ExpiresAt,
		User:      dto.NewUserResponse(result.User),
	}, nil
}

// VerifyToken проверяет токен полностью, включая подпись.
func (s *AuthServiceImpl) VerifyToken(ctx context.Context, token string) (string, error) {
	claims, err := s.tokens.ValidateAccessToken(ctx, token)
	if err != nil {
		logger.Log(ctx).Debug(ctx, ErrorVerifyTokenFailed, zap.Error(err))
		return "", fmt.Errorf("%s: %w", ErrorVerifyTokenFailed, err)
	}
	return claims.UserID, nil
}
