// Package app содержит сценарии использования сервиса аутентификации.
package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"cryptovest/internal/auth/domain/entities"
	"cryptovest/internal/auth/domain/services"
	"cryptovest/internal/auth/ports/api"
	"cryptovest/internal/auth/ports/repositories"
	svc "cryptovest/internal/auth/ports/services"
	"cryptovest/pkg/logger"
)

const (
	methodRegister = "Register"

	msgStartRegistration   = "starting user registration"
	msgValidationFailed    = "registration input rejected"
	msgEmailExists         = "user with this email already exists"
	msgUsernameExists      = "user with this username already exists"
	msgConflictOnInsert    = "uniqueness violated at insert"
	msgUserRegistered      = "user registered successfully"
	msgSessionTokenIssued  = "session token issued for new user"
	msgErrCheckEmail       = "failed to check existing email"
	msgErrCheckUsername    = "failed to check existing username"
	msgErrHashPassword     = "failed to hash password"
	msgErrCreateUser       = "failed to create user"
	msgErrGenerateToken    = "failed to generate session token"
	errCtxValidating       = "validating registration"
	errCtxCheckingEmail    = "checking existing email"
	errCtxCheckingUsername = "checking existing username"
	errCtxEmailRegistered  = "email already registered"
	errCtxUsernameTaken    = "username already registered"
	errCtxHashingPassword  = "hashing password"
	errCtxCreatingUser     = "creating user"
	errCtxGeneratingToken  = "generating session token"
)

// AuthUseCaseImpl реализует api.AuthUseCase.
type AuthUseCaseImpl struct {
	userRepo    repositories.UserRepository
	passwordSvc svc.PasswordService
	tokenSvc    svc.TokenService
}

// NewAuthUseCase создает сценарий регистрации.
func NewAuthUseCase(
	userRepo repositories.UserRepository,
	passwordSvc svc.PasswordService,
	tokenSvc svc.TokenService,
) api.AuthUseCase {
	return &AuthUseCaseImpl{
		userRepo:    userRepo,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
	}
}

// Register валидирует форму, проверяет уникальность email и username, сохраняет
// пользователя с хэшем пароля и выпускает токен сессии.
//
// Хранилище выполняет ровно одну запись и только на успешном пути. Конфликт,
// обнаруженный ограничением уникальности при вставке, возвращается теми же
// ошибками, что и предварительная проверка.
func (a *AuthUseCaseImpl) Register(ctx context.Context, form entities.Registration) (*services.RegistrationResult, error) {
	form = NormalizeRegistration(form)

	log := logger.Log(ctx).With(zap.String("method", methodRegister), zap.String("username", form.Username))
	log.Debug(ctx, msgStartRegistration)

	if err := ValidateRegistration(&form); err != nil {
		log.Debug(ctx, msgValidationFailed, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidating, err)
	}

	byEmail, err := a.userRepo.FindByEmail(ctx, form.Email)
	switch {
	case err != nil && !errors.Is(err, entities.ErrUserNotFound):
		log.Error(ctx, msgErrCheckEmail, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCheckingEmail, err)
	case err == nil && byEmail != nil:
		log.Debug(ctx, msgEmailExists)
		return nil, fmt.Errorf("%s: %w", errCtxEmailRegistered, entities.ErrEmailTaken)
	}

	byUsername, err := a.userRepo.FindByUsername(ctx, form.Username)
	switch {
	case err != nil && !errors.Is(err, entities.ErrUserNotFound):
		log.Error(ctx, msgErrCheckUsername, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCheckingUsername, err)
	case err == nil && byUsername != nil:
		log.Debug(ctx, msgUsernameExists)
		return nil, fmt.Errorf("%s: %w", errCtxUsernameTaken, entities.ErrUsernameTaken)
	}

	hash, err := a.passwordSvc.Hash(ctx, form.Password)
	if err != nil {
		log.Error(ctx, msgErrHashPassword, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxHashingPassword, err)
	}

	created, err := a.userRepo.Create(ctx, &entities.User{
		Name:         form.Name,
		Username:     form.Username,
		Email:        form.Email,
		Phone:        form.Phone,
		Country:      form.Country,
		Currency:     form.Currency,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, entities.ErrEmailTaken) || errors.Is(err, entities.ErrUsernameTaken) {
			log.Info(ctx, msgConflictOnInsert, zap.Error(err))
			return nil, fmt.Errorf("%s: %w", errCtxCreatingUser, err)
		}
		log.Error(ctx, msgErrCreateUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCreatingUser, err)
	}

	log = log.With(zap.String("userID", created.ID))
	log.Info(ctx, msgUserRegistered)

	token, expiresAt, err := a.tokenSvc.GenerateAccessToken(ctx, created.ID, created.Email)
	if err != nil {
		log.Error(ctx, msgErrGenerateToken, zap.Error(err))
		return nil, fmt.Errorf("%s: %w: %w", errCtxGeneratingToken, services.ErrTokenGenerationFailed, err)
	}

	log.Debug(ctx, msgSessionTokenIssued, zap.Time("expiresAt", expiresAt))

	return &services.RegistrationResult{
		User:    created,
		Session: services.Session{Token: token, ExpiresAt: expiresAt},
	}, nil
}
