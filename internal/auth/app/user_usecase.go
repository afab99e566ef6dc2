package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"cryptovest/internal/auth/domain/entities"
	"cryptovest/internal/auth/ports/api"
	"cryptovest/internal/auth/ports/repositories"
	"cryptovest/pkg/logger"
)

const (
	methodGetUserProfile = "GetUserProfile"

	msgRequestingProfile   = "requesting user profile"
	msgEmptyUserIDProvided = "empty user ID provided"
	msgProfileRetrieved    = "user profile retrieved"
	msgErrFindingUserByID  = "failed to find user by ID"

	errCtxValidatingUserID = "validating user ID"
	errCtxFetchingProfile  = "fetching user profile"
)

// UserUseCaseImpl реализует api.UserUseCase.
type UserUseCaseImpl struct {
	userRepo repositories.UserRepository
}

// NewUserUseCase создает сценарий чтения профиля.
func NewUserUseCase(userRepo repositories.UserRepository) api.UserUseCase {
	return &UserUseCaseImpl{userRepo: userRepo}
}

// GetUserProfile возвращает пользователя по ID.
func (u *UserUseCaseImpl) GetUserProfile(ctx context.Context, userID string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodGetUserProfile), zap.String("userID", userID))
	log.Debug(ctx, msgRequestingProfile)

	if userID == "" {
		log.Debug(ctx, msgEmptyUserIDProvided)
		return nil, fmt.Errorf("%s: %w", errCtxValidatingUserID, entities.ErrEmptyUserID)
	}

	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		log.Warn(ctx, msgErrFindingUserByID, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFetchingProfile, err)
	}

	log.Debug(ctx, msgProfileRetrieved)
	return user, nil
}
