package services

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"cryptovest/internal/gateway/app/dto"
	"cryptovest/pkg/logger"
)

// GetUserProfile возвращает профиль, сначала из кэша.
// Ошибки кэша не прерывают запрос.
func (s *AuthServiceImpl) GetUserProfile(ctx context.Context, userID string) (*dto.UserResponse, error) {
	log := logger.Log(ctx).With(zap.String("userID", userID))
	log.Info(ctx, LogServiceGetProfile)

	cacheKey := ProfileCacheKeyPrefix + userID

	if cached, err := s.cache.Get(ctx, cacheKey); err == nil && cached != "" {
		var profile dto.UserResponse
		if err := json.Unmarshal([]byte(cached), &profile); err == nil {
			log.Debug(ctx, "user profile found in cache")
			return &profile, nil
		}
	}

	user, err := s.userUseCase.GetUserProfile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrorGetProfileFailed, err)
	}

	profile := dto.NewUserResponse(user)

	if data, err := json.Marshal(profile); err == nil {
		if err := s.cache.Set(ctx, cacheKey, string(data), 0); err != nil {
			log.Warn(ctx, "failed to cache user profile", zap.Error(err))
		}
	}

	return &profile, nil
}
