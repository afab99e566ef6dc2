package app_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"cryptovest/internal/auth/app"
	"cryptovest/internal/auth/domain/entities"
)

func TestGetUserProfile(t *testing.T) {
	user := &entities.User{ID: "u1", Email: "jane@x.com"}

	tests := []struct {
		name        string
		userID      string
		setupMocks  func(repo *mockUserRepository)
		expectedErr error
	}{
		{
			name:   "found",
			userID: "u1",
			setupMocks: func(repo *mockUserRepository) {
				repo.On("FindByID", mock.Anything, "u1").Return(user, nil).Once()
			},
		},
		{
			name:        "empty id",
			userID:      "",
			setupMocks:  func(*mockUserRepository) {},
			expectedErr: entities.ErrEmptyUserID,
		},
		{
			name:   "not found",
			userID: "u2",
			setupMocks: func(repo *mockUserRepository) {
				repo.On("FindByID", mock.Anything, "u2").Return(nil, entities.ErrUserNotFound).Once()
			},
			expectedErr: entities.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mockUserRepository)
			tt.setupMocks(repo)

			got, err := app.NewUserUseCase(repo).GetUserProfile(context.Background(), tt.userID)
			if tt.expectedErr != nil {
				require.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, got)
			} else {
				require.NoError(t, err)
				assert.Equal(t, user, got)
			}
			repo.AssertExpectations(t)
		})
	}
}
