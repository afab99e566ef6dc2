package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"cryptovest/internal/auth/app"
	"cryptovest/internal/auth/domain/entities"
	"cryptovest/internal/auth/domain/services"
)

var errDatabaseOperation = errors.New("database error")

func janeForm() entities.Registration {
	return entities.Registration{
		Name:     "Jane Doe",
		Username: "janedoe",
		Email:    "jane@x.com",
		Phone:    "+15551234567",
		Country:  "US",
		Currency: "USD",
		Password: "Str0ng!pass",
	}
}

func TestRegister(t *testing.T) {
	now := time.Now()
	expiresAt := now.Add(24 * time.Hour)
	created := &entities.User{
		ID:           "3f1c1b8e-8a55-4c1e-9a7c-6b0d0a7e2f11",
		Name:         "Jane Doe",
		Username:     "janedoe",
		Email:        "jane@x.com",
		Phone:        "+15551234567",
		Country:      "US",
		Currency:     "USD",
		PasswordHash: "hashed",
		CreatedAt:    now,
	}

	tests := []struct {
		name        string
		form        func() entities.Registration
		setupMocks  func(repo *mockUserRepository, pass *mockPasswordService, tok *mockTokenService)
		expectedErr error
	}{
		{
			name: "success",
			form: janeForm,
			setupMocks: func(repo *mockUserRepository, pass *mockPasswordService, tok *mockTokenService) {
				repo.On("FindByEmail", mock.Anything, "jane@x.com").Return(nil, entities.ErrUserNotFound).Once()
				repo.On("FindByUsername", mock.Anything, "janedoe").Return(nil, entities.ErrUserNotFound).Once()
				pass.On("Hash", mock.Anything, "Str0ng!pass").Return("hashed", nil).Once()
				repo.On("Create", mock.Anything, mock.MatchedBy(func(u *entities.User) bool {
					return u.Email == "jane@x.com" && u.PasswordHash == "hashed" && u.ID == ""
				})).Return(created, nil).Once()
				tok.On("GenerateAccessToken", mock.Anything, created.ID, created.Email).
					Return("signed-token", expiresAt, nil).Once()
			},
		},
		{
			name: "weak password rejected before any lookup",
			form: func() entities.Registration {
				f := janeForm()
				f.Password = "weak"
				return f
			},
			setupMocks:  func(*mockUserRepository, *mockPasswordService, *mockTokenService) {},
			expectedErr: &entities.ValidationError{},
		},
		{
			name: "email already registered",
			form: janeForm,
			setupMocks: func(repo *mockUserRepository, _ *mockPasswordService, _ *mockTokenService) {
				repo.On("FindByEmail", mock.Anything, "jane@x.com").Return(created, nil).Once()
			},
			expectedErr: entities.ErrEmailTaken,
		},
		{
			name: "username already registered",
			form: janeForm,
			setupMocks: func(repo *mockUserRepository, _ *mockPasswordService, _ *mockTokenService) {
				repo.On("FindByEmail", mock.Anything, "jane@x.com").Return(nil, entities.ErrUserNotFound).Once()
				repo.On("FindByUsername", mock.Anything, "janedoe").Return(created, nil).Once()
			},
			expectedErr: entities.ErrUsernameTaken,
		},
		{
			name: "email lookup fails",
			form: janeForm,
			setupMocks: func(repo *mockUserRepository, _ *mockPasswordService, _ *mockTokenService) {
				repo.On("FindByEmail", mock.Anything, "jane@x.com").Return(nil, errDatabaseOperation).Once()
			},
			expectedErr: errDatabaseOperation,
		},
		{
			name: "hashing fails",
			form: janeForm,
			setupMocks: func(repo *mockUserRepository, pass *mockPasswordService, _ *mockTokenService) {
				repo.On("FindByEmail", mock.Anything, "jane@x.com").Return(nil, entities.ErrUserNotFound).Once()
				repo.On("FindByUsername", mock.Anything, "janedoe").Return(nil, entities.ErrUserNotFound).Once()
				pass.On("Hash", mock.Anything, "Str0ng!pass").Return("", services.ErrHashingFailed).Once()
			},
			expectedErr: services.ErrHashingFailed,
		},
		{
			name: "unique constraint at insert maps to conflict",
			form: janeForm,
			setupMocks: func(repo *mockUserRepository, pass *mockPasswordService, _ *mockTokenService) {
				repo.On("FindByEmail", mock.Anything, "jane@x.com").Return(nil, entities.ErrUserNotFound).Once()
				repo.On("FindByUsername", mock.Anything, "janedoe").Return(nil, entities.ErrUserNotFound).Once()
				pass.On("Hash", mock.Anything, "Str0ng!pass").Return("hashed", nil).Once()
				repo.On("Create", mock.Anything, mock.Anything).Return(nil, entities.ErrEmailTaken).Once()
			},
			expectedErr: entities.ErrEmailTaken,
		},
		{
			name: "insert fails",
			form: janeForm,
			setupMocks: func(repo *mockUserRepository, pass *mockPasswordService, _ *mockTokenService) {
				repo.On("FindByEmail", mock.Anything, "jane@x.com").Return(nil, entities.ErrUserNotFound).Once()
				repo.On("FindByUsername", mock.Anything, "janedoe").Return(nil, entities.ErrUserNotFound).Once()
				pass.On("Hash", mock.Anything, "Str0ng!pass").Return("hashed", nil).Once()
				repo.On("Create", mock.Anything, mock.Anything).Return(nil, errDatabaseOperation).Once()
			},
			expectedErr: errDatabaseOperation,
		},
		{
			name: "token signing fails",
			form: janeForm,
			setupMocks: func(repo *mockUserRepository, pass *mockPasswordService, tok *mockTokenService) {
				repo.On("FindByEmail", mock.Anything, "jane@x.com").Return(nil, entities.ErrUserNotFound).Once()
				repo.On("FindByUsername", mock.Anything, "janedoe").Return(nil, entities.ErrUserNotFound).Once()
				pass.On("Hash", mock.Anything, "Str0ng!pass").Return("hashed", nil).Once()
				repo.On("Create", mock.Anything, mock.Anything).Return(created, nil).Once()
				tok.On("GenerateAccessToken", mock.Anything, created.ID, created.Email).
					Return("", time.Time{}, services.ErrGeneratingJWTToken).Once()
			},
			expectedErr: services.ErrTokenGenerationFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mockUserRepository)
			pass := new(mockPasswordService)
			tok := new(mockTokenService)
			tt.setupMocks(repo, pass, tok)

			uc := app.NewAuthUseCase(repo, pass, tok)
			res, err := uc.Register(context.Background(), tt.form())

			if tt.expectedErr == nil {
				require.NoError(t, err)
				require.NotNil(t, res)
				assert.Equal(t, "signed-token", res.Session.Token)
				assert.Equal(t, expiresAt, res.Session.ExpiresAt)
				assert.Equal(t, created.ID, res.User.ID)
			} else {
				require.Error(t, err)
				assert.Nil(t, res)
				var vErr *entities.ValidationError
				if errors.As(tt.expectedErr, &vErr) {
					require.ErrorAs(t, err, &vErr)
					assert.Equal(t, app.MsgPasswordTooShort, vErr.Message)
				} else {
					assert.ErrorIs(t, err, tt.expectedErr)
				}
			}

			repo.AssertExpectations(t)
			pass.AssertExpectations(t)
			tok.AssertExpectations(t)
		})
	}
}

func TestRegisterNormalizesBeforeLookup(t *testing.T) {
	repo := new(mockUserRepository)
	pass := new(mockPasswordService)
	tok := new(mockTokenService)

	repo.On("FindByEmail", mock.Anything, "jane@x.com").Return(&entities.User{ID: "u1"}, nil).Once()

	form := janeForm()
	form.Email = "  Jane@X.com "

	_, err := app.NewAuthUseCase(repo, pass, tok).Register(context.Background(), form)

	require.ErrorIs(t, err, entities.ErrEmailTaken)
	repo.AssertExpectations(t)
	pass.AssertNotCalled(t, "Hash", mock.Anything, mock.Anything)
}
