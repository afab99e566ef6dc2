package services_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"cryptovest/internal/auth/adapters/services"
	domainservices "cryptovest/internal/auth/domain/services"
)

const testSecret = "test-secret-key"

func TestBcryptHash(t *testing.T) {
	service := services.NewBcrypt(bcrypt.MinCost)
	ctx := context.Background()

	first, err := service.Hash(ctx, "Str0ng!pass")
	require.NoError(t, err)
	second, err := service.Hash(ctx, "Str0ng!pass")
	require.NoError(t, err)

	assert.NotEqual(t, "Str0ng!pass", first)
	assert.NotEqual(t, first, second, "hashes of same password should differ due to salt")
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(first), []byte("Str0ng!pass")))

	cost, err := bcrypt.Cost([]byte(first))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)
}

func TestBcryptHashEmptyPassword(t *testing.T) {
	hash, err := services.NewBcrypt(bcrypt.MinCost).Hash(context.Background(), "")

	require.ErrorIs(t, err, domainservices.ErrInvalidPassword)
	assert.Empty(t, hash)
}

func TestBcryptHashLongPassword(t *testing.T) {
	password := "Str0ng!" + strings.Repeat("a", 70)

	hash, err := services.NewBcrypt(bcrypt.MinCost).Hash(context.Background(), password)
	require.NoError(t, err)

	prefix := []byte(password[:services.MaxPasswordBytes])
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), prefix))
}

func TestBcryptInvalidCostFallsBackToDefault(t *testing.T) {
	hash, err := services.NewBcrypt(0).Hash(context.Background(), "Str0ng!pass")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}

func TestGenerateAccessTokenClaims(t *testing.T) {
	service := services.NewJWT(testSecret, time.Hour)

	token, expiresAt, err := service.GenerateAccessToken(context.Background(), "user-1", "jane@x.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 2*time.Second)

	claims := &services.Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	assert.Equal(t, jwt.SigningMethodHS256.Alg(), parsed.Method.Alg())
	assert.Equal(t, "user-1", claims.ID)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "jane@x.com", claims.Email)
	assert.Equal(t, expiresAt.Unix(), claims.ExpiresAt.Unix())
}

func TestGenerateAccessTokenEmptySecret(t *testing.T) {
	_, _, err := services.NewJWT("", time.Hour).GenerateAccessToken(context.Background(), "user-1", "jane@x.com")

	require.ErrorIs(t, err, domainservices.ErrGeneratingJWTToken)
}

func TestValidateAccessToken(t *testing.T) {
	ctx := context.Background()
	service := services.NewJWT(testSecret, time.Hour)
	valid, _, err := service.GenerateAccessToken(ctx, "user-1", "jane@x.com")
	require.NoError(t, err)

	expired, _, err := services.NewJWT(testSecret, -time.Hour).GenerateAccessToken(ctx, "user-1", "jane@x.com")
	require.NoError(t, err)

	foreign, _, err := services.NewJWT("other-secret", time.Hour).GenerateAccessToken(ctx, "user-1", "jane@x.com")
	require.NoError(t, err)

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, services.Claims{ID: "user-1"}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	noneAlg, err := jwt.NewWithClaims(jwt.SigningMethodNone, services.Claims{
		ID:               "user-1",
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name        string
		token       string
		expectedErr error
	}{
		{"valid", valid, nil},
		{"expired", expired, domainservices.ErrExpiredJWTToken},
		{"wrong signature", foreign, domainservices.ErrInvalidJWTToken},
		{"missing exp", noExp, domainservices.ErrInvalidJWTToken},
		{"none algorithm", noneAlg, domainservices.ErrInvalidJWTToken},
		{"garbage", "not.a.token", domainservices.ErrInvalidJWTToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := service.ValidateAccessToken(ctx, tt.token)
			if tt.expectedErr != nil {
				require.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, claims)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "user-1", claims.UserID)
			assert.Equal(t, "jane@x.com", claims.Email)
		})
	}
}

func TestServiceFactory(t *testing.T) {
	factory := services.NewServiceFactory(testSecret, time.Hour, bcrypt.MinCost)

	assert.NotNil(t, factory.PasswordService())
	assert.NotNil(t, factory.TokenService())
}
