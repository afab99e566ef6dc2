package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"cryptovest/internal/auth/domain/services"
	svc "cryptovest/internal/auth/ports/services"
	"cryptovest/pkg/logger"
)

const (
	methodGenerateAccessToken = "GenerateAccessToken"
	methodValidateAccessToken = "ValidateAccessToken"
	msgGeneratingAccessToken  = "generating access token"
	msgValidatingToken        = "validating token"
	msgTokenGenerated         = "token generated successfully"
	msgTokenValidated         = "token validated successfully"
	msgInvalidToken           = "invalid token format"
	msgTokenExpired           = "token has expired"
	msgEmptySecretKey         = "empty secret key provided"
	msgEmptySubject           = "id claim is empty"
	//nolint:gosec
	errSigningToken = "error signing token"
	//nolint:gosec
	errParsingToken       = "error parsing token"
	errCtxGeneratingToken = "generating token"
	errCtxParsingToken    = "parsing token"
	errCtxValidatingToken = "validating token"
)

// ErrInvalidAlgorithm возвращается для токенов, подписанных не HMAC.
var ErrInvalidAlgorithm = errors.New("invalid signing algorithm")

// Claims - полезная нагрузка токена сессии в формате библиотеки JWT.
// Поля id и email читаются клиентом, exp проверяется Session Guard.
type Claims struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// ServiceJWT реализует интерфейс TokenService.
type ServiceJWT struct {
	config services.JWTConfig
	now    func() time.Time
}

// NewJWT создает сервис токенов с подписью HS256.
func NewJWT(secretKey string, tokenTTL time.Duration) svc.TokenService {
	return &ServiceJWT{
		config: services.JWTConfig{
			SecretKey: []byte(secretKey),
			TokenTTL:  tokenTTL,
		},
		now: time.Now,
	}
}

func toJWTClaims(claims services.JWTClaims) Claims {
	return Claims{
		ID:    claims.UserID,
		Email: claims.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.UserID,
			IssuedAt:  jwt.NewNumericDate(claims.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(claims.ExpiresAt),
		},
	}
}

func toDomainClaims(claims *Claims) *services.JWTClaims {
	out := &services.JWTClaims{UserID: claims.ID, Email: claims.Email}
	if out.UserID == "" {
		out.UserID = claims.Subject
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out
}

// GenerateAccessToken подписывает токен с полями {id, email} и ограниченным сроком действия.
func (s *ServiceJWT) GenerateAccessToken(ctx context.Context, userID, email string) (string, time.Time, error) {
	log := logger.Log(ctx).With(
		zap.String("method", methodGenerateAccessToken),
		zap.String("userID", userID),
	)
	log.Debug(ctx, msgGeneratingAccessToken)

	if len(s.config.SecretKey) == 0 {
		log.Error(ctx, msgEmptySecretKey)
		return "", time.Time{}, fmt.Errorf("%s: %w: empty secret key", errCtxGeneratingToken, services.ErrGeneratingJWTToken)
	}

	// exp хранится с точностью до секунды, возвращаемое значение совпадает с claim.
	now := s.now().Truncate(time.Second)
	expiresAt := now.Add(s.config.TokenTTL)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, toJWTClaims(services.JWTClaims{
		UserID:    userID,
		Email:     email,
		IssuedAt:  now,
		ExpiresAt: expiresAt,
	}))

	tokenString, err := token.SignedString(s.config.SecretKey)
	if err != nil {
		log.Error(ctx, errSigningToken, zap.Error(err))
		return "", time.Time{}, fmt.Errorf("%s: %w: %w", errCtxGeneratingToken, services.ErrGeneratingJWTToken, err)
	}

	log.Debug(ctx, msgTokenGenerated, zap.Time("expiresAt", expiresAt))
	return tokenString, expiresAt, nil
}

// ValidateAccessToken проверяет подпись и срок действия токена.
func (s *ServiceJWT) ValidateAccessToken(ctx context.Context, tokenString string) (*services.JWTClaims, error) {
	log := logger.Log(ctx).With(zap.String("method", methodValidateAccessToken))
	log.Debug(ctx, msgValidatingToken)

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAlgorithm, token.Header["alg"])
		}
		return s.config.SecretKey, nil
	}, jwt.WithExpirationRequired(), jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			log.Debug(ctx, msgTokenExpired)
			return nil, fmt.Errorf("%s: %w", errCtxValidatingToken, services.ErrExpiredJWTToken)
		}
		log.Debug(ctx, errParsingToken, zap.Error(err))
		return nil, fmt.Errorf("%s: %w: %w", errCtxParsingToken, services.ErrInvalidJWTToken, err)
	}

	if !token.Valid {
		log.Debug(ctx, msgInvalidToken)
		return nil, fmt.Errorf("%s: %w", errCtxValidatingToken, services.ErrInvalidJWTToken)
	}

	domain := toDomainClaims(claims)
	if domain.UserID == "" {
		log.Debug(ctx, msgEmptySubject)
		return nil, fmt.Errorf("%s: %w: empty id", errCtxValidatingToken, services.ErrInvalidJWTToken)
	}

	log.Debug(ctx, msgTokenValidated, zap.String("userID", domain.UserID))
	return domain, nil
}
