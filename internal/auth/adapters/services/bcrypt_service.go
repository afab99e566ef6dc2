package services

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"cryptovest/internal/auth/domain/services"
	svc "cryptovest/internal/auth/ports/services"
)

const errMsgFailedToGenerateHash = "failed to generate password hash"

// MaxPasswordBytes - длина входа bcrypt. Байты после нее в хэш не попадают.
const MaxPasswordBytes = 72

// ServiceBcrypt реализует интерфейс PasswordService.
type ServiceBcrypt struct {
	cost int
}

// NewBcrypt создает сервис bcrypt. Стоимость вне допустимого диапазона заменяется на bcrypt.DefaultCost.
func NewBcrypt(cost int) svc.PasswordService {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &ServiceBcrypt{cost: cost}
}

// Hash возвращает bcrypt-хэш пароля. Соль уникальна для каждого вызова.
func (s *ServiceBcrypt) Hash(_ context.Context, password string) (string, error) {
	if password == "" {
		return "", services.ErrInvalidPassword
	}

	// Как и bcryptjs, хэшируются только первые 72 байта; более длинный пароль не ошибка.
	secret := []byte(password)
	if len(secret) > MaxPasswordBytes {
		secret = secret[:MaxPasswordBytes]
	}

	hashedBytes, err := bcrypt.GenerateFromPassword(secret, s.cost)
	if err != nil {
		return "", fmt.Errorf("%s: %w: %w", errMsgFailedToGenerateHash, services.ErrHashingFailed, err)
	}

	return string(hashedBytes), nil
}
