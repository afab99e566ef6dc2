package entities

import (
	"errors"
	"time"
)

// Ошибки домена пользователя.
var (
	ErrEmptyUserID   = errors.New("user ID cannot be empty")
	ErrUserNotFound  = errors.New("user not found")
	ErrEmailTaken    = errors.New("email already in use")
	ErrUsernameTaken = errors.New("username already taken")
)

// User представляет зарегистрированного пользователя.
type User struct {
	ID           string
	Name         string
	Username     string
	Email        string
	Phone        string
	Country      string
	Currency     string
	PasswordHash string `json:"-"`
	CreatedAt    time.Time
}

// Registration - входные данные регистрации после нормализации.
type Registration struct {
	Name     string
	Username string
	Email    string
	Phone    string
	Country  string
	Currency string
	Password string `json:"-"`
}

// ValidationError описывает первое нарушенное правило валидации.
type ValidationError struct {
	Field   string
	Rule    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
