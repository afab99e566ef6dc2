// Package dto содержит объекты передачи данных HTTP шлюза.
package dto

import (
	"time"

	"cryptovest/internal/auth/domain/entities"
)

// RegisterRequest - тело POST /api/auth/register.
type RegisterRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Country  string `json:"country"`
	Currency string `json:"currency"`
	Password string `json:"password"`
}

// ToRegistration переводит запрос в форму сценария регистрации.
func (r *RegisterRequest) ToRegistration() entities.Registration {
	return entities.Registration{
		Name:     r.Name,
		Username: r.Username,
		Email:    r.Email,
		Phone:    r.Phone,
		Country:  r.Country,
		Currency: r.Currency,
		Password: r.Password,
	}
}

// UserResponse - безопасная проекция пользователя. Хэш пароля сюда не попадает.
type UserResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Country  string `json:"country"`
	Currency string `json:"currency"`
}

// NewUserResponse строит проекцию из сущности.
func NewUserResponse(u *entities.User) UserResponse {
	return UserResponse{
		ID:       u.ID,
		Name:     u.Name,
		Username: u.Username,
		Email:    u.Email,
		Phone:    u.Phone,
		Country:  u.Country,
		Currency: u.Currency,
	}
}

// RegisterResponse - тело ответа 201.
type RegisterResponse struct {
	Message   string       `json:"message"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

// ErrorResponse - тело любого ответа с ошибкой.
type ErrorResponse struct {
	Error string `json:"error"`
}

// DashboardResponse - оболочка защищенной страницы.
type DashboardResponse struct {
	Sidebar []NavItem `json:"sidebar"`
}

// NavItem - пункт боковой навигации.
type NavItem struct {
	Label string `json:"label"`
	Path  string `json:"path"`
}
