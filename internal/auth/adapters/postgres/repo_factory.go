// Package postgres содержит хранилище пользователей на Postgres.
package postgres

import (
	"cryptovest/internal/auth/ports/repositories"
)

// RepositoryFactory создает репозитории поверх общего пула соединений.
type RepositoryFactory struct {
	userRepo repositories.UserRepository
}

// NewRepositoryFactory создает новую фабрику репозиториев.
func NewRepositoryFactory(pool PgxPoolInterface) *RepositoryFactory {
	return &RepositoryFactory{
		userRepo: NewUserRepository(pool),
	}
}

// UserRepository возвращает репозиторий пользователей.
func (f *RepositoryFactory) UserRepository() repositories.UserRepository {
	return f.userRepo
}
