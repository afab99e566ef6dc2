package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"cryptovest/internal/auth/domain/entities"
	"cryptovest/internal/auth/ports/repositories"
	"cryptovest/pkg/logger"
)

// Имена ограничений уникальности из migrations/auth.
const (
	ConstraintEmailUnique    = "users_email_key"
	ConstraintUsernameUnique = "users_username_key"

	pgUniqueViolation = "23505"
)

const userColumns = `id, name, username, email, phone, country, currency, password_hash, created_at`

// PgxPoolInterface - подмножество pgxpool.Pool, используемое репозиторием.
type PgxPoolInterface interface {
	QueryRow(ctx context.Context, query string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, query string, args ...interface{}) (pgconn.CommandTag, error)
	Close()
}

// UserRepository реализует интерфейс repositories.UserRepository для работы с Postgres.
type UserRepository struct {
	pool PgxPoolInterface
}

// NewUserRepository создает новый экземпляр репозитория пользователей.
func NewUserRepository(pool PgxPoolInterface) repositories.UserRepository {
	return &UserRepository{pool: pool}
}

func scanUser(row pgx.Row) (*entities.User, error) {
	var user entities.User
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Username,
		&user.Email,
		&user.Phone,
		&user.Country,
		&user.Currency,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) findOne(ctx context.Context, method, column, value string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", method))

	query := `SELECT ` + userColumns + ` FROM users WHERE ` + column + ` = $1`

	user, err := scanUser(r.pool.QueryRow(ctx, query, value))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "user not found", zap.String(column, value))
			return nil, entities.ErrUserNotFound
		}
		log.Error(ctx, "error finding user by "+column, zap.Error(err))
		return nil, fmt.Errorf("error querying user by %s: %w", column, err)
	}

	return user, nil
}

// FindByID находит пользователя по ID.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*entities.User, error) {
	return r.findOne(ctx, "FindByID", "id", id)
}

// FindByEmail находит пользователя по email.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	return r.findOne(ctx, "FindByEmail", "email", email)
}

// FindByUsername находит пользователя по username.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*entities.User, error) {
	return r.findOne(ctx, "FindByUsername", "username", username)
}

// Create вставляет пользователя. ID и created_at назначает база данных.
// Нарушение ограничения уникальности возвращается как ErrEmailTaken или ErrUsernameTaken.
func (r *UserRepository) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "Create"))

	query := `
        INSERT INTO users (name, username, email, phone, country, currency, password_hash)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING ` + userColumns

	created, err := scanUser(r.pool.QueryRow(ctx, query,
		user.Name,
		user.Username,
		user.Email,
		user.Phone,
		user.Country,
		user.Currency,
		user.PasswordHash,
	))
	if err != nil {
		if conflict := uniqueViolation(err); conflict != nil {
			log.Debug(ctx, "unique constraint violated", zap.Error(err))
			return nil, conflict
		}
		log.Error(ctx, "error creating user", zap.Error(err))
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return created, nil
}

func uniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgUniqueViolation {
		return nil
	}
	switch pgErr.ConstraintName {
	case ConstraintEmailUnique:
		return entities.ErrEmailTaken
	case ConstraintUsernameUnique:
		return entities.ErrUsernameTaken
	default:
		return nil
	}
}
