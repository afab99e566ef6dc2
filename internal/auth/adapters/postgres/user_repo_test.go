package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cryptovest/internal/auth/adapters/postgres"
	"cryptovest/internal/auth/domain/entities"
	"cryptovest/internal/auth/ports/repositories"
)

var (
	columns = []string{"id", "name", "username", "email", "phone", "country", "currency", "password_hash", "created_at"}

	errConnectionLost = errors.New("connection lost")
)

func testUser(now time.Time) *entities.User {
	return &entities.User{
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
}

func userRow(u *entities.User) *pgxmock.Rows {
	return pgxmock.NewRows(columns).AddRow(
		u.ID, u.Name, u.Username, u.Email, u.Phone, u.Country, u.Currency, u.PasswordHash, u.CreatedAt,
	)
}

func TestRepositoryFactory(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	factory := postgres.NewRepositoryFactory(mock)

	require.NotNil(t, factory.UserRepository())
	assert.Implements(t, (*repositories.UserRepository)(nil), factory.UserRepository())
}

func TestFindUser(t *testing.T) {
	now := time.Now().UTC()
	user := testUser(now)

	tests := []struct {
		name   string
		column string
		value  string
		call   func(repositories.UserRepository, string) (*entities.User, error)
	}{
		{"by id", "id", user.ID, func(r repositories.UserRepository, v string) (*entities.User, error) {
			return r.FindByID(context.Background(), v)
		}},
		{"by email", "email", user.Email, func(r repositories.UserRepository, v string) (*entities.User, error) {
			return r.FindByEmail(context.Background(), v)
		}},
		{"by username", "username", user.Username, func(r repositories.UserRepository, v string) (*entities.User, error) {
			return r.FindByUsername(context.Background(), v)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name+" found", func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			mock.ExpectQuery("SELECT id, name, username, email").
				WithArgs(tt.value).
				WillReturnRows(userRow(user))

			got, err := tt.call(postgres.NewUserRepository(mock), tt.value)

			require.NoError(t, err)
			assert.Equal(t, user, got)
			require.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run(tt.name+" not found", func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			mock.ExpectQuery("SELECT id, name, username, email").
				WithArgs(tt.value).
				WillReturnError(pgx.ErrNoRows)

			got, err := tt.call(postgres.NewUserRepository(mock), tt.value)

			require.ErrorIs(t, err, entities.ErrUserNotFound)
			assert.Nil(t, got)
			require.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run(tt.name+" query error", func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			mock.ExpectQuery("SELECT id, name, username, email").
				WithArgs(tt.value).
				WillReturnError(errConnectionLost)

			_, err = tt.call(postgres.NewUserRepository(mock), tt.value)

			require.ErrorIs(t, err, errConnectionLost)
			assert.NotErrorIs(t, err, entities.ErrUserNotFound)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCreateUser(t *testing.T) {
	now := time.Now().UTC()
	user := testUser(now)
	input := *user
	input.ID = ""
	input.CreatedAt = time.Time{}

	args := []interface{}{
		input.Name, input.Username, input.Email, input.Phone, input.Country, input.Currency, input.PasswordHash,
	}

	tests := []struct {
		name        string
		expect      func(mock pgxmock.PgxPoolIface)
		expectedErr error
	}{
		{
			name: "success",
			expect: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery("INSERT INTO users").WithArgs(args...).WillReturnRows(userRow(user))
			},
		},
		{
			name: "email unique violation",
			expect: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery("INSERT INTO users").WithArgs(args...).
					WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: postgres.ConstraintEmailUnique})
			},
			expectedErr: entities.ErrEmailTaken,
		},
		{
			name: "username unique violation",
			expect: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery("INSERT INTO users").WithArgs(args...).
					WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: postgres.ConstraintUsernameUnique})
			},
			expectedErr: entities.ErrUsernameTaken,
		},
		{
			name: "unknown constraint is not a conflict",
			expect: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery("INSERT INTO users").WithArgs(args...).
					WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_pkey"})
			},
			expectedErr: &pgconn.PgError{},
		},
		{
			name: "connection error",
			expect: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery("INSERT INTO users").WithArgs(args...).WillReturnError(errConnectionLost)
			},
			expectedErr: errConnectionLost,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()
			tt.expect(mock)

			got, err := postgres.NewUserRepository(mock).Create(context.Background(), &input)

			switch tt.expectedErr.(type) {
			case nil:
				require.NoError(t, err)
				assert.Equal(t, user, got)
			case *pgconn.PgError:
				var pgErr *pgconn.PgError
				require.ErrorAs(t, err, &pgErr)
				assert.NotErrorIs(t, err, entities.ErrEmailTaken)
				assert.NotErrorIs(t, err, entities.ErrUsernameTaken)
			default:
				require.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, got)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
