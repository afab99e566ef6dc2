package memory_test

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cryptovest/internal/auth/adapters/memory"
	"cryptovest/internal/auth/domain/entities"
)

func newUser(email, username string) *entities.User {
	return &entities.User{
		Name:         "Jane Doe",
		Username:     username,
		Email:        email,
		Phone:        "+15551234567",
		Country:      "US",
		Currency:     "USD",
		PasswordHash: "hashed",
	}
}

func TestCreateAndFind(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewUserRepository()

	created, err := repo.Create(ctx, newUser("jane@x.com", "janedoe"))
	require.NoError(t, err)
	_, err = uuid.Parse(created.ID)
	require.NoError(t, err)
	assert.False(t, created.CreatedAt.IsZero())

	byID, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, byID)

	byEmail, err := repo.FindByEmail(ctx, "jane@x.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)

	byUsername, err := repo.FindByUsername(ctx, "janedoe")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byUsername.ID)

	byEmail.Name = "mutated"
	again, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", again.Name)
}

func TestFindMissing(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewUserRepository()

	_, err := repo.FindByID(ctx, "nope")
	require.ErrorIs(t, err, entities.ErrUserNotFound)
	_, err = repo.FindByEmail(ctx, "nope@x.com")
	require.ErrorIs(t, err, entities.ErrUserNotFound)
	_, err = repo.FindByUsername(ctx, "nope")
	require.ErrorIs(t, err, entities.ErrUserNotFound)
}

func TestCreateUniqueness(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewUserRepository()

	_, err := repo.Create(ctx, newUser("jane@x.com", "janedoe"))
	require.NoError(t, err)

	_, err = repo.Create(ctx, newUser("jane@x.com", "other"))
	require.ErrorIs(t, err, entities.ErrEmailTaken)

	_, err = repo.Create(ctx, newUser("other@x.com", "janedoe"))
	require.ErrorIs(t, err, entities.ErrUsernameTaken)
}

func TestCreateConcurrentDuplicates(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewUserRepository()

	const workers = 16
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := repo.Create(ctx, newUser("jane@x.com", "janedoe")); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
}
