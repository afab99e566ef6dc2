// Package memory содержит хранилище пользователей в памяти процесса.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"cryptovest/internal/auth/domain/entities"
	"cryptovest/internal/auth/ports/repositories"
	"cryptovest/pkg/logger"
)

// UserRepository хранит пользователей в map и соблюдает те же ограничения
// уникальности email и username, что и таблица users.
type UserRepository struct {
	mu         sync.RWMutex
	byID       map[string]*entities.User
	byEmail    map[string]string
	byUsername map[string]string
	now        func() time.Time
}

// NewUserRepository создает пустое хранилище.
func NewUserRepository() repositories.UserRepository {
	return &UserRepository{
		byID:       make(map[string]*entities.User),
		byEmail:    make(map[string]string),
		byUsername: make(map[string]string),
		now:        time.Now,
	}
}

// Create сохраняет копию пользователя с новым ID.
func (r *UserRepository) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[user.Email]; ok {
		return nil, entities.ErrEmailTaken
	}
	if _, ok := r.byUsername[user.Username]; ok {
		return nil, entities.ErrUsernameTaken
	}

	stored := *user
	stored.ID = uuid.NewString()
	stored.CreatedAt = r.now().UTC()

	r.byID[stored.ID] = &stored
	r.byEmail[stored.Email] = stored.ID
	r.byUsername[stored.Username] = stored.ID

	logger.Log(ctx).Debug(ctx, "user stored in memory", zap.String("userID", stored.ID))

	out := stored
	return &out, nil
}

// FindByID находит пользователя по ID.
func (r *UserRepository) FindByID(_ context.Context, id string) (*entities.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.copyOf(id)
}

// FindByEmail находит пользователя по email.
func (r *UserRepository) FindByEmail(_ context.Context, email string) (*entities.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.copyOf(r.byEmail[email])
}

// FindByUsername находит пользователя по username.
func (r *UserRepository) FindByUsername(_ context.Context, username string) (*entities.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.copyOf(r.byUsername[username])
}

func (r *UserRepository) copyOf(id string) (*entities.User, error) {
	user, ok := r.byID[id]
	if !ok {
		return nil, entities.ErrUserNotFound
	}
	out := *user
	return &out, nil
}
