package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/octobees/lead-router/internal/entity"
)

// MemoryUsersRepository keeps accounts in memory. It backs deployments that
// run without a database and the service tests.
type MemoryUsersRepository struct {
	mu      sync.RWMutex
	byEmail map[string]entity.User
}

// NewMemoryUsersRepository instantiates an empty in-memory users repository.
func NewMemoryUsersRepository() *MemoryUsersRepository {
	return &MemoryUsersRepository{byEmail: make(map[string]entity.User)}
}

// FindByEmail fetches a user by email if present.
func (r *MemoryUsersRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byEmail[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	return &user, nil
}

// Create stores a new user, rejecting duplicate emails.
func (r *MemoryUsersRepository) Create(ctx context.Context, email, passwordHash, role string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[email]; ok {
		return nil, ErrEmailDuplicate
	}

	now := time.Now().UTC()
	user := entity.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	r.byEmail[email] = user
	return &user, nil
}
