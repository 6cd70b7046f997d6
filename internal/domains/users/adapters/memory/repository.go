package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/dolphin-software/users-service/internal/domains/users/domain"
	"github.com/dolphin-software/users-service/internal/domains/users/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory user persistence adapter.
type Repository struct {
	mu    sync.RWMutex
	users map[uuid.UUID]*domain.User
}

func NewRepository() *Repository {
	return &Repository{users: map[uuid.UUID]*domain.User{}}
}

func (r *Repository) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if user == nil {
		return nil, errors.New("user is nil")
	}
	clone := user.Clone()
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.emailTaken(clone.Email, uuid.Nil) {
		return nil, ports.ErrDuplicateEmail
	}
	clone.ID = uuid.New()
	r.users[clone.ID] = clone
	return clone.Clone(), nil
}

func (r *Repository) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return user.Clone(), nil
}

// List returns users ordered by creation date, then id.
func (r *Repository) List(_ context.Context) ([]*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.User, 0, len(r.users))
	for _, user := range r.users {
		list = append(list, user.Clone())
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreateDate.Equal(list[j].CreateDate) {
			return list[i].CreateDate.Before(list[j].CreateDate)
		}
		return list[i].ID.String() < list[j].ID.String()
	})
	return list, nil
}

func (r *Repository) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	if user == nil {
		return nil, errors.New("user is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return nil, ports.ErrNotFound
	}
	if r.emailTaken(user.Email, user.ID) {
		return nil, ports.ErrDuplicateEmail
	}
	clone := user.Clone()
	r.users[clone.ID] = clone
	return clone.Clone(), nil
}

func (r *Repository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

// emailTaken must be called with the lock held.
func (r *Repository) emailTaken(email string, except uuid.UUID) bool {
	for id, existing := range r.users {
		if id != except && strings.EqualFold(existing.Email, email) {
			return true
		}
	}
	return false
}
