package ports

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/dolphin-software/users-service/internal/domains/users/domain"
)

var (
	// ErrNotFound is returned by stores when no record matches the identifier.
	ErrNotFound = errors.New("user not found")
	// ErrDuplicateEmail is returned by stores when the email is already taken.
	ErrDuplicateEmail = errors.New("email already registered")
)

// Repository is the durable keyed storage for user records.
type Repository interface {
	// Create persists a new record and assigns its identifier.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	// Update replaces the record sharing the user's identifier.
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	// Delete removes a record. Deleting an unknown identifier is not an error.
	Delete(ctx context.Context, id uuid.UUID) error
}
