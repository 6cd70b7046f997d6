package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/dolphin-software/users-service/internal/domains/users/domain"
)

// Service exposes user bounded context use cases to adapters.
type Service interface {
	List(ctx context.Context) ([]domain.UserDTO, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.UserDTO, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	UpdateByID(ctx context.Context, id uuid.UUID, user *domain.User) error
	DeleteByID(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, user *domain.User) error
}
