package ports

import (
	"context"

	"github.com/dolphin-software/users-service/internal/domains/users/domain"
)

// WorkflowOrchestrator runs user creation either inline or as a durable workflow.
type WorkflowOrchestrator interface {
	CreateUser(ctx context.Context, user *domain.User) (*domain.User, error)
}

// UserValidator checks a candidate user without touching the store.
type UserValidator interface {
	Validate(ctx context.Context, user *domain.User) error
}
