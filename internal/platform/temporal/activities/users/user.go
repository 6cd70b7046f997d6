package users

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	userapp "github.com/dolphin-software/users-service/internal/domains/users/application"
	userdomain "github.com/dolphin-software/users-service/internal/domains/users/domain"
	userports "github.com/dolphin-software/users-service/internal/domains/users/ports"
)

const (
	// PersistUserActivityName persists a new user record.
	PersistUserActivityName = "users.activities.PersistUser"

	// Application error types carried back to the caller of the workflow.
	ErrTypeDuplicateEmail = "DuplicateEmail"
	ErrTypeInvalidInput   = "InvalidInput"
)

// Activities groups activities that operate on the users bounded context.
type Activities struct {
	service userports.Service
}

// NewActivities wires the users service into the Temporal activities bundle.
func NewActivities(service userports.Service) *Activities {
	return &Activities{service: service}
}

// PersistUser stores a new user and returns the saved record.
// Duplicate emails and invalid payloads fail without retry.
func (a *Activities) PersistUser(ctx context.Context, user userdomain.User) (*userdomain.User, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("user persist activity not initialized")
		return nil, errors.New("user persist activity not initialized")
	}
	logger.Info("PersistUser activity started")
	saved, err := a.service.Create(ctx, &user)
	if err != nil {
		logger.Error("PersistUser activity failed", "error", err)
		switch {
		case errors.Is(err, userports.ErrDuplicateEmail):
			return nil, temporal.NewNonRetryableApplicationError(err.Error(), ErrTypeDuplicateEmail, err)
		case errors.Is(err, userapp.ErrInvalidInput):
			return nil, temporal.NewNonRetryableApplicationError(err.Error(), ErrTypeInvalidInput, err)
		}
		return nil, err
	}
	logger.Info("PersistUser activity completed", "userId", saved.ID.String())
	return saved, nil
}
