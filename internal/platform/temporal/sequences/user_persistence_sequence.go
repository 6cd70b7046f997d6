package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	userdomain "github.com/dolphin-software/users-service/internal/domains/users/domain"
	useractivities "github.com/dolphin-software/users-service/internal/platform/temporal/activities/users"
)

// RunUserPersistenceSequence executes the activities needed to persist a new user.
func RunUserPersistenceSequence(ctx workflow.Context, user userdomain.User) (*userdomain.User, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("user persistence sequence started")
	persistOptions := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    10 * time.Second,
			MaximumAttempts:    5,
			NonRetryableErrorTypes: []string{
				useractivities.ErrTypeDuplicateEmail,
				useractivities.ErrTypeInvalidInput,
			},
		},
	}

	var saved userdomain.User
	err := workflow.ExecuteActivity(workflow.WithActivityOptions(ctx, persistOptions), useractivities.PersistUserActivityName, user).Get(ctx, &saved)
	if err != nil {
		logger.Error("user persistence sequence failed", "error", err)
		return nil, err
	}
	logger.Info("user persistence sequence persisted", "userId", saved.ID.String())
	return &saved, nil
}
