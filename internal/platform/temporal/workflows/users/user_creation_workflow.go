package users

import (
	"go.temporal.io/sdk/workflow"

	userdomain "github.com/dolphin-software/users-service/internal/domains/users/domain"
	"github.com/dolphin-software/users-service/internal/platform/temporal/sequences"
)

const (
	// UserCreationWorkflowName is the public identifier for registering the workflow.
	UserCreationWorkflowName = "users.workflows.Creation"
	// UserCreationTaskQueue is the queue consumed by the worker processing user workflows.
	UserCreationTaskQueue = "USER_CREATION"
)

// UserCreationWorkflowInput captures the payload required to provision a new user.
type UserCreationWorkflowInput struct {
	User    userdomain.User
	TraceID string
}

// UserCreationWorkflow orchestrates the activities needed to persist a user.
func UserCreationWorkflow(ctx workflow.Context, input UserCreationWorkflowInput) (*userdomain.User, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("UserCreationWorkflow started", withTraceID(input.TraceID)...)
	saved, err := sequences.RunUserPersistenceSequence(ctx, input.User)
	if err != nil {
		logger.Error("UserCreationWorkflow failed", withTraceID(input.TraceID, "error", err)...)
		return nil, err
	}
	logger.Info("UserCreationWorkflow completed", withTraceID(input.TraceID, "userId", saved.ID.String())...)
	return saved, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
