package workflows

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"

	userdomain "github.com/dolphin-software/users-service/internal/domains/users/domain"
	"github.com/dolphin-software/users-service/internal/domains/users/ports"
	useractivities "github.com/dolphin-software/users-service/internal/platform/temporal/activities/users"
	userworkflows "github.com/dolphin-software/users-service/internal/platform/temporal/workflows/users"
)

var (
	_ ports.WorkflowOrchestrator = (*TemporalUserWorkflows)(nil)
	_ ports.WorkflowOrchestrator = (*InlineUserWorkflows)(nil)
)

// TemporalUserWorkflows starts user workflows on a Temporal cluster.
// Payloads are validated before the workflow starts so rejections stay synchronous.
type TemporalUserWorkflows struct {
	client    client.Client
	validator ports.UserValidator
	taskQueue string
}

// NewTemporalUserWorkflows wires a Temporal client into the orchestrator.
func NewTemporalUserWorkflows(c client.Client, validator ports.UserValidator) *TemporalUserWorkflows {
	return &TemporalUserWorkflows{client: c, validator: validator, taskQueue: userworkflows.UserCreationTaskQueue}
}

// CreateUser starts the Temporal workflow that persists a user and waits for its result.
func (o *TemporalUserWorkflows) CreateUser(ctx context.Context, user *userdomain.User) (*userdomain.User, error) {
	if user == nil {
		return nil, errors.New("user is nil")
	}
	if o != nil && o.validator != nil {
		if err := o.validator.Validate(ctx, user); err != nil {
			return nil, err
		}
	}
	if o == nil || o.client == nil {
		return nil, errors.New("temporal user workflows not configured")
	}
	traceComponent := workflowTraceComponent(ctx)
	workflowID := buildUserCreationWorkflowID(user, traceComponent)
	options := client.StartWorkflowOptions{
		ID:        workflowID,
		TaskQueue: o.taskQueue,
		// Without this the SDK silently returns the running execution.
		WorkflowExecutionErrorWhenAlreadyStarted: true,
	}
	run, err := o.client.ExecuteWorkflow(
		ctx,
		options,
		userworkflows.UserCreationWorkflowName,
		userworkflows.UserCreationWorkflowInput{User: *user, TraceID: traceComponent},
	)
	if err != nil {
		// A running creation for the same email and trace carries a payload this caller never sent.
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if errors.As(err, &alreadyStarted) {
			return nil, fmt.Errorf("%w: creation already in progress as %s", ports.ErrDuplicateEmail, workflowID)
		}
		return nil, err
	}
	var saved userdomain.User
	if err := run.Get(ctx, &saved); err != nil {
		return nil, translateWorkflowError(err)
	}
	return &saved, nil
}

// InlineUserWorkflows executes the service directly without Temporal, useful for tests or dev fallbacks.
type InlineUserWorkflows struct {
	service ports.Service
}

// NewInlineUserWorkflows wraps the users service for synchronous execution.
func NewInlineUserWorkflows(service ports.Service) *InlineUserWorkflows {
	return &InlineUserWorkflows{service: service}
}

// CreateUser delegates to the application service without durable orchestration.
func (o *InlineUserWorkflows) CreateUser(ctx context.Context, user *userdomain.User) (*userdomain.User, error) {
	if o == nil || o.service == nil {
		return nil, errors.New("inline user workflows not configured")
	}
	return o.service.Create(ctx, user)
}

// translateWorkflowError restores the store sentinel for failures the activity marked as duplicates.
func translateWorkflowError(err error) error {
	var appErr *temporal.ApplicationError
	if errors.As(err, &appErr) && appErr.Type() == useractivities.ErrTypeDuplicateEmail {
		return fmt.Errorf("%w: %s", ports.ErrDuplicateEmail, appErr.Error())
	}
	return err
}

func buildUserCreationWorkflowID(user *userdomain.User, traceComponent string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(user.Email))))
	return fmt.Sprintf("user-creation-%s-%s", hex.EncodeToString(sum[:6]), traceComponent)
}

func workflowTraceComponent(ctx context.Context) string {
	traceComponent := workflowTraceID(ctx)
	if traceComponent != "" {
		return traceComponent
	}
	return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
}

func workflowTraceID(ctx context.Context) string {
	span := oteltrace.SpanFromContext(ctx)
	if span == nil {
		return ""
	}
	spanCtx := span.SpanContext()
	if !spanCtx.IsValid() {
		return ""
	}
	traceID := spanCtx.TraceID()
	if !traceID.IsValid() {
		return ""
	}
	return traceID.String()
}
