package users

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/converter"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/testsuite"
	"go.temporal.io/sdk/workflow"
	"golang.org/x/text/language"

	usermemory "github.com/dolphin-software/users-service/internal/domains/users/adapters/memory"
	userapp "github.com/dolphin-software/users-service/internal/domains/users/application"
	userdomain "github.com/dolphin-software/users-service/internal/domains/users/domain"
	"github.com/dolphin-software/users-service/internal/platform/i18n"
	useractivities "github.com/dolphin-software/users-service/internal/platform/temporal/activities/users"
)

func newEnv(t *testing.T, repo *usermemory.Repository) *testsuite.TestWorkflowEnvironment {
	t.Helper()
	var suite testsuite.WorkflowTestSuite
	env := suite.NewTestWorkflowEnvironment()
	service := userapp.NewService(repo, i18n.MustNewCatalog(language.English))
	acts := useractivities.NewActivities(service)
	env.RegisterWorkflowWithOptions(UserCreationWorkflow, workflow.RegisterOptions{Name: UserCreationWorkflowName})
	env.RegisterActivityWithOptions(acts.PersistUser, activity.RegisterOptions{Name: useractivities.PersistUserActivityName})
	return env
}

func alice() userdomain.User {
	return userdomain.User{FullName: "Alice", Phone: "111", Email: "a@x.com", Password: "p1"}
}

func TestUserCreationWorkflow_PersistsUser(t *testing.T) {
	env := newEnv(t, usermemory.NewRepository())

	env.ExecuteWorkflow(UserCreationWorkflowName, UserCreationWorkflowInput{User: alice(), TraceID: "trace-1"})

	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())
	var saved userdomain.User
	require.NoError(t, env.GetWorkflowResult(&saved))
	require.NotEqual(t, uuid.Nil, saved.ID)
	require.Equal(t, "a@x.com", saved.Email)
	require.False(t, saved.CreateDate.IsZero())
}

func TestUserCreationWorkflow_InvalidInputIsNotRetried(t *testing.T) {
	env := newEnv(t, usermemory.NewRepository())
	attempts := 0
	env.SetOnActivityStartedListener(func(*activity.Info, context.Context, converter.EncodedValues) {
		attempts++
	})

	env.ExecuteWorkflow(UserCreationWorkflowName, UserCreationWorkflowInput{User: userdomain.User{}})

	require.True(t, env.IsWorkflowCompleted())
	err := env.GetWorkflowError()
	require.Error(t, err)
	var appErr *temporal.ApplicationError
	require.True(t, errors.As(err, &appErr))
	require.Equal(t, useractivities.ErrTypeInvalidInput, appErr.Type())
	require.Equal(t, 1, attempts)
}

func TestUserCreationWorkflow_DuplicateEmail(t *testing.T) {
	repo := usermemory.NewRepository()
	existing := alice()
	_, err := repo.Create(context.Background(), &existing)
	require.NoError(t, err)
	env := newEnv(t, repo)

	env.ExecuteWorkflow(UserCreationWorkflowName, UserCreationWorkflowInput{User: alice()})

	require.True(t, env.IsWorkflowCompleted())
	var appErr *temporal.ApplicationError
	require.True(t, errors.As(env.GetWorkflowError(), &appErr))
	require.Equal(t, useractivities.ErrTypeDuplicateEmail, appErr.Type())
}
