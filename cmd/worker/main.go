package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/dolphin-software/users-service/internal/app/api"
	platformobservability "github.com/dolphin-software/users-service/internal/platform/observability"
	useractivities "github.com/dolphin-software/users-service/internal/platform/temporal/activities/users"
	userworkflows "github.com/dolphin-software/users-service/internal/platform/temporal/workflows/users"
)

func main() {
	ctx := context.Background()
	const serviceName = "users-worker"
	cfg, err := api.LoadConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	deps, cleanup, err := api.BuildUserService(ctx, cfg, instruments)
	if err != nil {
		logger.Error("failed to build user service", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer cleanup()
	if err := api.ValidateWorkerDependencies(deps); err != nil {
		logger.Error("refusing to start worker", slog.String("error", err.Error()))
		cleanup()
		os.Exit(1)
	}
	userActivities := useractivities.NewActivities(deps.Service)

	// The worker cannot run inline, so TEMPORAL_DISABLED is ignored here.
	cfg.TemporalDisabled = false
	temporalClient, err := api.ConnectTemporalClient(cfg, instruments)
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, userworkflows.UserCreationTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(userworkflows.UserCreationWorkflow, workflow.RegisterOptions{Name: userworkflows.UserCreationWorkflowName})
	w.RegisterActivityWithOptions(userActivities.PersistUser, activity.RegisterOptions{Name: useractivities.PersistUserActivityName})

	logger.Info("worker listening", slog.String("taskQueue", userworkflows.UserCreationTaskQueue), slog.String("namespace", cfg.TemporalNamespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}
