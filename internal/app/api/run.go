package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"

	usersserver "github.com/dolphin-software/users-service/go"

	usercache "github.com/dolphin-software/users-service/internal/domains/users/adapters/cache"
	usermemory "github.com/dolphin-software/users-service/internal/domains/users/adapters/memory"
	userobs "github.com/dolphin-software/users-service/internal/domains/users/adapters/observability"
	userpostgres "github.com/dolphin-software/users-service/internal/domains/users/adapters/persistence/postgres"
	userworkflows "github.com/dolphin-software/users-service/internal/domains/users/adapters/workflows"
	userapp "github.com/dolphin-software/users-service/internal/domains/users/application"
	userdomain "github.com/dolphin-software/users-service/internal/domains/users/domain"
	userports "github.com/dolphin-software/users-service/internal/domains/users/ports"
	"github.com/dolphin-software/users-service/internal/platform/i18n"
	"github.com/dolphin-software/users-service/internal/platform/migrations"
	platformobservability "github.com/dolphin-software/users-service/internal/platform/observability"
	platformpostgres "github.com/dolphin-software/users-service/internal/platform/postgres"
	platformredis "github.com/dolphin-software/users-service/internal/platform/redis"
)

const shutdownTimeout = 5 * time.Second

// Run boots the users HTTP API with observability, storage, and workflows wired.
// It returns once ctx is cancelled and the server has drained.
func Run(ctx context.Context) error {
	const serviceName = "users-api"
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	deps, cleanup, err := BuildUserService(ctx, cfg, instruments)
	if err != nil {
		return err
	}
	defer cleanup()

	userWorkflows, closeWorkflows := chooseUserWorkflows(cfg, deps, instruments)
	defer closeWorkflows()

	handlers := usersserver.ApiHandleFunctions{
		UserAPI: usersserver.NewUserAPI(deps.Service, userWorkflows),
	}
	engine := gin.Default()
	engine.Use(otelgin.Middleware(serviceName), usersserver.LocaleMiddleware(deps.Catalog))
	router := usersserver.NewRouterWithGinEngine(engine, handlers)

	server := &http.Server{Addr: cfg.Addr(), Handler: router}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("users API listening", slog.String("addr", server.Addr))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		logger.Error("users API server exited", slog.String("addr", server.Addr), slog.String("error", err.Error()))
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	logger.Info("users API shutting down")
	return server.Shutdown(shutdownCtx)
}

// UserDependencies is the wired users stack shared by the API and the worker.
type UserDependencies struct {
	// Service is the instrumented service.
	Service   userports.Service
	Validator userports.UserValidator
	Catalog   *i18n.Catalog
	// Durable is set when users live in Postgres, where other processes see them.
	Durable bool
	// Cache is nil when reads are uncached.
	Cache *usercache.Repository
}

// chooseUserWorkflows starts creations on Temporal only when the worker can share
// the API's store; otherwise users are created inline.
func chooseUserWorkflows(cfg Config, deps UserDependencies, instruments *platformobservability.Instruments) (userports.WorkflowOrchestrator, func()) {
	logger := effectiveLogger(instruments)
	inline := userworkflows.NewInlineUserWorkflows(deps.Service)
	if !deps.Durable {
		logger.Warn("users are stored in memory, creating users inline")
		return inline, func() {}
	}
	temporalClient, err := ConnectTemporalClient(cfg, instruments)
	if err != nil {
		logger.Warn("Temporal workflows unavailable, creating users inline", slog.String("error", err.Error()))
		return inline, func() {}
	}
	logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	var orchestrator userports.WorkflowOrchestrator = userworkflows.NewTemporalUserWorkflows(temporalClient, deps.Validator)
	if deps.Cache != nil {
		orchestrator = cacheForgettingWorkflows{WorkflowOrchestrator: orchestrator, cache: deps.Cache}
	}
	return orchestrator, temporalClient.Close
}

// cacheForgettingWorkflows drops cached reads after a creation the worker persisted,
// since the worker's writes do not pass through this process's cache.
type cacheForgettingWorkflows struct {
	userports.WorkflowOrchestrator
	cache *usercache.Repository
}

func (w cacheForgettingWorkflows) CreateUser(ctx context.Context, user *userdomain.User) (*userdomain.User, error) {
	saved, err := w.WorkflowOrchestrator.CreateUser(ctx, user)
	if err != nil {
		return nil, err
	}
	w.cache.Forget(ctx, saved.ID)
	return saved, nil
}

// ValidateWorkerDependencies rejects stacks a Temporal worker cannot serve:
// activities persisting into process memory would be invisible to the API.
func ValidateWorkerDependencies(deps UserDependencies) error {
	if !deps.Durable {
		return errors.New("worker requires POSTGRES_DSN to reach a shared users store")
	}
	return nil
}

// BuildUserService assembles storage, cache, localization, and the instrumented service.
// Postgres and Redis are optional: without them users live in memory and reads are uncached.
func BuildUserService(ctx context.Context, cfg Config, instruments *platformobservability.Instruments) (UserDependencies, func(), error) {
	logger := effectiveLogger(instruments)
	catalog, err := i18n.NewCatalog(cfg.DefaultLocale)
	if err != nil {
		return UserDependencies{}, func() {}, fmt.Errorf("failed to load message bundles: %w", err)
	}

	repo, durable, cleanupRepo, err := buildUserRepository(ctx, cfg, logger)
	if err != nil {
		return UserDependencies{}, func() {}, err
	}
	var cached *usercache.Repository
	rdb, cleanupRedis := platformredis.ConnectOptional(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, logger)
	if rdb != nil {
		cached = usercache.NewRepository(rdb, cfg.UserCacheTTL, repo, "")
		repo = cached
	}
	cleanup := func() {
		cleanupRedis()
		cleanupRepo()
	}

	core := userapp.NewService(repo, catalog)
	service := userobs.New(
		core,
		userobs.WithLogger(logger),
		userobs.WithTracer(instruments.Tracer("internal.users.application")),
		userobs.WithMeter(instruments.Meter("internal.users.application")),
	)
	return UserDependencies{Service: service, Validator: core, Catalog: catalog, Durable: durable, Cache: cached}, cleanup, nil
}

func buildUserRepository(ctx context.Context, cfg Config, logger *slog.Logger) (userports.Repository, bool, func(), error) {
	db, cleanup := platformpostgres.ConnectOptional(ctx, cfg.PostgresDSN, logger)
	if db == nil {
		return usermemory.NewRepository(), false, cleanup, nil
	}
	if cfg.RunMigrations {
		if err := migrations.Run(db.WithContext(ctx)); err != nil {
			cleanup()
			return nil, false, func() {}, fmt.Errorf("failed to migrate users schema: %w", err)
		}
		logger.Info("users schema migrated")
	}
	logger.Info("user repository configured with postgres")
	return userpostgres.NewRepository(db), true, cleanup, nil
}

// ConnectTemporalClient dials Temporal with tracing and structured logging, unless disabled.
func ConnectTemporalClient(cfg Config, instruments *platformobservability.Instruments) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED env")
	}
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer("temporal-client")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(effectiveLogger(instruments)),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
