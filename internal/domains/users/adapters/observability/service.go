package observability

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	userapp "github.com/dolphin-software/users-service/internal/domains/users/application"
	userdomain "github.com/dolphin-software/users-service/internal/domains/users/domain"
	userports "github.com/dolphin-software/users-service/internal/domains/users/ports"
)

const tracerName = "github.com/dolphin-software/users-service/internal/domains/users/adapters/observability/service"

// Service decorates the user service with tracing, logging, and metrics.
// Validation failures and unknown ids are expected outcomes: they are logged
// at info and leave the span status unset.
type Service struct {
	inner   userports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) { s.tracer = tr }
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) { s.metrics = newServiceMetrics(m) }
}

// New wraps the core user service.
func New(inner userports.Service, opts ...Option) userports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  defaultLogger(),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	if s.logger == nil {
		s.logger = defaultLogger()
	}
	return s
}

func (s *Service) List(ctx context.Context) ([]userdomain.UserDTO, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.List")
	defer span.End()
	users, err := s.inner.List(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list users")
	}
	span.SetAttributes(attribute.Int("user.count", len(users)))
	return users, nil
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*userdomain.UserDTO, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.GetByID", trace.WithAttributes(attribute.String("user.id", id.String())))
	defer span.End()
	user, err := s.inner.GetByID(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to get user", slog.String("user_id", id.String()))
	}
	return user, nil
}

func (s *Service) Create(ctx context.Context, user *userdomain.User) (*userdomain.User, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.Create")
	defer span.End()
	s.logInfo(ctx, "creating user")
	result, err := s.inner.Create(ctx, user)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to create user")
	}
	span.SetAttributes(attribute.String("user.id", result.ID.String()))
	s.metrics.recordCreated(ctx)
	s.logInfo(ctx, "user created", slog.String("user_id", result.ID.String()))
	return result, nil
}

func (s *Service) UpdateByID(ctx context.Context, id uuid.UUID, user *userdomain.User) error {
	ctx, span := s.tracer.Start(ctx, "UserService.UpdateByID", trace.WithAttributes(attribute.String("user.id", id.String())))
	defer span.End()
	if err := s.inner.UpdateByID(ctx, id, user); err != nil {
		return s.handleError(ctx, span, err, "failed to update user", slog.String("user_id", id.String()))
	}
	s.metrics.recordUpdated(ctx)
	s.logInfo(ctx, "user updated", slog.String("user_id", id.String()))
	return nil
}

func (s *Service) DeleteByID(ctx context.Context, id uuid.UUID) error {
	ctx, span := s.tracer.Start(ctx, "UserService.DeleteByID", trace.WithAttributes(attribute.String("user.id", id.String())))
	defer span.End()
	if err := s.inner.DeleteByID(ctx, id); err != nil {
		return s.handleError(ctx, span, err, "failed to delete user", slog.String("user_id", id.String()))
	}
	s.metrics.recordDeleted(ctx)
	s.logInfo(ctx, "user deleted", slog.String("user_id", id.String()))
	return nil
}

func (s *Service) Delete(ctx context.Context, user *userdomain.User) error {
	ctx, span := s.tracer.Start(ctx, "UserService.Delete")
	defer span.End()
	if err := s.inner.Delete(ctx, user); err != nil {
		return s.handleError(ctx, span, err, "failed to delete user")
	}
	s.metrics.recordDeleted(ctx)
	return nil
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	switch {
	case errors.Is(err, userapp.ErrInvalidInput):
		s.metrics.recordValidationFailed(ctx)
		s.logInfo(ctx, "user rejected by validation", append(attrs, slog.String("error", err.Error()))...)
		return err
	case errors.Is(err, userapp.ErrUserNotFound):
		s.metrics.recordNotFound(ctx)
		s.logInfo(ctx, "user not found", attrs...)
		return err
	}
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

type serviceMetrics struct {
	usersCreated     metric.Int64Counter
	usersUpdated     metric.Int64Counter
	usersDeleted     metric.Int64Counter
	notFound         metric.Int64Counter
	validationFailed metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	created, _ := m.Int64Counter("users.service.created", metric.WithDescription("Number of users created"))
	updated, _ := m.Int64Counter("users.service.updated", metric.WithDescription("Number of users updated"))
	deleted, _ := m.Int64Counter("users.service.deleted", metric.WithDescription("Number of user deletions"))
	notFound, _ := m.Int64Counter("users.service.not_found", metric.WithDescription("Number of lookups of unknown users"))
	invalid, _ := m.Int64Counter("users.service.validation_failed", metric.WithDescription("Number of payloads rejected by validation"))
	return serviceMetrics{
		usersCreated:     created,
		usersUpdated:     updated,
		usersDeleted:     deleted,
		notFound:         notFound,
		validationFailed: invalid,
	}
}

func (m serviceMetrics) recordCreated(ctx context.Context) {
	if m.usersCreated != nil {
		m.usersCreated.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordUpdated(ctx context.Context) {
	if m.usersUpdated != nil {
		m.usersUpdated.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordDeleted(ctx context.Context) {
	if m.usersDeleted != nil {
		m.usersDeleted.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordNotFound(ctx context.Context) {
	if m.notFound != nil {
		m.notFound.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordValidationFailed(ctx context.Context) {
	if m.validationFailed != nil {
		m.validationFailed.Add(ctx, 1)
	}
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var _ userports.Service = (*Service)(nil)
