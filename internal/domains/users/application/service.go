package application

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/dolphin-software/users-service/internal/domains/users/domain"
	"github.com/dolphin-software/users-service/internal/domains/users/ports"
	"github.com/dolphin-software/users-service/internal/shared/locale"
)

const notFoundCode = "user.message.notfound"

// Service exposes user bounded context use cases.
type Service struct {
	repo      ports.Repository
	messages  ports.MessageSource
	validator *Validator
	clock     func() time.Time
}

// Option customises the service.
type Option func(*Service)

// WithClock overrides the source of "today" used for record dates.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

func WithValidator(v *Validator) Option {
	return func(s *Service) {
		if v != nil {
			s.validator = v
		}
	}
}

func NewService(repo ports.Repository, messages ports.MessageSource, opts ...Option) *Service {
	s := &Service{repo: repo, messages: messages, clock: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	if s.validator == nil {
		s.validator = NewValidator(messages)
	}
	return s
}

// Validate runs the field rules without touching the store.
func (s *Service) Validate(ctx context.Context, user *domain.User) error {
	return s.validator.Validate(ctx, user)
}

func (s *Service) List(ctx context.Context) ([]domain.UserDTO, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return ToUserDTOs(users), nil
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*domain.UserDTO, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapError(ctx, id, err)
	}
	dto := ToUserDTO(user)
	return &dto, nil
}

func (s *Service) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	if err := s.validator.Validate(ctx, user); err != nil {
		return nil, err
	}
	candidate := user.Clone()
	candidate.MarkCreated(s.clock())
	return s.repo.Create(ctx, candidate)
}

// UpdateByID replaces the stored record, keeping its identity, contact fields and
// creation date. Only the password of the payload is applied.
func (s *Service) UpdateByID(ctx context.Context, id uuid.UUID, user *domain.User) error {
	if err := s.validator.Validate(ctx, user); err != nil {
		return err
	}
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return s.mapError(ctx, id, err)
	}
	merged := user.Clone()
	merged.MergeFrom(existing, s.clock())
	_, err = s.repo.Update(ctx, merged)
	return s.mapError(ctx, id, err)
}

func (s *Service) DeleteByID(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) Delete(ctx context.Context, user *domain.User) error {
	if user == nil {
		return errors.New("user is nil")
	}
	return s.repo.Delete(ctx, user.ID)
}

func (s *Service) mapError(ctx context.Context, id uuid.UUID, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ports.ErrNotFound) {
		return &UserNotFoundError{
			ID:      id,
			Message: s.messages.Message(notFoundCode, []any{id.String()}, locale.FromContext(ctx)),
		}
	}
	return err
}

var _ ports.Service = (*Service)(nil)
