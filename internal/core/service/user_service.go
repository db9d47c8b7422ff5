package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/booking-platform/services/internal/core/domain"
	"github.com/booking-platform/services/internal/core/ports"
)

type UserService struct {
	repo   ports.UserRepository
	idem   idempotency
	logger zerolog.Logger
	now    func() time.Time
}

// NewUserService wires the use cases. idem may be nil.
func NewUserService(repo ports.UserRepository, idem ports.IdempotencyStore, logger zerolog.Logger) *UserService {
	return &UserService{
		repo:   repo,
		idem:   idempotency{store: idem, scope: "users", logger: logger},
		logger: logger,
		now:    utcNow,
	}
}

func (s *UserService) List(ctx context.Context, filter ports.UserFilter) ([]*domain.User, error) {
	items, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return items, nil
}

func (s *UserService) ListActive(ctx context.Context) ([]*domain.User, error) {
	active := true
	return s.List(ctx, ports.UserFilter{Active: &active})
}

func (s *UserService) Create(ctx context.Context, in ports.UserInput, idempotencyKey string) (*domain.User, bool, error) {
	if id, ok := s.idem.lookup(ctx, idempotencyKey); ok {
		existing, err := s.repo.Get(ctx, id)
		switch {
		case err == nil:
			s.logger.Info().Str("idempotency_key", idempotencyKey).Int64("user_id", id).Msg("idempotent replay")
			return existing, true, nil
		case !errors.Is(err, domain.ErrUserNotFound):
			return nil, false, fmt.Errorf("create user: %w", err)
		}
	}

	u := &domain.User{
		UserType: domain.UserTypeCustomer,
		Active:   true,
	}
	applyUserInput(u, in)
	if err := s.validate(ctx, u); err != nil {
		return nil, false, err
	}

	now := s.now()
	u.CreatedAt = now
	u.UpdatedAt = now
	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return nil, false, emailTakenError()
		}
		s.logger.Error().Err(err).Msg("failed to create user")
		return nil, false, fmt.Errorf("create user: %w", err)
	}
	s.idem.remember(ctx, idempotencyKey, u.ID)

	s.logger.Info().Int64("user_id", u.ID).Str("user_type", string(u.UserType)).Msg("user created")
	return u, false, nil
}

func (s *UserService) Get(ctx context.Context, id int64) (*domain.User, error) {
	u, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	return u, nil
}

// Update applies in on top of the stored user; see ReservationService.Update
// for the full/partial semantics.
func (s *UserService) Update(ctx context.Context, id int64, in ports.UserInput, partial bool) (*domain.User, error) {
	u, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("update user %d: %w", id, err)
	}

	if !partial {
		u.FirstName = ""
		u.LastName = ""
		u.Email = ""
	}
	applyUserInput(u, in)
	if err := s.validate(ctx, u); err != nil {
		return nil, err
	}

	u.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, u); err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return nil, emailTakenError()
		}
		return nil, fmt.Errorf("update user %d: %w", id, err)
	}

	s.logger.Info().Int64("user_id", id).Bool("partial", partial).Msg("user updated")
	return u, nil
}

func (s *UserService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete user %d: %w", id, err)
	}
	s.logger.Info().Int64("user_id", id).Msg("user deleted")
	return nil
}

func (s *UserService) Activate(ctx context.Context, id int64) (*domain.User, error) {
	return s.setActive(ctx, id, true)
}

func (s *UserService) Deactivate(ctx context.Context, id int64) (*domain.User, error) {
	return s.setActive(ctx, id, false)
}

func (s *UserService) setActive(ctx context.Context, id int64, active bool) (*domain.User, error) {
	u, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("set user %d active: %w", id, err)
	}

	u.Active = active
	u.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, u); err != nil {
		return nil, fmt.Errorf("set user %d active: %w", id, err)
	}

	msg := "user deactivated"
	if active {
		msg = "user activated"
	}
	s.logger.Info().Int64("user_id", id).Msg(msg)
	return u, nil
}

// validate checks u; the uniqueness lookup excludes u's own id (0 on create).
func (s *UserService) validate(ctx context.Context, u *domain.User) error {
	return ValidateUser(u, func(email string) (bool, error) {
		return s.repo.EmailTaken(ctx, email, u.ID)
	})
}

func emailTakenError() error {
	ve := domain.NewValidationError()
	ve.Add("email", msgEmailTaken)
	return ve
}

func applyUserInput(u *domain.User, in ports.UserInput) {
	if in.FirstName != nil {
		u.FirstName = strings.TrimSpace(*in.FirstName)
	}
	if in.LastName != nil {
		u.LastName = strings.TrimSpace(*in.LastName)
	}
	if in.Email != nil {
		u.Email = strings.TrimSpace(*in.Email)
	}
	if in.Phone != nil {
		u.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.UserType != nil {
		u.UserType = domain.UserType(strings.TrimSpace(*in.UserType))
	}
	if in.Active != nil {
		u.Active = *in.Active
	}
	if in.Address != nil {
		u.Address = *in.Address
	}
}
