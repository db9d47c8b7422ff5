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

type ReservationService struct {
	repo   ports.ReservationRepository
	idem   idempotency
	logger zerolog.Logger
	now    func() time.Time
}

// NewReservationService wires the use cases. idem may be nil, which
// disables Idempotency-Key replays.
func NewReservationService(repo ports.ReservationRepository, idem ports.IdempotencyStore, logger zerolog.Logger) *ReservationService {
	return &ReservationService{
		repo:   repo,
		idem:   idempotency{store: idem, scope: "reservations", logger: logger},
		logger: logger,
		now:    utcNow,
	}
}

func (s *ReservationService) List(ctx context.Context, filter ports.ReservationFilter) ([]*domain.Reservation, error) {
	items, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	return items, nil
}

// Create stores a new pending reservation. If the idempotency key was already
// used, the reservation it produced is returned without side effects.
func (s *ReservationService) Create(ctx context.Context, in ports.ReservationInput, idempotencyKey string) (*domain.Reservation, bool, error) {
	if id, ok := s.idem.lookup(ctx, idempotencyKey); ok {
		existing, err := s.repo.Get(ctx, id)
		switch {
		case err == nil:
			s.logger.Info().Str("idempotency_key", idempotencyKey).Int64("reservation_id", id).Msg("idempotent replay")
			return existing, true, nil
		case !errors.Is(err, domain.ErrReservationNotFound):
			return nil, false, fmt.Errorf("create reservation: %w", err)
		}
	}

	r := &domain.Reservation{
		PartySize: domain.DefaultPartySize,
		Status:    domain.StatusPending,
	}
	applyReservationInput(r, in)
	if err := ValidateReservation(r); err != nil {
		return nil, false, err
	}

	now := s.now()
	r.CreatedAt = now
	r.UpdatedAt = now
	if err := s.repo.Create(ctx, r); err != nil {
		s.logger.Error().Err(err).Msg("failed to create reservation")
		return nil, false, fmt.Errorf("create reservation: %w", err)
	}
	s.idem.remember(ctx, idempotencyKey, r.ID)

	s.logger.Info().Int64("reservation_id", r.ID).Time("reservation_time", r.ReservationTime).Msg("reservation created")
	return r, false, nil
}

func (s *ReservationService) Get(ctx context.Context, id int64) (*domain.Reservation, error) {
	r, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get reservation %d: %w", id, err)
	}
	return r, nil
}

// Update applies in on top of the stored reservation. A full update clears
// the required fields first so that each of them must be supplied again;
// optional fields left out keep their stored values.
func (s *ReservationService) Update(ctx context.Context, id int64, in ports.ReservationInput, partial bool) (*domain.Reservation, error) {
	r, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("update reservation %d: %w", id, err)
	}

	if !partial {
		r.CustomerName = ""
		r.CustomerEmail = ""
		r.ReservationTime = time.Time{}
	}
	applyReservationInput(r, in)
	if err := ValidateReservation(r); err != nil {
		return nil, err
	}

	r.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, r); err != nil {
		return nil, fmt.Errorf("update reservation %d: %w", id, err)
	}

	s.logger.Info().Int64("reservation_id", id).Bool("partial", partial).Msg("reservation updated")
	return r, nil
}

func (s *ReservationService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete reservation %d: %w", id, err)
	}
	s.logger.Info().Int64("reservation_id", id).Msg("reservation deleted")
	return nil
}

// Confirm sets the status to confirmed whatever it was before.
func (s *ReservationService) Confirm(ctx context.Context, id int64) (*domain.Reservation, error) {
	return s.setStatus(ctx, id, domain.StatusConfirmed)
}

// Cancel sets the status to cancelled whatever it was before.
func (s *ReservationService) Cancel(ctx context.Context, id int64) (*domain.Reservation, error) {
	return s.setStatus(ctx, id, domain.StatusCancelled)
}

func (s *ReservationService) setStatus(ctx context.Context, id int64, status domain.ReservationStatus) (*domain.Reservation, error) {
	r, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("set reservation %d status: %w", id, err)
	}

	previous := r.Status
	r.Status = status
	r.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, r); err != nil {
		return nil, fmt.Errorf("set reservation %d status: %w", id, err)
	}

	s.logger.Info().
		Int64("reservation_id", id).
		Str("from", string(previous)).
		Str("to", string(status)).
		Msg("reservation status changed")
	return r, nil
}

func applyReservationInput(r *domain.Reservation, in ports.ReservationInput) {
	if in.CustomerName != nil {
		r.CustomerName = strings.TrimSpace(*in.CustomerName)
	}
	if in.CustomerEmail != nil {
		r.CustomerEmail = strings.TrimSpace(*in.CustomerEmail)
	}
	if in.CustomerPhone != nil {
		r.CustomerPhone = strings.TrimSpace(*in.CustomerPhone)
	}
	if in.ReservationTime != nil {
		r.ReservationTime = in.ReservationTime.UTC()
	}
	if in.PartySize != nil {
		r.PartySize = *in.PartySize
	}
	if in.Status != nil {
		r.Status = domain.ReservationStatus(strings.TrimSpace(*in.Status))
	}
	if in.Notes != nil {
		r.Notes = *in.Notes
	}
}

// utcNow is truncated to milliseconds, the coarsest precision among the
// stores (BSON dates), so a created record reads back unchanged everywhere.
func utcNow() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
