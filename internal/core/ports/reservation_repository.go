package ports

import (
	"context"

	"github.com/booking-platform/services/internal/core/domain"
)

// ReservationFilter carries the optional list filters. Zero values disable a filter.
type ReservationFilter struct {
	Status string // exact match on status; unknown values match nothing
}

// ReservationRepository defines persistence operations for reservations.
// Missing ids surface as domain.ErrReservationNotFound.
type ReservationRepository interface {
	// Create inserts r and assigns r.ID.
	Create(ctx context.Context, r *domain.Reservation) error
	Get(ctx context.Context, id int64) (*domain.Reservation, error)
	// List returns matches ordered by reservation_time descending.
	List(ctx context.Context, filter ReservationFilter) ([]*domain.Reservation, error)
	// Update overwrites every mutable column of the row identified by r.ID.
	Update(ctx context.Context, r *domain.Reservation) error
	Delete(ctx context.Context, id int64) error
}
