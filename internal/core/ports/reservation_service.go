package ports

import (
	"context"
	"time"

	"github.com/booking-platform/services/internal/core/domain"
)

// ReservationInput is the DTO passed from the transport layer. A nil field
// was absent from the request.
type ReservationInput struct {
	CustomerName    *string
	CustomerEmail   *string
	CustomerPhone   *string
	ReservationTime *time.Time
	PartySize       *int
	Status          *string
	Notes           *string
}

// ReservationService defines use-case operations for reservations.
type ReservationService interface {
	List(ctx context.Context, filter ReservationFilter) ([]*domain.Reservation, error)
	// Create stores a new reservation. When idempotencyKey was already used,
	// the earlier reservation is returned and replayed is true.
	Create(ctx context.Context, in ReservationInput, idempotencyKey string) (r *domain.Reservation, replayed bool, err error)
	Get(ctx context.Context, id int64) (*domain.Reservation, error)
	// Update applies in to the stored reservation. With partial=false the
	// required fields must be present in in.
	Update(ctx context.Context, id int64, in ReservationInput, partial bool) (*domain.Reservation, error)
	Delete(ctx context.Context, id int64) error
	Confirm(ctx context.Context, id int64) (*domain.Reservation, error)
	Cancel(ctx context.Context, id int64) (*domain.Reservation, error)
}
