package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/booking-platform/services/internal/core/domain"
	"github.com/booking-platform/services/internal/core/ports"
)

type ReservationRepository struct {
	mu     sync.RWMutex
	nextID int64
	rows   map[int64]domain.Reservation
}

func NewReservationRepository() *ReservationRepository {
	return &ReservationRepository{rows: make(map[int64]domain.Reservation)}
}

func (r *ReservationRepository) Create(_ context.Context, res *domain.Reservation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	res.ID = r.nextID
	r.rows[res.ID] = *res
	return nil
}

func (r *ReservationRepository) Get(_ context.Context, id int64) (*domain.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	row, ok := r.rows[id]
	if !ok {
		return nil, domain.ErrReservationNotFound
	}
	return &row, nil
}

func (r *ReservationRepository) List(_ context.Context, f ports.ReservationFilter) ([]*domain.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Reservation, 0, len(r.rows))
	for _, row := range r.rows {
		if f.Status != "" && string(row.Status) != f.Status {
			continue
		}
		clone := row
		out = append(out, &clone)
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].ReservationTime.Equal(out[j].ReservationTime) {
			return out[i].ReservationTime.After(out[j].ReservationTime)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *ReservationRepository) Update(_ context.Context, res *domain.Reservation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rows[res.ID]; !ok {
		return domain.ErrReservationNotFound
	}
	r.rows[res.ID] = *res
	return nil
}

func (r *ReservationRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rows[id]; !ok {
		return domain.ErrReservationNotFound
	}
	delete(r.rows, id)
	return nil
}
