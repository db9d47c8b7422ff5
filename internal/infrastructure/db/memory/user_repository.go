package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/booking-platform/services/internal/core/domain"
	"github.com/booking-platform/services/internal/core/ports"
)

// UserRepository enforces the same email uniqueness as the SQL unique index.
type UserRepository struct {
	mu     sync.RWMutex
	nextID int64
	rows   map[int64]domain.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{rows: make(map[int64]domain.User)}
}

func (r *UserRepository) Create(_ context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.emailTakenLocked(u.Email, 0) {
		return domain.ErrEmailTaken
	}
	r.nextID++
	u.ID = r.nextID
	r.rows[u.ID] = *u
	return nil
}

func (r *UserRepository) Get(_ context.Context, id int64) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	row, ok := r.rows[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &row, nil
}

func (r *UserRepository) List(_ context.Context, f ports.UserFilter) ([]*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.User, 0, len(r.rows))
	for _, row := range r.rows {
		if f.UserType != "" && string(row.UserType) != f.UserType {
			continue
		}
		if f.Active != nil && row.Active != *f.Active {
			continue
		}
		clone := row
		out = append(out, &clone)
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *UserRepository) Update(_ context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rows[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	if r.emailTakenLocked(u.Email, u.ID) {
		return domain.ErrEmailTaken
	}
	r.rows[u.ID] = *u
	return nil
}

func (r *UserRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rows[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.rows, id)
	return nil
}

func (r *UserRepository) EmailTaken(_ context.Context, email string, excludeID int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.emailTakenLocked(email, excludeID), nil
}

func (r *UserRepository) emailTakenLocked(email string, excludeID int64) bool {
	for id, row := range r.rows {
		if id != excludeID && row.Email == email {
			return true
		}
	}
	return false
}
