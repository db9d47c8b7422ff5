package ports

import (
	"context"

	"github.com/booking-platform/services/internal/core/domain"
)

// UserFilter carries the optional list filters.
type UserFilter struct {
	UserType string // empty = any type
	Active   *bool  // nil = any
}

// UserRepository defines persistence operations for users.
// Missing ids surface as domain.ErrUserNotFound; writes that collide on
// email surface as domain.ErrEmailTaken.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	Get(ctx context.Context, id int64) (*domain.User, error)
	// List returns matches ordered by created_at descending.
	List(ctx context.Context, filter UserFilter) ([]*domain.User, error)
	Update(ctx context.Context, u *domain.User) error
	Delete(ctx context.Context, id int64) error
	// EmailTaken reports whether a user other than excludeID owns email.
	// Pass 0 to check against every user.
	EmailTaken(ctx context.Context, email string, excludeID int64) (bool, error)
}
