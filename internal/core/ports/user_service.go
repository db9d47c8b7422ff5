package ports

import (
	"context"

	"github.com/booking-platform/services/internal/core/domain"
)

// UserInput is the DTO passed from the transport layer. A nil field was
// absent from the request.
type UserInput struct {
	FirstName *string
	LastName  *string
	Email     *string
	Phone     *string
	UserType  *string
	Active    *bool
	Address   *string
}

// UserService defines use-case operations for users.
type UserService interface {
	List(ctx context.Context, filter UserFilter) ([]*domain.User, error)
	ListActive(ctx context.Context) ([]*domain.User, error)
	Create(ctx context.Context, in UserInput, idempotencyKey string) (u *domain.User, replayed bool, err error)
	Get(ctx context.Context, id int64) (*domain.User, error)
	Update(ctx context.Context, id int64, in UserInput, partial bool) (*domain.User, error)
	Delete(ctx context.Context, id int64) error
	Activate(ctx context.Context, id int64) (*domain.User, error)
	Deactivate(ctx context.Context, id int64) (*domain.User, error)
}
