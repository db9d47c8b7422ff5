package ports

import "context"

// IdempotencyStore remembers which record a client-supplied Idempotency-Key
// produced. Keys are scoped per resource ("reservations", "users").
type IdempotencyStore interface {
	Lookup(ctx context.Context, scope, key string) (id int64, found bool, err error)
	Remember(ctx context.Context, scope, key string, id int64) error
}
