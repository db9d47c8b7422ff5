package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/booking-platform/services/internal/core/ports"
)

// idempotency wraps an optional store. Store failures never fail the
// request; they only disable replay detection for it.
type idempotency struct {
	store  ports.IdempotencyStore
	scope  string
	logger zerolog.Logger
}

func (i idempotency) lookup(ctx context.Context, key string) (int64, bool) {
	if i.store == nil || key == "" {
		return 0, false
	}
	id, found, err := i.store.Lookup(ctx, i.scope, key)
	if err != nil {
		i.logger.Warn().Err(err).Str("idempotency_key", key).Msg("idempotency lookup failed, processing anyway")
		return 0, false
	}
	return id, found
}

func (i idempotency) remember(ctx context.Context, key string, id int64) {
	if i.store == nil || key == "" {
		return
	}
	if err := i.store.Remember(ctx, i.scope, key, id); err != nil {
		i.logger.Warn().Err(err).Str("idempotency_key", key).Msg("failed to store idempotency key")
	}
}
