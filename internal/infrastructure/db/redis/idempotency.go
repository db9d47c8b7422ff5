package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultIdempotencyTTL = 24 * time.Hour

// IdempotencyStore maps client-supplied Idempotency-Key values to the id of
// the record they created.
// Key format: idempotency:<scope>:<key>
type IdempotencyStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewIdempotencyStore wraps client. A non-positive ttl falls back to 24h.
func NewIdempotencyStore(client *redis.Client, ttl time.Duration) *IdempotencyStore {
	if ttl <= 0 {
		ttl = defaultIdempotencyTTL
	}
	return &IdempotencyStore{client: client, ttl: ttl}
}

// Lookup returns the id recorded for key, if any.
func (s *IdempotencyStore) Lookup(ctx context.Context, scope, key string) (int64, bool, error) {
	val, err := s.client.Get(ctx, idempotencyKey(scope, key)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("idempotency lookup: %w", err)
	}

	id, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("idempotency lookup: corrupt value %q: %w", val, err)
	}
	return id, true, nil
}

// Remember records id under key (expires after the store's ttl). An existing
// mapping is kept.
func (s *IdempotencyStore) Remember(ctx context.Context, scope, key string, id int64) error {
	err := s.client.SetNX(ctx, idempotencyKey(scope, key), strconv.FormatInt(id, 10), s.ttl).Err()
	if err != nil {
		return fmt.Errorf("idempotency remember: %w", err)
	}
	return nil
}

func idempotencyKey(scope, key string) string {
	return fmt.Sprintf("idempotency:%s:%s", scope, key)
}
