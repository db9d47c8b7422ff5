package redis

import (
	"testing"
	"time"
)

func TestIdempotencyKey(t *testing.T) {
	got := idempotencyKey("reservations", "abc-123")
	if got != "idempotency:reservations:abc-123" {
		t.Errorf("unexpected key %q", got)
	}
}

func TestNewIdempotencyStore_DefaultTTL(t *testing.T) {
	s := NewIdempotencyStore(nil, 0)
	if s.ttl != 24*time.Hour {
		t.Errorf("expected 24h default, got %s", s.ttl)
	}

	s = NewIdempotencyStore(nil, time.Minute)
	if s.ttl != time.Minute {
		t.Errorf("expected 1m, got %s", s.ttl)
	}
}
