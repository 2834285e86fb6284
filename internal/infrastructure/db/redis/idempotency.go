package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	idempotencyTTL = 24 * time.Hour
	// A reservation whose order never lands frees itself after this.
	pendingTTL    = time.Minute
	pendingMarker = "pending"
)

// OrderIdempotency claims Idempotency-Keys with SETNX and then points them at
// the order they produced.
// Key format: idem:orders:<subject>:<key>
type OrderIdempotency struct {
	client     *redis.Client
	ttl        time.Duration
	pendingTTL time.Duration
}

// NewOrderIdempotency wraps the given Redis client. Completed keys expire
// after 24h.
func NewOrderIdempotency(client *redis.Client) *OrderIdempotency {
	return &OrderIdempotency{client: client, ttl: idempotencyTTL, pendingTTL: pendingTTL}
}

// Reserve sets a pending marker under (subjectID, key) unless one of the
// caller's requests already holds it.
func (s *OrderIdempotency) Reserve(ctx context.Context, subjectID, key string) (string, bool, error) {
	k := idempotencyKey(subjectID, key)

	ok, err := s.client.SetNX(ctx, k, pendingMarker, s.pendingTTL).Result()
	if err != nil {
		return "", false, fmt.Errorf("idempotency reserve: %w", err)
	}
	if ok {
		return "", true, nil
	}

	held, err := s.client.Get(ctx, k).Result()
	if errors.Is(err, redis.Nil) {
		// Expired between SETNX and GET; report it as still in flight.
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("idempotency lookup: %w", err)
	}
	return heldOrderKey(held), false, nil
}

// Complete overwrites the pending marker with orderKey and the full TTL.
func (s *OrderIdempotency) Complete(ctx context.Context, subjectID, key, orderKey string) error {
	if err := s.client.Set(ctx, idempotencyKey(subjectID, key), orderKey, s.ttl).Err(); err != nil {
		return fmt.Errorf("idempotency complete: %w", err)
	}
	return nil
}

// Release deletes the reservation so a retry can claim the key again.
func (s *OrderIdempotency) Release(ctx context.Context, subjectID, key string) error {
	if err := s.client.Del(ctx, idempotencyKey(subjectID, key)).Err(); err != nil {
		return fmt.Errorf("idempotency release: %w", err)
	}
	return nil
}

func idempotencyKey(subjectID, key string) string {
	return fmt.Sprintf("idem:orders:%s:%s", subjectID, key)
}

// heldOrderKey maps a stored value to an order key; empty while pending.
func heldOrderKey(value string) string {
	if value == pendingMarker {
		return ""
	}
	return value
}
