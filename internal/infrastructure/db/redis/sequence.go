package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/delibery/pedidos-api/internal/core/domain"
)

// Counters outlive their day so late orders near midnight still see them.
const sequenceTTL = 48 * time.Hour

// OrderSequence hands out per-day order numbers starting at
// domain.FirstOrderNumber. Key format: seq:orders:<DDMMYYYY>
type OrderSequence struct {
	client *redis.Client
}

func NewOrderSequence(client *redis.Client) *OrderSequence {
	return &OrderSequence{client: client}
}

// Next atomically reserves the next number of day.
func (s *OrderSequence) Next(ctx context.Context, day string) (int64, error) {
	key := sequenceKey(day)

	pipe := s.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, sequenceTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("order sequence: %w", err)
	}
	return orderNumber(incr.Val()), nil
}

func sequenceKey(day string) string {
	return "seq:orders:" + day
}

// orderNumber maps the n-th INCR result (1-based) onto the order number range.
func orderNumber(n int64) int64 {
	return domain.FirstOrderNumber - 1 + n
}
