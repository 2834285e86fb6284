package ports

import (
	"context"

	"github.com/delibery/pedidos-api/internal/core/domain"
)

// OrderRepository defines persistence operations for orders.
// A non-empty subjectID restricts the query to orders created by that subject.
type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order) error
	FindByKey(ctx context.Context, key, subjectID string) (*domain.Order, error)
	ListByDay(ctx context.Context, day, subjectID string) ([]*domain.Order, error)
	UpdateStatus(ctx context.Context, key, subjectID string, status domain.OrderStatus) (*domain.Order, error)
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore claims Idempotency-Keys and remembers which order each one
// produced.
type IdempotencyStore interface {
	// Reserve claims (subjectID, key) for a new order. When the key is already
	// held, reserved is false and orderKey is the earlier order's key, or empty
	// while that order is still being created.
	Reserve(ctx context.Context, subjectID, key string) (orderKey string, reserved bool, err error)
	// Complete points a reserved key at the order it produced.
	Complete(ctx context.Context, subjectID, key, orderKey string) error
	// Release drops a reservation whose order was never stored.
	Release(ctx context.Context, subjectID, key string) error
}

// OrderSequence hands out the per-day order numbers.
type OrderSequence interface {
	Next(ctx context.Context, day string) (int64, error)
}
