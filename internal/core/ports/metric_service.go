package ports

import (
	"context"

	"github.com/delibery/pedidos-api/internal/core/domain"
)

// MetricQueryInput selects the records of one subject on behalf of a caller.
type MetricQueryInput struct {
	Caller  domain.Identity
	Subject string // empty = the caller's own subject
	Limit   int    // <= 0 = service default
}

// MetricService serves the "read my metrics" capability.
type MetricService interface {
	List(ctx context.Context, input MetricQueryInput) ([]*domain.MetricRecord, error)
	Clear(ctx context.Context, input MetricQueryInput) (int64, error)
}
