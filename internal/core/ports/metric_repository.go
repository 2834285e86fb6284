package ports

import (
	"context"

	"github.com/delibery/pedidos-api/internal/core/domain"
)

// MetricRepository is the append-only store of per-request metric records.
type MetricRepository interface {
	Insert(ctx context.Context, record *domain.MetricRecord) error
	// FindBySubject returns at most limit records of one subject, newest first.
	FindBySubject(ctx context.Context, subjectID string, limit int) ([]*domain.MetricRecord, error)
	// DeleteBySubject removes every record of one subject and reports how many.
	DeleteBySubject(ctx context.Context, subjectID string) (int64, error)
}
