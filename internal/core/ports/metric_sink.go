package ports

import "github.com/delibery/pedidos-api/internal/core/domain"

// MetricSink accepts assembled metric records for asynchronous persistence.
// Enqueue must never block the request path; it reports false when the
// record was dropped.
type MetricSink interface {
	Enqueue(record *domain.MetricRecord) bool
}
