// Package metrics defines and registers all custom Prometheus metrics for the
// pedidos API. It is the single source of truth for metric names, labels, and
// help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "pedidos"

// ── Metric record pipeline ────────────────────────────────────────────────────

// RecordsFiredTotal counts requests whose terminal observer fired.
// Label:
//   - terminal: "finished" (handler chain returned) or "closed" (connection went away first)
var RecordsFiredTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "metric_records_fired_total",
		Help:      "Total number of request metric records assembled, by terminal event.",
	},
	[]string{"terminal"},
)

// RecordsPersistedTotal counts metric records written to the record store.
var RecordsPersistedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "metric_records_persisted_total",
		Help:      "Total number of request metric records persisted.",
	},
)

// RecordsDroppedTotal counts metric records that never reached the store.
// Label:
//   - reason: "store_unavailable", "queue_full" or "closed"
var RecordsDroppedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "metric_records_dropped_total",
		Help:      "Total number of request metric records dropped, by reason.",
	},
	[]string{"reason"},
)

// RecordQueueDepth tracks the records waiting in each dispatcher worker channel.
var RecordQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "metric_record_queue_depth",
		Help:      "Current number of metric records pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ── Authentication ────────────────────────────────────────────────────────────

// AuthRejectionsTotal counts requests rejected by the authenticator.
// Label:
//   - reason: "missing", "scheme" or "invalid"
var AuthRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_rejections_total",
		Help:      "Total number of requests rejected for a missing or invalid credential.",
	},
	[]string{"reason"},
)

// LoginsTotal counts login attempts.
// Labels:
//   - kind: "internal" or "client"
//   - result: "ok" or "failed"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by kind and result.",
	},
	[]string{"kind", "result"},
)

// ── Orders ────────────────────────────────────────────────────────────────────

// OrdersCreatedTotal counts newly created orders.
// Label:
//   - payment_method: the payment method after defaults were applied
var OrdersCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_created_total",
		Help:      "Total number of orders created, by payment method.",
	},
	[]string{"payment_method"},
)
