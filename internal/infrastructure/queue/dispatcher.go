package queue

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/delibery/pedidos-api/internal/core/domain"
	"github.com/delibery/pedidos-api/internal/core/ports"
	"github.com/delibery/pedidos-api/internal/pkg/metrics"
)

const (
	defaultWorkers = 4
	defaultBuffer  = 256
)

// Drop reasons reported on metrics.RecordsDroppedTotal.
const (
	dropQueueFull        = "queue_full"
	dropStoreUnavailable = "store_unavailable"
	dropClosed           = "closed"
)

// ErrDrainTimeout is returned by Close when pending records could not be
// written before the context expired.
var ErrDrainTimeout = errors.New("metric dispatcher: drain timed out")

// Dispatcher persists metric records on a fixed set of workers. Records are
// sharded by subject id so one caller's records are written in arrival order.
// Enqueue never blocks: a full worker channel drops the record.
type Dispatcher struct {
	workers []chan *domain.MetricRecord
	repo    ports.MetricRepository
	log     zerolog.Logger

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers, each
// buffering up to buffer records. Non-positive values fall back to defaults.
func NewDispatcher(numWorkers, buffer int, repo ports.MetricRepository, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	d := &Dispatcher{
		workers: make([]chan *domain.MetricRecord, numWorkers),
		repo:    repo,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan *domain.MetricRecord, buffer)
	}
	return d
}

// Start launches all worker goroutines. Cancelling ctx stops the workers
// without draining; use Close for a graceful stop.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands a record to the worker responsible for its subject.
func (d *Dispatcher) Enqueue(record *domain.MetricRecord) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		metrics.RecordsDroppedTotal.WithLabelValues(dropClosed).Inc()
		return false
	}

	idx := d.shardIndex(record.SubjectID)
	ch := d.workers[idx]
	select {
	case ch <- record:
		metrics.RecordQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(ch)))
		return true
	default:
		metrics.RecordsDroppedTotal.WithLabelValues(dropQueueFull).Inc()
		d.log.Warn().
			Str("record_id", record.ID).
			Str("subject", record.SubjectID).
			Int("worker_id", idx).
			Msg("metric record dropped, queue full")
		return false
	}
}

// Close stops accepting records and waits until the workers have written
// everything already queued, or until ctx expires.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		for _, ch := range d.workers {
			close(ch)
		}
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%w: %v", ErrDrainTimeout, ctx.Err())
	}
}

// shardIndex maps a subject id deterministically to a worker index.
func (d *Dispatcher) shardIndex(subjectID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(subjectID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan *domain.MetricRecord) {
	defer d.wg.Done()
	depth := metrics.RecordQueueDepth.WithLabelValues(strconv.Itoa(id))

	for {
		select {
		case <-ctx.Done():
			return
		case record, ok := <-ch:
			if !ok {
				return
			}
			depth.Set(float64(len(ch)))
			d.persist(ctx, id, record)
		}
	}
}

// persist writes one record. The request that produced it is long gone, so
// failures are only logged and counted.
func (d *Dispatcher) persist(ctx context.Context, id int, record *domain.MetricRecord) {
	if err := d.repo.Insert(context.WithoutCancel(ctx), record); err != nil {
		metrics.RecordsDroppedTotal.WithLabelValues(dropStoreUnavailable).Inc()
		d.log.Error().Err(err).
			Str("record_id", record.ID).
			Str("subject", record.SubjectID).
			Int("worker_id", id).
			Msg("metric record persistence failed")
		return
	}
	metrics.RecordsPersistedTotal.Inc()
}
