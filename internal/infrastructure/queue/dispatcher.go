// Package queue decouples history persistence from the request path.
package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/ai-autopilot/gateway/internal/api/metrics"
	"github.com/ai-autopilot/gateway/internal/core/domain"
	"github.com/ai-autopilot/gateway/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes history records to a fixed set of workers using
// consistent hashing on the user id, so one user's exchanges are persisted
// in the order they happened.
type Dispatcher struct {
	workers []chan domain.HistoryRecord
	history ports.HistoryService
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, history ports.HistoryService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.HistoryRecord, numWorkers),
		history: history,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.HistoryRecord, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands a record to the worker responsible for its user. The call is
// non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(record domain.HistoryRecord) {
	i := d.shardIndex(record.UserID)
	d.workers[i] <- record
	metrics.HistoryQueueDepth.WithLabelValues(strconv.Itoa(i)).Set(float64(len(d.workers[i])))
}

// shardIndex maps a user id deterministically to a worker index.
func (d *Dispatcher) shardIndex(userID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.HistoryRecord) {
	worker := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case record, ok := <-ch:
			if !ok {
				return
			}
			metrics.HistoryQueueDepth.WithLabelValues(worker).Set(float64(len(ch)))
			if err := d.history.Record(ctx, record); err != nil {
				d.log.Error().Err(err).
					Str("user_id", record.UserID).
					Int("worker_id", id).
					Msg("history write failed")
			}
		}
	}
}
