package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/collabhub/collab-platform/internal/api/metrics"
	"github.com/collabhub/collab-platform/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 128
)

// Dispatcher routes payout tasks to a fixed set of workers using consistent
// hashing on the creator id, guaranteeing per-creator processing order.
type Dispatcher struct {
	workers   []chan ports.PayoutTask
	processor ports.PayoutProcessor
	log       zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, processor ports.PayoutProcessor, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:   make([]chan ports.PayoutTask, numWorkers),
		processor: processor,
		log:       log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.PayoutTask, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends a task to the worker responsible for its creator id.
// The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(task ports.PayoutTask) {
	i := d.shardIndex(task.CreatorID)
	d.workers[i] <- task
	metrics.PayoutQueueDepth.WithLabelValues(strconv.Itoa(i)).Set(float64(len(d.workers[i])))
}

// shardIndex maps a creator id deterministically to a worker index.
func (d *Dispatcher) shardIndex(creatorID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(creatorID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.PayoutTask) {
	for {
		select {
		case <-ctx.Done():
			return
		case task, ok := <-ch:
			if !ok {
				return
			}
			start := time.Now()
			if err := d.processor.Process(ctx, task); err != nil {
				metrics.PayoutProcessingDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
				d.log.Error().Err(err).
					Str("payout_id", task.PayoutID).
					Int("worker_id", id).
					Msg("payout processing failed")
				continue
			}
			metrics.PayoutProcessingDuration.WithLabelValues("ok").Observe(time.Since(start).Seconds())
			metrics.PayoutQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(float64(len(ch)))
		}
	}
}
