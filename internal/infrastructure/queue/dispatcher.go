package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/canadapost-gateway/internal/api/metrics"
	"github.com/99minutos/canadapost-gateway/internal/core/ports"
)

const (
	defaultWorkers = 8
	channelBuffer  = 256
)

// Dispatcher routes tracking events to a fixed set of workers using consistent
// hashing on the PIN, so the events of one parcel are recorded in order.
type Dispatcher struct {
	workers  []chan ports.TrackingEventInput
	recorder ports.TrackingRecorder
	log      zerolog.Logger
}

var _ ports.EventQueue = (*Dispatcher)(nil)

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, recorder ports.TrackingRecorder, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:  make([]chan ports.TrackingEventInput, numWorkers),
		recorder: recorder,
		log:      log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.TrackingEventInput, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands an event to the worker responsible for its PIN. A full worker
// channel drops the event; the next lookup of the PIN offers it again.
func (d *Dispatcher) Enqueue(event ports.TrackingEventInput) bool {
	idx := d.shardIndex(event.PIN)
	select {
	case d.workers[idx] <- event:
		metrics.EventsQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
		return true
	default:
		d.log.Warn().
			Str("pin", event.PIN).
			Str("event", event.Event.Name).
			Int("worker_id", idx).
			Msg("recorder queue full, event dropped")
		return false
	}
}

// EnqueueBatch enqueues multiple events preserving per-PIN ordering.
func (d *Dispatcher) EnqueueBatch(events []ports.TrackingEventInput) {
	for _, e := range events {
		d.Enqueue(e)
	}
}

// shardIndex maps a PIN deterministically to a worker index.
func (d *Dispatcher) shardIndex(pin string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(pin))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.TrackingEventInput) {
	label := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			metrics.EventsQueueDepth.WithLabelValues(label).Set(float64(len(ch)))

			start := time.Now()
			result := "recorded"
			if err := d.recorder.Record(ctx, event); err != nil {
				result = "error"
				d.log.Error().Err(err).
					Str("pin", event.PIN).
					Int("worker_id", id).
					Msg("event recording failed")
			}
			metrics.EventsRecordedTotal.WithLabelValues(result).Inc()
			metrics.EventRecordingDuration.WithLabelValues(result).Observe(time.Since(start).Seconds())
		}
	}
}
