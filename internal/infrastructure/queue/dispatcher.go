package queue

import (
	"context"
	"errors"
	"hash/fnv"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/sirpyerre/pantry-api/internal/core/domain"
	"github.com/sirpyerre/pantry-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// ErrClosed is returned by Record once Close has been called.
var ErrClosed = errors.New("audit dispatcher closed")

var _ ports.AuditTrail = (*Dispatcher)(nil)

// Dispatcher takes audit trail writes off the request path. Events are routed
// to a fixed set of workers by hashing entity and id, so the events of one
// entity are written in the order they were recorded.
//
// It only buffers writes that requests have already made. Nothing is
// scheduled, and Close drains every queued event before shutdown completes.
type Dispatcher struct {
	workers []chan domain.AuditEvent
	trail   ports.AuditTrail
	log     zerolog.Logger

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewDispatcher creates a Dispatcher writing to trail with numWorkers workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, trail ports.AuditTrail, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.AuditEvent, numWorkers),
		trail:   trail,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.AuditEvent, channelBuffer)
	}
	return d
}

// Start launches the workers. ctx is used for the writes; cancelling it stops
// the workers without draining.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Record enqueues event. It blocks only while the worker's buffer is full,
// and gives up when ctx is done.
func (d *Dispatcher) Record(ctx context.Context, event domain.AuditEvent) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return ErrClosed
	}

	select {
	case d.workers[d.shardIndex(event)] <- event:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops accepting events and waits until the queued ones are written.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	for _, ch := range d.workers {
		close(ch)
	}
	d.mu.Unlock()

	d.wg.Wait()
}

// shardIndex maps an entity deterministically to a worker index.
func (d *Dispatcher) shardIndex(event domain.AuditEvent) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(event.Entity))
	_, _ = h.Write([]byte(strconv.FormatInt(event.EntityID, 10)))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.AuditEvent) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			if err := d.trail.Record(ctx, event); err != nil {
				d.log.Error().Err(err).
					Str("entity", event.Entity).
					Int64("entity_id", event.EntityID).
					Str("action", string(event.Action)).
					Int("worker_id", id).
					Msg("audit event write failed")
			}
		}
	}
}
