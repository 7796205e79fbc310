package ingest

import (
	"sync"

	"github.com/reeflab/reef/internal/domain/entity"
)

// DefaultQueueCapacity bounds the event queue. Telemetry is best-effort: on
// overflow the oldest entry is evicted with no signal to either side.
const DefaultQueueCapacity = 500

// Queue is a bounded FIFO shared between the ingestion goroutines
// (producers) and the simulation tick (consumer). One mutex, held only for
// the container operation, never across I/O.
type Queue struct {
	mu     sync.Mutex
	events []entity.Event
	cap    int
}

// NewQueue returns a queue with the given capacity (<=0 means the default).
func NewQueue(capacity int) *Queue {
	if capacity <= 0 {
		capacity = DefaultQueueCapacity
	}
	return &Queue{cap: capacity}
}

// Enqueue appends one event, evicting the oldest entry when full. Never
// blocks.
func (q *Queue) Enqueue(ev entity.Event) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.events) >= q.cap {
		drop := len(q.events) - q.cap + 1
		q.events = append(q.events[:0], q.events[drop:]...)
	}
	q.events = append(q.events, ev)
}

// Drain atomically empties the queue and returns its contents in arrival
// order. A second immediate call returns nil.
func (q *Queue) Drain() []entity.Event {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.events) == 0 {
		return nil
	}
	out := q.events
	q.events = nil
	return out
}

// Len reports the current queue depth.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}
