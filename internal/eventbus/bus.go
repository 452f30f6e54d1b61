// Package eventbus implements the ordered telemetry stream from
// spec.md §4.7: a bounded ring of recent events fanned out to
// subscribers, plus a stats collector and a periodically-persisted
// snapshot. The bounded-ring-plus-fan-out shape has no direct analog in
// the teacher's repo; it generalizes the single-writer, serialized
// persistence pattern used by core/internal/budget.Store and the minio
// wrapper in core/internal/storage to telemetry instead of usage
// accounting.
package eventbus

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/archestra-labs/memcore/internal/logger"
)

type Event struct {
	ID        string
	Type      string
	Payload   map[string]any
	Timestamp time.Time
}

type Handler func(Event)

// Bus holds a bounded ring of the most recent events and fans out every
// published event to all current subscribers. Handler panics are
// recovered so one broken subscriber cannot break telemetry for the
// others, per spec.md §4.7.
type Bus struct {
	mu       sync.Mutex
	capacity int
	events   []Event
	subs     map[int]Handler
	nextSub  int
}

func New(capacity int) *Bus {
	if capacity <= 0 {
		capacity = 200
	}
	return &Bus{
		capacity: capacity,
		subs:     make(map[int]Handler),
	}
}

// Publish assigns an id and timestamp, appends with eviction from the
// front on overflow, and invokes every handler.
func (b *Bus) Publish(eventType string, payload map[string]any) Event {
	ev := Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Payload:   payload,
		Timestamp: time.Now(),
	}

	b.mu.Lock()
	b.events = append(b.events, ev)
	if len(b.events) > b.capacity {
		b.events = b.events[len(b.events)-b.capacity:]
	}
	handlers := make([]Handler, 0, len(b.subs))
	for _, h := range b.subs {
		handlers = append(handlers, h)
	}
	b.mu.Unlock()

	for _, h := range handlers {
		b.invokeSafely(h, ev)
	}

	return ev
}

func (b *Bus) invokeSafely(h Handler, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("event bus subscriber panicked", "event", ev.Type, "recovered", r)
		}
	}()
	h(ev)
}

// Subscribe registers a handler and returns an unsubscribe function.
func (b *Bus) Subscribe(h Handler) func() {
	b.mu.Lock()
	id := b.nextSub
	b.nextSub++
	b.subs[id] = h
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		delete(b.subs, id)
		b.mu.Unlock()
	}
}

// Recent returns a snapshot of up to n most recent events, newest last.
func (b *Bus) Recent(n int) []Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	if n <= 0 || n > len(b.events) {
		n = len(b.events)
	}
	out := make([]Event, n)
	copy(out, b.events[len(b.events)-n:])
	return out
}
