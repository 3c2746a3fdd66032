package events

import (
	"sync"
	"time"
)

// Bus is a synchronous in-process fan-out: Publish stamps the event and
// delivers it to every subscriber before returning. Engine operations are
// serialized by the caller, so subscribers observe events in mutation
// order.
type Bus struct {
	mu          sync.Mutex
	subscribers []func(Event)
	sequence    int64
}

// NewBus returns an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers fn for every subsequent event.
func (b *Bus) Subscribe(fn func(Event)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers = append(b.subscribers, fn)
}

// Publish stamps and delivers event to all subscribers.
func (b *Bus) Publish(event Event) {
	b.mu.Lock()
	b.sequence++
	event.SequenceID = b.sequence
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	subs := append([]func(Event){}, b.subscribers...)
	b.mu.Unlock()

	for _, fn := range subs {
		fn(event)
	}
}
