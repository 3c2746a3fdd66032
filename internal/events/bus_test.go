package events

import (
	"testing"
	"time"
)

func TestPublishDeliversToAllSubscribers(t *testing.T) {
	bus := NewBus()
	var a, b []Event
	bus.Subscribe(func(e Event) { a = append(a, e) })
	bus.Subscribe(func(e Event) { b = append(b, e) })

	bus.Publish(Event{Type: EventBoardChanged, ProjectID: "p1"})

	if len(a) != 1 || len(b) != 1 {
		t.Fatalf("deliveries = %d/%d, want 1/1", len(a), len(b))
	}
	if a[0].Type != EventBoardChanged || a[0].ProjectID != "p1" {
		t.Fatalf("event = %+v", a[0])
	}
}

func TestPublishStampsSequenceAndTimestamp(t *testing.T) {
	bus := NewBus()
	var got []Event
	bus.Subscribe(func(e Event) { got = append(got, e) })

	bus.Publish(Event{Type: EventProjectChanged})
	bus.Publish(Event{Type: EventStageAdvanced})
	bus.Publish(Event{Type: EventBoardChanged})

	for i, e := range got {
		if e.SequenceID != int64(i+1) {
			t.Fatalf("event %d sequence = %d", i, e.SequenceID)
		}
		if e.Timestamp.IsZero() {
			t.Fatalf("event %d timestamp not stamped", i)
		}
	}
}

func TestPublishKeepsExplicitTimestamp(t *testing.T) {
	bus := NewBus()
	var got Event
	bus.Subscribe(func(e Event) { got = e })

	at := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	bus.Publish(Event{Type: EventBoardChanged, Timestamp: at})

	if !got.Timestamp.Equal(at) {
		t.Fatalf("timestamp = %v, want %v", got.Timestamp, at)
	}
}

func TestSubscribeAfterPublishSeesOnlyNewEvents(t *testing.T) {
	bus := NewBus()
	bus.Publish(Event{Type: EventBoardChanged})

	var got []Event
	bus.Subscribe(func(e Event) { got = append(got, e) })
	bus.Publish(Event{Type: EventProjectChanged})

	if len(got) != 1 || got[0].Type != EventProjectChanged {
		t.Fatalf("got = %+v", got)
	}
	if got[0].SequenceID != 2 {
		t.Fatalf("sequence = %d, want 2", got[0].SequenceID)
	}
}

func TestEmitNilPublisher(t *testing.T) {
	// must not panic
	Emit(nil, Event{Type: EventBoardChanged})

	bus := NewBus()
	var got []Event
	bus.Subscribe(func(e Event) { got = append(got, e) })
	Emit(bus, Event{Type: EventBoardChanged})
	if len(got) != 1 {
		t.Fatalf("deliveries = %d, want 1", len(got))
	}
}
