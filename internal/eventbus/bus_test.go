package eventbus

import (
	"sync"
	"testing"
)

func TestPublishFansOutToAllSubscribers(t *testing.T) {
	bus := New(10)

	var mu sync.Mutex
	var got []string
	bus.Subscribe(func(ev Event) {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, ev.Type)
	})
	bus.Subscribe(func(ev Event) {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, ev.Type)
	})

	bus.Publish("query_received", nil)

	mu.Lock()
	defer mu.Unlock()
	if len(got) != 2 {
		t.Fatalf("got %d deliveries, want 2", len(got))
	}
}

func TestSubscribePanicIsRecovered(t *testing.T) {
	bus := New(10)

	called := false
	bus.Subscribe(func(ev Event) {
		panic("boom")
	})
	bus.Subscribe(func(ev Event) {
		called = true
	})

	bus.Publish("query_received", nil)

	if !called {
		t.Fatalf("second subscriber was not invoked after first subscriber panicked")
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	bus := New(10)

	count := 0
	unsub := bus.Subscribe(func(ev Event) { count++ })
	bus.Publish("a", nil)
	unsub()
	bus.Publish("b", nil)

	if count != 1 {
		t.Fatalf("count = %d, want 1", count)
	}
}

func TestRecentEvictsOldestOnOverflow(t *testing.T) {
	bus := New(3)

	bus.Publish("e1", nil)
	bus.Publish("e2", nil)
	bus.Publish("e3", nil)
	bus.Publish("e4", nil)

	recent := bus.Recent(10)
	if len(recent) != 3 {
		t.Fatalf("Recent() returned %d events, want 3", len(recent))
	}
	if recent[0].Type != "e2" || recent[2].Type != "e4" {
		t.Fatalf("Recent() = %v, want [e2 e3 e4]", recent)
	}
}

func TestRecentRespectsLimit(t *testing.T) {
	bus := New(10)
	bus.Publish("e1", nil)
	bus.Publish("e2", nil)
	bus.Publish("e3", nil)

	recent := bus.Recent(2)
	if len(recent) != 2 {
		t.Fatalf("Recent(2) returned %d events, want 2", len(recent))
	}
	if recent[1].Type != "e3" {
		t.Fatalf("Recent(2) newest = %q, want e3", recent[1].Type)
	}
}
