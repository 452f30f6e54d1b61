package consent

import (
	"testing"
	"time"
)

func TestGrantThenConsumeSucceedsOnce(t *testing.T) {
	g := NewGate(time.Minute)
	g.Grant("Home Address")

	if !g.Consume("home address") {
		t.Fatalf("Consume() = false, want true for a live grant")
	}
	if g.Consume("home address") {
		t.Fatalf("second Consume() = true, want false: grants are one-shot")
	}
}

func TestDenyErasesGrant(t *testing.T) {
	g := NewGate(time.Minute)
	g.Grant("phone number")
	g.Deny("phone number")

	if g.Consume("phone number") {
		t.Fatalf("Consume() after Deny() = true, want false")
	}
}

func TestConsumeUnknownTopicFails(t *testing.T) {
	g := NewGate(time.Minute)

	if g.Consume("never granted") {
		t.Fatalf("Consume() on unknown topic = true, want false")
	}
}

func TestConsumeExpiredGrantFails(t *testing.T) {
	g := NewGate(time.Millisecond)
	g.Grant("ssn")

	time.Sleep(5 * time.Millisecond)

	if g.Consume("ssn") {
		t.Fatalf("Consume() on expired grant = true, want false")
	}
}

func TestGrantOverwritesEarlierEntry(t *testing.T) {
	g := NewGate(time.Minute)
	g.Grant("topic")
	g.Grant("topic")

	if !g.Consume("topic") {
		t.Fatalf("Consume() = false, want true")
	}
	if g.Len() != 0 {
		t.Fatalf("Len() = %d, want 0 after consuming the only grant", g.Len())
	}
}

func TestSweepRemovesOnlyExpired(t *testing.T) {
	g := NewGate(time.Millisecond)
	g.Grant("stale")

	time.Sleep(5 * time.Millisecond)
	g.Grant("fresh")
	g.mu.Lock()
	g.tokens["fresh"] = time.Now().Add(time.Minute)
	g.mu.Unlock()

	removed := g.Sweep()
	if removed != 1 {
		t.Fatalf("Sweep() removed %d, want 1", removed)
	}
	if g.Len() != 1 {
		t.Fatalf("Len() = %d, want 1 (only the fresh grant remains)", g.Len())
	}
}
