package retrieval

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/archestra-labs/memcore/internal/consent"
	"github.com/archestra-labs/memcore/internal/eventbus"
	"github.com/archestra-labs/memcore/internal/memory"
	"github.com/archestra-labs/memcore/internal/orchestrator"
)

// hashEmbedder is a tiny deterministic stand-in so these tests don't need
// a real embedding provider, mirroring internal/memory's own test stub.
type hashEmbedder struct{ dim int }

func (h hashEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return nil, nil
	}
	vec := make([]float32, h.dim)
	for i, r := range text {
		vec[i%h.dim] += float32(r) + float32(i)
	}
	return vec, nil
}

func newTestController(t *testing.T, generateEnabled bool, client *orchestrator.Client) (*Controller, *eventbus.Bus) {
	t.Helper()
	store, err := memory.Open(":memory:", hashEmbedder{dim: 16}, 16)
	if err != nil {
		t.Fatalf("memory.Open() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })

	bus := eventbus.New(50)
	gate := consent.NewGate(time.Minute)

	cfg := Config{
		Scope:           memory.ScopeHybrid,
		StrictMatch:     true,
		TopK:            5,
		MaxChars:        500,
		ConsentEnabled:  true,
		GenerateEnabled: generateEnabled,
	}
	return New(store, gate, bus, client, cfg), bus
}

func eventTypes(bus *eventbus.Bus) []string {
	var types []string
	for _, ev := range bus.Recent(100) {
		types = append(types, ev.Type)
	}
	return types
}

func containsType(types []string, want string) bool {
	for _, t := range types {
		if t == want {
			return true
		}
	}
	return false
}

func TestQueryPersonalMemoryReturnsNoContextFoundWhenEmpty(t *testing.T) {
	c, _ := newTestController(t, false, nil)

	got := c.QueryPersonalMemory(context.Background(), "anything at all")
	if got != NoContextFound {
		t.Fatalf("QueryPersonalMemory() = %q, want %q", got, NoContextFound)
	}
}

func TestQueryPersonalMemoryReturnsSanitizedContext(t *testing.T) {
	c, bus := newTestController(t, false, nil)
	ctx := context.Background()

	if _, err := c.store.SaveDocument(ctx, "User likes to drink Black Coffee.", "notes.txt"); err != nil {
		t.Fatalf("SaveDocument() error = %v", err)
	}

	got := c.QueryPersonalMemory(ctx, "What coffee do I like?")
	if !strings.HasPrefix(got, "SANITIZED_CONTEXT:") {
		t.Fatalf("QueryPersonalMemory() = %q, want SANITIZED_CONTEXT: prefix", got)
	}
	if !strings.Contains(got, "Risk: LOW") {
		t.Fatalf("QueryPersonalMemory() = %q, want LOW risk for non-sensitive content", got)
	}

	types := eventTypes(bus)
	if !containsType(types, "query_received") || !containsType(types, "privacy_processed") {
		t.Fatalf("expected query_received and privacy_processed events, got %v", types)
	}
}

func TestQueryPersonalMemoryBlocksHighRiskWithoutConsent(t *testing.T) {
	c, bus := newTestController(t, false, nil)
	ctx := context.Background()

	sensitive := "Phone: +1-555-123-4567, Email: john.doe@example.com, Credit Card: 4532-1234-5678-9010, Salary: $85,000"
	if _, err := c.store.SaveDocument(ctx, sensitive, "profile.txt"); err != nil {
		t.Fatalf("SaveDocument() error = %v", err)
	}

	got := c.QueryPersonalMemory(ctx, "phone email credit card")
	if got != NoContext {
		t.Fatalf("QueryPersonalMemory() = %q, want %q for an unconsented high-risk topic", got, NoContext)
	}

	types := eventTypes(bus)
	if !containsType(types, "consent_required") {
		t.Fatalf("expected a consent_required event, got %v", types)
	}
	if !containsType(types, "risk_blocked") {
		t.Fatalf("expected a risk_blocked event, got %v", types)
	}
}

func TestQueryPersonalMemoryConsentRoundtrip(t *testing.T) {
	c, _ := newTestController(t, false, nil)
	ctx := context.Background()

	sensitive := "Phone: +1-555-123-4567, Email: john.doe@example.com, Credit Card: 4532-1234-5678-9010, Salary: $85,000"
	if _, err := c.store.SaveDocument(ctx, sensitive, "profile.txt"); err != nil {
		t.Fatalf("SaveDocument() error = %v", err)
	}

	topic := "phone email credit card"

	if got := c.QueryPersonalMemory(ctx, topic); got != NoContext {
		t.Fatalf("first query = %q, want %q before consent", got, NoContext)
	}

	c.gate.Grant(topic)

	got := c.QueryPersonalMemory(ctx, topic)
	if got == NoContext {
		t.Fatalf("second query after Grant() = %q, want a sanitized payload", got)
	}
	if !strings.HasPrefix(got, "SANITIZED_CONTEXT:") {
		t.Fatalf("second query after Grant() = %q, want SANITIZED_CONTEXT: prefix", got)
	}

	if got := c.QueryPersonalMemory(ctx, topic); got != NoContext {
		t.Fatalf("third query = %q, want %q: consent is single-use", got, NoContext)
	}
}

func TestQueryPersonalMemoryUsesExtractiveGeneration(t *testing.T) {
	client := orchestrator.New(orchestrator.Config{Extractive: true})
	c, bus := newTestController(t, true, client)
	ctx := context.Background()

	if _, err := c.store.SaveDocument(ctx, "User likes to drink Black Coffee.", "notes.txt"); err != nil {
		t.Fatalf("SaveDocument() error = %v", err)
	}

	got := c.QueryPersonalMemory(ctx, "What coffee do I like?")
	if !strings.Contains(got, "Black Coffee") {
		t.Fatalf("QueryPersonalMemory() = %q, want the extractive line about coffee", got)
	}

	if !containsType(eventTypes(bus), "archestra_response") {
		t.Fatalf("expected an archestra_response event when generation is enabled")
	}
}

func TestSaveMemoryRequiresFact(t *testing.T) {
	c, _ := newTestController(t, false, nil)

	got := c.SaveMemory(context.Background(), "  ", "")
	if got != "ERROR: 'fact' is required." {
		t.Fatalf("SaveMemory() = %q, want the missing-fact error", got)
	}
}

func TestSaveMemoryPublishesEvent(t *testing.T) {
	c, bus := newTestController(t, false, nil)

	got := c.SaveMemory(context.Background(), "John Doe's birthday is in May.", "")
	if !strings.HasPrefix(got, "MEMORY_SAVED:") {
		t.Fatalf("SaveMemory() = %q, want MEMORY_SAVED: prefix", got)
	}

	if !containsType(eventTypes(bus), "memory_saved") {
		t.Fatalf("expected a memory_saved event")
	}
}
