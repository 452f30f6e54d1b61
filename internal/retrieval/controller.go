// Package retrieval implements the seven-state Retrieval Controller from
// spec.md §4.6: the orchestration that ties the Memory Repository,
// Privacy Redaction Pipeline, Consent Gate, Answer Orchestrator, and
// Event Bus into the single per-query pipeline exposed to MCP tool
// callers. There is no direct teacher analog for this orchestration
// shape; it generalizes the agent-loop wiring in
// core/internal/agent/agent.go (single entry point calling out to a
// fixed sequence of collaborators, publishing a bus event at each step)
// to this domain's retrieve→redact→gate→generate pipeline.
package retrieval

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/archestra-labs/memcore/internal/consent"
	"github.com/archestra-labs/memcore/internal/eventbus"
	"github.com/archestra-labs/memcore/internal/logger"
	"github.com/archestra-labs/memcore/internal/memory"
	"github.com/archestra-labs/memcore/internal/orchestrator"
	"github.com/archestra-labs/memcore/internal/privacy"
)

// Fixed output sentinels from spec.md §6.
const (
	NoContextFound = "NO_CONTEXT_FOUND"
	NoContext      = "NO_CONTEXT"
)

// Config carries the runtime knobs the Controller needs from the
// validated top-level config, kept separate from internal/config so this
// package never needs to import it.
type Config struct {
	Scope           memory.Scope
	StrictMatch     bool
	TopK            int
	MaxChars        int
	ConsentEnabled  bool
	GenerateEnabled bool
	PrivacyDebug    bool
}

// Controller wires the Memory Repository, Privacy Pipeline, Consent
// Gate, Answer Orchestrator, and Event Bus into the query and save tool
// contracts from spec.md §6.
type Controller struct {
	store  *memory.Store
	gate   *consent.Gate
	bus    *eventbus.Bus
	client *orchestrator.Client
	cfg    Config
}

func New(store *memory.Store, gate *consent.Gate, bus *eventbus.Bus, client *orchestrator.Client, cfg Config) *Controller {
	cfg.TopK = clamp(cfg.TopK, 1, 10)
	cfg.MaxChars = clamp(cfg.MaxChars, 120, 2000)
	return &Controller{store: store, gate: gate, bus: bus, client: client, cfg: cfg}
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

// QueryPersonalMemory implements the query_personal_memory tool contract
// and the seven-state machine from spec.md §4.6.
func (c *Controller) QueryPersonalMemory(ctx context.Context, topic string) string {
	// 1. Receive
	c.bus.Publish("query_received", map[string]any{"topic": topic})

	// 2. Retrieve
	results, err := c.store.Search(ctx, topic, memory.SearchOptions{
		Scope:       c.cfg.Scope,
		K:           c.cfg.TopK,
		StrictMatch: c.cfg.StrictMatch,
	})
	if err != nil {
		logger.Error("retrieval failed", "topic", topic, "error", err)
		return "ERROR: " + err.Error()
	}
	if len(results) == 0 {
		return NoContextFound
	}

	lines := buildContextLines(results, c.cfg.MaxChars)

	// 3. Shrink-to-safe
	cleanedLines, result := shrinkToSafe(lines)
	cleaned := strings.Join(cleanedLines, "\n")

	// 4. Publish
	payload := map[string]any{
		"topic":           topic,
		"redaction_count": result.RedactionCount,
		"risk":            string(result.RiskLevel),
		"confidence":      string(result.Confidence),
		"cleaned_text":    cleaned,
	}
	if c.cfg.PrivacyDebug {
		payload["raw_text"] = strings.Join(lines, "\n")
	}
	c.bus.Publish("privacy_processed", payload)

	// 5. Gate
	if result.Confidence == privacy.ConfidenceLow {
		c.bus.Publish("risk_blocked", map[string]any{"topic": topic, "reason": "low_confidence"})
		return NoContext
	}
	if result.RiskLevel == privacy.RiskHigh {
		if !c.consentGranted(topic) {
			c.bus.Publish("consent_required", map[string]any{"topic": topic, "cleaned_text": cleaned})
			c.bus.Publish("risk_blocked", map[string]any{"topic": topic, "reason": "high_risk"})
			return NoContext
		}
	}

	// 6. Generate (optional)
	if c.cfg.GenerateEnabled && c.client != nil {
		c.bus.Publish("archestra_request", map[string]any{"topic": topic})
		answer, err := c.client.Generate(ctx, orchestrator.Request{
			Topic:         topic,
			SystemContext: cleanedLines,
		})
		if err != nil {
			logger.Error("answer generation failed", "topic", topic, "error", err)
			c.bus.Publish("archestra_response", map[string]any{"topic": topic, "ok": false})
		} else {
			c.bus.Publish("archestra_response", map[string]any{"topic": topic, "ok": true})
			return answer
		}
	}

	// 7. Return
	return fmt.Sprintf("SANITIZED_CONTEXT:\n%s\n\nRedactions: %d\nRisk: %s",
		cleaned, result.RedactionCount, result.RiskLevel)
}

func (c *Controller) consentGranted(topic string) bool {
	if !c.cfg.ConsentEnabled || c.gate == nil {
		return false
	}
	return c.gate.Consume(topic)
}

// buildContextLines numbers each result's text as "[1] ..." per
// spec.md §4.6 step 3, truncating each to maxChars.
func buildContextLines(results []memory.Record, maxChars int) []string {
	lines := make([]string, 0, len(results))
	for i, r := range results {
		text := r.Text
		if len(text) > maxChars {
			text = text[:maxChars]
		}
		lines = append(lines, "["+strconv.Itoa(i+1)+"] "+text)
	}
	return lines
}
