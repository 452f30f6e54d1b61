package eventbus

import (
	"regexp"
	"sync"
)

var placeholderRe = regexp.MustCompile(`\[REDACTED_([A-Z_]+)\]`)

// Snapshot is the JSON-serializable counters view persisted by persist.go.
type Snapshot struct {
	TotalQueries     int            `json:"total_queries"`
	BlockedHighRisk  int            `json:"blocked_high_risk"`
	TotalRedactions  int            `json:"total_redactions"`
	IngestedFiles    int            `json:"ingested_files"`
	IngestedChunks   int            `json:"ingested_chunks"`
	IngestErrors     int            `json:"ingest_errors"`
	RedactionsByKind map[string]int `json:"redactions_by_kind"`
}

// Stats is the single telemetry subscriber from spec.md §4.7. It derives
// every counter from event payloads only, so it never needs to know
// about the redaction pipeline's internal types.
type Stats struct {
	mu       sync.Mutex
	snapshot Snapshot
}

func NewStats() *Stats {
	return &Stats{
		snapshot: Snapshot{RedactionsByKind: make(map[string]int)},
	}
}

// Attach subscribes this collector to bus and returns the unsubscribe
// handle, mirroring Bus.Subscribe's contract.
func (s *Stats) Attach(bus *Bus) func() {
	return bus.Subscribe(s.handle)
}

func (s *Stats) handle(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch ev.Type {
	case "query_received":
		s.snapshot.TotalQueries++
	case "risk_blocked":
		if reason, ok := ev.Payload["reason"].(string); ok && reason == "high_risk" {
			s.snapshot.BlockedHighRisk++
		}
	case "privacy_processed":
		if n, ok := ev.Payload["redaction_count"].(int); ok {
			s.snapshot.TotalRedactions += n
		}
		if cleaned, ok := ev.Payload["cleaned_text"].(string); ok {
			for _, m := range placeholderRe.FindAllStringSubmatch(cleaned, -1) {
				s.snapshot.RedactionsByKind[m[1]]++
			}
		}
	case "file_ingested":
		s.snapshot.IngestedFiles++
		if n, ok := ev.Payload["chunks"].(int); ok {
			s.snapshot.IngestedChunks += n
		}
	case "ingest_error":
		s.snapshot.IngestErrors++
	}
}

// Snapshot returns a copy of the current counters, safe for the caller
// to serialize or mutate.
func (s *Stats) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := s.snapshot
	out.RedactionsByKind = make(map[string]int, len(s.snapshot.RedactionsByKind))
	for k, v := range s.snapshot.RedactionsByKind {
		out.RedactionsByKind[k] = v
	}
	return out
}
