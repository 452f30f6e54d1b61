package eventbus

import "testing"

func TestStatsCountsQueryAndRiskEvents(t *testing.T) {
	bus := New(50)
	stats := NewStats()
	stats.Attach(bus)

	bus.Publish("query_received", nil)
	bus.Publish("query_received", nil)
	bus.Publish("risk_blocked", map[string]any{"reason": "high_risk"})
	bus.Publish("risk_blocked", map[string]any{"reason": "low_confidence"})

	snap := stats.Snapshot()
	if snap.TotalQueries != 2 {
		t.Errorf("TotalQueries = %d, want 2", snap.TotalQueries)
	}
	if snap.BlockedHighRisk != 1 {
		t.Errorf("BlockedHighRisk = %d, want 1, low_confidence blocks must not count", snap.BlockedHighRisk)
	}
}

func TestStatsDerivesRedactionsByKindFromCleanedText(t *testing.T) {
	bus := New(50)
	stats := NewStats()
	stats.Attach(bus)

	bus.Publish("privacy_processed", map[string]any{
		"redaction_count": 2,
		"cleaned_text":    "Contact [REDACTED_EMAIL] or [REDACTED_PHONE] for details.",
	})

	snap := stats.Snapshot()
	if snap.TotalRedactions != 2 {
		t.Errorf("TotalRedactions = %d, want 2", snap.TotalRedactions)
	}
	if snap.RedactionsByKind["EMAIL"] != 1 {
		t.Errorf("RedactionsByKind[EMAIL] = %d, want 1", snap.RedactionsByKind["EMAIL"])
	}
	if snap.RedactionsByKind["PHONE"] != 1 {
		t.Errorf("RedactionsByKind[PHONE] = %d, want 1", snap.RedactionsByKind["PHONE"])
	}
}

func TestStatsCountsIngestEvents(t *testing.T) {
	bus := New(50)
	stats := NewStats()
	stats.Attach(bus)

	bus.Publish("file_ingested", map[string]any{"chunks": 5})
	bus.Publish("file_ingested", map[string]any{"chunks": 3})
	bus.Publish("ingest_error", nil)

	snap := stats.Snapshot()
	if snap.IngestedFiles != 2 {
		t.Errorf("IngestedFiles = %d, want 2", snap.IngestedFiles)
	}
	if snap.IngestedChunks != 8 {
		t.Errorf("IngestedChunks = %d, want 8", snap.IngestedChunks)
	}
	if snap.IngestErrors != 1 {
		t.Errorf("IngestErrors = %d, want 1", snap.IngestErrors)
	}
}

func TestSnapshotIsIndependentCopy(t *testing.T) {
	bus := New(50)
	stats := NewStats()
	stats.Attach(bus)

	bus.Publish("privacy_processed", map[string]any{
		"redaction_count": 1,
		"cleaned_text":    "[REDACTED_EMAIL]",
	})

	snap := stats.Snapshot()
	snap.RedactionsByKind["EMAIL"] = 999

	snap2 := stats.Snapshot()
	if snap2.RedactionsByKind["EMAIL"] != 1 {
		t.Fatalf("mutating a returned snapshot affected internal state: got %d, want 1", snap2.RedactionsByKind["EMAIL"])
	}
}
