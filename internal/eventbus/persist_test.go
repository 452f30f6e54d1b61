package eventbus

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestPersisterFlushWritesSnapshotFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stats.json")

	stats := NewStats()
	bus := New(50)
	stats.Attach(bus)
	bus.Publish("query_received", nil)

	p := NewPersister(path, stats, nil)
	go p.writerLoop()
	defer close(p.doneCh)

	p.Flush()

	deadline := time.Now().Add(2 * time.Second)
	for {
		if _, err := os.Stat(path); err == nil {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("snapshot file was not written within the deadline")
		}
		time.Sleep(10 * time.Millisecond)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if snap.TotalQueries != 1 {
		t.Fatalf("TotalQueries = %d, want 1", snap.TotalQueries)
	}
}

func TestPersisterFlushIsNonBlockingWhenPending(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stats.json")

	stats := NewStats()
	p := NewPersister(path, stats, nil)

	// no writer loop running: the buffered channel absorbs one Flush,
	// and a second Flush must not block.
	p.Flush()
	done := make(chan struct{})
	go func() {
		p.Flush()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("second Flush() blocked, want non-blocking send")
	}
}
