package eventbus

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/robfig/cron/v3"

	"github.com/archestra-labs/memcore/internal/logger"
)

// Persister owns the single writer goroutine that serializes stats
// snapshots to disk. Writes are funneled through one channel so
// concurrent cron ticks and manual Flush calls never interleave file
// writes, per spec.md §4.7's "writes are serialized through a chained
// promise" requirement re-encoded as a channel-fed goroutine — the same
// single-owner-writer shape the teacher uses for the budget store,
// generalized here to a background cron.Cron trigger
// instead of a request-driven write.
type Persister struct {
	path    string
	stats   *Stats
	mirror  *Mirror // nil if no S3-compatible mirror configured
	writeCh chan struct{}
	doneCh  chan struct{}
	cronJob *cron.Cron
}

func NewPersister(path string, stats *Stats, mirror *Mirror) *Persister {
	return &Persister{
		path:    path,
		stats:   stats,
		mirror:  mirror,
		writeCh: make(chan struct{}, 1),
		doneCh:  make(chan struct{}),
	}
}

// Start launches the writer goroutine and schedules periodic flushes at
// the given interval via robfig/cron.
func (p *Persister) Start(intervalSeconds int) {
	go p.writerLoop()

	p.cronJob = cron.New()
	spec := fmt.Sprintf("@every %ds", intervalSeconds)
	if _, err := p.cronJob.AddFunc(spec, p.Flush); err != nil {
		logger.Error("failed to schedule stats snapshot job", "error", err)
		return
	}
	p.cronJob.Start()
}

func (p *Persister) Stop() {
	if p.cronJob != nil {
		p.cronJob.Stop()
	}
	close(p.doneCh)
}

// Flush requests a write without blocking the caller; if a write is
// already pending, this is a no-op, since the pending write will pick up
// the latest snapshot anyway.
func (p *Persister) Flush() {
	select {
	case p.writeCh <- struct{}{}:
	default:
	}
}

func (p *Persister) writerLoop() {
	for {
		select {
		case <-p.doneCh:
			return
		case <-p.writeCh:
			p.writeOnce()
		}
	}
}

func (p *Persister) writeOnce() {
	snap := p.stats.Snapshot()

	raw, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		logger.Warn("stats snapshot marshal failed", "error", err)
		return
	}

	if err := os.WriteFile(p.path, raw, 0644); err != nil {
		logger.Warn("stats snapshot write failed", "path", p.path, "error", err)
		return
	}

	if p.mirror != nil {
		p.mirror.Upload(raw)
	}
}
