// Package cli implements the memcore command-line surface: bootstrap of
// every component described in SPEC_FULL.md plus the query/save/stats/doctor
// subcommands. Command structure follows rcliao-agent-memory's cobra
// layout (a package-level RootCmd, one file per subcommand registering
// itself from init()); bootstrap wiring follows the shape of
// core/cmd/sheldon/main.go (load config, open memory, construct
// collaborators, wire them together) collapsed into a single reusable
// app struct instead of one large main function.
package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/archestra-labs/memcore/internal/config"
	"github.com/archestra-labs/memcore/internal/consent"
	"github.com/archestra-labs/memcore/internal/embedding"
	"github.com/archestra-labs/memcore/internal/eventbus"
	"github.com/archestra-labs/memcore/internal/logger"
	"github.com/archestra-labs/memcore/internal/memory"
	"github.com/archestra-labs/memcore/internal/orchestrator"
	"github.com/archestra-labs/memcore/internal/retrieval"
)

var RootCmd = &cobra.Command{
	Use:   "memcore",
	Short: "Personal memory gateway core",
	Long:  "A local-first, privacy-safe retrieval core for a personal memory MCP server.",
}

func init() {
	_ = godotenv.Load()
}

// app bundles every wired collaborator a subcommand might need.
type app struct {
	cfg        *config.Config
	store      *memory.Store
	controller *retrieval.Controller
	stats      *eventbus.Stats
	persister  *eventbus.Persister
}

// bootstrap loads and validates config, then constructs every
// SPEC_FULL.md component and wires them into a retrieval.Controller.
// Warnings are logged; a single Error-severity diagnostic aborts.
func bootstrap() (*app, error) {
	cfg := config.Load()

	var firstErr string
	for _, d := range config.Validate(cfg) {
		if d.Severity == config.SeverityError {
			logger.Error("config error", "detail", d.Message)
			if firstErr == "" {
				firstErr = d.Message
			}
		} else {
			logger.Warn("config warning", "detail", d.Message)
		}
	}
	if firstErr != "" {
		return nil, fmt.Errorf("invalid configuration: %s", firstErr)
	}

	embedSvc, err := embedding.New(embedding.Config{
		Provider:   cfg.Embedding.Provider,
		GeminiKey:  cfg.Embedding.GeminiKey,
		OpenAIKey:  cfg.Embedding.OpenAIKey,
		OpenAIBase: cfg.Embedding.OpenAIBase,
		Model:      cfg.Embedding.Model,
		Dimension:  cfg.Embedding.Dimension,
		CacheDir:   cfg.Embedding.CacheDir,
	})
	if err != nil {
		return nil, fmt.Errorf("embedding service: %w", err)
	}

	store, err := memory.Open(cfg.MemoryPath, embedSvc, cfg.Embedding.Dimension)
	if err != nil {
		return nil, fmt.Errorf("open memory store: %w", err)
	}

	gate := consent.NewGate(time.Duration(cfg.Consent.TTLMs) * time.Millisecond)

	bus := eventbus.New(cfg.EventBus.RingCapacity)
	stats := eventbus.NewStats()
	stats.Attach(bus)

	var mirror *eventbus.Mirror
	if cfg.Snapshot.MinioEndpoint != "" {
		m, err := eventbus.NewMirror(eventbus.MirrorConfig{
			Endpoint:  cfg.Snapshot.MinioEndpoint,
			AccessKey: cfg.Snapshot.MinioAccessKey,
			SecretKey: cfg.Snapshot.MinioSecretKey,
			UseSSL:    cfg.Snapshot.MinioUseSSL,
			Bucket:    cfg.Snapshot.MinioBucket,
		})
		if err != nil {
			logger.Warn("stats mirror unavailable", "error", err)
		} else if err := m.Init(context.Background()); err != nil {
			logger.Warn("stats mirror bucket init failed", "error", err)
		} else {
			mirror = m
		}
	}

	persister := eventbus.NewPersister(cfg.Snapshot.Path, stats, mirror)
	persister.Start(cfg.Snapshot.IntervalSeconds)

	var client *orchestrator.Client
	if cfg.Orchestrator.Enabled {
		client = orchestrator.New(orchestrator.Config{
			Extractive: cfg.Orchestrator.Extractive,
			Grounding:  string(cfg.Orchestrator.Grounding),
			Provider:   cfg.Orchestrator.Provider,
			APIKey:     cfg.Orchestrator.APIKey,
			BaseURL:    cfg.Orchestrator.BaseURL,
			Profile:    cfg.Orchestrator.Profile,
			Model:      cfg.Orchestrator.Model,
		})
	}

	controller := retrieval.New(store, gate, bus, client, retrieval.Config{
		Scope:           memory.Scope(cfg.Retrieval.Scope),
		StrictMatch:     cfg.Retrieval.StrictMatch,
		TopK:            cfg.Retrieval.TopK,
		MaxChars:        cfg.Retrieval.MaxChars,
		ConsentEnabled:  cfg.Consent.Enabled,
		GenerateEnabled: cfg.Orchestrator.Enabled,
		PrivacyDebug:    cfg.Privacy.Debug,
	})

	return &app{
		cfg:        cfg,
		store:      store,
		controller: controller,
		stats:      stats,
		persister:  persister,
	}, nil
}

func (a *app) Close() {
	a.persister.Flush()
	a.persister.Stop()
	a.store.Close()
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
