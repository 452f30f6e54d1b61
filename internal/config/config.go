package config

import (
	"os"
	"strconv"
	"strings"
)

// GatewayTokenPrefix marks a credential as an Archestra gateway personal
// access token rather than a raw provider API key. Using one directly
// against a provider's API is a distinct misconfiguration from "no key at
// all" or "wrong key" — see spec.md §4.1.
const GatewayTokenPrefix = "arch_pat_"

// Load parses the process environment into a Config. It never panics or
// exits; callers should feed the result through Validate and decide for
// themselves whether to proceed. This mirrors the teacher's
// loadXConfig() decomposition (one function per concern) folded into a
// single non-throwing entrypoint per spec.md §4.8.
func Load() *Config {
	return &Config{
		MemoryPath:   envOr("MEMCORE_DB_PATH", "memcore.db"),
		Retrieval:    loadRetrievalConfig(),
		Privacy:      loadPrivacyConfig(),
		Consent:      loadConsentConfig(),
		Embedding:    loadEmbeddingConfig(),
		Orchestrator: loadOrchestratorConfig(),
		EventBus:     loadEventBusConfig(),
		Snapshot:     loadSnapshotConfig(),
	}
}

func loadRetrievalConfig() RetrievalConfig {
	scope := Scope(envOr("MEMCORE_SCOPE", string(ScopeHybrid)))

	return RetrievalConfig{
		Scope:        scope,
		StrictMatch:  envBoolOr("MEMCORE_STRICT_MATCH", true),
		TopK:         envIntOr("MEMCORE_TOP_K", 5),
		MaxChars:     envIntOr("MEMCORE_MAX_CHARS", 800),
		EmbeddingDim: envIntOr("MEMCORE_EMBEDDING_DIM", 256),
	}
}

func loadPrivacyConfig() PrivacyConfig {
	return PrivacyConfig{
		Debug: envBoolOr("MEMCORE_PRIVACY_DEBUG", false),
	}
}

func loadConsentConfig() ConsentConfig {
	return ConsentConfig{
		Enabled: envBoolOr("MEMCORE_CONSENT_ENABLED", true),
		TTLMs:   envInt64Or("MEMCORE_CONSENT_TTL_MS", 5*60*1000),
	}
}

func loadEmbeddingConfig() EmbeddingConfig {
	dim := envIntOr("MEMCORE_EMBEDDING_DIM", 256)

	return EmbeddingConfig{
		Provider:   os.Getenv("EMBEDDING_PROVIDER"),
		GeminiKey:  os.Getenv("GEMINI_API_KEY"),
		OpenAIKey:  os.Getenv("OPENAI_API_KEY"),
		OpenAIBase: envOr("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		Model:      os.Getenv("EMBEDDING_MODEL"),
		CacheDir:   envOr("MEMCORE_CACHE_DIR", ".memcore-cache"),
		Dimension:  dim,
	}
}

// DetectEmbeddingProvider infers which embedding provider to use when the
// operator has not set one explicitly: gemini key wins, then an
// openai-compatible key, else local. Mirrors config.DetectProvider() in
// the teacher (core/internal/config), which resolves an LLM provider the
// same way from the same kind of env-var priority chain.
func DetectEmbeddingProvider(cfg EmbeddingConfig) string {
	if cfg.Provider != "" {
		return cfg.Provider
	}
	if cfg.GeminiKey != "" {
		return "gemini"
	}
	if cfg.OpenAIKey != "" {
		return "openai-compatible"
	}
	return "local"
}

func loadOrchestratorConfig() OrchestratorConfig {
	grounding := GroundingMode(envOr("MEMCORE_GROUNDING_MODE", string(GroundingExcerpt)))

	return OrchestratorConfig{
		Enabled:    envBoolOr("MEMCORE_ORCHESTRATOR_ENABLED", false),
		Extractive: envBoolOr("MEMCORE_ORCHESTRATOR_EXTRACTIVE", true),
		Grounding:  grounding,
		Provider:   os.Getenv("MEMCORE_ORCHESTRATOR_PROVIDER"),
		APIKey:     os.Getenv("MEMCORE_ORCHESTRATOR_API_KEY"),
		BaseURL:    os.Getenv("MEMCORE_ORCHESTRATOR_BASE_URL"),
		Profile:    os.Getenv("MEMCORE_ORCHESTRATOR_PROFILE"),
		Model:      os.Getenv("MEMCORE_ORCHESTRATOR_MODEL"),
	}
}

func loadEventBusConfig() EventBusConfig {
	return EventBusConfig{
		RingCapacity: envIntOr("MEMCORE_EVENT_RING_CAPACITY", 200),
	}
}

func loadSnapshotConfig() SnapshotConfig {
	return SnapshotConfig{
		Path:            envOr("MEMCORE_STATS_PATH", "memcore-stats.json"),
		IntervalSeconds: envIntOr("MEMCORE_STATS_INTERVAL_SECONDS", 30),
		MinioEndpoint:   os.Getenv("MINIO_ENDPOINT"),
		MinioAccessKey:  os.Getenv("MINIO_ACCESS_KEY"),
		MinioSecretKey:  os.Getenv("MINIO_SECRET_KEY"),
		MinioUseSSL:     envBoolOr("MINIO_USE_SSL", false),
		MinioBucket:     envOr("MINIO_STATS_BUCKET", "memcore-stats"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return strings.EqualFold(v, "true") || v == "1"
}

func envIntOr(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envInt64Or(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}
