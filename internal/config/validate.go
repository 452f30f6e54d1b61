package config

import (
	"fmt"
	"strings"

	"github.com/archestra-labs/memcore/internal/orchestrator"
)

// ClampTopK enforces the [1, 10] range from spec.md §4.6.
func ClampTopK(k int) int {
	if k < 1 {
		return 1
	}
	if k > 10 {
		return 10
	}
	return k
}

// ClampMaxChars enforces the [120, 2000] range from spec.md §4.6.
func ClampMaxChars(n int) int {
	if n < 120 {
		return 120
	}
	if n > 2000 {
		return 2000
	}
	return n
}

// Validate checks a Config for internal consistency and returns
// diagnostics without mutating cfg or exiting the process. The caller
// (cmd/memcore) decides whether any Error-severity diagnostic should
// abort startup.
func Validate(cfg *Config) []Diagnostic {
	var diags []Diagnostic

	diags = append(diags, validateRetrieval(cfg.Retrieval)...)
	diags = append(diags, validateEmbedding(cfg.Embedding)...)
	diags = append(diags, validateOrchestrator(cfg.Orchestrator)...)
	diags = append(diags, validateEventBus(cfg.EventBus)...)
	diags = append(diags, validateConsent(cfg.Consent)...)

	return diags
}

func validateRetrieval(r RetrievalConfig) []Diagnostic {
	var diags []Diagnostic

	switch r.Scope {
	case ScopeHybrid, ScopeFactsOnly, ScopeDocumentsOnly:
	default:
		diags = append(diags, warn(fmt.Sprintf("unknown retrieval scope %q, defaulting to hybrid", r.Scope)))
	}

	if r.TopK < 1 || r.TopK > 10 {
		diags = append(diags, warn(fmt.Sprintf("retrieval top-k %d out of range [1,10], will be clamped", r.TopK)))
	}
	if r.MaxChars < 120 || r.MaxChars > 2000 {
		diags = append(diags, warn(fmt.Sprintf("retrieval max-chars %d out of range [120,2000], will be clamped", r.MaxChars)))
	}
	if r.EmbeddingDim <= 0 {
		diags = append(diags, fail("embedding dimension must be positive"))
	}

	return diags
}

func validateEmbedding(e EmbeddingConfig) []Diagnostic {
	var diags []Diagnostic

	provider := DetectEmbeddingProvider(e)

	switch provider {
	case "gemini":
		if strings.HasPrefix(e.GeminiKey, GatewayTokenPrefix) {
			diags = append(diags, fail("GEMINI_API_KEY looks like an Archestra gateway personal access token, not a Gemini provider key"))
		}
	case "openai-compatible":
		if strings.HasPrefix(e.OpenAIKey, GatewayTokenPrefix) {
			diags = append(diags, fail("OPENAI_API_KEY looks like an Archestra gateway personal access token, not an OpenAI-compatible provider key"))
		}
	case "local":
		diags = append(diags, warn("no embedding credentials configured, falling back to the local deterministic embedder"))
	}

	if e.Dimension <= 0 {
		diags = append(diags, fail("embedding dimension must be positive"))
	}

	return diags
}

func validateOrchestrator(o OrchestratorConfig) []Diagnostic {
	var diags []Diagnostic

	if !o.Enabled {
		return diags
	}

	if o.Extractive {
		return diags
	}

	provider := orchestrator.NormalizeProvider(o.Provider)
	switch provider {
	case orchestrator.ProviderGemini:
		if strings.HasPrefix(o.APIKey, GatewayTokenPrefix) {
			diags = append(diags, fail("orchestrator API key looks like a gateway personal access token, not a direct Gemini key"))
		}
		if o.Profile == "" && !strings.Contains(o.BaseURL, "/") {
			diags = append(diags, fail("gemini orchestrator requires a profile id, either standalone or embedded in the base URL"))
		}
	case orchestrator.ProviderOpenAICompatible:
		if o.APIKey == "" {
			diags = append(diags, fail("openai-compatible orchestrator requires an API key"))
		}
	default:
		diags = append(diags, warn(fmt.Sprintf("unknown orchestrator provider alias %q, defaulting to openai-compatible", o.Provider)))
	}

	switch o.Grounding {
	case GroundingExact, GroundingExcerpt:
	default:
		diags = append(diags, warn(fmt.Sprintf("unknown grounding mode %q, defaulting to excerpt", o.Grounding)))
	}

	return diags
}

func validateEventBus(e EventBusConfig) []Diagnostic {
	if e.RingCapacity <= 0 {
		return []Diagnostic{fail("event bus ring capacity must be positive")}
	}
	return nil
}

func validateConsent(c ConsentConfig) []Diagnostic {
	if c.Enabled && c.TTLMs <= 0 {
		return []Diagnostic{fail("consent TTL must be positive when consent is enabled")}
	}
	return nil
}

func warn(msg string) Diagnostic { return Diagnostic{Severity: SeverityWarning, Message: msg} }
func fail(msg string) Diagnostic { return Diagnostic{Severity: SeverityError, Message: msg} }
