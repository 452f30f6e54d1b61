package embedding

import (
	"context"
	"strings"

	"github.com/archestra-labs/memcore/internal/logger"
)

// gatewayTokenPrefix mirrors config.GatewayTokenPrefix. Duplicated as a
// literal rather than imported so this package has no dependency on
// internal/config; the two must be kept in sync if the prefix ever
// changes, which spec.md §4.1 treats as a fixed convention.
const gatewayTokenPrefix = "arch_pat_"

const (
	ProviderGemini           = "gemini"
	ProviderOpenAICompatible = "openai-compatible"
	ProviderLocal            = "local"
)

// Service is the Embedder implementation used by the memory repository.
// It matches pkg/sheldonmem.Embedder's single-method interface.
type Service struct {
	cfg      Config
	provider string
	cache    *fileCache
}

func New(cfg Config) (*Service, error) {
	provider := detectProvider(cfg)

	if provider == ProviderGemini && strings.HasPrefix(cfg.GeminiKey, gatewayTokenPrefix) {
		return nil, ErrWrongCredentialKind
	}
	if provider == ProviderOpenAICompatible && strings.HasPrefix(cfg.OpenAIKey, gatewayTokenPrefix) {
		return nil, ErrWrongCredentialKind
	}

	dir := cfg.CacheDir
	if dir == "" {
		dir = ".memcore-cache"
	}

	return &Service{
		cfg:      cfg,
		provider: provider,
		cache:    newFileCache(dir),
	}, nil
}

// detectProvider mirrors config.DetectEmbeddingProvider's priority chain
// (explicit config wins, then gemini key, then openai key, else local)
// without importing internal/config.
func detectProvider(cfg Config) string {
	if cfg.Provider != "" {
		return cfg.Provider
	}
	if cfg.GeminiKey != "" {
		return ProviderGemini
	}
	if cfg.OpenAIKey != "" {
		return ProviderOpenAICompatible
	}
	return ProviderLocal
}

// Embed implements the contract from spec.md §4.1: normalize, check the
// cache, dispatch to the selected provider, align to the configured
// dimension, and cache the aligned result before returning it.
func (s *Service) Embed(ctx context.Context, text string) ([]float32, error) {
	normalized := normalizeText(text)
	if normalized == "" {
		return nil, nil
	}

	key := cacheKey(s.provider, s.cfg.Model, normalized)
	if cached, ok := s.cache.get(key); ok {
		return cached, nil
	}

	var (
		vec []float32
		err error
	)

	switch s.provider {
	case ProviderGemini:
		vec, err = geminiEmbed(ctx, s.cfg.GeminiKey, s.cfg.Model, normalized, s.cfg.Dimension)
	case ProviderOpenAICompatible:
		baseURL := s.cfg.OpenAIBase
		if baseURL == "" {
			baseURL = "https://api.openai.com/v1"
		}
		vec, err = openaiEmbed(ctx, baseURL, s.cfg.OpenAIKey, s.cfg.Model, normalized)
	default:
		vec = localEmbed(normalized, s.cfg.Dimension)
	}

	if err != nil {
		logger.Warn("embedding provider call failed", "provider", s.provider, "error", err)
		return nil, err
	}

	aligned := align(vec, s.cfg.Dimension)
	s.cache.put(key, aligned)

	return aligned, nil
}

// normalizeText trims and collapses interior whitespace before any
// processing or cache lookup, per spec.md §4.1.
func normalizeText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
