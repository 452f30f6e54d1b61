// Package orchestrator implements the answer generation step from
// spec.md §4.5: a strictly grounded provider call with an extractive
// fallback when no provider is configured or the provider's answer fails
// grounding. Its HTTP call shape follows the teacher's
// core/internal/llm/openai.go: a single-purpose client issuing raw
// net/http requests rather than a generated SDK.
package orchestrator

import "strings"

const (
	ProviderGemini           = "gemini"
	ProviderOpenAICompatible = "openai-compatible"
)

// NormalizeProvider maps the aliases an operator is likely to type into
// one of the two provider variants this package knows how to call. This
// is the single source of truth for the alias table in spec.md §4.5;
// internal/config validates against it but never redefines it.
func NormalizeProvider(alias string) string {
	switch strings.ToLower(alias) {
	case "google", "gemini":
		return ProviderGemini
	case "chatgpt", "claude", "anthropic", "openai-compatible", "openai", "":
		return ProviderOpenAICompatible
	default:
		return ProviderOpenAICompatible
	}
}
