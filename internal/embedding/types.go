// Package embedding provides text-to-vector conversion for the memory
// repository. Provider selection follows the teacher's
// core/internal/embedder.New dispatch, generalized to the gemini/openai
// compatible/local three-way choice from spec.md §4.1, and its Embedder
// interface matches pkg/sheldonmem.Embedder exactly so the memory store
// can depend on the interface without importing this package.
package embedding

import (
	"context"
	"errors"
)

// ErrWrongCredentialKind distinguishes "the gateway token was used where
// a direct provider key belongs" from "no key at all" or "the key was
// rejected by the provider" per spec.md §4.1.
var ErrWrongCredentialKind = errors.New("embedding: credential looks like an Archestra gateway personal access token, not a direct provider key")

type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

type Config struct {
	Provider   string // "gemini", "openai-compatible", "local", or "" (auto-detect)
	GeminiKey  string
	OpenAIKey  string
	OpenAIBase string
	Model      string
	Dimension  int
	CacheDir   string
}
