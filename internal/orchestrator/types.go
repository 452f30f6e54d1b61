package orchestrator

const (
	GroundingExact   = "exact"
	GroundingExcerpt = "excerpt"

	// FallbackAnswer is returned verbatim whenever extractive mode cannot
	// find any grounded line to answer from. spec.md §4.5 fixes this
	// string so callers and tests can match on it directly.
	FallbackAnswer = "I don't have that information in your saved memories."
)

// Config carries everything a Client needs to answer a question against
// retrieved context. It intentionally does not import internal/config:
// the orchestrator is the canonical owner of provider-alias semantics,
// and config depends on it, not the other way around.
type Config struct {
	Extractive bool
	Grounding  string
	Provider   string
	APIKey     string
	BaseURL    string
	Profile    string
	Model      string
}

// Request is one grounded-answer attempt: a topic plus the memory
// excerpts retrieved for it, already privacy-redacted and budget-shrunk
// by the caller.
type Request struct {
	Topic         string
	SystemContext []string
}
