// Package privacy implements the ordered, regex-driven PII redaction pass
// described in spec.md §4.3. The pattern list generalizes the flat
// []*regexp.Regexp scan in the teacher's core/internal/coder/sanitizer.go
// into per-pattern severity, capture bookkeeping, and functional
// replacements, so risk and confidence can be derived from what actually
// fired.
package privacy

import "regexp"

type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

type RiskLevel string

const (
	RiskLow  RiskLevel = "LOW"
	RiskHigh RiskLevel = "HIGH"
)

type Confidence string

const (
	ConfidenceHigh Confidence = "HIGH"
	ConfidenceLow  Confidence = "LOW"
)

// Pattern is one entry in the ordered redaction table. Replace receives the
// full match plus its submatches and returns the literal replacement text.
// Most patterns ignore the submatches and return a fixed placeholder;
// "label = secret" patterns use them to build a label-aware placeholder.
type Pattern struct {
	Name         string
	Regexp       *regexp.Regexp
	Severity     Severity
	CaptureIndex int // -1 if the whole match is the sensitive value
	Placeholder  string
	Replace      func(match []string) string
}

// Result is the output of a single Redact call.
type Result struct {
	CleanedText     string
	RedactionCount  int
	PerPatternCount map[string]int
	RiskLevel       RiskLevel
	Confidence      Confidence
	// SyntheticMap records sensitive value -> placeholder for debug
	// observability only (spec.md §3, "Redaction result"). Never logged
	// or published on the telemetry bus by default.
	SyntheticMap map[string]string
}
