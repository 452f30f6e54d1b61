package privacy

import (
	"regexp"
	"strings"
)

var placeholderShape = regexp.MustCompile(`\[REDACTED_[A-Z_]+\]`)

// Redact runs the ordered pattern table once, left to right, over text and
// returns the cleaned text plus risk/confidence scoring. See spec.md §4.3.
func Redact(text string) Result {
	cleaned := text
	perPattern := map[string]int{}
	synthetic := map[string]string{}
	total := 0
	highFired := false

	for _, p := range Patterns {
		var count int
		cleaned, count, synthetic = applyPattern(p, cleaned, synthetic)
		if count > 0 {
			perPattern[p.Name] += count
			total += count
			if p.Severity == SeverityHigh {
				highFired = true
			}
		}
	}

	risk := RiskLow
	if highFired || total >= 5 {
		risk = RiskHigh
	}

	confidence := ConfidenceHigh
	if hasResidualSensitiveShape(cleaned) {
		confidence = ConfidenceLow
	}

	return Result{
		CleanedText:     cleaned,
		RedactionCount:  total,
		PerPatternCount: perPattern,
		RiskLevel:       risk,
		Confidence:      confidence,
		SyntheticMap:    synthetic,
	}
}

func applyPattern(p Pattern, text string, synthetic map[string]string) (string, int, map[string]string) {
	matches := p.Regexp.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return text, 0, synthetic
	}

	var sb strings.Builder
	last := 0
	count := 0

	for _, idx := range matches {
		start, end := idx[0], idx[1]
		if start < last {
			// overlapped with a previous match's boundary consumption; skip
			continue
		}
		sb.WriteString(text[last:start])

		groups := submatchStrings(text, idx)
		replacement := p.Replace(groups)
		sb.WriteString(replacement)

		if value := sensitiveSubmatch(groups, p.CaptureIndex); value != "" {
			if ph := placeholderShape.FindString(replacement); ph != "" {
				synthetic[value] = ph
			}
		}

		count++
		last = end
	}
	sb.WriteString(text[last:])

	return sb.String(), count, synthetic
}

func submatchStrings(text string, idx []int) []string {
	groups := make([]string, len(idx)/2)
	for i := range groups {
		s, e := idx[2*i], idx[2*i+1]
		if s < 0 || e < 0 {
			groups[i] = ""
			continue
		}
		groups[i] = text[s:e]
	}
	return groups
}

func sensitiveSubmatch(groups []string, captureIndex int) string {
	if captureIndex < 0 {
		if len(groups) > 0 {
			return groups[0]
		}
		return ""
	}
	if captureIndex >= len(groups) {
		return ""
	}
	return groups[captureIndex]
}

// hasResidualSensitiveShape implements the confidence fail-safe from
// spec.md §4.3: a sensitive shape surviving the pass — whether or not any
// rule actually matched it — must degrade confidence to LOW.
func hasResidualSensitiveShape(cleaned string) bool {
	for _, re := range residualPatterns {
		if re.MatchString(cleaned) {
			return true
		}
	}
	return false
}
