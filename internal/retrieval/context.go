package retrieval

import (
	"strings"

	"github.com/archestra-labs/memcore/internal/privacy"
)

// shrinkToSafe implements spec.md §4.6 step 3. It runs the redaction
// pipeline on the full numbered context first; if that's already safe
// (HIGH confidence, LOW risk) it's accepted outright. Otherwise it tries
// growing prefixes of the context, accepting the first prefix that comes
// out safe, on the theory that later (usually less relevant) lines are
// more likely to carry the residual risk. If no prefix is safe, it falls
// through with the full snapshot regardless.
func shrinkToSafe(lines []string) ([]string, privacy.Result) {
	full := privacy.Redact(strings.Join(lines, "\n"))
	if isSafe(full) {
		return strings.Split(full.CleanedText, "\n"), full
	}

	for n := 1; n < len(lines); n++ {
		result := privacy.Redact(strings.Join(lines[:n], "\n"))
		if isSafe(result) {
			return strings.Split(result.CleanedText, "\n"), result
		}
	}

	return strings.Split(full.CleanedText, "\n"), full
}

func isSafe(r privacy.Result) bool {
	return r.Confidence == privacy.ConfidenceHigh && r.RiskLevel == privacy.RiskLow
}
