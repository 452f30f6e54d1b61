package orchestrator

import (
	"regexp"
	"strings"
)

var (
	nameShapeRe  = regexp.MustCompile(`^([A-Z][a-z]+\s+){1,3}[A-Z][a-z]+$|^([A-Z]{2,}\s*){2,}$`)
	phoneShapeRe = regexp.MustCompile(`\d[\d\-. ]{6,}\d`)
	emailShapeRe = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	lineNumberRe = regexp.MustCompile(`^\[\d+\]\s*`)
)

// expressesPersonalIntent mirrors the retrieval lexical guardrail's
// personal-intent detection from spec.md §4.2: a bare mention of name,
// phone, or email vocabulary in the query.
func expressesPersonalIntent(query string) bool {
	q := strings.ToLower(query)
	for _, kw := range []string{"name", "phone", "mobile", "contact", "email"} {
		if strings.Contains(q, kw) {
			return true
		}
	}
	return false
}

func matchesPersonalIntentShape(line string) bool {
	return nameShapeRe.MatchString(line) || phoneShapeRe.MatchString(line) || emailShapeRe.MatchString(line)
}

// tokenize lowercases and splits on non-alphanumeric runs, discarding
// tokens shorter than 2 characters.
func tokenize(s string) []string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})
	out := fields[:0]
	for _, f := range fields {
		if len(f) >= 2 {
			out = append(out, f)
		}
	}
	return out
}

// extractiveAnswer implements the extractive-mode contract from
// spec.md §4.5: score each context line by tokenized lexical overlap with
// the query, honoring the personal-intent heuristics, and return the
// best-scoring line. Returns FallbackAnswer if nothing scores above zero.
func extractiveAnswer(query string, systemContext []string) string {
	queryTokens := tokenize(query)
	personalIntent := expressesPersonalIntent(query)

	best := ""
	bestScore := 0

	for _, line := range systemContext {
		score := overlapScore(queryTokens, line)
		if score == 0 && personalIntent && matchesPersonalIntentShape(lineNumberRe.ReplaceAllString(line, "")) {
			score = 1
		}
		if score > bestScore {
			bestScore = score
			best = line
		}
	}

	if bestScore == 0 {
		return FallbackAnswer
	}
	return lineNumberRe.ReplaceAllString(best, "")
}

func overlapScore(queryTokens []string, line string) int {
	lineTokens := tokenize(line)
	lineSet := make(map[string]struct{}, len(lineTokens))
	for _, t := range lineTokens {
		lineSet[t] = struct{}{}
	}

	score := 0
	for _, qt := range queryTokens {
		if _, ok := lineSet[qt]; ok {
			score++
		}
	}
	return score
}
