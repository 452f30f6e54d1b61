package memory

import (
	"regexp"
	"strings"
)

var stopwords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "of": {}, "to": {}, "in": {}, "on": {}, "is": {},
	"are": {}, "and": {}, "or": {}, "for": {}, "do": {}, "does": {}, "my": {}, "i": {},
	"what": {}, "who": {}, "that": {}, "this": {}, "it": {}, "at": {}, "by": {},
}

// tokenize lowercases, splits on non-alphanumeric runs and drops
// stopwords and tokens shorter than two characters, per spec.md §4.2
// step 4's "length >= 2, non-stopword" requirement.
func tokenize(s string) []string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})

	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) < 2 {
			continue
		}
		if _, stop := stopwords[f]; stop {
			continue
		}
		out = append(out, f)
	}
	return out
}

// stem applies the light morphological expansion from spec.md §4.2 step
// 4: strip trailing s, es, ies->y, ed, ing, ence(s).
func stem(tok string) string {
	switch {
	case strings.HasSuffix(tok, "ences"):
		return strings.TrimSuffix(tok, "ences")
	case strings.HasSuffix(tok, "ence"):
		return strings.TrimSuffix(tok, "ence")
	case strings.HasSuffix(tok, "ies") && len(tok) > 4:
		return strings.TrimSuffix(tok, "ies") + "y"
	case strings.HasSuffix(tok, "ing") && len(tok) > 5:
		return strings.TrimSuffix(tok, "ing")
	case strings.HasSuffix(tok, "ed") && len(tok) > 4:
		return strings.TrimSuffix(tok, "ed")
	case strings.HasSuffix(tok, "es") && len(tok) > 3:
		return strings.TrimSuffix(tok, "es")
	case strings.HasSuffix(tok, "s") && len(tok) > 3:
		return strings.TrimSuffix(tok, "s")
	default:
		return tok
	}
}

// phraseMatch reports whether the normalized query appears as a
// substring of the normalized concatenation of (text, category, source).
func phraseMatch(query, text, category, source string) bool {
	normQuery := strings.ToLower(strings.TrimSpace(query))
	if normQuery == "" {
		return false
	}
	haystack := strings.ToLower(text + " " + category + " " + source)
	return strings.Contains(haystack, normQuery)
}

// keywordHits counts distinct query tokens matching any row token via
// prefix-or-equality, after stemming both sides.
func keywordHits(queryTokens []string, text, category, source string) int {
	rowTokens := tokenize(text + " " + category + " " + source)
	stemmedRow := make([]string, len(rowTokens))
	for i, t := range rowTokens {
		stemmedRow[i] = stem(t)
	}

	hits := 0
	for _, qt := range queryTokens {
		sqt := stem(qt)
		matched := false
		for _, rt := range stemmedRow {
			if rt == sqt || strings.HasPrefix(rt, sqt) || strings.HasPrefix(sqt, rt) {
				matched = true
				break
			}
		}
		if matched {
			hits++
		}
	}
	return hits
}

var (
	personalNameRe  = regexp.MustCompile(`^([A-Z][a-z]+\s+){1,3}[A-Z][a-z]+$|^([A-Z]{2,}\s*){2,}$`)
	personalPhoneRe = regexp.MustCompile(`\d[\d\-. ]{6,}\d`)
	personalEmailRe = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
)

// expressesPersonalIntent detects the vocabulary that triggers the
// intent-specific fallback pattern in spec.md §4.2 step 6.
func expressesPersonalIntent(query string) bool {
	q := strings.ToLower(query)
	for _, kw := range []string{"name", "phone", "mobile", "contact", "email"} {
		if strings.Contains(q, kw) {
			return true
		}
	}
	return false
}

func matchesPersonalIntentShape(text string) bool {
	return personalNameRe.MatchString(text) || personalPhoneRe.MatchString(text) || personalEmailRe.MatchString(text)
}
