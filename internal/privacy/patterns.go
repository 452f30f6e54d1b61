package privacy

import "regexp"

// boundary groups consume the non-sensitive character immediately before
// and after a pure-digit-shape match so that later patterns in the same
// left-to-right pass cannot be fooled by a partial overlap (e.g. the phone
// pattern grabbing the first ten digits of a sixteen-digit card number).
// Go's regexp package implements RE2, which has no lookaround, so the
// boundary must be consumed and re-emitted by Replace rather than asserted
// — the re-encoding spec.md §9 calls for explicitly.
const (
	leftBoundary  = `(^|[^0-9A-Za-z])`
	rightBoundary = `([^0-9A-Za-z]|$)`
)

// labelSecretRegexp requires the assigned value's first character to not be
// "[" so a cleaned "password: [REDACTED_PASSWORD]" line does not get
// re-matched and re-redacted on a second pass over already-cleaned text.
// Go's RE2 engine has no negative lookahead, so the exclusion is folded
// directly into the character class instead of asserted separately.
var labelSecretRegexp = regexp.MustCompile(`(?i)(api[ _-]?key|access[ _-]?key|token|secret|password|pwd)\s*[:=]\s*["']?([^\s\["']\S{7,})["']?`)

// Patterns is the ordered redaction table from spec.md §4.3. Order is
// load-bearing: the label-anchored bank_account pattern runs before the
// bare-digit-shape patterns (phone, credit_card) it would otherwise lose
// its match to, while project_code and label_secret_assignment run last;
// broader
// patterns (email, phone) run before narrower structural ones that could
// otherwise match a substring of a higher-severity value.
var Patterns = []Pattern{
	{
		Name:         "email",
		Regexp:       regexp.MustCompile(leftBoundary + `([A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,})` + rightBoundary),
		Severity:     SeverityMedium,
		CaptureIndex: 2,
		Placeholder:  "[REDACTED_EMAIL]",
		Replace:      boundaryReplace("[REDACTED_EMAIL]"),
	},
	{
		Name:         "bank_account",
		Regexp:       regexp.MustCompile(`(?i)(account)\s*[:=]\s*(\d{7,})`),
		Severity:     SeverityHigh,
		CaptureIndex: 2,
		Placeholder:  "[REDACTED_ACCOUNT_NUMBER]",
		Replace: func(m []string) string {
			return m[1] + ": [REDACTED_ACCOUNT_NUMBER]"
		},
	},
	{
		Name:         "phone",
		Regexp:       regexp.MustCompile(leftBoundary + `((?:\+?\d{1,3}[-.\s])?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4})` + rightBoundary),
		Severity:     SeverityMedium,
		CaptureIndex: 2,
		Placeholder:  "[REDACTED_PHONE]",
		Replace:      boundaryReplace("[REDACTED_PHONE]"),
	},
	{
		Name:         "ssn",
		Regexp:       regexp.MustCompile(leftBoundary + `(\d{3}-\d{2}-\d{4})` + rightBoundary),
		Severity:     SeverityHigh,
		CaptureIndex: 2,
		Placeholder:  "[REDACTED_SSN]",
		Replace:      boundaryReplace("[REDACTED_SSN]"),
	},
	{
		Name:         "credit_card",
		Regexp:       regexp.MustCompile(leftBoundary + `(\d(?:[ -]?\d){12,15})` + rightBoundary),
		Severity:     SeverityHigh,
		CaptureIndex: 2,
		Placeholder:  "[REDACTED_CREDIT_CARD]",
		Replace:      boundaryReplace("[REDACTED_CREDIT_CARD]"),
	},
	{
		Name:         "financial_amount",
		Regexp:       regexp.MustCompile(`([$₹€£]\s?\d[\d,]*\.?\d*[kKmMbB]?)` + rightBoundary),
		Severity:     SeverityMedium,
		CaptureIndex: 1,
		Placeholder:  "[REDACTED_FINANCIAL_AMOUNT]",
		Replace: func(m []string) string {
			return "[REDACTED_FINANCIAL_AMOUNT]" + m[2]
		},
	},
	{
		Name:         "api_key_literal",
		Regexp:       regexp.MustCompile(`sk_live_[A-Za-z0-9]{16,}|sk-[A-Za-z0-9]{16,}|pk_test_[A-Za-z0-9]{16,}`),
		Severity:     SeverityHigh,
		CaptureIndex: -1,
		Placeholder:  "[REDACTED_API_KEY]",
		Replace:      func(m []string) string { return "[REDACTED_API_KEY]" },
	},
	{
		Name:         "aws_access_key",
		Regexp:       regexp.MustCompile(`AKIA[0-9A-Z]{16}`),
		Severity:     SeverityHigh,
		CaptureIndex: -1,
		Placeholder:  "[REDACTED_AWS_ACCESS_KEY]",
		Replace:      func(m []string) string { return "[REDACTED_AWS_ACCESS_KEY]" },
	},
	{
		Name:         "jwt",
		Regexp:       regexp.MustCompile(`eyJ[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+`),
		Severity:     SeverityHigh,
		CaptureIndex: -1,
		Placeholder:  "[REDACTED_JWT]",
		Replace:      func(m []string) string { return "[REDACTED_JWT]" },
	},
	{
		Name:         "label_secret_assignment",
		Regexp:       labelSecretRegexp,
		Severity:     SeverityHigh,
		CaptureIndex: 2,
		Placeholder:  "", // resolved per-label in Replace
		Replace:      labelSecretReplace,
	},
	{
		Name:         "project_code",
		Regexp:       regexp.MustCompile(`(?i)(project code)\s*[:=]\s*([A-Za-z]+-\d+)`),
		Severity:     SeverityHigh,
		CaptureIndex: 2,
		Placeholder:  "[REDACTED_PROJECT_CODE]",
		Replace: func(m []string) string {
			return m[1] + ": [REDACTED_PROJECT_CODE]"
		},
	},
}

// boundaryReplace builds a Replace func for the leftBoundary/value/rightBoundary
// three-group shape shared by the pure-digit-shape patterns.
func boundaryReplace(placeholder string) func([]string) string {
	return func(m []string) string {
		return m[1] + placeholder + m[3]
	}
}

func labelSecretReplace(m []string) string {
	label := m[1]
	placeholder := "[REDACTED_SECRET]"

	switch normalizeLabel(label) {
	case "password", "pwd":
		placeholder = "[REDACTED_PASSWORD]"
	case "accesskey":
		placeholder = "[REDACTED_AWS_ACCESS_KEY]"
	case "apikey", "token":
		placeholder = "[REDACTED_API_KEY]"
	case "secret":
		placeholder = "[REDACTED_SECRET]"
	}

	return label + ": " + placeholder
}

func normalizeLabel(label string) string {
	out := make([]byte, 0, len(label))
	for i := 0; i < len(label); i++ {
		c := label[i]
		if c == ' ' || c == '_' || c == '-' {
			continue
		}
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		out = append(out, c)
	}
	return string(out)
}

// residualPatterns is the fail-safe second pass from spec.md §4.3: shapes
// that must not survive redaction even if no rule matched them.
var residualPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\d{3}-\d{2}-\d{4}`),
	regexp.MustCompile(`\d(?:[ -]?\d){12,15}`),
	regexp.MustCompile(`AKIA[0-9A-Z]{16}`),
	labelSecretRegexp,
}
