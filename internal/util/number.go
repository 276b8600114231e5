package util

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	reGroupedDot   = regexp.MustCompile(`^[+-]?\d{1,3}(?:\.\d{3})+$`)
	reGroupedComma = regexp.MustCompile(`^[+-]?\d{1,3}(?:,\d{3})+$`)
)

// ParseNumber parses a whole token as a number, accepting thousands separators
// ("1 250", "1,250", "1.250") and a decimal comma ("1,5").
func ParseNumber(input string) (float64, bool) {
	token := normalizeNumericToken(input)
	if token == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func normalizeNumericToken(token string) string {
	compact := strings.ReplaceAll(token, "\u00A0", " ")
	compact = strings.ReplaceAll(strings.TrimSpace(compact), " ", "")
	if reGroupedDot.MatchString(compact) {
		return strings.ReplaceAll(compact, ".", "")
	}
	if reGroupedComma.MatchString(compact) {
		return strings.ReplaceAll(compact, ",", "")
	}
	if strings.Contains(compact, ",") && !strings.Contains(compact, ".") {
		return strings.ReplaceAll(compact, ",", ".")
	}
	return compact
}
