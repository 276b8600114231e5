package util

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const classNamePrefix = "upgrade_"

var (
	reNonWord = regexp.MustCompile(`[^a-z0-9\s]`)
	reSpaces  = regexp.MustCompile(`\s+`)
)

// DisplayNameFromClass turns a machine class name such as "upgrade_fleetfoot_boots" into "Fleetfoot Boots".
func DisplayNameFromClass(className string) string {
	trimmed := strings.TrimPrefix(strings.TrimSpace(className), classNamePrefix)
	words := strings.Split(trimmed, "_")
	out := make([]string, 0, len(words))
	titler := cases.Title(language.English)
	for _, w := range words {
		if w == "" {
			continue
		}
		out = append(out, titler.String(w))
	}
	return strings.Join(out, " ")
}

func NormalizeName(input string) string {
	s := strings.ToLower(input)
	s = strings.ReplaceAll(s, "_", " ")
	s = strings.ReplaceAll(s, "-", " ")
	s = reNonWord.ReplaceAllString(s, " ")
	s = reSpaces.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

func Tokenize(input string) []string {
	parts := strings.Split(NormalizeName(input), " ")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if len([]rune(p)) >= 2 {
			out = append(out, p)
		}
	}
	return out
}

func DiceCoefficient(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1
	}

	pairs := func(s string) []string {
		r := []rune(s)
		if len(r) < 2 {
			return nil
		}
		out := make([]string, 0, len(r)-1)
		for i := 0; i < len(r)-1; i++ {
			out = append(out, string(r[i:i+2]))
		}
		return out
	}

	aPairs := pairs(a)
	bPairs := pairs(b)
	if len(aPairs) == 0 || len(bPairs) == 0 {
		return 0
	}

	bCount := map[string]int{}
	for _, p := range bPairs {
		bCount[p]++
	}
	inter := 0
	for _, p := range aPairs {
		if bCount[p] > 0 {
			inter++
			bCount[p]--
		}
	}

	return float64(2*inter) / float64(len(aPairs)+len(bPairs))
}

func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func FloatPtr(v float64) *float64 {
	return &v
}
