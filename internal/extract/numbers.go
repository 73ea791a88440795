package extract

import (
	"regexp"
	"strings"
)

var (
	candidateRe = regexp.MustCompile(`\+?92\d{10}|\d{11}`)
	shapeRe     = regexp.MustCompile(`^(?:\+92\d{10}|(?:92)?\d{10,11})$`)
)

// numberSeparators are the characters the upstream uses between entries
// when numbers arrive as a flat text value.
const numberSeparators = ",\n➤•-"

// findNumbers returns every phone-shaped substring of block in order of
// appearance. Duplicates are kept.
func findNumbers(block string) []string {
	return candidateRe.FindAllString(block, -1)
}

// ValidNumber reports whether s, once trimmed, has the shape of a domestic
// or +92-prefixed phone number.
func ValidNumber(s string) bool {
	return shapeRe.MatchString(strings.TrimSpace(s))
}

func filterNumbers(candidates []string) []string {
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		c = strings.TrimSpace(c)
		if c == "" || !ValidNumber(c) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func splitNumbers(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return strings.ContainsRune(numberSeparators, r)
	})
}
