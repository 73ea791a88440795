// Package normalize maps user-entered phone numbers and identity numbers to a
// canonical identifier. All functions are pure and safe for concurrent use.
package normalize

import (
	"regexp"
	"strings"

	"golang.org/x/text/width"
)

// CountryPrefix is the international prefix assumed for domestic numbers.
const CountryPrefix = "+92"

// CNICLength is the number of digits in a national identity number.
const CNICLength = 13

// Kind classifies an input after stripping.
type Kind string

const (
	KindCNIC    Kind = "cnic"
	KindPhone   Kind = "phone"
	KindUnknown Kind = "unknown"
)

var (
	mobileRe = regexp.MustCompile(`^(?:\+92|92|0)?3\d{9}$`)
	intlRe   = regexp.MustCompile(`^\+92\d{10}$`)
)

// Strip folds full-width characters to their ASCII forms and removes every
// rune except ASCII digits and '+'.
func Strip(raw string) string {
	folded := width.Fold.String(raw)
	var b strings.Builder
	b.Grow(len(folded))
	for i := 0; i < len(folded); i++ {
		c := folded[i]
		if (c >= '0' && c <= '9') || c == '+' {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// Normalize returns the canonical form of raw. A 13-digit identity number is
// passed through unchanged; anything else is coerced towards +92 form. Rules
// are applied in order and only the first match wins. The result may be
// empty, callers must reject that themselves.
func Normalize(raw string) string {
	s := Strip(raw)
	switch {
	case isCNIC(s):
		return s
	case strings.HasPrefix(s, "0"):
		return CountryPrefix + s[1:]
	case strings.HasPrefix(s, "92"):
		return "+" + s
	case !strings.HasPrefix(s, "+") && len(s) >= 10:
		return CountryPrefix + s
	}
	return s
}

// Classify reports whether raw looks like an identity number or a phone number.
func Classify(raw string) Kind {
	s := Strip(raw)
	switch {
	case isCNIC(s):
		return KindCNIC
	case mobileRe.MatchString(s), intlRe.MatchString(s):
		return KindPhone
	}
	return KindUnknown
}

// Valid reports whether raw is either a 13-digit CNIC or a domestic mobile
// number in one of the accepted spellings.
func Valid(raw string) bool {
	return Classify(raw) != KindUnknown
}

func isCNIC(s string) bool {
	if len(s) != CNICLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
