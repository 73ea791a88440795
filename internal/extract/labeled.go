package extract

import (
	"regexp"
	"strings"
)

var (
	nameRe        = regexp.MustCompile(`(?i)Name:\s*([^<\n]+)`)
	cnicRe        = regexp.MustCompile(`(?i)CNIC:\s*([^<\n]+)`)
	addressRe     = regexp.MustCompile(`(?i)Address:\s*([^<\n]+(?:\n[^<\n]+)*)`)
	numbersHeadRe = regexp.MustCompile(`(?i)Associated Numbers?:\s*`)
)

// LabeledPattern reads "Label: value" pairs straight out of the raw content.
// It only engages when the content mentions "Name:" or "CNIC:".
type LabeledPattern struct{}

func (LabeledPattern) Name() string { return "labeled" }

func (LabeledPattern) Extract(content string) Fields {
	f := Fields{Values: map[string]string{}}
	if !strings.Contains(content, "Name:") && !strings.Contains(content, "CNIC:") {
		return f
	}
	for key, re := range map[string]*regexp.Regexp{
		KeyName:    nameRe,
		KeyCNIC:    cnicRe,
		KeyAddress: addressRe,
	} {
		if m := re.FindStringSubmatch(content); m != nil {
			f.Values[key] = strings.TrimSpace(m[1])
		}
	}
	if block, ok := numbersBlock(content); ok {
		f.Numbers = findNumbers(block)
		f.HasNumbers = true
	}
	return f
}

// numbersBlock returns the text following the associated numbers label. The
// block ends at a blank line, at a line starting with a letter, or at the end
// of the content (ignoring one trailing newline).
func numbersBlock(content string) (string, bool) {
	loc := numbersHeadRe.FindStringIndex(content)
	if loc == nil {
		return "", false
	}
	start := loc[1]
	for p := start; p < len(content); p++ {
		if blockEndsAt(content, p) {
			return content[start:p], true
		}
	}
	return content[start:], true
}

func blockEndsAt(s string, p int) bool {
	if s[p] != '\n' {
		return false
	}
	if p == len(s)-1 {
		return true
	}
	next := s[p+1]
	return next == '\n' || (next >= 'A' && next <= 'Z') || (next >= 'a' && next <= 'z')
}
