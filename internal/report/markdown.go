// Package report renders lookup outcomes for humans: Markdown for the
// terminal and a simple PDF built from that Markdown.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hyperifyio/numlookup/internal/lookup"
	"github.com/hyperifyio/numlookup/internal/normalize"
)

// Markdown renders out as a short Markdown document. Number metadata is
// derived offline from the canonical number.
func Markdown(out lookup.Outcome) string {
	var b strings.Builder
	title := out.Number
	if title == "" {
		title = strings.TrimSpace(out.Input)
	}
	fmt.Fprintf(&b, "# Lookup: %s\n\n", title)
	if out.Input != "" && out.Input != out.Number {
		fmt.Fprintf(&b, "- **Input:** %s\n", out.Input)
	}
	if !out.Found {
		b.WriteString("- **Status:** no information found\n")
		writeDetails(&b, out.Number)
		return b.String()
	}

	r := out.Result
	b.WriteString("- **Status:** found\n")
	fmt.Fprintf(&b, "- **Name:** %s\n", r.Name)
	fmt.Fprintf(&b, "- **CNIC:** %s\n", r.IdentityNumber)
	fmt.Fprintf(&b, "- **Address:** %s\n", oneLine(r.Address))
	if r.Strategy != "" {
		fmt.Fprintf(&b, "- **Extraction:** %s\n", r.Strategy)
	}

	b.WriteString("\n## Associated numbers\n\n")
	if len(r.AssociatedNumbers) == 0 {
		b.WriteString("None.\n")
	}
	for _, n := range r.AssociatedNumbers {
		fmt.Fprintf(&b, "- %s\n", n)
	}

	if len(r.Extras) > 0 {
		b.WriteString("\n## Other fields\n\n")
		keys := make([]string, 0, len(r.Extras))
		for k := range r.Extras {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "- **%s:** %s\n", k, oneLine(r.Extras[k]))
		}
	}

	writeDetails(&b, out.Number)
	return b.String()
}

func writeDetails(b *strings.Builder, number string) {
	if number == "" {
		return
	}
	info := normalize.Describe(number)
	b.WriteString("\n## Number details\n\n")
	fmt.Fprintf(b, "- **Kind:** %s\n", info.Kind)
	fmt.Fprintf(b, "- **Valid:** %t\n", info.Valid)
	for _, kv := range [][2]string{
		{"E.164", info.E164},
		{"Region", info.Region},
		{"Type", info.NumberType},
		{"Carrier", info.Carrier},
		{"Location", info.Location},
	} {
		if kv[1] != "" {
			fmt.Fprintf(b, "- **%s:** %s\n", kv[0], kv[1])
		}
	}
}

func oneLine(s string) string {
	lines := strings.Split(s, "\n")
	parts := lines[:0]
	for _, l := range lines {
		if l = strings.TrimSpace(l); l != "" {
			parts = append(parts, l)
		}
	}
	return strings.Join(parts, ", ")
}
