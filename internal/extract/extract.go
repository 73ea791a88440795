// Package extract pulls person records out of loosely structured upstream
// HTML. Strategies are tried in order; the first one that finds a name,
// identity number or address wins.
package extract

// NotAvailable is the value of a named field that no strategy found.
const NotAvailable = "N/A"

// Result is the structured outcome of an extraction.
type Result struct {
	Name              string
	IdentityNumber    string
	Address           string
	AssociatedNumbers []string
	// Extras keeps labels the fallback strategy found that are not one of
	// the named fields.
	Extras map[string]string
	// Strategy is the name of the strategy that produced the result, empty
	// when nothing was found.
	Strategy string
}

// Empty reports whether no strategy found any named field.
func (r Result) Empty() bool {
	return r.Strategy == ""
}

// Extract runs the configured strategies against content.
func (e *Extractor) Extract(content string) Result {
	for _, s := range e.Strategies {
		f := s.Extract(content)
		if !f.HasNamed() {
			continue
		}
		return finalize(s.Name(), f)
	}
	return Result{}
}

func finalize(strategy string, f Fields) Result {
	r := Result{
		Name:              valueOr(f.Values, KeyName),
		IdentityNumber:    valueOr(f.Values, KeyCNIC),
		Address:           valueOr(f.Values, KeyAddress),
		AssociatedNumbers: []string{},
		Strategy:          strategy,
	}
	switch {
	case f.HasNumbers:
		r.AssociatedNumbers = filterNumbers(f.Numbers)
	case f.Values[KeyAssociatedNumbers] != "":
		r.AssociatedNumbers = filterNumbers(splitNumbers(f.Values[KeyAssociatedNumbers]))
	}
	for k, v := range f.Values {
		switch k {
		case KeyName, KeyCNIC, KeyAddress, KeyAssociatedNumbers:
			continue
		}
		if r.Extras == nil {
			r.Extras = make(map[string]string)
		}
		r.Extras[k] = v
	}
	return r
}

func valueOr(m map[string]string, key string) string {
	if v := m[key]; v != "" {
		return v
	}
	return NotAvailable
}
