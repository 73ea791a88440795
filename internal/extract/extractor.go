package extract

// Label keys shared by the strategies. Only these exact keys populate the
// named fields of a Result.
const (
	KeyName              = "Name"
	KeyCNIC              = "CNIC"
	KeyAddress           = "Address"
	KeyAssociatedNumbers = "Associated Numbers"
)

// Fields is the partial mapping produced by a single strategy.
type Fields struct {
	// Values holds label -> value pairs exactly as found.
	Values map[string]string
	// Numbers is the candidate list found by the labeled numbers pattern.
	Numbers []string
	// HasNumbers is set when the numbers block was located, even if it
	// yielded no candidates.
	HasNumbers bool
}

// HasNamed reports whether any of the named fields carries a value.
func (f Fields) HasNamed() bool {
	return f.Values[KeyName] != "" || f.Values[KeyCNIC] != "" || f.Values[KeyAddress] != ""
}

// Strategy is one way of pulling labeled fields out of upstream content.
// Implementations must be deterministic and free of side effects.
type Strategy interface {
	Name() string
	Extract(content string) Fields
}

// Extractor runs strategies in order and keeps the first one that yields a
// named field.
type Extractor struct {
	Strategies []Strategy
}

// Default returns the labeled-pattern strategy followed by the generic
// key:value fallback over <div id="result">.
func Default() *Extractor {
	return &Extractor{Strategies: []Strategy{
		LabeledPattern{},
		GenericKeyValue{Tag: "div", ID: "result"},
	}}
}
