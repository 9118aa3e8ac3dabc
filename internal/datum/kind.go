package datum

import "fmt"

// Kind is the closed tag set for Datum values.
type Kind int

const (
	// None marks a null Datum with no declared kind.
	None Kind = iota
	// Image is a multi-band image cube.
	Image
	// Number is a scalar with uncertainty and data-quality bits.
	Number
	// ROI is a region-of-interest shape.
	ROI
	// Data is opaque behaviour-specific data.
	Data
	// Any is a connector placeholder accepting every kind.
	Any
	// Variant is a connector placeholder that is never satisfiable until a
	// behaviour overrides it with a concrete kind.
	Variant
)

var kindNames = map[Kind]string{
	None:    "none",
	Image:   "image",
	Number:  "number",
	ROI:     "roi",
	Data:    "data",
	Any:     "any",
	Variant: "variant",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// KindFromString parses the manifest spelling of a kind.
func KindFromString(s string) (Kind, error) {
	for k, n := range kindNames {
		if n == s {
			return k, nil
		}
	}
	return None, fmt.Errorf("unknown datum kind %q", s)
}

// Accepts reports whether an input connector of kind k accepts a value of
// kind other. Any accepts everything; Variant accepts nothing (it must be
// overridden with a concrete kind first); every other kind requires an
// exact match, and a Variant source is never acceptable.
func (k Kind) Accepts(other Kind) bool {
	switch {
	case k == Any:
		return other != Variant
	case k == Variant, other == Variant:
		return false
	default:
		return k == other
	}
}
