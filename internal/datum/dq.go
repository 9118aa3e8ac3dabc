package datum

import "strings"

// DQBits is a bitfield of per-value (or per-pixel) data-quality flags.
// Bits only ever accumulate; combining two values ORs their bits.
type DQBits uint16

const (
	// DQNoData marks a pixel with no usable data.
	DQNoData DQBits = 1 << iota
	// DQSaturated marks a saturated pixel.
	DQSaturated
	// DQDivZero marks a value produced by division by zero.
	DQDivZero
	// DQUndefined marks a mathematically undefined result (e.g. a negative
	// base raised to a fractional power).
	DQUndefined
	// DQNoUncertainty marks a value whose uncertainty channel is not
	// meaningful.
	DQNoUncertainty
	// DQError marks a generic upstream processing error.
	DQError
)

// DQBad is the mask of bits that make a value unusable.
const DQBad = DQNoData | DQDivZero | DQUndefined | DQError

var dqNames = []struct {
	bit  DQBits
	name string
}{
	{DQNoData, "nodata"},
	{DQSaturated, "sat"},
	{DQDivZero, "divzero"},
	{DQUndefined, "undef"},
	{DQNoUncertainty, "nounc"},
	{DQError, "error"},
}

func (d DQBits) String() string {
	if d == 0 {
		return "ok"
	}
	var parts []string
	for _, n := range dqNames {
		if d&n.bit != 0 {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}
