package source

import "fmt"

// ErrShapeMismatch is returned when same-length MultiBand values are
// required but the operands disagree on band count.
var ErrShapeMismatch = fmt.Errorf("band count mismatch")

// MultiBand is an ordered sequence of Sets, one per image band. Its length
// always equals the owning image's band count.
type MultiBand []Set

// NewMultiBand returns a MultiBand of the given band count where every band
// holds the same set.
func NewMultiBand(bands int, each Set) MultiBand {
	mb := make(MultiBand, bands)
	for i := range mb {
		mb[i] = each
	}
	return mb
}

// InternalMultiBand returns a MultiBand where every band carries only the
// internally-generated token.
func InternalMultiBand(bands int) MultiBand {
	mb := make(MultiBand, bands)
	for i := range mb {
		mb[i] = Internal()
	}
	return mb
}

// Clone returns a copy sharing the (immutable) per-band sets.
func (mb MultiBand) Clone() MultiBand {
	out := make(MultiBand, len(mb))
	copy(out, mb)
	return out
}

// AddToAll returns a new MultiBand with extra unioned into every band.
// Used when a scalar operand contributes to every band of an image result.
func (mb MultiBand) AddToAll(extra Set) MultiBand {
	out := make(MultiBand, len(mb))
	for i, s := range mb {
		out[i] = s.Union(extra)
	}
	return out
}

// Flatten returns the union of all bands as a single Set.
func (mb MultiBand) Flatten() Set {
	return Union(mb...)
}

// Search returns the indices of bands whose set contains a source matching
// the criteria, in ascending order.
func (mb MultiBand) Search(c Criteria) []int {
	var out []int
	for i, s := range mb {
		if s.MatchAny(c) {
			out = append(out, i)
		}
	}
	return out
}

// BandwiseUnion combines several same-length MultiBand values band by band:
// output band i is the union of band i across all inputs. It fails with
// ErrShapeMismatch unless every input has the same band count.
func BandwiseUnion(inputs ...MultiBand) (MultiBand, error) {
	if len(inputs) == 0 {
		return nil, nil
	}
	bands := len(inputs[0])
	for _, mb := range inputs[1:] {
		if len(mb) != bands {
			return nil, fmt.Errorf("%w: %d vs %d bands", ErrShapeMismatch, bands, len(mb))
		}
	}
	out := make(MultiBand, bands)
	for i := range out {
		sets := make([]Set, len(inputs))
		for j, mb := range inputs {
			sets[j] = mb[i]
		}
		out[i] = Union(sets...)
	}
	return out, nil
}
