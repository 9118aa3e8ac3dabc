package source

import (
	"fmt"
	"sort"
	"strings"
)

// Filter describes the spectral filter a band was captured through.
type Filter struct {
	// Name is the short filter identifier (e.g. "G04").
	Name string
	// Position is the physical filter-wheel position label.
	Position string
	// CWL is the centre wavelength in nanometres.
	CWL float64
}

// Source is an atomic provenance token: which input slot (or archival
// product) a value came from, and optionally through which filter. The
// zero-value semantics are reserved; use NewInput, NewExternal or Internal.
// A Source is immutable once created.
type Source struct {
	// Input is the originating input slot index, or -1 when the value did
	// not come from an input slot.
	Input int
	// External is an archival identifier (e.g. a PDS product ID), empty
	// when not applicable.
	External string
	// Filter is the band's spectral filter, nil when unknown.
	Filter *Filter
}

// NewInput returns a Source for the given input slot, optionally tagged
// with a filter.
func NewInput(input int, f *Filter) Source {
	return Source{Input: input, Filter: f}
}

// NewExternal returns a Source for an archival identifier.
func NewExternal(id string, f *Filter) Source {
	return Source{Input: -1, External: id, Filter: f}
}

// nilSource is the distinguished token for internally generated data.
var nilSource = Source{Input: -1}

// IsNil reports whether s is the distinguished internally-generated token.
func (s Source) IsNil() bool {
	return s.Input < 0 && s.External == "" && s.Filter == nil
}

// key is the identity under which sources deduplicate inside a Set.
func (s Source) key() string {
	if s.Filter == nil {
		return fmt.Sprintf("%d|%s|", s.Input, s.External)
	}
	return fmt.Sprintf("%d|%s|%s|%s|%g", s.Input, s.External, s.Filter.Name, s.Filter.Position, s.Filter.CWL)
}

// String renders a compact human-readable form, used in logs and tests.
func (s Source) String() string {
	if s.IsNil() {
		return "nil"
	}
	var b strings.Builder
	if s.Input >= 0 {
		fmt.Fprintf(&b, "%d", s.Input)
	} else {
		b.WriteString(s.External)
	}
	if s.Filter != nil {
		if s.Filter.Name != "" {
			fmt.Fprintf(&b, ":%s", s.Filter.Name)
		} else {
			fmt.Fprintf(&b, ":%g", s.Filter.CWL)
		}
	}
	return b.String()
}

// Set is an unordered set of Source values, deduplicated by identity.
// Union is the only combination operator. The zero value is an empty set.
type Set struct {
	members map[string]Source
}

// NewSet builds a Set from the given sources.
func NewSet(sources ...Source) Set {
	s := Set{members: make(map[string]Source, len(sources))}
	for _, src := range sources {
		s.members[src.key()] = src
	}
	return s
}

// Internal returns a set containing only the distinguished
// internally-generated token.
func Internal() Set {
	return NewSet(nilSource)
}

// Empty returns a set with no members.
func Empty() Set {
	return Set{}
}

// Len returns the number of members.
func (s Set) Len() int {
	return len(s.members)
}

// Sources returns the members in an unspecified order.
func (s Set) Sources() []Source {
	out := make([]Source, 0, len(s.members))
	for _, src := range s.members {
		out = append(out, src)
	}
	return out
}

// Contains reports whether the set holds a source with the same identity.
func (s Set) Contains(src Source) bool {
	_, ok := s.members[src.key()]
	return ok
}

// Union returns a new set holding the members of both operands. It is
// commutative and idempotent and never mutates its operands.
func (s Set) Union(other Set) Set {
	out := Set{members: make(map[string]Source, len(s.members)+len(other.members))}
	for k, v := range s.members {
		out.members[k] = v
	}
	for k, v := range other.members {
		out.members[k] = v
	}
	return out
}

// Union returns the union of any number of sets.
func Union(sets ...Set) Set {
	out := Set{members: make(map[string]Source)}
	for _, s := range sets {
		for k, v := range s.members {
			out.members[k] = v
		}
	}
	return out
}

// Equal reports whether both sets hold exactly the same member identities.
func (s Set) Equal(other Set) bool {
	if len(s.members) != len(other.members) {
		return false
	}
	for k := range s.members {
		if _, ok := other.members[k]; !ok {
			return false
		}
	}
	return true
}

// MatchAny reports whether any member matches the criteria.
func (s Set) MatchAny(c Criteria) bool {
	for _, src := range s.members {
		if src.Match(c) {
			return true
		}
	}
	return false
}

// String renders the members sorted, as "{a,b,c}".
func (s Set) String() string {
	parts := make([]string, 0, len(s.members))
	for _, src := range s.members {
		parts = append(parts, src.String())
	}
	sort.Strings(parts)
	return "{" + strings.Join(parts, ",") + "}"
}
