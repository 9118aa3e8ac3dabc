package nodetype

import (
	"fmt"
	"strconv"
	"strings"
)

// Type is a registered, versioned node-type descriptor. Exactly one
// instance per registered name exists process-wide, created by Finalize
// (or by NewDynamicType for macro types, which live outside the frozen
// catalogue).
type Type struct {
	name        string
	group       string
	description string

	version             string
	major, minor, patch int

	hash string

	inputs  []ConnectorSpec
	outputs []ConnectorSpec
	params  []ParamDef

	behaviour Behaviour
}

// newType wraps an instantiated behaviour into a descriptor.
func newType(b Behaviour) (*Type, error) {
	major, minor, patch, err := parseVersion(b.Version())
	if err != nil {
		return nil, fmt.Errorf("node type %q: %w", b.Name(), err)
	}
	in, out := b.Connectors()
	t := &Type{
		name:      b.Name(),
		group:     b.Group(),
		version:   b.Version(),
		major:     major,
		minor:     minor,
		patch:     patch,
		inputs:    in,
		outputs:   out,
		behaviour: b,
	}
	if ps, ok := b.(ParamSpecifier); ok {
		t.params = ps.Params()
	}
	t.hash = contentHash(t)
	return t, nil
}

// NewDynamicType creates a descriptor outside the finalized catalogue.
// The macro subsystem uses this for runtime-created macro types; the
// process-wide registry itself stays write-once after Finalize.
func NewDynamicType(b Behaviour) (*Type, error) {
	return newType(b)
}

// Name returns the unique catalogue name.
func (t *Type) Name() string { return t.name }

// Group returns the palette group.
func (t *Type) Group() string { return t.group }

// Description returns the manifest-supplied description, if any.
func (t *Type) Description() string { return t.description }

// Version returns the semantic version string.
func (t *Type) Version() string { return t.version }

// SemVer returns the parsed version triple.
func (t *Type) SemVer() (major, minor, patch int) { return t.major, t.minor, t.patch }

// Hash returns the content hash of the type's behavioural definition.
func (t *Type) Hash() string { return t.hash }

// Inputs returns the ordered input connector specs.
func (t *Type) Inputs() []ConnectorSpec { return t.inputs }

// Outputs returns the ordered output connector specs.
func (t *Type) Outputs() []ConnectorSpec { return t.outputs }

// Params returns the declared trivially persistable fields.
func (t *Type) Params() []ParamDef { return t.params }

// Behaviour returns the singleton behaviour instance.
func (t *Type) Behaviour() Behaviour { return t.behaviour }

func parseVersion(v string) (int, int, int, error) {
	parts := strings.Split(v, ".")
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("version %q is not a three-part semantic version", v)
	}
	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return 0, 0, 0, fmt.Errorf("version %q is not a three-part semantic version", v)
		}
		nums[i] = n
	}
	return nums[0], nums[1], nums[2], nil
}
