// Package constant provides the source node emitting a fixed scalar.
package constant

import (
	"github.com/spectramap/cubegraph/internal/datum"
	"github.com/spectramap/cubegraph/internal/nodetype"
	"github.com/spectramap/cubegraph/internal/source"
	"github.com/zclconf/go-cty/cty"
)

// Module implements the nodetype.Module interface for this package.
type Module struct{}

type behaviour struct{}

func (behaviour) Name() string    { return "constant" }
func (behaviour) Version() string { return "1.0.0" }
func (behaviour) Group() string   { return "maths" }

func (behaviour) Connectors() ([]nodetype.ConnectorSpec, []nodetype.ConnectorSpec) {
	return nil, []nodetype.ConnectorSpec{
		{Name: "value", Kind: datum.Number, Description: "The constant value."},
	}
}

func (behaviour) Params() []nodetype.ParamDef {
	return []nodetype.ParamDef{
		{Name: "value", Default: cty.NumberFloatVal(0)},
		{Name: "uncertainty", Default: cty.NumberFloatVal(0)},
	}
}

func (behaviour) Init(n nodetype.Node) {}

// Perform emits the configured scalar. The value is internally generated,
// so its provenance is the distinguished nil source, declared explicitly.
func (behaviour) Perform(n nodetype.Node) error {
	v := nodetype.ParamFloat(n, "value")
	u := nodetype.ParamFloat(n, "uncertainty")
	n.SetOutput(0, datum.NewNumber(v, u, 0, source.Internal()))
	return nil
}

// Register registers the behaviour with the catalogue.
func (m *Module) Register(r *nodetype.Registry) {
	r.Register(func() nodetype.Behaviour { return behaviour{} })
}
