// Package arith provides the binary arithmetic nodes. Each node dispatches
// through the operator table, so its semantics are exactly those of the
// corresponding expression operator.
package arith

import (
	"github.com/spectramap/cubegraph/internal/datum"
	"github.com/spectramap/cubegraph/internal/nodetype"
	"github.com/spectramap/cubegraph/internal/ops"
)

// Module implements the nodetype.Module interface for this package.
type Module struct{}

type binop struct {
	name string
	op   ops.Operator
}

func (b binop) Name() string    { return b.name }
func (b binop) Version() string { return "1.0.0" }
func (b binop) Group() string   { return "maths" }

func (b binop) Connectors() ([]nodetype.ConnectorSpec, []nodetype.ConnectorSpec) {
	return []nodetype.ConnectorSpec{
			{Name: "a", Kind: datum.Any},
			{Name: "b", Kind: datum.Any},
		}, []nodetype.ConnectorSpec{
			{Name: "result", Kind: datum.Variant},
		}
}

func (b binop) Init(n nodetype.Node) {}

// ConnectionsChanged narrows the variant output as soon as the operand
// kinds make it knowable: any image operand means an image result, two
// concrete non-image operands mean a number.
func (b binop) ConnectionsChanged(n nodetype.Node) {
	ka, aok := n.InputConnectedKind(0)
	kb, bok := n.InputConnectedKind(1)
	switch {
	case ka == datum.Image || kb == datum.Image:
		n.SetOutputKind(0, datum.Image)
	case aok && bok && ka == datum.Number && kb == datum.Number:
		n.SetOutputKind(0, datum.Number)
	}
}

func (b binop) Perform(n nodetype.Node) error {
	a, c := n.Input(0), n.Input(1)
	if a.IsNull() || c.IsNull() {
		n.Fail("args", "both operands are required")
		return nil
	}
	result, err := ops.Apply(b.op, a, c)
	if err != nil {
		return err
	}
	n.SetOutputKind(0, result.Kind)
	n.SetOutput(0, result)
	return nil
}

// Register registers one node per arithmetic operator.
func (m *Module) Register(r *nodetype.Registry) {
	entries := []binop{
		{"add", ops.Add},
		{"subtract", ops.Sub},
		{"multiply", ops.Mul},
		{"divide", ops.Div},
		{"power", ops.Pow},
		{"minimum", ops.Min},
		{"maximum", ops.Max},
	}
	for _, e := range entries {
		e := e
		r.Register(func() nodetype.Behaviour { return e })
	}
}
