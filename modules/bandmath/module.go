// Package bandmath provides the expression node: a free-form arithmetic
// expression over up to four inputs, evaluated through the shared operator
// dispatch table. The output kind is only known after running, so the
// connector is declared variant and narrowed once a result exists.
package bandmath

import (
	"github.com/spectramap/cubegraph/internal/datum"
	"github.com/spectramap/cubegraph/internal/expr"
	"github.com/spectramap/cubegraph/internal/nodetype"
	"github.com/spectramap/cubegraph/internal/ops"
	"github.com/zclconf/go-cty/cty"
)

// Module implements the nodetype.Module interface for this package.
type Module struct{}

// inputNames are the identifiers the expression sees, one per connector.
var inputNames = []string{"a", "b", "c", "d"}

type behaviour struct {
	eval *expr.Evaluator
}

func (behaviour) Name() string    { return "bandmath" }
func (behaviour) Version() string { return "1.1.0" }
func (behaviour) Group() string   { return "maths" }

func (behaviour) Connectors() ([]nodetype.ConnectorSpec, []nodetype.ConnectorSpec) {
	inputs := make([]nodetype.ConnectorSpec, len(inputNames))
	for i, name := range inputNames {
		inputs[i] = nodetype.ConnectorSpec{Name: name, Kind: datum.Any}
	}
	return inputs, []nodetype.ConnectorSpec{{Name: "result", Kind: datum.Variant}}
}

func (behaviour) Params() []nodetype.ParamDef {
	return []nodetype.ParamDef{
		{Name: "expr", Default: cty.StringVal("")},
	}
}

func (behaviour) Init(n nodetype.Node) {}

func (b behaviour) Perform(n nodetype.Node) error {
	src := nodetype.ParamString(n, "expr")
	if src == "" {
		n.Fail("expr", "no expression set")
		return nil
	}

	env := make(map[string]datum.Datum)
	for i, name := range inputNames {
		if d := n.Input(i); !d.IsNull() {
			env[name] = d
		}
	}

	result, err := b.eval.Eval(src, env)
	if err != nil {
		return err
	}
	n.SetOutputKind(0, result.Kind)
	n.SetOutput(0, result)
	return nil
}

// Register registers the behaviour with the catalogue.
func (m *Module) Register(r *nodetype.Registry) {
	r.Register(func() nodetype.Behaviour {
		return behaviour{eval: expr.New(ops.Default())}
	})
}
