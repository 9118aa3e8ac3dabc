package macro

import (
	"github.com/spectramap/cubegraph/internal/datum"
	"github.com/spectramap/cubegraph/internal/nodetype"
)

// proxyState carries one datum across the macro boundary: into the
// prototype copy through an input proxy, or out of it through an output
// proxy.
type proxyState struct {
	d datum.Datum
}

// inBehaviour is the input proxy node placed inside a prototype graph.
// Each one becomes an input connector on the macro type; the macro injects
// the containing node's input datum into its state before running the
// instance graph.
type inBehaviour struct{}

func (inBehaviour) Name() string    { return "macro.in" }
func (inBehaviour) Version() string { return "1.0.0" }
func (inBehaviour) Group() string   { return "macros" }

func (inBehaviour) Connectors() ([]nodetype.ConnectorSpec, []nodetype.ConnectorSpec) {
	return nil, []nodetype.ConnectorSpec{{Name: "value", Kind: datum.Any}}
}

func (inBehaviour) Init(n nodetype.Node) {
	n.SetState(&proxyState{})
}

func (inBehaviour) Perform(n nodetype.Node) error {
	n.SetOutput(0, n.State().(*proxyState).d)
	return nil
}

// outBehaviour is the output proxy: whatever arrives on its input becomes
// an output of the macro node after the instance graph runs.
type outBehaviour struct{}

func (outBehaviour) Name() string    { return "macro.out" }
func (outBehaviour) Version() string { return "1.0.0" }
func (outBehaviour) Group() string   { return "macros" }

func (outBehaviour) Connectors() ([]nodetype.ConnectorSpec, []nodetype.ConnectorSpec) {
	return []nodetype.ConnectorSpec{{Name: "value", Kind: datum.Any}}, nil
}

func (outBehaviour) Init(n nodetype.Node) {
	n.SetState(&proxyState{})
}

func (outBehaviour) Perform(n nodetype.Node) error {
	n.State().(*proxyState).d = n.Input(0)
	return nil
}

var (
	inType  *nodetype.Type
	outType *nodetype.Type
)

func init() {
	var err error
	if inType, err = nodetype.NewDynamicType(inBehaviour{}); err != nil {
		panic(err)
	}
	if outType, err = nodetype.NewDynamicType(outBehaviour{}); err != nil {
		panic(err)
	}
}

// InType returns the descriptor for prototype input proxy nodes.
func InType() *nodetype.Type { return inType }

// OutType returns the descriptor for prototype output proxy nodes.
func OutType() *nodetype.Type { return outType }
