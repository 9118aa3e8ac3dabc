package nodetype

import (
	"github.com/spectramap/cubegraph/internal/datum"
	"github.com/zclconf/go-cty/cty"
)

// ConnectorSpec declares one input or output connector of a node type.
type ConnectorSpec struct {
	Name        string
	Kind        datum.Kind
	Description string
}

// ParamDef declares a trivially persistable named field with its default.
// The classification is consulted by the persistence boundary only, never
// by execution.
type ParamDef struct {
	Name    string
	Default cty.Value
}

// Node is the view of a graph node a behaviour works through. It is
// defined here so behaviours never import the graph package; the graph's
// node type implements it.
type Node interface {
	// Type returns the node's catalogue entry.
	Type() *Type

	// NumInputs and NumOutputs return the connector counts the node was
	// built with. Dynamic types may since have renegotiated their specs, so
	// behaviours index connectors through these, not through Type().
	NumInputs() int
	NumOutputs() int

	// Input returns the datum currently held by the output slot the i-th
	// input is linked to, or a null datum when unconnected.
	Input(i int) datum.Datum
	// InputConnectedKind returns the effective kind of the output feeding
	// input i, when connected.
	InputConnectedKind(i int) (datum.Kind, bool)

	// SetOutput writes output slot i. The engine clears all outputs before
	// each perform.
	SetOutput(i int, d datum.Datum)
	// SetOutputKind overrides the declared kind of output i, used when a
	// variant connector narrows after connection or after running.
	SetOutputKind(i int, k datum.Kind)

	// Param returns the node's current value for a declared persistable
	// field, falling back to the declared default.
	Param(name string) cty.Value
	// SetParam sets a persistable field value.
	SetParam(name string, v cty.Value)

	// State returns the behaviour-private state created by Init.
	State() any
	// SetState replaces the behaviour-private state.
	SetState(s any)

	// Fail records a recoverable fault on the node without halting the
	// pass. The first fault per pass wins.
	Fail(code, message string)
}

// Behaviour is the contract implemented per node type.
type Behaviour interface {
	// Name is the unique catalogue name.
	Name() string
	// Version is a three-part semantic version string.
	Version() string
	// Group is the palette group the type is presented under.
	Group() string
	// Connectors describes the ordered input and output connectors.
	Connectors() (inputs, outputs []ConnectorSpec)
	// Init creates any behaviour-private node state.
	Init(n Node)
	// Perform reads inputs and writes outputs. A returned error is
	// recorded as a recoverable fault; it does not halt the pass.
	Perform(n Node) error
}

// ConnectionAware lets a behaviour renegotiate output kinds when the
// node's connections change.
type ConnectionAware interface {
	ConnectionsChanged(n Node)
}

// Releaser is notified when a node of this type is removed from its
// graph, so behaviours tracking live instances can drop them.
type Releaser interface {
	Release(n Node)
}

// Recalculator is invoked after external parameter edits and after load.
type Recalculator interface {
	Recalculate(n Node)
}

// ParamSpecifier declares the behaviour's trivially persistable fields.
type ParamSpecifier interface {
	Params() []ParamDef
}

// StatePersister converts non-trivial private state to and from a
// persistable representation. Consulted by the persistence boundary only.
type StatePersister interface {
	MarshalState(state any) (cty.Value, error)
	UnmarshalState(v cty.Value) (any, error)
}

// MatchOutputsToInputs is the convenience renegotiation helper: for each
// (output, input) pair, if the input is connected, the output's kind is
// overridden to the connected kind.
func MatchOutputsToInputs(n Node, pairs ...[2]int) {
	for _, p := range pairs {
		if k, ok := n.InputConnectedKind(p[1]); ok {
			n.SetOutputKind(p[0], k)
		}
	}
}
