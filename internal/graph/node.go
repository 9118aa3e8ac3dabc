package graph

import (
	"context"

	"github.com/google/uuid"
	"github.com/spectramap/cubegraph/internal/datum"
	"github.com/spectramap/cubegraph/internal/nodetype"
	"github.com/zclconf/go-cty/cty"
)

// Link identifies the output slot an input connector is wired to.
type Link struct {
	From   *Node
	Output int
}

// Fault is a recoverable per-node runtime failure: a short code and a
// message, recorded during a pass and cleared when the node next performs
// (and for every node at the start of a full pass).
type Fault struct {
	Code    string
	Message string
}

// Node is one node instance (an XForm) in a graph.
type Node struct {
	id   uuid.UUID
	name string
	typ  *nodetype.Type
	g    *Graph

	inputs  []*Link
	outputs []datum.Datum

	// Kind overrides per connector index, used by macros and by
	// behaviours whose connector kinds are only known after connection or
	// after running.
	inKinds  map[int]datum.Kind
	outKinds map[int]datum.Kind

	params map[string]cty.Value
	state  any

	ran   bool
	fault *Fault
}

// ID returns the node's unique instance identity.
func (n *Node) ID() uuid.UUID { return n.id }

// Name returns the instance name, which may be empty.
func (n *Node) Name() string { return n.name }

// SetName sets the instance name.
func (n *Node) SetName(name string) { n.name = name }

// Graph returns the owning graph.
func (n *Node) Graph() *Graph { return n.g }

// Type implements nodetype.Node.
func (n *Node) Type() *nodetype.Type { return n.typ }

// HasRun reports whether the node performed in the current pass.
func (n *Node) HasRun() bool { return n.ran }

// Fault returns the recorded fault for the last pass, or nil.
func (n *Node) Fault() *Fault { return n.fault }

// InputLink returns the link wired into input i, or nil.
func (n *Node) InputLink(i int) *Link { return n.inputs[i] }

// NumInputs returns the number of input connectors.
func (n *Node) NumInputs() int { return len(n.inputs) }

// NumOutputs returns the number of output connectors.
func (n *Node) NumOutputs() int { return len(n.outputs) }

// Input implements nodetype.Node: the datum held by the linked output
// slot, or a null datum when unconnected.
func (n *Node) Input(i int) datum.Datum {
	link := n.inputs[i]
	if link == nil {
		return datum.Null(datum.None)
	}
	return link.From.outputs[link.Output]
}

// InputConnectedKind implements nodetype.Node.
func (n *Node) InputConnectedKind(i int) (datum.Kind, bool) {
	link := n.inputs[i]
	if link == nil {
		return datum.None, false
	}
	return link.From.OutputKind(link.Output), true
}

// InputKind returns the effective kind of input connector i: the override
// when present, the declared kind otherwise.
func (n *Node) InputKind(i int) datum.Kind {
	if k, ok := n.inKinds[i]; ok {
		return k
	}
	return n.typ.Inputs()[i].Kind
}

// OutputKind returns the effective kind of output connector i.
func (n *Node) OutputKind(i int) datum.Kind {
	if k, ok := n.outKinds[i]; ok {
		return k
	}
	return n.typ.Outputs()[i].Kind
}

// SetInputKind overrides the declared kind of input i.
func (n *Node) SetInputKind(i int, k datum.Kind) {
	n.inKinds[i] = k
}

// SetOutputKind implements nodetype.Node.
func (n *Node) SetOutputKind(i int, k datum.Kind) {
	n.outKinds[i] = k
}

// Output returns the datum currently held by output slot i.
func (n *Node) Output(i int) datum.Datum { return n.outputs[i] }

// SetOutput implements nodetype.Node.
func (n *Node) SetOutput(i int, d datum.Datum) { n.outputs[i] = d }

// Param implements nodetype.Node, falling back to the declared default.
func (n *Node) Param(name string) cty.Value {
	if v, ok := n.params[name]; ok {
		return v
	}
	for _, p := range n.typ.Params() {
		if p.Name == name {
			return p.Default
		}
	}
	return cty.NilVal
}

// SetParam implements nodetype.Node.
func (n *Node) SetParam(name string, v cty.Value) {
	n.params[name] = v
}

// State implements nodetype.Node.
func (n *Node) State() any { return n.state }

// SetState implements nodetype.Node.
func (n *Node) SetState(s any) { n.state = s }

// Fail implements nodetype.Node. The first fault per perform wins.
func (n *Node) Fail(code, message string) {
	if n.fault == nil {
		n.fault = &Fault{Code: code, Message: message}
	}
}

// Recalculate invokes the behaviour's recalculation hook, used after
// external parameter edits and after load.
func (n *Node) Recalculate() {
	if rc, ok := n.typ.Behaviour().(nodetype.Recalculator); ok {
		rc.Recalculate(n)
	}
}

// Propagate performs this node and re-evaluates its downstream subgraph.
func (n *Node) Propagate(ctx context.Context) {
	n.g.RunFrom(ctx, n)
}

// PersistableState returns the node's declared persistable fields with
// current values (defaults applied). Consulted by the persistence
// boundary; execution never reads it.
func (n *Node) PersistableState() map[string]cty.Value {
	out := make(map[string]cty.Value, len(n.typ.Params()))
	for _, p := range n.typ.Params() {
		out[p.Name] = n.Param(p.Name)
	}
	return out
}

// MarshalPrivateState converts the behaviour-private state to a cty value
// via the behaviour's StatePersister hook. Returns NilVal when the
// behaviour declares no hook or holds no state.
func (n *Node) MarshalPrivateState() (cty.Value, error) {
	sp, ok := n.typ.Behaviour().(nodetype.StatePersister)
	if !ok || n.state == nil {
		return cty.NilVal, nil
	}
	return sp.MarshalState(n.state)
}

// RestorePrivateState rebuilds the behaviour-private state from a
// previously marshalled value. A NilVal leaves the Init-created state in
// place.
func (n *Node) RestorePrivateState(v cty.Value) error {
	sp, ok := n.typ.Behaviour().(nodetype.StatePersister)
	if !ok || v == cty.NilVal {
		return nil
	}
	state, err := sp.UnmarshalState(v)
	if err != nil {
		return err
	}
	n.state = state
	return nil
}

var _ nodetype.Node = (*Node)(nil)
