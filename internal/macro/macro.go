// Package macro implements reusable sub-graphs: a macro type owns one
// prototype graph, and every node instantiated from it owns a private copy.
//
// Editing the prototype overwrites each instance's private graph with a
// full recopy of the prototype and re-runs the whole instance graph, then
// the instance node itself in its containing graph. This is deliberately
// simple and deliberately inefficient: correctness via full recopy and
// rerun was chosen over precision-targeting the changed prototype node,
// which would require a reliable prototype-to-instance node mapping across
// structural edits.
package macro

import (
	"context"
	"fmt"

	"github.com/spectramap/cubegraph/internal/ctxlog"
	"github.com/spectramap/cubegraph/internal/datum"
	"github.com/spectramap/cubegraph/internal/graph"
	"github.com/spectramap/cubegraph/internal/nodetype"
)

// containerNode is the graph-side surface a macro needs from a node that
// hosts one of its instances.
type containerNode interface {
	nodetype.Node
	Propagate(ctx context.Context)
}

// instanceState is the behaviour-private state of one macro instance node:
// its private copy of the prototype and the proxy nodes inside it, in
// prototype insertion order.
type instanceState struct {
	g    *graph.Graph
	ins  []*graph.Node
	outs []*graph.Node
}

// Macro is an XFormType-style behaviour that owns a prototype graph and
// tracks every node (in any containing graph) instantiated from it.
type Macro struct {
	name      string
	proto     *graph.Graph
	typ       *nodetype.Type
	instances map[containerNode]struct{}
}

// Name implements nodetype.Behaviour.
func (m *Macro) Name() string { return m.name }

// Version implements nodetype.Behaviour.
func (m *Macro) Version() string { return "1.0.0" }

// Group implements nodetype.Behaviour.
func (m *Macro) Group() string { return "macros" }

// Connectors derives the macro's connectors from the prototype's proxy
// nodes: one input per macro.in node, one output per macro.out node, in
// prototype insertion order.
func (m *Macro) Connectors() ([]nodetype.ConnectorSpec, []nodetype.ConnectorSpec) {
	ins, outs := m.proxies(m.proto)
	inSpecs := make([]nodetype.ConnectorSpec, len(ins))
	for i, n := range ins {
		inSpecs[i] = proxySpec(n, i, "in", n.OutputKind(0))
	}
	outSpecs := make([]nodetype.ConnectorSpec, len(outs))
	for i, n := range outs {
		outSpecs[i] = proxySpec(n, i, "out", n.InputKind(0))
	}
	return inSpecs, outSpecs
}

func proxySpec(n *graph.Node, i int, side string, kind datum.Kind) nodetype.ConnectorSpec {
	name := n.Name()
	if name == "" {
		name = fmt.Sprintf("%s%d", side, i)
	}
	return nodetype.ConnectorSpec{Name: name, Kind: kind}
}

func (m *Macro) proxies(g *graph.Graph) (ins, outs []*graph.Node) {
	for _, n := range g.Nodes() {
		switch n.Type() {
		case inType:
			ins = append(ins, n)
		case outType:
			outs = append(outs, n)
		}
	}
	return ins, outs
}

// Init creates the instance's private prototype copy and registers the
// instance for prototype-change propagation.
func (m *Macro) Init(n nodetype.Node) {
	st, err := m.freshInstance()
	if err != nil {
		// A prototype that cannot be copied is a programmer error.
		panic(fmt.Sprintf("macro %q: %v", m.name, err))
	}
	n.SetState(st)
	if cn, ok := n.(containerNode); ok {
		m.instances[cn] = struct{}{}
	}
}

func (m *Macro) freshInstance() (*instanceState, error) {
	g, _, err := m.proto.Clone()
	if err != nil {
		return nil, err
	}
	ins, outs := m.proxies(g)
	return &instanceState{g: g, ins: ins, outs: outs}, nil
}

// Perform injects the macro node's inputs into the instance graph's input
// proxies, runs the entire instance graph, and copies the output proxies'
// captured values onto the macro node's outputs.
func (m *Macro) Perform(n nodetype.Node) error {
	st, ok := n.State().(*instanceState)
	if !ok || st == nil {
		return fmt.Errorf("macro %q: instance graph missing", m.name)
	}
	// A structural prototype edit can add proxies the instance node was
	// not built with; its connector slots are fixed at creation, so the
	// surplus proxies are left null and the mismatch recorded as a fault.
	if len(st.ins) > n.NumInputs() || len(st.outs) > n.NumOutputs() {
		n.Fail("shape", fmt.Sprintf(
			"prototype now has %d inputs and %d outputs but this node was built with %d and %d; recreate the node",
			len(st.ins), len(st.outs), n.NumInputs(), n.NumOutputs()))
	}
	for i, in := range st.ins {
		if i >= n.NumInputs() {
			break
		}
		in.State().(*proxyState).d = n.Input(i)
	}
	st.g.RunFrom(context.Background(), nil)
	for i, out := range st.outs {
		if i >= n.NumOutputs() {
			break
		}
		n.SetOutput(i, out.State().(*proxyState).d)
	}
	return nil
}

// Release implements nodetype.Releaser: an instance node removed from its
// containing graph stops receiving prototype-change recopies.
func (m *Macro) Release(n nodetype.Node) {
	if cn, ok := n.(containerNode); ok {
		delete(m.instances, cn)
	}
}

// Prototype returns the macro's prototype graph. Callers edit it through
// the normal graph API and then report the edit via PrototypeChanged.
func (m *Macro) Prototype() *graph.Graph { return m.proto }

// Type returns the macro's dynamic type descriptor.
func (m *Macro) Type() *nodetype.Type { return m.typ }

// InstanceCount returns the number of live instance nodes.
func (m *Macro) InstanceCount() int { return len(m.instances) }

// PrototypeChanged propagates a prototype edit to every instance: each
// instance's private graph is overwritten with a full copy of the current
// prototype state, fully re-run, and then the instance node itself is
// re-performed in its containing graph so downstream consumers see the
// updated outputs. Instance-local input/output bindings (the links on the
// instance node itself) are untouched.
func (m *Macro) PrototypeChanged(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Propagating macro prototype change.", "macro", m.name, "instances", len(m.instances))
	for n := range m.instances {
		st, err := m.freshInstance()
		if err != nil {
			return fmt.Errorf("macro %q: recopying prototype: %w", m.name, err)
		}
		n.SetState(st)
		st.g.RunFrom(ctx, nil)
		n.Propagate(ctx)
	}
	return nil
}

// Registry catalogues macro types by name. Macros are created at runtime,
// after the node-type registry has been finalized, so they live in their
// own catalogue and reference the graph engine through dynamic types.
type Registry struct {
	macros map[string]*Macro
}

// NewRegistry creates an empty macro catalogue.
func NewRegistry() *Registry {
	return &Registry{macros: make(map[string]*Macro)}
}

// Define creates a macro type owning the given prototype graph.
func (r *Registry) Define(name string, proto *graph.Graph) (*Macro, error) {
	if _, exists := r.macros[name]; exists {
		return nil, fmt.Errorf("macro %q already defined", name)
	}
	m := &Macro{
		name:      name,
		proto:     proto,
		instances: make(map[containerNode]struct{}),
	}
	t, err := nodetype.NewDynamicType(m)
	if err != nil {
		return nil, err
	}
	m.typ = t
	r.macros[name] = m
	return m, nil
}

// Lookup returns a defined macro by name.
func (r *Registry) Lookup(name string) (*Macro, bool) {
	m, ok := r.macros[name]
	return m, ok
}
