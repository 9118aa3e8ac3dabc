package graph

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spectramap/cubegraph/internal/datum"
	"github.com/spectramap/cubegraph/internal/nodetype"
	"github.com/zclconf/go-cty/cty"
)

// ErrKindMismatch is returned when a connection's declared kinds are
// incompatible.
var ErrKindMismatch = errors.New("connector kind mismatch")

// ErrCycle is returned when a connection would create a cycle.
var ErrCycle = errors.New("connection would create a cycle")

// Observer is notified once after every completed pass so it can reflect
// both normal and fault-tagged nodes.
type Observer interface {
	GraphChanged(g *Graph)
}

// Graph is an unordered collection of nodes plus the connections implied
// by their input links. It is acyclic by construction (enforced at connect
// time) and owned by exactly one container: the top-level document or one
// macro instance. Single-writer; no internal locking.
type Graph struct {
	nodes     []*Node
	byID      map[uuid.UUID]*Node
	observers []Observer
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{byID: make(map[uuid.UUID]*Node)}
}

// NewNode instantiates a node of the given type, runs the behaviour's
// Init, and adds it to the graph.
func (g *Graph) NewNode(t *nodetype.Type) *Node {
	n := &Node{
		id:       uuid.New(),
		typ:      t,
		g:        g,
		inputs:   make([]*Link, len(t.Inputs())),
		outputs:  make([]datum.Datum, len(t.Outputs())),
		inKinds:  make(map[int]datum.Kind),
		outKinds: make(map[int]datum.Kind),
		params:   make(map[string]cty.Value),
	}
	for i := range n.outputs {
		n.outputs[i] = datum.Null(t.Outputs()[i].Kind)
	}
	g.nodes = append(g.nodes, n)
	g.byID[n.id] = n
	t.Behaviour().Init(n)
	return n
}

// Nodes returns the graph's nodes in insertion order.
func (g *Graph) Nodes() []*Node {
	return g.nodes
}

// NodeByID looks a node up by instance identity.
func (g *Graph) NodeByID(id uuid.UUID) (*Node, bool) {
	n, ok := g.byID[id]
	return n, ok
}

// AddObserver registers a pass-completion observer.
func (g *Graph) AddObserver(o Observer) {
	g.observers = append(g.observers, o)
}

func (g *Graph) notify() {
	for _, o := range g.observers {
		o.GraphChanged(g)
	}
}

// Remove deletes a node and disconnects every input link pointing at it.
func (g *Graph) Remove(n *Node) {
	if _, ok := g.byID[n.id]; !ok {
		return
	}
	if rel, ok := n.typ.Behaviour().(nodetype.Releaser); ok {
		rel.Release(n)
	}
	for _, other := range g.nodes {
		for i, link := range other.inputs {
			if link != nil && link.From == n {
				g.Disconnect(other, i)
			}
		}
	}
	delete(g.byID, n.id)
	for i, existing := range g.nodes {
		if existing == n {
			g.nodes = append(g.nodes[:i], g.nodes[i+1:]...)
			break
		}
	}
}

// Connect wires src's output slot into dest's input connector. The edge is
// validated synchronously: the effective kinds must be compatible (an Any
// input accepts everything, a Variant connector is never satisfiable until
// overridden, otherwise kinds must match exactly) and the edge must not
// create a path from dest back to src. Violations leave the graph
// unchanged.
func (g *Graph) Connect(dest *Node, input int, src *Node, output int) error {
	if src.g != g || dest.g != g {
		return fmt.Errorf("connect: nodes belong to a different graph")
	}
	if input < 0 || input >= len(dest.inputs) {
		return fmt.Errorf("connect: node %q has no input %d", dest.typ.Name(), input)
	}
	if output < 0 || output >= len(src.outputs) {
		return fmt.Errorf("connect: node %q has no output %d", src.typ.Name(), output)
	}

	destKind := dest.InputKind(input)
	srcKind := src.OutputKind(output)
	if !destKind.Accepts(srcKind) {
		return fmt.Errorf("%w: input %q wants %s, output %q provides %s",
			ErrKindMismatch, dest.typ.Inputs()[input].Name, destKind,
			src.typ.Outputs()[output].Name, srcKind)
	}

	if src == dest || src.dependsOn(dest) {
		return fmt.Errorf("%w: %s -> %s", ErrCycle, src.typ.Name(), dest.typ.Name())
	}

	dest.inputs[input] = &Link{From: src, Output: output}
	g.connectionChanged(dest)
	return nil
}

// Disconnect removes the link on dest's input connector, if any.
func (g *Graph) Disconnect(dest *Node, input int) {
	if dest.inputs[input] == nil {
		return
	}
	dest.inputs[input] = nil
	g.connectionChanged(dest)
}

// connectionChanged gives the behaviour a chance to renegotiate its output
// kinds after an edge is added or removed.
func (g *Graph) connectionChanged(n *Node) {
	if ca, ok := n.typ.Behaviour().(nodetype.ConnectionAware); ok {
		ca.ConnectionsChanged(n)
	}
}

// dependsOn reports whether n transitively depends on other through its
// input links. Used as the reachability check before committing an edge.
func (n *Node) dependsOn(other *Node) bool {
	for _, link := range n.inputs {
		if link == nil {
			continue
		}
		if link.From == other || link.From.dependsOn(other) {
			return true
		}
	}
	return false
}

// dependents returns the nodes that have n as an input source.
func (g *Graph) dependents(n *Node) []*Node {
	var out []*Node
	for _, other := range g.nodes {
		for _, link := range other.inputs {
			if link != nil && link.From == n {
				out = append(out, other)
				break
			}
		}
	}
	return out
}

// connectedInputCount returns the number of wired input connectors.
func (n *Node) connectedInputCount() int {
	count := 0
	for _, link := range n.inputs {
		if link != nil {
			count++
		}
	}
	return count
}
