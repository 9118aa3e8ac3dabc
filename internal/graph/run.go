package graph

import (
	"context"

	"github.com/spectramap/cubegraph/internal/ctxlog"
	"github.com/spectramap/cubegraph/internal/datum"
)

// pass tracks one propagation pass: the set of nodes scheduled to run.
// Readiness is judged against this set, so a node is never performed
// before a scheduled predecessor, while predecessors outside the pass
// contribute the outputs they already hold.
type pass struct {
	candidates map[*Node]bool
}

// RunFrom evaluates the graph. With a nil start node it begins a full
// pass: every node's ran flag and fault are cleared, every node with no
// connected inputs is performed, and propagation flows downstream from
// there. With a non-nil start it performs exactly that node and
// re-evaluates the affected downstream subgraph, proportional to the edit
// rather than the whole graph. Observers are notified once after the pass
// completes.
func (g *Graph) RunFrom(ctx context.Context, start *Node) {
	logger := ctxlog.FromContext(ctx)
	p := &pass{candidates: make(map[*Node]bool)}

	if start == nil {
		logger.Debug("Starting full pass.", "nodes", len(g.nodes))
		for _, n := range g.nodes {
			p.candidates[n] = true
			n.ran = false
			n.fault = nil
		}
		for _, n := range g.nodes {
			if n.connectedInputCount() == 0 && !n.ran {
				g.perform(ctx, p, n)
			}
		}
	} else {
		g.downstreamClosure(start, p.candidates)
		logger.Debug("Starting partial pass.", "start", start.typ.Name(), "affected", len(p.candidates))
		for n := range p.candidates {
			n.ran = false
		}
		g.perform(ctx, p, start)
	}

	g.notify()
}

// perform clears the node's outputs, invokes the behaviour's action, marks
// the node as run this pass, and then recursively attempts every dependent
// that is Ready and not yet run. A behaviour error becomes a recoverable
// fault; propagation continues with whatever outputs the behaviour set.
func (g *Graph) perform(ctx context.Context, p *pass, n *Node) {
	logger := ctxlog.FromContext(ctx)
	n.fault = nil
	for i := range n.outputs {
		n.outputs[i] = datum.Null(n.OutputKind(i))
	}

	if err := n.typ.Behaviour().Perform(n); err != nil {
		n.Fail("perform", err.Error())
	}
	n.ran = true
	if n.fault != nil {
		logger.Warn("Node faulted.", "type", n.typ.Name(), "name", n.name, "code", n.fault.Code, "message", n.fault.Message)
	} else {
		logger.Debug("Node performed.", "type", n.typ.Name(), "name", n.name)
	}

	for _, child := range g.dependents(n) {
		if p.candidates[child] && !child.ran && child.readyIn(p) {
			g.perform(ctx, p, child)
		}
	}
}

// readyIn reports whether every input link is either absent or points at
// an output slot that currently holds a non-null datum, with the upstream
// node already run if it is scheduled in this pass.
func (n *Node) readyIn(p *pass) bool {
	for _, link := range n.inputs {
		if link == nil {
			continue
		}
		if p.candidates[link.From] && !link.From.ran {
			return false
		}
		if link.From.outputs[link.Output].IsNull() {
			return false
		}
	}
	return true
}

// downstreamClosure collects start and every transitive dependent into set.
func (g *Graph) downstreamClosure(start *Node, set map[*Node]bool) {
	if set[start] {
		return
	}
	set[start] = true
	for _, child := range g.dependents(start) {
		g.downstreamClosure(child, set)
	}
}
