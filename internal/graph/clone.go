package graph

import "fmt"

// Clone deep-copies the graph's structure into a fresh graph: nodes (with
// their params, names and kind overrides), then connections rewired onto
// the new nodes. Behaviour state is re-created through Init and
// Recalculate rather than copied, and outputs, ran flags and faults start
// clean. The returned mapping relates original nodes to their copies.
//
// The macro subsystem uses this to overwrite an instance graph with the
// current prototype state.
func (g *Graph) Clone() (*Graph, map[*Node]*Node, error) {
	out := New()
	mapping := make(map[*Node]*Node, len(g.nodes))

	for _, n := range g.nodes {
		nn := out.NewNode(n.typ)
		nn.name = n.name
		for k, v := range n.params {
			nn.params[k] = v
		}
		for i, k := range n.inKinds {
			nn.inKinds[i] = k
		}
		for i, k := range n.outKinds {
			nn.outKinds[i] = k
		}
		nn.Recalculate()
		mapping[n] = nn
	}

	for _, n := range g.nodes {
		for i, link := range n.inputs {
			if link == nil {
				continue
			}
			if err := out.Connect(mapping[n], i, mapping[link.From], link.Output); err != nil {
				return nil, nil, fmt.Errorf("clone: rewiring input %d of %q: %w", i, n.typ.Name(), err)
			}
		}
	}

	return out, mapping, nil
}
