// Package hcldoc loads graph documents: HCL files declaring node
// instances, their persistable parameters, and the wiring between them.
// Loading is the persistence boundary; once a Graph is built, execution
// never touches HCL again.
package hcldoc

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/spectramap/cubegraph/internal/ctxlog"
	"github.com/spectramap/cubegraph/internal/graph"
	"github.com/spectramap/cubegraph/internal/nodetype"
)

// nodeBlock declares one node instance. Version and hash, when present,
// record the node type the document was saved against and are checked for
// drift on load.
type nodeBlock struct {
	Type    string       `hcl:"type,label"`
	Name    string       `hcl:"name,label"`
	Version string       `hcl:"version,optional"`
	Hash    string       `hcl:"hash,optional"`
	Params  *paramsBlock `hcl:"params,block"`
	Wires   []*wireBlock `hcl:"wire,block"`
}

// paramsBlock holds arbitrary parameter attributes, validated against the
// node type's declared parameters.
type paramsBlock struct {
	Body hcl.Body `hcl:",remain"`
}

// wireBlock wires one of the enclosing node's inputs to another node's
// output, both referenced by connector name.
type wireBlock struct {
	Input  string `hcl:"input"`
	From   string `hcl:"from"`
	Output string `hcl:"output"`
}

type docFile struct {
	Nodes []*nodeBlock `hcl:"node,block"`
}

// Document is a loaded graph document.
type Document struct {
	Graph  *graph.Graph
	ByName map[string]*graph.Node
}

// Load parses the document at path and builds its graph against the given
// finalized registry. Nodes are created and parameterized first, then
// wired, so forward references between node blocks are fine. Drift between
// a recorded (version, hash) and the current catalogue is logged, not
// fatal.
func Load(ctx context.Context, reg *nodetype.Registry, path string) (*Document, error) {
	logger := ctxlog.FromContext(ctx)

	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse graph document %s: %w", path, diags)
	}
	var df docFile
	if diags := gohcl.DecodeBody(hclFile.Body, nil, &df); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode graph document %s: %w", path, diags)
	}

	doc := &Document{
		Graph:  graph.New(),
		ByName: make(map[string]*graph.Node, len(df.Nodes)),
	}

	for _, nb := range df.Nodes {
		if _, exists := doc.ByName[nb.Name]; exists {
			return nil, fmt.Errorf("duplicate node name %q in %s", nb.Name, path)
		}
		t, err := reg.Lookup(nb.Type)
		if err != nil {
			return nil, fmt.Errorf("node %q: %w", nb.Name, err)
		}
		if nb.Hash != "" || nb.Version != "" {
			if w, err := reg.CheckCompatibility(nb.Type, nb.Version, nb.Hash); err == nil && w != nil {
				logger.Warn("Saved node type drifted from the current behaviour.",
					"node", nb.Name, "type", nb.Type,
					"savedVersion", w.SavedVersion, "currentVersion", w.CurrentType.Version(),
					"behaviourDrift", w.BehaviourDrift)
			}
		}

		n := doc.Graph.NewNode(t)
		n.SetName(nb.Name)
		if nb.Params != nil {
			if err := applyParams(n, t, nb.Params.Body); err != nil {
				return nil, fmt.Errorf("node %q: %w", nb.Name, err)
			}
		}
		n.Recalculate()
		doc.ByName[nb.Name] = n
	}

	for _, nb := range df.Nodes {
		dest := doc.ByName[nb.Name]
		for _, w := range nb.Wires {
			src, ok := doc.ByName[w.From]
			if !ok {
				return nil, fmt.Errorf("node %q wires input %q from unknown node %q", nb.Name, w.Input, w.From)
			}
			in, err := connectorIndex(dest.Type().Inputs(), w.Input)
			if err != nil {
				return nil, fmt.Errorf("node %q: input %w", nb.Name, err)
			}
			out, err := connectorIndex(src.Type().Outputs(), w.Output)
			if err != nil {
				return nil, fmt.Errorf("node %q: output %w", w.From, err)
			}
			if err := doc.Graph.Connect(dest, in, src, out); err != nil {
				return nil, fmt.Errorf("wiring %s.%s from %s.%s: %w", nb.Name, w.Input, w.From, w.Output, err)
			}
		}
	}

	logger.Info("Graph document loaded.", "path", path, "nodes", len(df.Nodes))
	return doc, nil
}

// applyParams evaluates the params block's attributes as literal values
// and stores them on the node. Every attribute must name a parameter the
// node type declares.
func applyParams(n *graph.Node, t *nodetype.Type, body hcl.Body) error {
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return fmt.Errorf("failed to read params: %w", diags)
	}
	for name, attr := range attrs {
		if !declaresParam(t, name) {
			return fmt.Errorf("node type %q declares no parameter %q", t.Name(), name)
		}
		v, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return fmt.Errorf("failed to evaluate param %q: %w", name, diags)
		}
		n.SetParam(name, v)
	}
	return nil
}

func declaresParam(t *nodetype.Type, name string) bool {
	for _, p := range t.Params() {
		if p.Name == name {
			return true
		}
	}
	return false
}

func connectorIndex(specs []nodetype.ConnectorSpec, name string) (int, error) {
	for i, s := range specs {
		if s.Name == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("connector %q not found", name)
}
