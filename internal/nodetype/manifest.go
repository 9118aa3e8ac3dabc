package nodetype

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/spectramap/cubegraph/internal/ctxlog"
	"github.com/spectramap/cubegraph/internal/datum"
	"github.com/spectramap/cubegraph/internal/fsutil"
)

// typeManifest is the HCL-declared public face of a node type: palette
// group, descriptions and the declared connector signature, which must
// stay in parity with the Go behaviour.
type typeManifest struct {
	Name        string               `hcl:"name,label"`
	Group       string               `hcl:"group,optional"`
	Description string               `hcl:"description,optional"`
	Inputs      []*connectorManifest `hcl:"input,block"`
	Outputs     []*connectorManifest `hcl:"output,block"`
}

type connectorManifest struct {
	Name        string `hcl:"name,label"`
	Kind        string `hcl:"kind"`
	Description string `hcl:"description,optional"`
}

type manifestFile struct {
	NodeTypes []*typeManifest `hcl:"nodetype,block"`
}

// LoadManifests parses every .hcl manifest under the given path and stages
// it for the parity check at Finalize. Must run before Finalize.
func (r *Registry) LoadManifests(ctx context.Context, path string) error {
	logger := ctxlog.FromContext(ctx)
	if r.finalized {
		panic("manifests loaded after registry finalization")
	}

	filePaths, err := fsutil.FindFilesByExtension(path, ".hcl")
	if err != nil {
		return fmt.Errorf("failed to walk manifest path %s: %w", path, err)
	}
	if len(filePaths) == 0 {
		logger.Warn("No .hcl manifest files found in path", "path", path)
		return nil
	}

	parser := hclparse.NewParser()
	for _, filePath := range filePaths {
		hclFile, diags := parser.ParseHCLFile(filePath)
		if diags.HasErrors() {
			return fmt.Errorf("failed to parse manifest file %s: %w", filePath, diags)
		}
		var mf manifestFile
		if diags := gohcl.DecodeBody(hclFile.Body, nil, &mf); diags.HasErrors() {
			return fmt.Errorf("failed to decode manifest file %s: %w", filePath, diags)
		}
		for _, m := range mf.NodeTypes {
			if _, exists := r.manifests[m.Name]; exists {
				return fmt.Errorf("duplicate manifest for node type %q in %s", m.Name, filePath)
			}
			r.manifests[m.Name] = m
		}
		logger.Debug("Loaded node type manifest file.", "file", filePath, "types", len(mf.NodeTypes))
	}
	logger.Info("Node type manifests loaded.", "count", len(r.manifests))
	return nil
}

// check performs a strict parity check between the manifest and the Go
// behaviour's connector signature: count, order, name and kind must agree.
func (m *typeManifest) check(t *Type) error {
	var errs []string

	checkSide := func(side string, declared []*connectorManifest, actual []ConnectorSpec) {
		if len(declared) != len(actual) {
			errs = append(errs, fmt.Sprintf("%s count mismatch: manifest declares %d, Go behaviour has %d",
				side, len(declared), len(actual)))
			return
		}
		for i, d := range declared {
			if d.Name != actual[i].Name {
				errs = append(errs, fmt.Sprintf("%s %d: manifest names it %q, Go behaviour %q", side, i, d.Name, actual[i].Name))
			}
			k, err := datum.KindFromString(d.Kind)
			if err != nil {
				errs = append(errs, fmt.Sprintf("%s %q: %v", side, d.Name, err))
				continue
			}
			if k != actual[i].Kind {
				errs = append(errs, fmt.Sprintf("%s %q: manifest declares kind %s, Go behaviour provides %s",
					side, d.Name, k, actual[i].Kind))
			}
		}
	}
	checkSide("input", m.Inputs, t.inputs)
	checkSide("output", m.Outputs, t.outputs)

	if len(errs) > 0 {
		return fmt.Errorf("manifest validation failed for node type %q:\n- %s", t.name, strings.Join(errs, "\n- "))
	}
	return nil
}

// applyConnectorDescriptions copies manifest descriptions onto the
// descriptor. Only valid after check passed.
func (m *typeManifest) applyConnectorDescriptions(t *Type) {
	for i, d := range m.Inputs {
		if d.Description != "" {
			t.inputs[i].Description = d.Description
		}
	}
	for i, d := range m.Outputs {
		if d.Description != "" {
			t.outputs[i].Description = d.Description
		}
	}
}
