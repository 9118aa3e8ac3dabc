package hcldoc_test

import (
	"testing"

	"github.com/spectramap/cubegraph/internal/graph"
	"github.com/spectramap/cubegraph/internal/hcldoc"
	"github.com/spectramap/cubegraph/internal/nodetype"
	"github.com/spectramap/cubegraph/internal/testutil"
	"github.com/spectramap/cubegraph/modules/arith"
	"github.com/spectramap/cubegraph/modules/bandmath"
	"github.com/spectramap/cubegraph/modules/bandselect"
	"github.com/spectramap/cubegraph/modules/constant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func load(t *testing.T, reg *nodetype.Registry, doc string) (*hcldoc.Document, error) {
	t.Helper()
	path := testutil.WriteHCL(t, "graph.hcl", doc)
	return hcldoc.Load(testutil.Context(t), reg, path)
}

func stdRegistry(t *testing.T) *nodetype.Registry {
	t.Helper()
	return testutil.NewRegistry(t, &constant.Module{}, &arith.Module{}, &bandmath.Module{})
}

func TestLoadAndRunDocument(t *testing.T) {
	reg := stdRegistry(t)
	doc, err := load(t, reg, `
node "constant" "two" {
  params {
    value = 2
  }
}

node "constant" "three" {
  params {
    value       = 3
    uncertainty = 0.1
  }
}

node "add" "sum" {
  wire {
    input  = "a"
    from   = "two"
    output = "value"
  }
  wire {
    input  = "b"
    from   = "three"
    output = "value"
  }
}
`)
	require.NoError(t, err)
	require.Len(t, doc.Graph.Nodes(), 3)

	doc.Graph.RunFrom(testutil.Context(t), nil)

	sum := doc.ByName["sum"]
	require.NotNil(t, sum)
	require.Nil(t, sum.Fault())
	assert.Equal(t, 5.0, sum.Output(0).Number().N)
	assert.InDelta(t, 0.1, sum.Output(0).Number().U, 1e-12)
}

func TestDocumentOrderAllowsChainedVariants(t *testing.T) {
	reg := stdRegistry(t)
	doc, err := load(t, reg, `
node "constant" "one" {
  params {
    value = 1
  }
}

node "add" "first" {
  wire {
    input = "a"
    from = "one"
    output = "value"
  }
  wire {
    input = "b"
    from = "one"
    output = "value"
  }
}

node "add" "second" {
  wire {
    input = "a"
    from = "first"
    output = "result"
  }
  wire {
    input = "b"
    from = "one"
    output = "value"
  }
}
`)
	require.NoError(t, err)

	doc.Graph.RunFrom(testutil.Context(t), nil)
	assert.Equal(t, 3.0, doc.ByName["second"].Output(0).Number().N)
}

func TestExpressionNodeFromDocument(t *testing.T) {
	reg := stdRegistry(t)
	doc, err := load(t, reg, `
node "constant" "five" {
  params {
    value = 5
  }
}

node "bandmath" "calc" {
  params {
    expr = "a * 2 + 1"
  }
  wire {
    input = "a"
    from = "five"
    output = "value"
  }
}
`)
	require.NoError(t, err)

	doc.Graph.RunFrom(testutil.Context(t), nil)
	calc := doc.ByName["calc"]
	require.Nil(t, calc.Fault())
	assert.Equal(t, 11.0, calc.Output(0).Number().N)
}

func TestUnknownNodeType(t *testing.T) {
	reg := stdRegistry(t)
	_, err := load(t, reg, `node "warp" "w" {}`)
	require.Error(t, err)
	assert.ErrorIs(t, err, nodetype.ErrNotFound)
}

func TestDuplicateNodeName(t *testing.T) {
	reg := stdRegistry(t)
	_, err := load(t, reg, `
node "constant" "c" {}
node "constant" "c" {}
`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate node name")
}

func TestUndeclaredParam(t *testing.T) {
	reg := stdRegistry(t)
	_, err := load(t, reg, `
node "constant" "c" {
  params {
    magnitude = 3
  }
}
`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "magnitude")
}

func TestWireFromUnknownNode(t *testing.T) {
	reg := stdRegistry(t)
	_, err := load(t, reg, `
node "add" "sum" {
  wire {
    input = "a"
    from = "ghost"
    output = "value"
  }
}
`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ghost")
}

func TestWireUnknownConnector(t *testing.T) {
	reg := stdRegistry(t)
	_, err := load(t, reg, `
node "constant" "c" {}
node "add" "sum" {
  wire {
    input = "z"
    from = "c"
    output = "value"
  }
}
`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"z"`)
}

func TestWireKindMismatchSurfaces(t *testing.T) {
	reg := testutil.NewRegistry(t, &constant.Module{}, &arith.Module{},
		&bandmath.Module{}, &bandselect.Module{})
	_, err := load(t, reg, `
node "constant" "c" {}
node "bandselect" "sel" {
  wire {
    input = "image"
    from = "c"
    output = "value"
  }
}
`)
	require.Error(t, err)
	assert.ErrorIs(t, err, graph.ErrKindMismatch)
}

func TestParseErrorIsReported(t *testing.T) {
	reg := stdRegistry(t)
	_, err := load(t, reg, `node "constant" {`)
	assert.Error(t, err)
}
