package bandmath_test

import (
	"testing"

	"github.com/spectramap/cubegraph/internal/datum"
	"github.com/spectramap/cubegraph/internal/graph"
	"github.com/spectramap/cubegraph/internal/nodetype"
	"github.com/spectramap/cubegraph/internal/testutil"
	"github.com/spectramap/cubegraph/modules/bandmath"
	"github.com/spectramap/cubegraph/modules/constant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func mustType(t *testing.T, reg *nodetype.Registry, name string) *nodetype.Type {
	t.Helper()
	ty, err := reg.Lookup(name)
	require.NoError(t, err)
	return ty
}

func TestExpressionOverScalars(t *testing.T) {
	reg := testutil.NewRegistry(t, &bandmath.Module{}, &constant.Module{})
	g := graph.New()

	a := g.NewNode(mustType(t, reg, "constant"))
	a.SetParam("value", cty.NumberFloatVal(5))
	b := g.NewNode(mustType(t, reg, "constant"))
	b.SetParam("value", cty.NumberFloatVal(3))
	bm := g.NewNode(mustType(t, reg, "bandmath"))
	bm.SetParam("expr", cty.StringVal("a * 2 - b"))
	require.NoError(t, g.Connect(bm, 0, a, 0))
	require.NoError(t, g.Connect(bm, 1, b, 0))

	g.RunFrom(testutil.Context(t), nil)

	require.Nil(t, bm.Fault())
	out := bm.Output(0)
	assert.Equal(t, 7.0, out.Number().N)
	// The variant output narrowed to the result's kind.
	assert.Equal(t, datum.Number, bm.OutputKind(0))
}

func TestExpressionOverImageAndScalar(t *testing.T) {
	img := testutil.NewCube(t, 2, 2, []float64{4}, []float64{0}, []float64{640})
	reg := testutil.NewRegistry(t, &bandmath.Module{}, &constant.Module{},
		testutil.ModuleOf(testutil.ImageSource{Img: img}))
	g := graph.New()

	src := g.NewNode(mustType(t, reg, "imgsrc"))
	k := g.NewNode(mustType(t, reg, "constant"))
	k.SetParam("value", cty.NumberFloatVal(2))
	bm := g.NewNode(mustType(t, reg, "bandmath"))
	bm.SetParam("expr", cty.StringVal("a / b + 1"))
	require.NoError(t, g.Connect(bm, 0, src, 0))
	require.NoError(t, g.Connect(bm, 1, k, 0))

	g.RunFrom(testutil.Context(t), nil)

	require.Nil(t, bm.Fault())
	out := bm.Output(0).Image()
	require.NotNil(t, out)
	n, _, _ := out.At(0, 0, 0)
	assert.Equal(t, 3.0, n)
	assert.Equal(t, datum.Image, bm.OutputKind(0))
}

func TestEmptyExpressionFaults(t *testing.T) {
	reg := testutil.NewRegistry(t, &bandmath.Module{}, &constant.Module{})
	g := graph.New()

	bm := g.NewNode(mustType(t, reg, "bandmath"))
	g.RunFrom(testutil.Context(t), nil)

	require.NotNil(t, bm.Fault())
	assert.Equal(t, "expr", bm.Fault().Code)
}

func TestExpressionErrorBecomesFault(t *testing.T) {
	reg := testutil.NewRegistry(t, &bandmath.Module{}, &constant.Module{})
	g := graph.New()

	a := g.NewNode(mustType(t, reg, "constant"))
	bm := g.NewNode(mustType(t, reg, "bandmath"))
	bm.SetParam("expr", cty.StringVal("a + nosuch"))
	require.NoError(t, g.Connect(bm, 0, a, 0))

	g.RunFrom(testutil.Context(t), nil)

	require.NotNil(t, bm.Fault())
	assert.Equal(t, "perform", bm.Fault().Code)
}
