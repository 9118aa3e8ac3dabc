package bandselect_test

import (
	"testing"

	"github.com/spectramap/cubegraph/internal/graph"
	"github.com/spectramap/cubegraph/internal/source"
	"github.com/spectramap/cubegraph/internal/testutil"
	"github.com/spectramap/cubegraph/modules/bandselect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func setup(t *testing.T) (*graph.Graph, *graph.Node) {
	t.Helper()
	img := testutil.NewCube(t, 2, 2, []float64{1, 2, 3}, []float64{0.1, 0.2, 0.3}, []float64{640, 540, 440})
	reg := testutil.NewRegistry(t, &bandselect.Module{}, testutil.ModuleOf(testutil.ImageSource{Img: img}))

	g := graph.New()
	srcType, err := reg.Lookup("imgsrc")
	require.NoError(t, err)
	selType, err := reg.Lookup("bandselect")
	require.NoError(t, err)

	src := g.NewNode(srcType)
	sel := g.NewNode(selType)
	require.NoError(t, g.Connect(sel, 0, src, 0))
	return g, sel
}

func TestSelectsSingleBandWithItsProvenance(t *testing.T) {
	g, sel := setup(t)
	sel.SetParam("band", cty.NumberIntVal(1))

	g.RunFrom(testutil.Context(t), nil)

	require.Nil(t, sel.Fault())
	out := sel.Output(0).Image()
	require.NotNil(t, out)
	assert.Equal(t, 1, out.Bands)

	n, u, _ := out.At(1, 1, 0)
	assert.Equal(t, 2.0, n)
	assert.Equal(t, 0.2, u)

	require.Len(t, out.Sources, 1)
	assert.True(t, out.Sources[0].Contains(source.NewInput(0, &source.Filter{CWL: 540})))
	assert.Equal(t, 1, out.Sources[0].Len())
}

func TestOutOfRangeBandFaults(t *testing.T) {
	g, sel := setup(t)
	sel.SetParam("band", cty.NumberIntVal(5))

	g.RunFrom(testutil.Context(t), nil)

	require.NotNil(t, sel.Fault())
	assert.Equal(t, "band", sel.Fault().Code)
	assert.True(t, sel.Output(0).IsNull())
}
