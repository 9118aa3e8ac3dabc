package stats_test

import (
	"math"
	"testing"

	"github.com/spectramap/cubegraph/internal/datum"
	"github.com/spectramap/cubegraph/internal/graph"
	"github.com/spectramap/cubegraph/internal/testutil"
	"github.com/spectramap/cubegraph/modules/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, img *datum.ImageCube) *graph.Node {
	t.Helper()
	reg := testutil.NewRegistry(t, &stats.Module{}, testutil.ModuleOf(testutil.ImageSource{Img: img}))

	g := graph.New()
	srcType, err := reg.Lookup("imgsrc")
	require.NoError(t, err)
	meanType, err := reg.Lookup("bandmean")
	require.NoError(t, err)

	src := g.NewNode(srcType)
	mean := g.NewNode(meanType)
	require.NoError(t, g.Connect(mean, 0, src, 0))
	g.RunFrom(testutil.Context(t), nil)
	return mean
}

func TestMeanOverBandsAndPixels(t *testing.T) {
	img := testutil.NewCube(t, 2, 2, []float64{1, 3}, []float64{0, 0}, []float64{640, 540})
	mean := run(t, img)

	require.Nil(t, mean.Fault())
	v := mean.Output(0).Number()
	assert.Equal(t, 2.0, v.N)

	// Provenance is the union of every band's sources.
	assert.Equal(t, 2, mean.Output(0).Sources.Len())
}

func TestMeanUncertainty(t *testing.T) {
	// Four pixels of one band, each 1±0.2: u = sqrt(4·0.04)/4 = 0.1.
	img := testutil.NewCube(t, 2, 2, []float64{1}, []float64{0.2}, []float64{640})
	mean := run(t, img)

	v := mean.Output(0).Number()
	assert.InDelta(t, math.Sqrt(4*0.04)/4, v.U, 1e-12)
}

func TestMeanHonoursRestriction(t *testing.T) {
	img := testutil.NewCube(t, 4, 1, []float64{0}, []float64{0}, []float64{640})
	for x := 0; x < 4; x++ {
		img.SetPixel(x, 0, 0, float64(x), 0, 0)
	}
	restricted := img.WithROI(datum.RectRegion{X: 2, Y: 0, W: 2, H: 1})
	mean := run(t, restricted)

	require.Nil(t, mean.Fault())
	assert.Equal(t, 2.5, mean.Output(0).Number().N)
}

func TestMeanAccumulatesDQ(t *testing.T) {
	img := testutil.NewCube(t, 2, 1, []float64{1}, []float64{0}, []float64{640})
	img.SetPixel(1, 0, 0, 1, 0, datum.DQSaturated)
	mean := run(t, img)

	assert.Equal(t, datum.DQSaturated, mean.Output(0).Number().DQ)
}
