package expr

import (
	"math"
	"testing"

	"github.com/spectramap/cubegraph/internal/datum"
	"github.com/spectramap/cubegraph/internal/ops"
	"github.com/spectramap/cubegraph/internal/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEval() *Evaluator {
	t := ops.NewTable()
	ops.RegisterStd(t)
	return New(t)
}

func env(vals map[string]float64) map[string]datum.Datum {
	out := make(map[string]datum.Datum, len(vals))
	i := 0
	for name, v := range vals {
		out[name] = datum.NewNumber(v, 0, 0, source.NewSet(source.NewInput(i, nil)))
		i++
	}
	return out
}

func TestArithmeticAndPrecedence(t *testing.T) {
	e := newEval()
	cases := []struct {
		src  string
		want float64
	}{
		{"1 + 2", 3},
		{"a * 2 + b", 13},
		{"a * (2 + b)", 25},
		{"b - a / 5", 2},
		{"-a + 8", 3},
		{"min(a, b)", 3},
		{"max(a, b)", 5},
		{"pow(a, 2)", 25},
	}
	vars := env(map[string]float64{"a": 5, "b": 3})
	for _, c := range cases {
		d, err := e.Eval(c.src, vars)
		require.NoError(t, err, c.src)
		assert.Equal(t, c.want, d.Number().N, c.src)
	}
}

func TestProvenanceComesOnlyFromIdentifiers(t *testing.T) {
	e := newEval()
	a := datum.NewNumber(2, 0, 0, source.NewSet(source.NewInput(0, nil)))
	b := datum.NewNumber(3, 0, 0, source.NewSet(source.NewInput(1, nil)))

	d, err := e.Eval("a * 2 + b", map[string]datum.Datum{"a": a, "b": b})
	require.NoError(t, err)
	assert.Equal(t, 7.0, d.Number().N)
	assert.Equal(t, 2, d.Sources.Len())

	// A literal-only expression has empty provenance.
	d, err = e.Eval("2 + 2", nil)
	require.NoError(t, err)
	assert.Equal(t, 0, d.Sources.Len())
}

func TestUncertaintyFlowsThroughExpressions(t *testing.T) {
	e := newEval()
	a := datum.NewNumber(3, 0.3, 0, source.Internal())
	b := datum.NewNumber(4, 0.4, 0, source.Internal())

	d, err := e.Eval("a + b", map[string]datum.Datum{"a": a, "b": b})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, d.Number().U, 1e-12)
}

func TestUnknownIdentifier(t *testing.T) {
	e := newEval()
	_, err := e.Eval("a + missing", env(map[string]float64{"a": 1}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing")
}

func TestNullIdentifierIsAnError(t *testing.T) {
	e := newEval()
	_, err := e.Eval("a + 1", map[string]datum.Datum{"a": datum.Null(datum.Number)})
	assert.Error(t, err)
}

func TestParseError(t *testing.T) {
	e := newEval()
	_, err := e.Eval("a +", env(map[string]float64{"a": 1}))
	assert.Error(t, err)
}

func TestUnknownFunction(t *testing.T) {
	e := newEval()
	_, err := e.Eval("hypot(3, 4)", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hypot")
}

func TestFunctionArity(t *testing.T) {
	e := newEval()
	_, err := e.Eval("min(1)", nil)
	assert.Error(t, err)
}

func TestRegisterFunc(t *testing.T) {
	e := newEval()
	e.RegisterFunc("sqrt", func(args []datum.Datum) (datum.Datum, error) {
		v := args[0].Number()
		return datum.NewNumber(math.Sqrt(v.N), 0, v.DQ, args[0].Sources), nil
	})
	d, err := e.Eval("sqrt(a)", env(map[string]float64{"a": 9}))
	require.NoError(t, err)
	assert.Equal(t, 3.0, d.Number().N)

	assert.Panics(t, func() { e.RegisterFunc("min", nil) })
}

func TestDivisionByZeroYieldsDQBit(t *testing.T) {
	e := newEval()
	d, err := e.Eval("a / 0", env(map[string]float64{"a": 1}))
	require.NoError(t, err)
	v := d.Number()
	assert.Equal(t, 0.0, v.N)
	assert.Equal(t, datum.DQDivZero, v.DQ)
}

func TestImagesInExpressions(t *testing.T) {
	e := newEval()
	img, err := datum.NewImageCube(2, 2, 1, source.MultiBand{source.NewSet(source.NewInput(0, nil))})
	require.NoError(t, err)
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			img.SetPixel(x, y, 0, 10, 0, 0)
		}
	}

	d, err := e.Eval("a / 2 + 1", map[string]datum.Datum{"a": datum.NewImage(img)})
	require.NoError(t, err)
	out := d.Image()
	require.NotNil(t, out)
	n, _, _ := out.At(1, 1, 0)
	assert.Equal(t, 6.0, n)
}
