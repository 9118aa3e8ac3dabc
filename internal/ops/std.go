package ops

import "github.com/spectramap/cubegraph/internal/datum"

// RegisterStd installs the standard numeric and image entries into a table.
// The default table gets them at init time; tests use this to build
// isolated tables.
func RegisterStd(t *Table) {
	kernels := []struct {
		op Operator
		k  kernel
	}{
		{Add, kernelAdd},
		{Sub, kernelSub},
		{Mul, kernelMul},
		{Div, kernelDiv},
		{Pow, kernelPow},
		{Min, kernelMin},
		{Max, kernelMax},
	}
	for _, e := range kernels {
		t.Register(e.op, datum.Number, datum.Number, scalarScalar(e.k))
		t.Register(e.op, datum.Image, datum.Image, imageImage(e.k))
		t.Register(e.op, datum.Image, datum.Number, imageNumber(e.k))
		t.Register(e.op, datum.Number, datum.Image, numberImage(e.k))
	}

	t.RegisterUnary(Neg, datum.Number, negateNumber)
	t.RegisterUnary(Neg, datum.Image, negateImage)
}

func init() {
	RegisterStd(defaultTable)
}
