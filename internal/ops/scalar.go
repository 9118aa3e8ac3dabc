package ops

import (
	"math"

	"github.com/spectramap/cubegraph/internal/datum"
)

// kernel computes all three channels of a binary numeric result at once:
// nominal value, first-order propagated uncertainty, and DQ bits. Image and
// scalar implementations share these so the channels can never be updated
// independently of each other.
type kernel func(a, ua float64, da datum.DQBits, b, ub float64, db datum.DQBits) (n, u float64, dq datum.DQBits)

func kernelAdd(a, ua float64, da datum.DQBits, b, ub float64, db datum.DQBits) (float64, float64, datum.DQBits) {
	return a + b, math.Hypot(ua, ub), da | db
}

func kernelSub(a, ua float64, da datum.DQBits, b, ub float64, db datum.DQBits) (float64, float64, datum.DQBits) {
	return a - b, math.Hypot(ua, ub), da | db
}

func kernelMul(a, ua float64, da datum.DQBits, b, ub float64, db datum.DQBits) (float64, float64, datum.DQBits) {
	return a * b, math.Hypot(b*ua, a*ub), da | db
}

func kernelDiv(a, ua float64, da datum.DQBits, b, ub float64, db datum.DQBits) (float64, float64, datum.DQBits) {
	if b == 0 {
		return 0, 0, da | db | datum.DQDivZero
	}
	return a / b, math.Hypot(ua/b, a*ub/(b*b)), da | db
}

// kernelPow propagates u = sqrt((b·a^(b-1)·ua)² + (a^b·ln(a)·ub)²).
// Undefined cases (negative base with fractional exponent, zero base with
// negative exponent) yield 0 with the UNDEF bit so badness stays in the DQ
// channel rather than leaking NaNs.
func kernelPow(a, ua float64, da datum.DQBits, b, ub float64, db datum.DQBits) (float64, float64, datum.DQBits) {
	if a < 0 && b != math.Trunc(b) {
		return 0, 0, da | db | datum.DQUndefined
	}
	if a == 0 && b < 0 {
		return 0, 0, da | db | datum.DQUndefined
	}
	n := math.Pow(a, b)
	du := b * math.Pow(a, b-1) * ua
	var dv float64
	if a > 0 {
		dv = n * math.Log(a) * ub
	}
	return n, math.Hypot(du, dv), da | db
}

// kernelMin and kernelMax select one operand, carrying that operand's
// uncertainty and DQ bits through unchanged.
func kernelMin(a, ua float64, da datum.DQBits, b, ub float64, db datum.DQBits) (float64, float64, datum.DQBits) {
	if a <= b {
		return a, ua, da
	}
	return b, ub, db
}

func kernelMax(a, ua float64, da datum.DQBits, b, ub float64, db datum.DQBits) (float64, float64, datum.DQBits) {
	if a >= b {
		return a, ua, da
	}
	return b, ub, db
}

// scalarScalar lifts a kernel into a Number×Number dispatch entry,
// unioning the operand provenance.
func scalarScalar(k kernel) BinaryFunc {
	return func(a, b datum.Datum) (datum.Datum, error) {
		na, nb := a.Number(), b.Number()
		n, u, dq := k(na.N, na.U, na.DQ, nb.N, nb.U, nb.DQ)
		return datum.NewNumber(n, u, dq, a.Sources.Union(b.Sources)), nil
	}
}

// negateNumber flips the nominal value, leaving uncertainty and DQ alone.
func negateNumber(a datum.Datum) (datum.Datum, error) {
	na := a.Number()
	return datum.NewNumber(-na.N, na.U, na.DQ, a.Sources), nil
}
