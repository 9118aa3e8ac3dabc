package ops

import (
	"fmt"

	"github.com/spectramap/cubegraph/internal/datum"
	"github.com/spectramap/cubegraph/internal/source"
)

// imageImage lifts a kernel into an Image×Image entry. Both operands must
// have the same shape; the result's per-band provenance is the bandwise
// union of the operands'. When either operand is ROI-restricted, only
// pixels inside the intersection of the restrictions are computed and the
// rest are carried over from an unrestricted copy of the left operand.
func imageImage(k kernel) BinaryFunc {
	return func(a, b datum.Datum) (datum.Datum, error) {
		ia, ib := a.Image(), b.Image()
		if !ia.SameShape(ib) {
			return datum.Datum{}, fmt.Errorf("%w: %dx%dx%d vs %dx%dx%d",
				source.ErrShapeMismatch, ia.Width, ia.Height, ia.Bands, ib.Width, ib.Height, ib.Bands)
		}
		sources, err := source.BandwiseUnion(ia.Sources, ib.Sources)
		if err != nil {
			return datum.Datum{}, err
		}

		out := ia.Clone()
		out.Sources = sources
		mask := datum.IntersectMasks(ia.Mask(), ib.Mask())
		for band := 0; band < out.Bands; band++ {
			for y := 0; y < out.Height; y++ {
				for x := 0; x < out.Width; x++ {
					if mask != nil && !mask[y*out.Width+x] {
						continue
					}
					na, ua, da := ia.At(x, y, band)
					nb, ub, db := ib.At(x, y, band)
					rn, ru, rdq := k(na, ua, da, nb, ub, db)
					out.SetPixel(x, y, band, rn, ru, rdq)
				}
			}
		}
		return datum.NewImage(out), nil
	}
}

// imageNumber applies the kernel between every pixel and a scalar. The
// scalar's provenance is unioned into every band of the result.
func imageNumber(k kernel) BinaryFunc {
	return func(a, b datum.Datum) (datum.Datum, error) {
		ia := a.Image()
		nb := b.Number()

		out := ia.Clone()
		out.Sources = ia.Sources.AddToAll(b.Sources)
		mask := ia.Mask()
		for band := 0; band < out.Bands; band++ {
			for y := 0; y < out.Height; y++ {
				for x := 0; x < out.Width; x++ {
					if mask != nil && !mask[y*out.Width+x] {
						continue
					}
					na, ua, da := ia.At(x, y, band)
					rn, ru, rdq := k(na, ua, da, nb.N, nb.U, nb.DQ)
					out.SetPixel(x, y, band, rn, ru, rdq)
				}
			}
		}
		return datum.NewImage(out), nil
	}
}

// numberImage mirrors imageNumber with the scalar on the left.
func numberImage(k kernel) BinaryFunc {
	return func(a, b datum.Datum) (datum.Datum, error) {
		na := a.Number()
		ib := b.Image()

		out := ib.Clone()
		out.Sources = ib.Sources.AddToAll(a.Sources)
		mask := ib.Mask()
		for band := 0; band < out.Bands; band++ {
			for y := 0; y < out.Height; y++ {
				for x := 0; x < out.Width; x++ {
					if mask != nil && !mask[y*out.Width+x] {
						continue
					}
					nb, ub, db := ib.At(x, y, band)
					rn, ru, rdq := k(na.N, na.U, na.DQ, nb, ub, db)
					out.SetPixel(x, y, band, rn, ru, rdq)
				}
			}
		}
		return datum.NewImage(out), nil
	}
}

// negateImage negates every pixel, leaving uncertainty, DQ, provenance and
// restriction behaviour as for any unary image op.
func negateImage(a datum.Datum) (datum.Datum, error) {
	ia := a.Image()
	out := ia.Clone()
	mask := ia.Mask()
	for band := 0; band < out.Bands; band++ {
		for y := 0; y < out.Height; y++ {
			for x := 0; x < out.Width; x++ {
				if mask != nil && !mask[y*out.Width+x] {
					continue
				}
				n, u, dq := ia.At(x, y, band)
				out.SetPixel(x, y, band, -n, u, dq)
			}
		}
	}
	return datum.NewImage(out), nil
}
