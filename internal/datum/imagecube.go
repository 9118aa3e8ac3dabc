package datum

import (
	"fmt"

	"github.com/spectramap/cubegraph/internal/source"
)

// ImageCube is a multi-band image with three parallel channels per pixel:
// nominal value, uncertainty, and data-quality bits. The graph core treats
// pixel content as opaque except for band count (validated against the
// MultiBand provenance) and ROI-restricted splicing.
//
// Planes are stored band-major: index = (band*Height + y)*Width + x.
type ImageCube struct {
	Width, Height, Bands int

	Nominal []float64
	Unc     []float64
	DQ      []DQBits

	// Sources has exactly one Set per band.
	Sources source.MultiBand

	// ROIs restrict where operations on this image compute.
	ROIs []Region

	// RGB maps display channels to band indices.
	RGB [3]int
}

// NewImageCube allocates a zeroed cube and validates that the provenance
// covers exactly one set per band.
func NewImageCube(width, height, bands int, sources source.MultiBand) (*ImageCube, error) {
	if width <= 0 || height <= 0 || bands <= 0 {
		return nil, fmt.Errorf("invalid image shape %dx%dx%d", width, height, bands)
	}
	if len(sources) != bands {
		return nil, fmt.Errorf("%w: %d source bands for %d image bands", source.ErrShapeMismatch, len(sources), bands)
	}
	n := width * height * bands
	return &ImageCube{
		Width:   width,
		Height:  height,
		Bands:   bands,
		Nominal: make([]float64, n),
		Unc:     make([]float64, n),
		DQ:      make([]DQBits, n),
		Sources: sources,
	}, nil
}

// BandCount returns the number of bands.
func (c *ImageCube) BandCount() int { return c.Bands }

// DatumKind implements Value.
func (*ImageCube) DatumKind() Kind { return Image }

func (c *ImageCube) index(x, y, band int) int {
	return (band*c.Height+y)*c.Width + x
}

// At returns the three channels of one pixel in one band.
func (c *ImageCube) At(x, y, band int) (n, u float64, dq DQBits) {
	i := c.index(x, y, band)
	return c.Nominal[i], c.Unc[i], c.DQ[i]
}

// SetPixel writes all three channels of one pixel in one band together.
func (c *ImageCube) SetPixel(x, y, band int, n, u float64, dq DQBits) {
	i := c.index(x, y, band)
	c.Nominal[i] = n
	c.Unc[i] = u
	c.DQ[i] = dq
}

// SameShape reports whether the other cube has identical dimensions.
func (c *ImageCube) SameShape(o *ImageCube) bool {
	return c.Width == o.Width && c.Height == o.Height && c.Bands == o.Bands
}

// Clone returns a deep copy of the pixel channels and a shallow copy of
// the per-band source sets (which are immutable). ROIs are not carried
// over: a clone is an unrestricted copy.
func (c *ImageCube) Clone() *ImageCube {
	out := &ImageCube{
		Width:   c.Width,
		Height:  c.Height,
		Bands:   c.Bands,
		Nominal: append([]float64(nil), c.Nominal...),
		Unc:     append([]float64(nil), c.Unc...),
		DQ:      append([]DQBits(nil), c.DQ...),
		Sources: c.Sources.Clone(),
		RGB:     c.RGB,
	}
	return out
}

// WithROI returns a clone carrying the existing ROIs plus r.
func (c *ImageCube) WithROI(r Region) *ImageCube {
	out := c.Clone()
	out.ROIs = append(append([]Region(nil), c.ROIs...), r)
	return out
}

// Restricted reports whether any ROI is attached.
func (c *ImageCube) Restricted() bool { return len(c.ROIs) > 0 }

// Mask returns a per-pixel restriction mask (true = compute this pixel),
// the union of all attached ROIs. It returns nil when unrestricted,
// meaning every pixel is covered.
func (c *ImageCube) Mask() []bool {
	if len(c.ROIs) == 0 {
		return nil
	}
	mask := make([]bool, c.Width*c.Height)
	for _, roi := range c.ROIs {
		x0, y0, x1, y1 := roi.Bounds()
		x0, y0 = max(x0, 0), max(y0, 0)
		x1, y1 = min(x1, c.Width), min(y1, c.Height)
		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				if roi.Contains(x, y) {
					mask[y*c.Width+x] = true
				}
			}
		}
	}
	return mask
}

// IntersectMasks combines two restriction masks where nil means
// unrestricted.
func IntersectMasks(a, b []bool) []bool {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	out := make([]bool, len(a))
	for i := range a {
		out[i] = a[i] && b[i]
	}
	return out
}
