package datum

// Region is a sub-area restriction attached to image data. Operations on a
// restricted image compute only the covered pixels and splice the result
// back into an unrestricted copy of the base operand.
type Region interface {
	// Contains reports whether the pixel lies inside the region.
	Contains(x, y int) bool
	// Bounds returns the inclusive-exclusive bounding box [x0,x1)×[y0,y1).
	Bounds() (x0, y0, x1, y1 int)
}

// RegionValue adapts a Region into a Datum payload.
type RegionValue struct {
	Region Region
}

// DatumKind implements Value.
func (RegionValue) DatumKind() Kind { return ROI }

// RectRegion is an axis-aligned rectangular region.
type RectRegion struct {
	X, Y, W, H int
}

// Contains implements Region.
func (r RectRegion) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Bounds implements Region.
func (r RectRegion) Bounds() (int, int, int, int) {
	return r.X, r.Y, r.X + r.W, r.Y + r.H
}
