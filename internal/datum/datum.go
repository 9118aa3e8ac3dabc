// Package datum implements the tagged value flowing between graph nodes:
// a kind from a closed enumeration, a payload whose runtime shape must
// match the kind, and a provenance set.
package datum

import (
	"fmt"

	"github.com/spectramap/cubegraph/internal/source"
)

// Value is the payload carried by a Datum. Implementations report the Kind
// their shape corresponds to, which construction validates against the
// declared kind.
type Value interface {
	DatumKind() Kind
}

// Datum is a tagged value with provenance. It is a value type, freely
// copyable; the (possibly large) image payload is shared by pointer. A
// Datum may be null (Val == nil) independent of its kind.
type Datum struct {
	Kind    Kind
	Val     Value
	Sources source.Set
}

// New constructs a Datum. The caller must always supply provenance;
// internally generated values use source.Internal() explicitly so that a
// missing provenance set is never silent.
func New(k Kind, v Value, sources source.Set) (Datum, error) {
	if v != nil && k != Any && v.DatumKind() != k {
		return Datum{}, fmt.Errorf("datum payload shape %s does not match declared kind %s", v.DatumKind(), k)
	}
	return Datum{Kind: k, Val: v, Sources: sources}, nil
}

// MustNew is New for statically correct construction; it panics on a
// kind/shape mismatch, which is a programmer error.
func MustNew(k Kind, v Value, sources source.Set) Datum {
	d, err := New(k, v, sources)
	if err != nil {
		panic(err)
	}
	return d
}

// Null returns a null Datum of the given kind.
func Null(k Kind) Datum {
	return Datum{Kind: k}
}

// NewNumber wraps a scalar with uncertainty and DQ bits.
func NewNumber(n, u float64, dq DQBits, sources source.Set) Datum {
	return Datum{Kind: Number, Val: NumberValue{N: n, U: u, DQ: dq}, Sources: sources}
}

// NewImage wraps an image cube; the image's own MultiBand provenance is
// flattened into the Datum-level set.
func NewImage(img *ImageCube) Datum {
	return Datum{Kind: Image, Val: img, Sources: img.Sources.Flatten()}
}

// NewROI wraps a region of interest.
func NewROI(r Region, sources source.Set) Datum {
	return Datum{Kind: ROI, Val: RegionValue{Region: r}, Sources: sources}
}

// NewData wraps opaque behaviour-specific data.
func NewData(v any, sources source.Set) Datum {
	return Datum{Kind: Data, Val: DataValue{V: v}, Sources: sources}
}

// IsNull reports whether the Datum carries no value.
func (d Datum) IsNull() bool {
	return d.Val == nil
}

// Number returns the scalar payload. It is only valid when Kind is Number
// and the datum is non-null.
func (d Datum) Number() NumberValue {
	return d.Val.(NumberValue)
}

// Image returns the image payload, or nil for a null or non-image datum.
func (d Datum) Image() *ImageCube {
	if img, ok := d.Val.(*ImageCube); ok {
		return img
	}
	return nil
}

// Region returns the ROI payload, or nil.
func (d Datum) Region() Region {
	if rv, ok := d.Val.(RegionValue); ok {
		return rv.Region
	}
	return nil
}

func (d Datum) String() string {
	if d.IsNull() {
		return fmt.Sprintf("%s(null)", d.Kind)
	}
	switch v := d.Val.(type) {
	case NumberValue:
		return fmt.Sprintf("%g±%g[%s]%s", v.N, v.U, v.DQ, d.Sources)
	case *ImageCube:
		return fmt.Sprintf("image %dx%dx%d", v.Width, v.Height, v.Bands)
	default:
		return d.Kind.String()
	}
}

// NumberValue is the scalar payload: nominal value, uncertainty and DQ
// bits, always carried together so no channel can drift independently.
type NumberValue struct {
	N  float64
	U  float64
	DQ DQBits
}

// DatumKind implements Value.
func (NumberValue) DatumKind() Kind { return Number }

// DataValue is the opaque payload for the Data kind.
type DataValue struct {
	V any
}

// DatumKind implements Value.
func (DataValue) DatumKind() Kind { return Data }
