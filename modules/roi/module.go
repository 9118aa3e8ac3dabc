// Package roi provides the rectangular region-of-interest node. The
// output image carries the region as a restriction: downstream operations
// compute only the covered pixels and splice results back.
package roi

import (
	"github.com/spectramap/cubegraph/internal/datum"
	"github.com/spectramap/cubegraph/internal/nodetype"
	"github.com/zclconf/go-cty/cty"
)

// Module implements the nodetype.Module interface for this package.
type Module struct{}

type behaviour struct{}

func (behaviour) Name() string    { return "rect" }
func (behaviour) Version() string { return "1.0.0" }
func (behaviour) Group() string   { return "regions" }

func (behaviour) Connectors() ([]nodetype.ConnectorSpec, []nodetype.ConnectorSpec) {
	return []nodetype.ConnectorSpec{
			{Name: "image", Kind: datum.Image},
		}, []nodetype.ConnectorSpec{
			{Name: "image", Kind: datum.Image, Description: "Input image restricted to the rectangle."},
			{Name: "roi", Kind: datum.ROI},
		}
}

func (behaviour) Params() []nodetype.ParamDef {
	return []nodetype.ParamDef{
		{Name: "x", Default: cty.NumberIntVal(0)},
		{Name: "y", Default: cty.NumberIntVal(0)},
		{Name: "w", Default: cty.NumberIntVal(0)},
		{Name: "h", Default: cty.NumberIntVal(0)},
	}
}

func (behaviour) Init(n nodetype.Node) {}

func (behaviour) Perform(n nodetype.Node) error {
	in := n.Input(0)
	img := in.Image()
	if img == nil {
		n.Fail("args", "an input image is required")
		return nil
	}
	r := datum.RectRegion{
		X: nodetype.ParamInt(n, "x"),
		Y: nodetype.ParamInt(n, "y"),
		W: nodetype.ParamInt(n, "w"),
		H: nodetype.ParamInt(n, "h"),
	}
	if r.W <= 0 || r.H <= 0 {
		n.Fail("rect", "rectangle width and height must be positive")
		return nil
	}
	n.SetOutput(0, datum.NewImage(img.WithROI(r)))
	n.SetOutput(1, datum.NewROI(r, in.Sources))
	return nil
}

// Register registers the behaviour with the catalogue.
func (m *Module) Register(r *nodetype.Registry) {
	r.Register(func() nodetype.Behaviour { return behaviour{} })
}
