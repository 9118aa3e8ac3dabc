// Package bandselect provides the node extracting a single band from a
// multi-band image, carrying that band's provenance with it.
package bandselect

import (
	"fmt"

	"github.com/spectramap/cubegraph/internal/datum"
	"github.com/spectramap/cubegraph/internal/nodetype"
	"github.com/spectramap/cubegraph/internal/source"
	"github.com/zclconf/go-cty/cty"
)

// Module implements the nodetype.Module interface for this package.
type Module struct{}

type behaviour struct{}

func (behaviour) Name() string    { return "bandselect" }
func (behaviour) Version() string { return "1.0.0" }
func (behaviour) Group() string   { return "bands" }

func (behaviour) Connectors() ([]nodetype.ConnectorSpec, []nodetype.ConnectorSpec) {
	return []nodetype.ConnectorSpec{
			{Name: "image", Kind: datum.Image},
		}, []nodetype.ConnectorSpec{
			{Name: "band", Kind: datum.Image, Description: "Single-band image."},
		}
}

func (behaviour) Params() []nodetype.ParamDef {
	return []nodetype.ParamDef{
		{Name: "band", Default: cty.NumberIntVal(0)},
	}
}

func (behaviour) Init(n nodetype.Node) {}

func (behaviour) Perform(n nodetype.Node) error {
	img := n.Input(0).Image()
	if img == nil {
		n.Fail("args", "an input image is required")
		return nil
	}
	band := nodetype.ParamInt(n, "band")
	if band < 0 || band >= img.Bands {
		n.Fail("band", fmt.Sprintf("band %d out of range (image has %d)", band, img.Bands))
		return nil
	}

	out, err := datum.NewImageCube(img.Width, img.Height, 1, source.MultiBand{img.Sources[band]})
	if err != nil {
		return err
	}
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			nom, unc, dq := img.At(x, y, band)
			out.SetPixel(x, y, 0, nom, unc, dq)
		}
	}
	n.SetOutput(0, datum.NewImage(out))
	return nil
}

// Register registers the behaviour with the catalogue.
func (m *Module) Register(r *nodetype.Registry) {
	r.Register(func() nodetype.Behaviour { return behaviour{} })
}
