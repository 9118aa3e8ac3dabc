// Package bandstack provides the node concatenating the bands of two
// images of equal width and height into one cube, keeping each band's
// provenance.
package bandstack

import (
	"github.com/spectramap/cubegraph/internal/datum"
	"github.com/spectramap/cubegraph/internal/nodetype"
)

// Module implements the nodetype.Module interface for this package.
type Module struct{}

type behaviour struct{}

func (behaviour) Name() string    { return "bandstack" }
func (behaviour) Version() string { return "1.0.0" }
func (behaviour) Group() string   { return "bands" }

func (behaviour) Connectors() ([]nodetype.ConnectorSpec, []nodetype.ConnectorSpec) {
	return []nodetype.ConnectorSpec{
			{Name: "a", Kind: datum.Image},
			{Name: "b", Kind: datum.Image},
		}, []nodetype.ConnectorSpec{
			{Name: "stacked", Kind: datum.Image},
		}
}

func (behaviour) Init(n nodetype.Node) {}

func (behaviour) Perform(n nodetype.Node) error {
	a, b := n.Input(0).Image(), n.Input(1).Image()
	if a == nil || b == nil {
		n.Fail("args", "two input images are required")
		return nil
	}
	if a.Width != b.Width || a.Height != b.Height {
		n.Fail("shape", "input images must have equal width and height")
		return nil
	}

	sources := append(a.Sources.Clone(), b.Sources.Clone()...)
	out, err := datum.NewImageCube(a.Width, a.Height, a.Bands+b.Bands, sources)
	if err != nil {
		return err
	}
	for band := 0; band < a.Bands; band++ {
		for y := 0; y < a.Height; y++ {
			for x := 0; x < a.Width; x++ {
				nom, unc, dq := a.At(x, y, band)
				out.SetPixel(x, y, band, nom, unc, dq)
			}
		}
	}
	for band := 0; band < b.Bands; band++ {
		for y := 0; y < b.Height; y++ {
			for x := 0; x < b.Width; x++ {
				nom, unc, dq := b.At(x, y, band)
				out.SetPixel(x, y, a.Bands+band, nom, unc, dq)
			}
		}
	}
	n.SetOutput(0, datum.NewImage(out))
	return nil
}

// Register registers the behaviour with the catalogue.
func (m *Module) Register(r *nodetype.Registry) {
	r.Register(func() nodetype.Behaviour { return behaviour{} })
}
