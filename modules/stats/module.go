// Package stats provides summary nodes reducing an image to a scalar.
package stats

import (
	"math"

	"github.com/spectramap/cubegraph/internal/datum"
	"github.com/spectramap/cubegraph/internal/nodetype"
)

// Module implements the nodetype.Module interface for this package.
type Module struct{}

type behaviour struct{}

func (behaviour) Name() string    { return "bandmean" }
func (behaviour) Version() string { return "1.0.0" }
func (behaviour) Group() string   { return "stats" }

func (behaviour) Connectors() ([]nodetype.ConnectorSpec, []nodetype.ConnectorSpec) {
	return []nodetype.ConnectorSpec{
			{Name: "image", Kind: datum.Image},
		}, []nodetype.ConnectorSpec{
			{Name: "mean", Kind: datum.Number, Description: "Mean over all bands and covered pixels."},
		}
}

func (behaviour) Init(n nodetype.Node) {}

// Perform averages the nominal channel over every band and every covered
// pixel (honouring an attached ROI restriction), propagating uncertainty
// as for a mean of independent values and ORing the covered pixels' DQ
// bits. The result's provenance is the union of every contributing band.
func (behaviour) Perform(n nodetype.Node) error {
	in := n.Input(0)
	img := in.Image()
	if img == nil {
		n.Fail("args", "an input image is required")
		return nil
	}

	mask := img.Mask()
	var sum, varSum float64
	var dq datum.DQBits
	count := 0
	for band := 0; band < img.Bands; band++ {
		for y := 0; y < img.Height; y++ {
			for x := 0; x < img.Width; x++ {
				if mask != nil && !mask[y*img.Width+x] {
					continue
				}
				nom, u, d := img.At(x, y, band)
				sum += nom
				varSum += u * u
				dq |= d
				count++
			}
		}
	}
	if count == 0 {
		n.Fail("empty", "restriction covers no pixels")
		return nil
	}

	mean := sum / float64(count)
	unc := math.Sqrt(varSum) / float64(count)
	n.SetOutput(0, datum.NewNumber(mean, unc, dq, img.Sources.Flatten()))
	return nil
}

// Register registers the behaviour with the catalogue.
func (m *Module) Register(r *nodetype.Registry) {
	r.Register(func() nodetype.Behaviour { return behaviour{} })
}
