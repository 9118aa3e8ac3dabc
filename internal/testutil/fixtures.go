package testutil

import (
	"github.com/spectramap/cubegraph/internal/datum"
	"github.com/spectramap/cubegraph/internal/nodetype"
)

// behaviourModule wraps pre-built behaviour instances as a module.
type behaviourModule struct {
	behaviours []nodetype.Behaviour
}

func (m *behaviourModule) Register(r *nodetype.Registry) {
	for _, b := range m.behaviours {
		b := b
		r.Register(func() nodetype.Behaviour { return b })
	}
}

// ModuleOf wraps behaviours as a registration module for test registries.
func ModuleOf(bs ...nodetype.Behaviour) nodetype.Module {
	return &behaviourModule{behaviours: bs}
}

// ImageSource is a test behaviour emitting a fixed image cube.
type ImageSource struct {
	Img *datum.ImageCube
}

func (ImageSource) Name() string     { return "imgsrc" }
func (ImageSource) Version() string  { return "1.0.0" }
func (ImageSource) Group() string    { return "test" }
func (ImageSource) Init(nodetype.Node) {}

func (ImageSource) Connectors() ([]nodetype.ConnectorSpec, []nodetype.ConnectorSpec) {
	return nil, []nodetype.ConnectorSpec{{Name: "image", Kind: datum.Image}}
}

func (s ImageSource) Perform(n nodetype.Node) error {
	n.SetOutput(0, datum.NewImage(s.Img))
	return nil
}
