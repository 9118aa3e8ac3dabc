package nodetype_test

import (
	"testing"

	"github.com/spectramap/cubegraph/internal/datum"
	"github.com/spectramap/cubegraph/internal/nodetype"
	"github.com/spectramap/cubegraph/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

// fakeBehaviour is a configurable fixture used across the registry tests.
type fakeBehaviour struct {
	name    string
	version string
	inputs  []nodetype.ConnectorSpec
	outputs []nodetype.ConnectorSpec
	params  []nodetype.ParamDef
}

func (f fakeBehaviour) Name() string    { return f.name }
func (f fakeBehaviour) Version() string { return f.version }
func (fakeBehaviour) Group() string     { return "test" }
func (f fakeBehaviour) Connectors() ([]nodetype.ConnectorSpec, []nodetype.ConnectorSpec) {
	return f.inputs, f.outputs
}
func (fakeBehaviour) Init(n nodetype.Node)          {}
func (fakeBehaviour) Perform(n nodetype.Node) error { return nil }
func (f fakeBehaviour) Params() []nodetype.ParamDef { return f.params }

func simpleFake(name string) fakeBehaviour {
	return fakeBehaviour{
		name:    name,
		version: "1.0.0",
		inputs:  []nodetype.ConnectorSpec{{Name: "in", Kind: datum.Number}},
		outputs: []nodetype.ConnectorSpec{{Name: "out", Kind: datum.Number}},
	}
}

func TestFinalizeInstantiatesPendingBuilders(t *testing.T) {
	reg := nodetype.New()
	reg.Register(func() nodetype.Behaviour { return simpleFake("alpha") })
	reg.Register(func() nodetype.Behaviour { return simpleFake("beta") })

	_, err := reg.Lookup("alpha")
	assert.ErrorIs(t, err, nodetype.ErrNotFound)

	require.NoError(t, reg.Finalize(testutil.Context(t)))

	ty, err := reg.Lookup("alpha")
	require.NoError(t, err)
	assert.Equal(t, "alpha", ty.Name())
	assert.Equal(t, "1.0.0", ty.Version())
	assert.NotEmpty(t, ty.Hash())

	names := []string{}
	for _, ty := range reg.Types() {
		names = append(names, ty.Name())
	}
	assert.Equal(t, []string{"alpha", "beta"}, names)
}

func TestRegisterAfterFinalizePanics(t *testing.T) {
	reg := nodetype.New()
	require.NoError(t, reg.Finalize(testutil.Context(t)))
	assert.Panics(t, func() {
		reg.Register(func() nodetype.Behaviour { return simpleFake("late") })
	})
}

func TestFinalizeTwicePanics(t *testing.T) {
	reg := nodetype.New()
	require.NoError(t, reg.Finalize(testutil.Context(t)))
	assert.Panics(t, func() { _ = reg.Finalize(testutil.Context(t)) })
}

func TestDuplicateNamePanics(t *testing.T) {
	reg := nodetype.New()
	reg.Register(func() nodetype.Behaviour { return simpleFake("dup") })
	reg.Register(func() nodetype.Behaviour { return simpleFake("dup") })
	assert.Panics(t, func() { _ = reg.Finalize(testutil.Context(t)) })
}

func TestBadVersionIsAnError(t *testing.T) {
	reg := nodetype.New()
	f := simpleFake("badver")
	f.version = "1.0"
	reg.Register(func() nodetype.Behaviour { return f })
	assert.Error(t, reg.Finalize(testutil.Context(t)))
}

func TestContentHashIsStableAndSensitive(t *testing.T) {
	a, err := nodetype.NewDynamicType(simpleFake("hashed"))
	require.NoError(t, err)
	b, err := nodetype.NewDynamicType(simpleFake("hashed"))
	require.NoError(t, err)
	assert.Equal(t, a.Hash(), b.Hash())

	// Changing any part of the behavioural definition changes the hash.
	bumped := simpleFake("hashed")
	bumped.version = "1.0.1"
	c, err := nodetype.NewDynamicType(bumped)
	require.NoError(t, err)
	assert.NotEqual(t, a.Hash(), c.Hash())

	renamed := simpleFake("hashed")
	renamed.outputs = []nodetype.ConnectorSpec{{Name: "result", Kind: datum.Number}}
	d, err := nodetype.NewDynamicType(renamed)
	require.NoError(t, err)
	assert.NotEqual(t, a.Hash(), d.Hash())

	withParam := simpleFake("hashed")
	withParam.params = []nodetype.ParamDef{{Name: "k", Default: cty.NumberIntVal(1)}}
	e, err := nodetype.NewDynamicType(withParam)
	require.NoError(t, err)
	assert.NotEqual(t, a.Hash(), e.Hash())
}

func TestCheckCompatibility(t *testing.T) {
	reg := nodetype.New()
	reg.Register(func() nodetype.Behaviour { return simpleFake("stable") })
	require.NoError(t, reg.Finalize(testutil.Context(t)))

	ty, err := reg.Lookup("stable")
	require.NoError(t, err)

	w, err := reg.CheckCompatibility("stable", ty.Version(), ty.Hash())
	require.NoError(t, err)
	assert.Nil(t, w)

	w, err = reg.CheckCompatibility("stable", "0.9.0", ty.Hash())
	require.NoError(t, err)
	require.NotNil(t, w)
	assert.True(t, w.VersionDrift)
	assert.False(t, w.BehaviourDrift)

	w, err = reg.CheckCompatibility("stable", ty.Version(), "deadbeef")
	require.NoError(t, err)
	require.NotNil(t, w)
	assert.True(t, w.BehaviourDrift)

	_, err = reg.CheckCompatibility("vanished", "1.0.0", "")
	assert.ErrorIs(t, err, nodetype.ErrNotFound)
}

func TestManifestParityPasses(t *testing.T) {
	path := testutil.WriteHCL(t, "types/test.hcl", `
nodetype "described" {
  group       = "palette"
  description = "A test node type."

  input "in" {
    kind        = "number"
    description = "The operand."
  }
  output "out" {
    kind = "number"
  }
}
`)
	reg := nodetype.New()
	reg.Register(func() nodetype.Behaviour { return simpleFake("described") })
	require.NoError(t, reg.LoadManifests(testutil.Context(t), path))
	require.NoError(t, reg.Finalize(testutil.Context(t)))

	ty, err := reg.Lookup("described")
	require.NoError(t, err)
	assert.Equal(t, "palette", ty.Group())
	assert.Equal(t, "A test node type.", ty.Description())
	assert.Equal(t, "The operand.", ty.Inputs()[0].Description)
}

func TestManifestParityFailures(t *testing.T) {
	cases := []struct {
		name     string
		manifest string
	}{
		{"wrong kind", `
nodetype "described" {
  input "in" { kind = "image" }
  output "out" { kind = "number" }
}`},
		{"wrong name", `
nodetype "described" {
  input "operand" { kind = "number" }
  output "out" { kind = "number" }
}`},
		{"wrong count", `
nodetype "described" {
  output "out" { kind = "number" }
}`},
		{"unknown kind", `
nodetype "described" {
  input "in" { kind = "picture" }
  output "out" { kind = "number" }
}`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			path := testutil.WriteHCL(t, "types/test.hcl", c.manifest)
			reg := nodetype.New()
			reg.Register(func() nodetype.Behaviour { return simpleFake("described") })
			require.NoError(t, reg.LoadManifests(testutil.Context(t), path))
			assert.Error(t, reg.Finalize(testutil.Context(t)))
		})
	}
}

func TestLoadManifestsAfterFinalizePanics(t *testing.T) {
	reg := nodetype.New()
	require.NoError(t, reg.Finalize(testutil.Context(t)))
	assert.Panics(t, func() {
		_ = reg.LoadManifests(testutil.Context(t), t.TempDir())
	})
}
