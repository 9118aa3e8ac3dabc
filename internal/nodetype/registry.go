package nodetype

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/spectramap/cubegraph/internal/ctxlog"
)

// ErrNotFound is returned by Lookup for an unregistered name.
var ErrNotFound = errors.New("node type not found")

// Builder constructs a behaviour instance. Builders run exactly once, at
// Finalize time, so they may reference catalogue entries contributed by
// other modules.
type Builder func() Behaviour

// Module is the interface all behaviour modules implement to be registered.
type Module interface {
	Register(r *Registry)
}

// Registry is the two-phase node-type catalogue for one application
// instance. Builders accumulate until Finalize, which instantiates every
// pending builder into a singleton Type and freezes the catalogue.
type Registry struct {
	pending   []Builder
	manifests map[string]*typeManifest
	catalogue map[string]*Type
	finalized bool
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		manifests: make(map[string]*typeManifest),
		catalogue: make(map[string]*Type),
	}
}

// Register adds a behaviour builder to the pending list. Registering after
// Finalize is a programmer error and panics.
func (r *Registry) Register(b Builder) {
	if r.finalized {
		panic("node type registered after registry finalization")
	}
	r.pending = append(r.pending, b)
}

// Finalized reports whether Finalize has run.
func (r *Registry) Finalized() bool { return r.finalized }

// Finalize instantiates every pending builder, validates manifests against
// the Go behaviours, and freezes the catalogue. It must be called exactly
// once, after all module registration hooks have executed.
func (r *Registry) Finalize(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	if r.finalized {
		panic("registry finalized twice")
	}

	for _, builder := range r.pending {
		b := builder()
		t, err := newType(b)
		if err != nil {
			return err
		}
		if _, exists := r.catalogue[t.name]; exists {
			panic(fmt.Sprintf("node type %q already registered", t.name))
		}
		if m, ok := r.manifests[t.name]; ok {
			if err := m.check(t); err != nil {
				return err
			}
			if m.Group != "" {
				t.group = m.Group
			}
			t.description = m.Description
			m.applyConnectorDescriptions(t)
		}
		r.catalogue[t.name] = t
		logger.Debug("Registered node type.", "name", t.name, "version", t.version, "hash", t.hash[:12])
	}

	r.pending = nil
	r.finalized = true
	logger.Info("Node type catalogue finalized.", "types", len(r.catalogue))
	return nil
}

// Lookup returns the singleton descriptor for a name.
func (r *Registry) Lookup(name string) (*Type, error) {
	t, ok := r.catalogue[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return t, nil
}

// Types returns all catalogue entries sorted by name.
func (r *Registry) Types() []*Type {
	out := make([]*Type, 0, len(r.catalogue))
	for _, t := range r.catalogue {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}

// DriftWarning describes a mismatch between a saved graph's record of a
// node type and the currently registered behaviour.
type DriftWarning struct {
	Name          string
	SavedVersion  string
	SavedHash     string
	CurrentType   *Type
	VersionDrift  bool
	BehaviourDrift bool
}

// CheckCompatibility compares a saved (name, version, hash) triple against
// the catalogue. A nil warning means the saved graph matches the current
// behaviour exactly; ErrNotFound is returned when the type no longer
// exists.
func (r *Registry) CheckCompatibility(name, version, hash string) (*DriftWarning, error) {
	t, err := r.Lookup(name)
	if err != nil {
		return nil, err
	}
	w := &DriftWarning{
		Name:           name,
		SavedVersion:   version,
		SavedHash:      hash,
		CurrentType:    t,
		VersionDrift:   version != t.version,
		BehaviourDrift: hash != t.hash,
	}
	if !w.VersionDrift && !w.BehaviourDrift {
		return nil, nil
	}
	return w, nil
}
