// Package testutil provides shared helpers for the package test suites: a
// thread-safe log buffer, a finalized-registry builder, temp-file HCL
// helpers and an image builder.
package testutil

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/spectramap/cubegraph/internal/ctxlog"
	"github.com/spectramap/cubegraph/internal/datum"
	"github.com/spectramap/cubegraph/internal/nodetype"
	"github.com/spectramap/cubegraph/internal/source"
	"github.com/stretchr/testify/require"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// Context returns a background context carrying a discard-level logger, so
// library code that logs through ctxlog stays quiet under test.
func Context(t *testing.T) context.Context {
	t.Helper()
	return ctxlog.WithLogger(context.Background(), ctxlog.Discard())
}

// NewRegistry builds and finalizes a registry from the given modules.
func NewRegistry(t *testing.T, modules ...nodetype.Module) *nodetype.Registry {
	t.Helper()
	reg := nodetype.New()
	for _, m := range modules {
		m.Register(reg)
	}
	require.NoError(t, reg.Finalize(Context(t)))
	return reg
}

// WriteHCL writes content to name under a fresh temp dir and returns the
// full path. The directory is cleaned up with the test.
func WriteHCL(t *testing.T, name, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// NewCube builds a small image cube whose band b is filled with the
// nominal value noms[b] and uncertainty uncs[b], each band carrying a
// distinct input-0 CWL source so provenance assertions can tell bands
// apart.
func NewCube(t *testing.T, w, h int, noms, uncs []float64, cwls []float64) *datum.ImageCube {
	t.Helper()
	require.Equal(t, len(noms), len(uncs))
	require.Equal(t, len(noms), len(cwls))

	bands := make(source.MultiBand, len(noms))
	for b := range bands {
		cwl := cwls[b]
		bands[b] = source.NewSet(source.NewInput(0, &source.Filter{CWL: cwl}))
	}
	img, err := datum.NewImageCube(w, h, len(noms), bands)
	require.NoError(t, err)
	for b := range noms {
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				img.SetPixel(x, y, b, noms[b], uncs[b], 0)
			}
		}
	}
	return img
}
