package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spectramap/cubegraph/internal/ctxlog"
	"github.com/spectramap/cubegraph/internal/nodetype"
)

// App encapsulates the application's dependencies, configuration, and
// lifecycle: an isolated logger and a finalized node-type registry.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	registry *nodetype.Registry
	config   *Config
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own logger and a finalized registry.
// With no explicit modules the compiled-in core set is used.
func NewApp(outW io.Writer, cfg *Config, modules ...nodetype.Module) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	reg := nodetype.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("All behaviour modules registered.", "count", len(modules))

	if cfg.TypesPath != "" {
		if err := reg.LoadManifests(ctx, cfg.TypesPath); err != nil {
			return nil, fmt.Errorf("failed to load node type manifests: %w", err)
		}
	}

	if err := reg.Finalize(ctx); err != nil {
		return nil, fmt.Errorf("failed to finalize node type catalogue: %w", err)
	}

	return &App{
		outW:     outW,
		logger:   logger,
		registry: reg,
		config:   cfg,
	}, nil
}

// Registry returns the application's registry. This is primarily for
// testing.
func (a *App) Registry() *nodetype.Registry {
	return a.registry
}

// Logger returns the application's logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}
