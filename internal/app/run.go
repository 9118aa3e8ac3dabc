package app

import (
	"context"
	"fmt"
	"sort"

	"github.com/spectramap/cubegraph/internal/ctxlog"
	"github.com/spectramap/cubegraph/internal/hcldoc"
)

// Run loads the configured graph document, evaluates it with a full pass,
// and prints every node's outputs. Node faults are reported but do not
// fail the run; they are part of a pass's normal outcome.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	doc, err := hcldoc.Load(ctx, a.registry, a.config.GraphPath)
	if err != nil {
		return fmt.Errorf("failed to load graph document: %w", err)
	}
	a.logger.Debug("Graph document loaded.", "nodes", len(doc.Graph.Nodes()))

	if len(doc.Graph.Nodes()) == 0 {
		a.logger.Warn("No nodes found in document, evaluation not required.")
		return nil
	}

	a.logger.Info("Starting full evaluation pass.")
	doc.Graph.RunFrom(ctx, nil)
	a.logger.Info("Evaluation pass finished.")

	names := make([]string, 0, len(doc.ByName))
	for name := range doc.ByName {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		n := doc.ByName[name]
		if f := n.Fault(); f != nil {
			fmt.Fprintf(a.outW, "%s [%s]: fault %s: %s\n", name, n.Type().Name(), f.Code, f.Message)
			continue
		}
		for i := 0; i < n.NumOutputs(); i++ {
			out := n.Output(i)
			fmt.Fprintf(a.outW, "%s.%s = %s\n", name, n.Type().Outputs()[i].Name, out)
		}
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}
