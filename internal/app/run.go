package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vk/pipeweld/internal/config"
	"github.com/vk/pipeweld/internal/ctxlog"
	"github.com/vk/pipeweld/internal/pipeline"
)

// Run assembles, validates, and flattens every declared pipeline, printing
// each execution graph (or the structural error) to the app's writer. If
// a listen port is configured, the inspection server is then served in the
// foreground until the context is cancelled.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if len(a.model.Pipelines) == 0 {
		a.logger.Warn("No pipelines declared, nothing to validate.")
		return nil
	}

	var failed []string
	for _, decl := range a.model.Pipelines {
		if err := a.processPipeline(ctx, decl); err != nil {
			a.logger.Error("Pipeline validation failed.", "pipeline", decl.Name, "error", err)
			fmt.Fprintf(a.outW, "pipeline %s: %v\n", decl.Name, err)
			failed = append(failed, decl.Name)
		}
	}

	if len(failed) > 0 {
		return fmt.Errorf("%d of %d pipelines failed validation: %v", len(failed), len(a.model.Pipelines), failed)
	}
	a.logger.Info("All pipelines validated.", "count", len(a.model.Pipelines))

	if a.config.ListenPort > 0 {
		return a.serve(ctx)
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

// processPipeline runs assembly, validation, and graph building for one
// declared pipeline and prints the resulting graph.
func (a *App) processPipeline(ctx context.Context, decl *config.Pipeline) error {
	tail, err := pipeline.Assemble(ctx, decl, a.model, a.registry)
	if err != nil {
		return err
	}

	chain, err := pipeline.Validate(ctx, tail)
	if err != nil {
		var structural *pipeline.StructuralError
		if errors.As(err, &structural) {
			return fmt.Errorf("invalid structure: %w", structural)
		}
		return err
	}

	graph := pipeline.BuildGraph(ctx, chain)
	a.graphs.Put(decl.Name, graph)

	return a.printGraph(decl.Name, graph)
}

// printGraph renders a built graph as indented JSON on the app's writer.
func (a *App) printGraph(name string, graph *pipeline.Graph) error {
	rendered := struct {
		Pipeline string          `json:"pipeline"`
		Graph    *pipeline.Graph `json:"graph"`
	}{Pipeline: name, Graph: graph}

	out, err := json.MarshalIndent(rendered, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to render graph for pipeline '%s': %w", name, err)
	}
	fmt.Fprintln(a.outW, string(out))
	return nil
}
