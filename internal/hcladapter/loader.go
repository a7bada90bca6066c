// Package hcladapter is the HCL-specific implementation of the
// config.Loader interface. It discovers .hcl declaration files, decodes
// their stage and pipeline blocks, and statically evaluates each stage's
// options into an opaque value.
package hcladapter

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/pipeweld/internal/config"
	"github.com/vk/pipeweld/internal/ctxlog"
	"github.com/vk/pipeweld/internal/fsutil"
	"github.com/vk/pipeweld/internal/stage"
	"github.com/zclconf/go-cty/cty"
)

// Loader loads pipeline declarations from HCL files.
type Loader struct{}

// NewLoader creates a new HCL declaration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// fileRoot decodes all supported top-level blocks from one file.
type fileRoot struct {
	Sources    []*connectorBlock `hcl:"source,block"`
	Transforms []*transformBlock `hcl:"transform,block"`
	Sinks      []*connectorBlock `hcl:"sink,block"`
	Pipelines  []*pipelineBlock  `hcl:"pipeline,block"`
	Remain     hcl.Body          `hcl:",remain"`
}

// connectorBlock is the shared shape of `source` and `sink` blocks:
// two labels (connector tag, instance name) and an options attribute.
type connectorBlock struct {
	Connector string         `hcl:"connector,label"`
	Name      string         `hcl:"name,label"`
	Options   hcl.Expression `hcl:"options,optional"`
}

type transformBlock struct {
	Op      string         `hcl:"op,label"`
	Name    string         `hcl:"name,label"`
	Options hcl.Expression `hcl:"options,optional"`
}

type pipelineBlock struct {
	Name   string   `hcl:"name,label"`
	Stages []string `hcl:"stages"`
}

// Load reads every .hcl file under the given paths and merges the declared
// blocks into a single model. Duplicate stage or pipeline names across the
// whole file set are rejected.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := fsutil.FindFiles(paths, ".hcl")
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered declaration files.", "count", len(files))

	model := config.NewModel()
	parser := hclparse.NewParser()

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		for _, b := range root.Sources {
			if err := addStage(model, b.Name, stage.Source, b.Connector, "", b.Options); err != nil {
				return nil, fmt.Errorf("%s: %w", file, err)
			}
		}
		for _, b := range root.Transforms {
			if err := addStage(model, b.Name, stage.Transform, "", b.Op, b.Options); err != nil {
				return nil, fmt.Errorf("%s: %w", file, err)
			}
		}
		for _, b := range root.Sinks {
			if err := addStage(model, b.Name, stage.Sink, b.Connector, "", b.Options); err != nil {
				return nil, fmt.Errorf("%s: %w", file, err)
			}
		}
		for _, b := range root.Pipelines {
			for _, existing := range model.Pipelines {
				if existing.Name == b.Name {
					return nil, fmt.Errorf("%s: duplicate pipeline name '%s'", file, b.Name)
				}
			}
			model.Pipelines = append(model.Pipelines, &config.Pipeline{Name: b.Name, Stages: b.Stages})
		}
	}

	logger.Debug("HCL loading complete.", "stages", len(model.Stages), "pipelines", len(model.Pipelines))
	return model, nil
}

// addStage evaluates a block's options and merges the declaration into the
// model, rejecting duplicate names.
func addStage(model *config.Model, name string, kind stage.Kind, connector, op string, options hcl.Expression) error {
	if _, exists := model.Stages[name]; exists {
		return fmt.Errorf("duplicate stage name '%s'", name)
	}

	opts, err := evalOptions(options)
	if err != nil {
		return fmt.Errorf("stage '%s': %w", name, err)
	}

	model.Stages[name] = &config.Stage{
		Name:      name,
		Kind:      kind,
		Connector: connector,
		Op:        op,
		Options:   opts,
	}
	return nil
}

// evalOptions statically evaluates an options expression. Declarations may
// not reference variables or functions; the value must be known up front.
func evalOptions(expr hcl.Expression) (cty.Value, error) {
	if expr == nil {
		return cty.EmptyObjectVal, nil
	}

	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return cty.NilVal, fmt.Errorf("failed to evaluate options: %w", diags)
	}
	if val.IsNull() {
		return cty.EmptyObjectVal, nil
	}
	if !val.IsWhollyKnown() {
		return cty.NilVal, fmt.Errorf("options must be statically known")
	}
	return val, nil
}
