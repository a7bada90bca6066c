package pipeline

import (
	"context"
	"fmt"

	"github.com/vk/pipeweld/internal/config"
	"github.com/vk/pipeweld/internal/ctxlog"
	"github.com/vk/pipeweld/internal/registry"
	"github.com/vk/pipeweld/internal/stage"
)

// Assemble resolves a pipeline declaration against the model and registry,
// constructs a descriptor for each referenced stage, and links them in
// declared order. It returns the tail descriptor, the conventional entry
// point handed to Validate.
//
// Assembly only resolves references; structural rules are left entirely to
// Validate, so an assembled chain may still be structurally invalid.
func Assemble(ctx context.Context, decl *config.Pipeline, model *config.Model, reg *registry.Registry) (*stage.Descriptor, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Assembling pipeline.", "pipeline", decl.Name, "stage_count", len(decl.Stages))

	if len(decl.Stages) == 0 {
		return nil, fmt.Errorf("pipeline '%s' declares no stages", decl.Name)
	}

	var tail *stage.Descriptor
	for _, name := range decl.Stages {
		sd, ok := model.Stages[name]
		if !ok {
			return nil, fmt.Errorf("pipeline '%s' references undeclared stage '%s'", decl.Name, name)
		}

		d, err := newDescriptor(sd, reg)
		if err != nil {
			return nil, fmt.Errorf("pipeline '%s': %w", decl.Name, err)
		}

		if tail == nil {
			tail = d
		} else {
			tail = tail.Then(d)
		}
	}

	return tail, nil
}

// newDescriptor builds a single descriptor from its declaration, attaching
// the registered handler as the opaque work reference.
func newDescriptor(sd *config.Stage, reg *registry.Registry) (*stage.Descriptor, error) {
	switch sd.Kind {
	case stage.Source:
		c, ok := reg.Connector(sd.Connector)
		if !ok {
			return nil, fmt.Errorf("stage '%s': unknown connector '%s'", sd.Name, sd.Connector)
		}
		return stage.NewSource(sd.Name, sd.Connector, sd.Options, c.Handler), nil
	case stage.Sink:
		c, ok := reg.Connector(sd.Connector)
		if !ok {
			return nil, fmt.Errorf("stage '%s': unknown connector '%s'", sd.Name, sd.Connector)
		}
		return stage.NewSink(sd.Name, sd.Connector, sd.Options, c.Handler), nil
	case stage.Transform:
		t, ok := reg.Transform(sd.Op)
		if !ok {
			return nil, fmt.Errorf("stage '%s': unknown transform op '%s'", sd.Name, sd.Op)
		}
		return stage.NewTransform(sd.Name, sd.Options, t.Handler), nil
	default:
		return nil, fmt.Errorf("stage '%s': unsupported kind %d", sd.Name, sd.Kind)
	}
}
