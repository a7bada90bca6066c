package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/pipeweld/internal/config"
	"github.com/vk/pipeweld/internal/ctxlog"
	"github.com/vk/pipeweld/internal/stage"
)

// ValidateModel performs a strict parity check between a declaration model
// and the registered handlers: every source/sink must name a registered
// connector with the matching capability, and every transform must name a
// registered op. All mismatches are collected and reported together.
func (r *Registry) ValidateModel(ctx context.Context, model *config.Model) error {
	var errs []string
	logger := ctxlog.FromContext(ctx)

	for _, decl := range model.Stages {
		switch decl.Kind {
		case stage.Source:
			c, ok := r.Connector(decl.Connector)
			if !ok {
				errs = append(errs, fmt.Sprintf("stage '%s': unknown connector '%s'", decl.Name, decl.Connector))
				continue
			}
			if !c.Source {
				errs = append(errs, fmt.Sprintf("stage '%s': connector '%s' cannot act as a source", decl.Name, decl.Connector))
			}
		case stage.Sink:
			c, ok := r.Connector(decl.Connector)
			if !ok {
				errs = append(errs, fmt.Sprintf("stage '%s': unknown connector '%s'", decl.Name, decl.Connector))
				continue
			}
			if !c.Sink {
				errs = append(errs, fmt.Sprintf("stage '%s': connector '%s' cannot act as a sink", decl.Name, decl.Connector))
			}
		case stage.Transform:
			if _, ok := r.Transform(decl.Op); !ok {
				errs = append(errs, fmt.Sprintf("stage '%s': unknown transform op '%s'", decl.Name, decl.Op))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("declaration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}

	logger.Debug("Declaration parity check passed.", "stage_count", len(model.Stages))
	return nil
}
