package config

import (
	"github.com/vk/pipeweld/internal/stage"
	"github.com/zclconf/go-cty/cty"
)

// Model is the unified representation of everything a declaration file set
// describes: the stage declarations and the pipelines that chain them.
type Model struct {
	// Stages holds every declared stage, keyed by its unique name.
	Stages map[string]*Stage
	// Pipelines holds the declared pipelines in file order.
	Pipelines []*Pipeline
}

// NewModel returns an empty, initialized model.
func NewModel() *Model {
	return &Model{
		Stages: make(map[string]*Stage),
	}
}

// Stage is the format-agnostic representation of a single stage declaration.
type Stage struct {
	// Name is the unique instance name of the stage.
	Name string
	// Kind is the declared role: source, transform, or sink.
	Kind stage.Kind
	// Connector is the connector tag for sources and sinks ("kafka",
	// "bigquery", ...). Empty for transforms.
	Connector string
	// Op is the registered transform operation name. Empty for sources
	// and sinks.
	Op string
	// Options is the stage's configuration payload, already evaluated to a
	// concrete value. Its meaning is entirely connector/op-defined.
	Options cty.Value
}

// Pipeline is the format-agnostic representation of a pipeline declaration:
// an ordered list of stage names to be chained head to tail.
type Pipeline struct {
	Name   string
	Stages []string
}
