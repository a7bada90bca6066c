// Package builtins registers the connector tags and transform operations
// that ship with the CLI. The handlers are named placeholders: they give
// assembled descriptors a concrete Work reference without committing
// pipeweld to any connector protocol.
package builtins

import (
	"github.com/vk/pipeweld/internal/registry"
)

// Handler is the opaque work reference builtins attach to descriptors. It
// only records which registered name a descriptor was assembled from.
type Handler struct {
	Name string
}

// Register adds the built-in connectors and transform ops to the registry.
func Register(r *registry.Registry) {
	for _, c := range []*registry.Connector{
		{Tag: "kafka", Source: true, Handler: &Handler{Name: "kafka"}},
		{Tag: "bigquery", Sink: true, Handler: &Handler{Name: "bigquery"}},
		{Tag: "postgres", Source: true, Sink: true, Handler: &Handler{Name: "postgres"}},
		{Tag: "file", Source: true, Sink: true, Handler: &Handler{Name: "file"}},
		{Tag: "stdout", Sink: true, Handler: &Handler{Name: "stdout"}},
	} {
		r.RegisterConnector(c)
	}

	for _, t := range []*registry.TransformOp{
		{Op: "drop_columns", Handler: &Handler{Name: "drop_columns"}},
		{Op: "rename", Handler: &Handler{Name: "rename"}},
		{Op: "filter", Handler: &Handler{Name: "filter"}},
	} {
		r.RegisterTransform(t)
	}
}
