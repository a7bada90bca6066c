package registry

import (
	"fmt"
	"log/slog"
)

// Connector describes a registered connector tag and which stage roles it
// may be declared as.
type Connector struct {
	// Tag is the connector identifier used in declarations ("kafka", ...).
	Tag string
	// Source is true if the connector may back a source stage.
	Source bool
	// Sink is true if the connector may back a sink stage.
	Sink bool
	// Handler is the opaque work reference attached to descriptors built
	// from this connector. It is never invoked.
	Handler any
}

// TransformOp describes a registered transform operation.
type TransformOp struct {
	// Op is the operation identifier used in declarations ("drop_columns", ...).
	Op string
	// Handler is the opaque work reference attached to descriptors built
	// from this op. It is never invoked.
	Handler any
}

// Registry holds all registered connectors and transform operations for a
// single application instance.
type Registry struct {
	connectors map[string]*Connector
	transforms map[string]*TransformOp
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{
		connectors: make(map[string]*Connector),
		transforms: make(map[string]*TransformOp),
	}
}

// RegisterConnector registers a connector tag. Registering the same tag
// twice is a programmer error and panics.
func (r *Registry) RegisterConnector(c *Connector) {
	if _, exists := r.connectors[c.Tag]; exists {
		panic(fmt.Sprintf("connector with tag '%s' already registered", c.Tag))
	}
	slog.Debug("Registering connector.", "tag", c.Tag, "source", c.Source, "sink", c.Sink)
	r.connectors[c.Tag] = c
}

// RegisterTransform registers a transform operation. Registering the same
// op twice is a programmer error and panics.
func (r *Registry) RegisterTransform(t *TransformOp) {
	if _, exists := r.transforms[t.Op]; exists {
		panic(fmt.Sprintf("transform op '%s' already registered", t.Op))
	}
	slog.Debug("Registering transform op.", "op", t.Op)
	r.transforms[t.Op] = t
}

// Connector looks up a connector by tag.
func (r *Registry) Connector(tag string) (*Connector, bool) {
	c, ok := r.connectors[tag]
	return c, ok
}

// Transform looks up a transform operation by name.
func (r *Registry) Transform(op string) (*TransformOp, bool) {
	t, ok := r.transforms[op]
	return t, ok
}
