package stage

import (
	"github.com/zclconf/go-cty/cty"
)

// Kind distinguishes the three roles a stage can play in a pipeline.
type Kind int

const (
	// Source produces data into the pipeline.
	Source Kind = iota
	// Transform reshapes data flowing through the pipeline.
	Transform
	// Sink receives the pipeline's output. It is terminal.
	Sink
)

// String returns the lower-case name of the kind, matching how stages are
// declared in configuration files.
func (k Kind) String() string {
	switch k {
	case Source:
		return "source"
	case Transform:
		return "transform"
	case Sink:
		return "sink"
	default:
		return "unknown"
	}
}

// Descriptor is a single declared stage and its position in a chain.
//
// The link fields are unexported to enforce that chains are only ever built
// through Then, which keeps the next/prev pointers of adjacent descriptors
// mutually consistent.
type Descriptor struct {
	// Name is the human-readable instance name, unique within a chain.
	// It becomes the key in the built execution graph.
	Name string
	// Kind is the stage's role in the pipeline.
	Kind Kind
	// Subtype is the connector tag for sources and sinks (e.g. "kafka",
	// "bigquery"). It is empty for transforms.
	Subtype string
	// Config is the configuration snapshot captured at construction time.
	// It is opaque data: carried through into the graph, never inspected.
	Config cty.Value
	// Work is an opaque reference to the caller-supplied stage logic.
	// Nothing in this module ever invokes it.
	Work any

	next *Descriptor
	prev *Descriptor
}

// NewSource creates a source descriptor with the given connector tag.
// The returned descriptor is unlinked.
func NewSource(name, connector string, config cty.Value, work any) *Descriptor {
	return &Descriptor{
		Name:    name,
		Kind:    Source,
		Subtype: connector,
		Config:  config,
		Work:    work,
	}
}

// NewTransform creates a transform descriptor. Transforms carry no
// connector tag. The returned descriptor is unlinked.
func NewTransform(name string, config cty.Value, work any) *Descriptor {
	return &Descriptor{
		Name:   name,
		Kind:   Transform,
		Config: config,
		Work:   work,
	}
}

// NewSink creates a sink descriptor with the given connector tag.
// The returned descriptor is unlinked.
func NewSink(name, connector string, config cty.Value, work any) *Descriptor {
	return &Descriptor{
		Name:    name,
		Kind:    Sink,
		Subtype: connector,
		Config:  config,
		Work:    work,
	}
}

// Then links next directly after d and returns next, so chains compose
// left to right:
//
//	tail := src.Then(clean).Then(write)
//
// Both descriptors are mutated in place; each intermediate result is the
// just-linked descriptor, which becomes the left operand of the next call.
func (d *Descriptor) Then(next *Descriptor) *Descriptor {
	d.next = next
	next.prev = d
	return next
}

// Next returns the descriptor immediately after d, or nil at the tail.
func (d *Descriptor) Next() *Descriptor {
	return d.next
}

// Prev returns the descriptor immediately before d, or nil at the head.
func (d *Descriptor) Prev() *Descriptor {
	return d.prev
}

// First walks the prev links from d and returns the head of the chain.
// Chains only ever grow by appending forward, so the walk terminates in
// O(chain length).
func (d *Descriptor) First() *Descriptor {
	current := d
	for current.prev != nil {
		current = current.prev
	}
	return current
}
