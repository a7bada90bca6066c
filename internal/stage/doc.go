// Package stage defines the descriptor model for pipeline stages: the
// typed building blocks (source, transform, sink) that callers chain into
// a doubly-linked sequence before handing it to the validator.
//
// A descriptor only records what a stage would do: its name, kind,
// connector tag, configuration snapshot, and a reference to the
// caller-supplied work. Nothing in this module ever invokes that work or
// interprets the configuration.
package stage
