// Package pipeline validates stage chains and flattens them into execution
// graphs.
//
// Validation is a single forward walk over a chain's kinds, checked against
// an adjacency table: a pipeline starts with a source, ends with a sink, and
// every adjacent pair must be a legal succession. The walk accumulates into
// a chain local to the call, so validating the same chain twice yields the
// same result.
//
// The built graph is a descriptive projection only: a name-keyed summary of
// a validated chain. It is never executed, scheduled, or retried here.
package pipeline
