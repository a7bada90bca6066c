// Package app wires the application together: it owns the logger, the
// connector registry, the loaded declaration model, and the store of built
// graphs, and drives the validate-and-flatten loop over every declared
// pipeline.
package app
