package config

import "context"

// Loader is the interface for a format-specific declaration loader.
type Loader interface {
	// Load reads declarations from the given paths (files or directories),
	// translates them into the format-agnostic model, and rejects
	// duplicate stage or pipeline names.
	Load(ctx context.Context, paths ...string) (*Model, error)
}
