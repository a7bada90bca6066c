// Package config holds the format-agnostic declaration model that every
// loader (HCL, YAML, TOML) produces. The model captures the user's intent,
// which stages exist and in what order each pipeline chains them, without
// committing to any on-disk syntax.
package config
