package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// DeclPath points at a declaration file or a directory of them.
	DeclPath string

	LogFormat  string
	LogLevel   string
	ListenPort int
}

// NewConfig validates a Config and returns it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.DeclPath == "" {
		return nil, errors.New("DeclPath is a required configuration field and cannot be empty")
	}

	return &cfg, nil
}
