package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/pipeweld/internal/builtins"
	"github.com/vk/pipeweld/internal/config"
	"github.com/vk/pipeweld/internal/ctxlog"
	"github.com/vk/pipeweld/internal/graphstore"
	"github.com/vk/pipeweld/internal/registry"
)

// RegisterFunc adds connectors and transform ops to a registry.
type RegisterFunc func(*registry.Registry)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	registry *registry.Registry
	model    *config.Model
	graphs   *graphstore.Store
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger, a populated
// registry, and the declaration model already loaded and parity-checked.
// Critical startup failures panic; the CLI entrypoint recovers them into a
// clean exit.
func NewApp(outW io.Writer, appConfig *Config, loader config.Loader, registerFns ...RegisterFunc) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	model, err := loader.Load(ctx, appConfig.DeclPath)
	if err != nil {
		// A failure to load declarations is a fatal startup error.
		panic(fmt.Errorf("failed to load declarations: %w", err))
	}
	logger.Debug("Declarations loaded into unified model.", "stages", len(model.Stages), "pipelines", len(model.Pipelines))

	reg := registry.New()
	if len(registerFns) == 0 {
		registerFns = []RegisterFunc{builtins.Register}
	}
	for _, register := range registerFns {
		register(reg)
	}
	logger.Debug("Connector and transform handlers registered.")

	if err := reg.ValidateModel(ctx, model); err != nil {
		panic(err)
	}
	logger.Debug("Declaration parity check passed.")

	return &App{
		outW:     outW,
		logger:   logger,
		config:   appConfig,
		registry: reg,
		model:    model,
		graphs:   graphstore.New(),
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Model returns the loaded declaration model. This is primarily for testing.
func (a *App) Model() *config.Model {
	return a.model
}
