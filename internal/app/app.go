package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/specialistvlad/doccore/internal/ctxlog"
	"github.com/specialistvlad/doccore/internal/hcldoc"
	"github.com/specialistvlad/doccore/internal/model"
	"github.com/specialistvlad/doccore/internal/registry"
	"github.com/specialistvlad/doccore/modules/catalog"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW       io.Writer
	logger     *slog.Logger
	ctx        context.Context
	config     *Config
	registry   *registry.Registry
	tree       *model.Tree
	httpServer *http.Server
}

// NewApp is the constructor for the main application. Results are written to
// outW and logs to logW. Without modules the built-in catalogue is used.
// A document that cannot be loaded is a fatal startup error and panics.
func NewApp(outW, logW io.Writer, cfg *Config, modules ...registry.Module) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	tree, err := hcldoc.Load(ctx, cfg.DocumentPath)
	if err != nil {
		panic(err)
	}
	logger.Debug("Document loaded.", "root", tree.Root, "components", len(tree.Components))

	var reg *registry.Registry
	if len(modules) == 0 {
		reg, err = catalog.Default()
	} else {
		reg = registry.NewWithModules(modules...)
		err = reg.Validate()
	}
	if err != nil {
		// A component definition that does not hold together is a programmer error.
		panic(fmt.Errorf("invalid component catalogue: %w", err))
	}
	logger.Debug("Component catalogue ready.", "types", len(reg.Types()))

	return &App{
		outW:     outW,
		logger:   logger,
		ctx:      ctx,
		config:   cfg,
		registry: reg,
		tree:     tree,
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Tree returns the loaded document.
func (a *App) Tree() *model.Tree {
	return a.tree
}
