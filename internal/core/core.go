package core

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/specialistvlad/doccore/internal/builder"
	"github.com/specialistvlad/doccore/internal/ctxlog"
	"github.com/specialistvlad/doccore/internal/definition"
	"github.com/specialistvlad/doccore/internal/depgraph"
	"github.com/specialistvlad/doccore/internal/docerr"
	"github.com/specialistvlad/doccore/internal/essential"
	"github.com/specialistvlad/doccore/internal/instance"
	"github.com/specialistvlad/doccore/internal/model"
	"github.com/specialistvlad/doccore/internal/validate"
	"github.com/specialistvlad/doccore/internal/value"
)

// Option configures New.
type Option func(*options)

type options struct {
	prior *essential.Store
}

// WithEssential seeds the new core with essential data from a previous core
// of the same document, so user edits survive a reload.
func WithEssential(prior *essential.Store) Option {
	return func(o *options) { o.prior = prior }
}

// Core is one live document.
type Core struct {
	logger *slog.Logger
	tree   *model.Tree
	cat    definition.Catalogue
	defs   map[string]*definition.Component
	graph  *depgraph.Graph
	store  *essential.Store

	cells     map[cellVar]map[cellID]*cell
	resolving map[cellKey]bool
}

// New validates the tree, compiles its dependency graph and returns a core
// ready to resolve. No core is returned when any check fails.
func New(ctx context.Context, tree *model.Tree, cat definition.Catalogue, opts ...Option) (*Core, []docerr.Warning, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Core: Validating component tree.", "root", tree.Root)

	if err := validate.Components(tree, cat); err != nil {
		return nil, nil, err
	}
	if err := validate.CopyCycles(tree); err != nil {
		return nil, nil, err
	}
	warnings, err := validate.CopySources(tree, cat)
	if err != nil {
		return nil, nil, err
	}

	store := essential.New()
	if o.prior != nil {
		store.Import(o.prior)
	}
	graph, buildWarnings, err := builder.Build(ctx, tree, cat, store)
	if err != nil {
		return nil, nil, err
	}
	warnings = append(warnings, buildWarnings...)

	if err := validate.DependencyCycles(graph); err != nil {
		return nil, nil, err
	}
	logger.Debug("Core: Dependency graph is acyclic.")

	defs := make(map[string]*definition.Component, len(tree.Components))
	for name, comp := range tree.Components {
		defs[name], _ = cat.Lookup(comp.Type)
	}

	c := &Core{
		logger:    logger,
		tree:      tree,
		cat:       cat,
		defs:      defs,
		graph:     graph,
		store:     store,
		cells:     make(map[cellVar]map[cellID]*cell),
		resolving: make(map[cellKey]bool),
	}
	for _, w := range warnings {
		logger.Debug("Core: Construction warning.", "warning", w.String())
	}
	return c, warnings, nil
}

// Tree returns the component tree the core was built from.
func (c *Core) Tree() *model.Tree { return c.tree }

// Graph returns the compiled dependency graph.
func (c *Core) Graph() *depgraph.Graph { return c.graph }

// Essential returns a snapshot of the essential data, suitable for
// WithEssential.
func (c *Core) Essential() *essential.Store { return c.store.Snapshot() }

// Resolve returns the current value of a slice of a component's variable at
// an instance. ok is false when the slice does not exist there.
func (c *Core) Resolve(ctx context.Context, component string, inst instance.Instance, ref definition.StateRef) (value.Value, bool, error) {
	c.logger = ctxlog.FromContext(ctx)
	def, ok := c.defs[component]
	if !ok {
		return value.Value{}, false, &docerr.Error{Kind: docerr.ComponentNotFound, Target: component}
	}
	v, ok := def.Variable(ref.Name)
	if !ok {
		return value.Value{}, false, &docerr.Error{Kind: docerr.StateVarNotFound, Component: component, Target: ref.Name}
	}
	if v.IsArray() == (ref.Kind == definition.RefBasic) {
		return value.Value{}, false, fmt.Errorf("reference %s does not match the shape of %s.%s", ref, component, ref.Name)
	}
	return c.resolve(component, inst, ref)
}

// IsResolved reports whether a slice currently holds a cached value.
func (c *Core) IsResolved(component string, inst instance.Instance, ref definition.StateRef) bool {
	cl, ok := c.cells[cellVar{component, ref.Name}][cellIDOf(ref, inst)]
	return ok && cl.resolved
}
