package builder

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/specialistvlad/doccore/internal/ctxlog"
	"github.com/specialistvlad/doccore/internal/definition"
	"github.com/specialistvlad/doccore/internal/depgraph"
	"github.com/specialistvlad/doccore/internal/docerr"
	"github.com/specialistvlad/doccore/internal/essential"
	"github.com/specialistvlad/doccore/internal/instance"
	"github.com/specialistvlad/doccore/internal/model"
)

// builder carries the state of one Build call.
type builder struct {
	logger   *slog.Logger
	tree     *model.Tree
	cat      definition.Catalogue
	defs     map[string]*definition.Component
	store    *essential.Store
	graph    *depgraph.Graph
	warnings []docerr.Warning
	// rejected holds, per parent, the children it does not accept.
	rejected map[string]map[string]bool
}

// Build compiles the tree into a dependency graph, allocating essential data
// in store. Warnings are returned alongside a usable graph.
func Build(ctx context.Context, tree *model.Tree, cat definition.Catalogue, store *essential.Store) (*depgraph.Graph, []docerr.Warning, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Build: Starting dependency graph construction.", "component_count", len(tree.Components))

	b := &builder{
		logger:   logger,
		tree:     tree,
		cat:      cat,
		defs:     make(map[string]*definition.Component, len(tree.Components)),
		store:    store,
		graph:    depgraph.New(),
		rejected: make(map[string]map[string]bool),
	}

	// First pass: bind definitions.
	if err := b.bindDefinitions(); err != nil {
		return nil, nil, err
	}
	logger.Debug("Build: Definitions bound.")

	// Second pass: structure.
	b.computeScopes()
	b.computeGroups()
	b.computeAliases()
	b.checkChildren()
	logger.Debug("Build: Structure computed.",
		"group_count", len(b.graph.Collections),
		"map_count", len(b.graph.Maps),
		"alias_count", len(b.graph.Aliases),
		"warning_count", len(b.warnings))

	// Third pass: compile every state variable.
	for _, name := range b.tree.SortedNames() {
		if err := b.compileComponent(name); err != nil {
			return nil, nil, err
		}
	}
	logger.Debug("Build: Variables compiled.", "key_count", len(b.graph.VarKeys()))

	logger.Debug("Build: Dependency graph construction successful.")
	return b.graph, b.warnings, nil
}

func (b *builder) bindDefinitions() error {
	for _, name := range b.tree.SortedNames() {
		c := b.tree.Components[name]
		def, ok := b.cat.Lookup(c.Type)
		if !ok {
			return &docerr.Error{Kind: docerr.InvalidComponentType, Component: name, Target: c.Type}
		}
		b.defs[name] = def
	}
	return nil
}

// rel is the relative instance of an edge from dependent to target. Extra
// maps of the target stay free: the edge stands for every repetition.
func (b *builder) rel(dependent, target string) instance.Relative {
	return instance.Between(b.graph.Scopes[dependent], b.graph.Scopes[target])
}

// pinned is like rel, but pins the extra maps of the target to fixed,
// defaulting to the first repetition.
func (b *builder) pinned(dependent, target string, fixed []int) instance.Relative {
	r := b.rel(dependent, target)
	if len(b.graph.Scopes[target]) > r.Common {
		if len(fixed) == 0 {
			fixed = []int{1}
		}
		r = r.WithFixed(fixed)
	}
	return r
}

// copyFixed returns the repetition a whole-component copy chain selects when
// dependent reads an inherited child owned by owner.
func (b *builder) copyFixed(dependent, owner string) []int {
	name := dependent
	seen := map[string]bool{}
	for !seen[name] && name != owner {
		seen[name] = true
		cc, ok := b.tree.WholeCopySource(name)
		if !ok {
			return nil
		}
		if len(cc.Instance) > 0 {
			return cc.Instance
		}
		name = cc.Source
	}
	return nil
}

func (b *builder) add(vk depgraph.VarKey, instruction string, edges ...depgraph.Edge) {
	b.graph.AddEdges(depgraph.Key{Var: vk, Instruction: instruction}, edges...)
	for _, e := range edges {
		b.recordReads(vk, e)
	}
}

func (b *builder) seed(key essential.Key, d essential.Datum) {
	if b.store.Create(key, d) {
		b.logger.Debug("Build: Essential data allocated.", "key", key.String(), "array", d.IsArray())
	}
}

func stateVarNotFound(component, name string) error {
	return &docerr.Error{Kind: docerr.StateVarNotFound, Component: component, Target: name}
}

func componentNotFound(referrer, name string) error {
	return &docerr.Error{Kind: docerr.ComponentNotFound, Component: referrer, Target: name}
}

func wrapKey(vk depgraph.VarKey, instruction string, err error) error {
	return fmt.Errorf("compiling %s instruction %q: %w", vk, instruction, err)
}

func (b *builder) memberDefinition(batch *definition.Batch) (*definition.Component, bool) {
	if batch == nil {
		return nil, false
	}
	return b.cat.Lookup(batch.MemberType)
}
