package validate

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/doccore/internal/dag"
	"github.com/specialistvlad/doccore/internal/definition"
	"github.com/specialistvlad/doccore/internal/depgraph"
	"github.com/specialistvlad/doccore/internal/docerr"
)

// DependencyCycles walks the compiled reads depth first from every key. A key
// met again on the current path is a cycle, reported as the distinct
// component names on it, in order. Copies read through their source still
// appear on the path.
func DependencyCycles(g *depgraph.Graph) error {
	d := dag.New()
	owner := make(map[string]string)
	for _, vk := range g.VarKeys() {
		id := vk.String()
		d.AddNode(id)
		owner[id] = vk.Component
	}

	link := func(from, to depgraph.VarKey) error {
		if err := d.AddEdge(from.String(), to.String()); err != nil {
			return fmt.Errorf("linking %s to %s: %w", from, to, err)
		}
		return nil
	}

	for _, vk := range g.VarKeys() {
		// An element is only resolved after its array's size.
		if vk.Ref.Kind == definition.RefElement {
			size := depgraph.VarKey{Component: vk.Component, Ref: definition.SizeOf(vk.Ref.Name)}
			if err := link(vk, size); err != nil {
				return err
			}
		}
	}
	for _, r := range g.AllReads() {
		// A read that skips a copy goes through the copy's own key, which
		// reads the source in turn.
		if r.Via.Component != "" {
			if via, ok := g.Compiled(r.Via.Component, r.Via.Ref); ok {
				if err := link(r.From, via); err != nil {
					return err
				}
				continue
			}
		}
		for _, to := range g.ReadTargets(r) {
			if err := link(r.From, to); err != nil {
				return err
			}
		}
	}

	err := d.DetectCycles()
	if err == nil {
		return nil
	}
	var cycle *dag.CycleError
	if !errors.As(err, &cycle) {
		return err
	}

	var chain []string
	seen := make(map[string]bool)
	for _, id := range cycle.Path {
		c := owner[id]
		if !seen[c] {
			seen[c] = true
			chain = append(chain, c)
		}
	}
	return &docerr.Error{Kind: docerr.CyclicalDependency, Component: chain[0], Chain: chain}
}
