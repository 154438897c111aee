package core

import (
	"github.com/specialistvlad/doccore/internal/definition"
	"github.com/specialistvlad/doccore/internal/depgraph"
	"github.com/specialistvlad/doccore/internal/essential"
	"github.com/specialistvlad/doccore/internal/instance"
)

// invalidateEssential marks stale every cell that read a written datum.
// element is the written element index of an array datum, or 0; grew tells
// whether the array's size changed.
func (c *Core) invalidateEssential(key essential.Key, inst instance.Instance, element int, grew bool) int {
	stale := 0
	for _, r := range c.graph.EssentialReadsOf(key) {
		only := 0
		switch r.Mode {
		case depgraph.EssentialSize:
			if !grew {
				continue
			}
		case depgraph.EssentialElement:
			if element == 0 {
				continue
			}
			only = element
		}
		prefix, ok := r.Rel.Reverse(inst)
		if !ok {
			continue
		}
		stale += c.invalidateReaders(r.From, prefix, only)
	}
	return stale
}

// invalidateReaders marks stale the resolved cells compiled under from whose
// instance starts with prefix. A positive only restricts elements to that
// index.
func (c *Core) invalidateReaders(from depgraph.VarKey, prefix instance.Instance, only int) int {
	ids := c.resolvedCells(from.Component, from.Ref.Name, func(id cellID) bool {
		if id.kind != from.Ref.Kind {
			return false
		}
		if id.kind == definition.RefElement {
			if only > 0 && id.index != only {
				return false
			}
			if from.Ref.Index > 0 && id.index != from.Ref.Index {
				return false
			}
			if from.Ref.Index == 0 && c.graph.IsSpecialized(from.Component, from.Ref.Name, id.index) {
				return false
			}
		}
		return instance.FromKey(id.inst).HasPrefix(prefix)
	})

	stale := 0
	for _, id := range ids {
		stale += c.invalidateCell(from.Component, id.ref(from.Ref.Name), instance.FromKey(id.inst))
	}
	return stale
}

// invalidateCell marks one cell stale and walks the reverse reads of what it
// holds. Cells that are already stale end the walk: a resolved cell only
// ever depends on resolved cells.
func (c *Core) invalidateCell(component string, ref definition.StateRef, inst instance.Instance) int {
	cl, ok := c.cells[cellVar{component, ref.Name}][cellIDOf(ref, inst)]
	if !ok || !cl.resolved {
		return 0
	}
	cl.resolved = false
	stale := 1
	c.logger.Debug("Core: Invalidated.", "component", component, "instance", inst.String(), "ref", ref.String())

	for _, r := range c.graph.ReadsOf(component) {
		if r.Name != ref.Name || !readMatches(r, ref) {
			continue
		}
		prefix, ok := r.Rel.Reverse(inst)
		if !ok {
			continue
		}
		only := 0
		if r.Kind == depgraph.ReadCorresponding && ref.Kind == definition.RefElement {
			only = ref.Index
		}
		stale += c.invalidateReaders(r.From, prefix, only)
	}

	// Elements are resolved against their array's size.
	if ref.Kind == definition.RefSize {
		key := inst.Key()
		for _, id := range c.resolvedCells(component, ref.Name, func(id cellID) bool {
			return id.kind == definition.RefElement && id.inst == key
		}) {
			stale += c.invalidateCell(component, id.ref(ref.Name), inst)
		}
	}
	return stale
}

// readMatches reports whether a read covers a written slice: whole-array
// reads and size writes always match, element writes only match the same
// element.
func readMatches(r depgraph.Read, written definition.StateRef) bool {
	if r.Kind == depgraph.ReadAny {
		return true
	}
	switch written.Kind {
	case definition.RefSize:
		return true
	case definition.RefElement:
		return r.Kind == depgraph.ReadCorresponding || (r.Kind == depgraph.ReadElement && r.Index == written.Index)
	}
	return r.Kind == depgraph.ReadBasic
}
