package core

import (
	"sort"

	"github.com/specialistvlad/doccore/internal/definition"
	"github.com/specialistvlad/doccore/internal/instance"
	"github.com/specialistvlad/doccore/internal/value"
)

// cellVar groups the cells of one variable of one component.
type cellVar struct {
	component string
	name      string
}

// cellID identifies a cell within its variable.
type cellID struct {
	kind  definition.RefKind
	index int
	inst  string
}

type cellKey struct {
	v  cellVar
	id cellID
}

// cell is the cache of one slice at one instance. A stale cell keeps its
// last value so a definition may answer NoChange.
type cell struct {
	resolved bool
	hasValue bool
	value    value.Value
}

func cellIDOf(ref definition.StateRef, inst instance.Instance) cellID {
	return cellID{kind: ref.Kind, index: ref.Index, inst: inst.Key()}
}

func (id cellID) ref(name string) definition.StateRef {
	return definition.StateRef{Name: name, Kind: id.kind, Index: id.index}
}

func (c *Core) cell(component string, ref definition.StateRef, inst instance.Instance) *cell {
	cv := cellVar{component, ref.Name}
	byID, ok := c.cells[cv]
	if !ok {
		byID = make(map[cellID]*cell)
		c.cells[cv] = byID
	}
	id := cellIDOf(ref, inst)
	cl, ok := byID[id]
	if !ok {
		cl = &cell{}
		byID[id] = cl
	}
	return cl
}

// resolvedCells returns the resolved cells of a variable that match keep, in
// a stable order.
func (c *Core) resolvedCells(component, name string, keep func(cellID) bool) []cellID {
	var out []cellID
	for id, cl := range c.cells[cellVar{component, name}] {
		if cl.resolved && keep(id) {
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].inst != out[j].inst {
			return out[i].inst < out[j].inst
		}
		if out[i].kind != out[j].kind {
			return out[i].kind < out[j].kind
		}
		return out[i].index < out[j].index
	})
	return out
}
