package builder

import (
	"github.com/specialistvlad/doccore/internal/definition"
	"github.com/specialistvlad/doccore/internal/depgraph"
	"github.com/specialistvlad/doccore/internal/model"
)

// shadowEdge returns the edge a key of a copy reads its source through, if
// the key is shadowed.
//
// A whole-component copy shadows every variable, except those reading an
// attribute the copy sets itself, those reading children when the copy has
// children of its own, and those reading the parent. The other copy sources
// shadow the primary input only.
func (b *builder) shadowEdge(name string, v definition.Variable, ref definition.StateRef, instrs map[string]definition.Instruction) (depgraph.Edge, bool) {
	c := b.tree.Components[name]
	switch cs := c.CopySource.(type) {
	case model.CopyOfComponent:
		if !inheritsVariable(c, instrs) {
			return nil, false
		}
		if _, ok := b.defs[cs.Source].Variable(ref.Name); !ok {
			return nil, false
		}
		rel := b.pinned(name, cs.Source, cs.Instance)
		if ref.Kind == definition.RefElement {
			return depgraph.CorrespondingEdge{Component: cs.Source, Array: ref.Name, Rel: rel}, true
		}
		return depgraph.StateVarEdge{Component: cs.Source, Slice: definition.Single(ref), Rel: rel}, true
	case nil:
		return nil, false
	default:
		if ref.Name != b.defs[name].PrimaryInput {
			return nil, false
		}
		return b.primarySourceEdge(name, name, ref)
	}
}

func inheritsVariable(c *model.Component, instrs map[string]definition.Instruction) bool {
	for _, instr := range instrs {
		switch in := instr.(type) {
		case definition.Attribute:
			if _, own := c.Attributes[in.Name]; own {
				return false
			}
		case definition.Essential:
			if _, own := c.Attributes[in.Prefill]; own && in.Prefill != "" {
				return false
			}
		case definition.Children:
			if len(c.Children) > 0 {
				return false
			}
		case definition.StateVar:
			if in.Target.Kind == definition.TargetParent {
				return false
			}
		}
	}
	return true
}

// primarySourceEdge returns the edge that reads, on behalf of dependent,
// what the primary input of copy shadows: a variable or element of the
// source, a dynamically indexed element, or the current map source.
func (b *builder) primarySourceEdge(copy, dependent string, ref definition.StateRef) (depgraph.Edge, bool) {
	switch cs := b.tree.Components[copy].CopySource.(type) {
	case model.CopyOfStateVar:
		idx, ok := cs.Index()
		if !ok {
			return nil, false
		}
		sv, exists := b.defs[cs.Source].Variable(cs.StateVar)
		if !exists {
			return nil, false
		}
		rel := b.pinned(dependent, cs.Source, nil)
		if idx > 0 {
			if !sv.IsArray() || ref.Kind != definition.RefBasic {
				return nil, false
			}
			return depgraph.StateVarEdge{Component: cs.Source, Slice: definition.Single(definition.Element(cs.StateVar, idx)), Rel: rel}, true
		}
		if !sv.IsArray() {
			if ref.Kind != definition.RefBasic {
				return nil, false
			}
			return depgraph.StateVarEdge{Component: cs.Source, Slice: definition.Single(definition.Basic(cs.StateVar)), Rel: rel}, true
		}
		switch ref.Kind {
		case definition.RefSize:
			return depgraph.StateVarEdge{Component: cs.Source, Slice: definition.Single(definition.SizeOf(cs.StateVar)), Rel: rel}, true
		case definition.RefElement:
			return depgraph.CorrespondingEdge{Component: cs.Source, Array: cs.StateVar, Rel: rel}, true
		}
		return depgraph.StateVarEdge{Component: cs.Source, Slice: definition.Array(cs.StateVar), Rel: rel}, true

	case model.CopyOfDynamicElement:
		if ref.Kind != definition.RefBasic {
			return nil, false
		}
		return depgraph.DynamicElementEdge{
			Component:      cs.Source,
			Array:          cs.StateVar,
			Rel:            b.pinned(dependent, cs.Source, nil),
			IndexComponent: cs.IndexComponent,
			IndexRef:       definition.Basic(cs.IndexStateVar),
			IndexRel:       b.pinned(dependent, cs.IndexComponent, nil),
		}, true

	case model.CopyOfMapSource:
		if dependent != copy || ref.Kind != definition.RefBasic {
			return nil, false
		}
		for level, m := range b.graph.Scopes[copy] {
			if m == cs.Map {
				return depgraph.MapSourcesEdge{Map: cs.Map, StateVar: ref.Name, Level: level}, true
			}
		}
	}
	return nil, false
}
