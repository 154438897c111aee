package builder

import (
	"github.com/specialistvlad/doccore/internal/definition"
	"github.com/specialistvlad/doccore/internal/depgraph"
	"github.com/specialistvlad/doccore/internal/instance"
)

// recordReads adds the reverse view of an edge compiled for from.
func (b *builder) recordReads(from depgraph.VarKey, e depgraph.Edge) {
	switch e := e.(type) {
	case depgraph.EssentialEdge:
		b.graph.AddEssentialRead(e.Key, depgraph.EssentialRead{From: from, Mode: e.Mode, Rel: e.Rel})
	case depgraph.StateVarEdge:
		b.readSlice(from, e.Component, e.Slice, e.Rel, e.Via)
	case depgraph.CorrespondingEdge:
		b.graph.AddRead(depgraph.Read{From: from, Target: e.Component, Name: e.Array, Kind: depgraph.ReadCorresponding, Rel: e.Rel})
	case depgraph.DynamicElementEdge:
		b.graph.AddRead(depgraph.Read{From: from, Target: e.Component, Name: e.Array, Kind: depgraph.ReadAny, Rel: e.Rel, Via: e.Via})
		b.readSlice(from, e.IndexComponent, definition.Single(e.IndexRef), e.IndexRel, depgraph.VarKey{})
	case depgraph.UndeterminedChildrenEdge:
		b.readMembers(from, b.graph.Collections[e.Group], e.Profiles, map[string]bool{})
	case depgraph.MapSourcesEdge:
		info := b.graph.Maps[e.Map]
		b.readMembers(from, b.graph.Collections[info.Sources], nil, map[string]bool{})
	case depgraph.ExpressionEdge:
		for _, part := range e.Parts {
			b.recordReads(from, part)
		}
	}
}

func (b *builder) readSlice(from depgraph.VarKey, target string, s definition.Slice, rel instance.Relative, via depgraph.VarKey) {
	r := depgraph.Read{From: from, Target: target, Name: s.Ref.Name, Rel: rel, Via: via}
	switch {
	case s.Array:
		r.Kind = depgraph.ReadAny
	case s.Ref.Kind == definition.RefSize:
		r.Kind = depgraph.ReadSize
	case s.Ref.Kind == definition.RefElement:
		r.Kind = depgraph.ReadElement
		r.Index = s.Ref.Index
	}
	b.graph.AddRead(r)
}

// readMembers records everything membership of a group and the values of its
// members may depend on: guards, batch sizes, map sources and the variables
// providing profiles (or, without profiles, the primary inputs).
func (b *builder) readMembers(from depgraph.VarKey, descs []depgraph.Descriptor, profiles []definition.Profile, visiting map[string]bool) {
	memberVar := func(name string) (string, bool) {
		def := b.defs[name]
		if profiles == nil {
			return def.PrimaryInput, def.PrimaryInput != ""
		}
		return def.ProvidedVar(profiles)
	}

	for _, d := range descs {
		rel := b.rel(from.Component, d.Component)
		def := b.defs[d.Component]
		switch d.Kind {
		case depgraph.DescConditional:
			b.readSlice(from, d.Component, definition.Single(definition.Basic(def.Guard)), rel, depgraph.VarKey{})
			fallthrough
		case depgraph.DescComponent:
			if pv, ok := memberVar(d.Component); ok {
				slice := definition.Single(definition.Basic(pv))
				if def.Variables[pv].IsArray() {
					slice = definition.Array(pv)
				}
				b.readSlice(from, d.Component, slice, rel, depgraph.VarKey{})
			}
		case depgraph.DescBatch:
			batch := def.Group.Batch
			b.readSlice(from, d.Component, definition.Single(definition.Basic(batch.SizeVar)), rel, depgraph.VarKey{})
			if memberDef, ok := b.memberDefinition(batch); ok {
				pv, ok := memberDef.PrimaryInput, memberDef.PrimaryInput != ""
				if profiles != nil {
					pv, ok = memberDef.ProvidedVar(profiles)
				}
				if arr, mapped := batch.MemberVars[pv]; ok && mapped {
					b.readSlice(from, d.Component, definition.Array(arr), rel, depgraph.VarKey{})
				}
			}
		case depgraph.DescMap:
			if visiting[d.Component] {
				continue
			}
			visiting[d.Component] = true
			info := b.graph.Maps[d.Component]
			b.readMembers(from, b.graph.Collections[info.Sources], nil, visiting)
			b.readMembers(from, info.Members, profiles, visiting)
			delete(visiting, d.Component)
		}
	}
}
