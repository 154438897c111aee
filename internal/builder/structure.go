package builder

import (
	"github.com/specialistvlad/doccore/internal/compid"
	"github.com/specialistvlad/doccore/internal/definition"
	"github.com/specialistvlad/doccore/internal/depgraph"
	"github.com/specialistvlad/doccore/internal/docerr"
)

// computeScopes records, for every component, the maps it is repeated by.
// Descendants of a map's template are repeated by that map.
func (b *builder) computeScopes() {
	for _, name := range b.tree.SortedNames() {
		var chain []string
		for _, anc := range b.tree.Ancestors(name) {
			if b.defs[anc].Group.Kind != definition.GroupTemplate {
				continue
			}
			parent := b.tree.Components[anc].Parent
			if pd, ok := b.defs[parent]; ok && pd.Group.Kind == definition.GroupMap {
				chain = append(chain, parent)
			}
		}
		b.graph.Scopes[name] = chain
	}
}

// computeGroups flattens the member descriptors of every group and records
// the shape of every map.
func (b *builder) computeGroups() {
	for _, name := range b.tree.SortedNames() {
		def := b.defs[name]
		switch def.Group.Kind {
		case definition.GroupBatch:
			b.graph.Collections[name] = []depgraph.Descriptor{{Kind: depgraph.DescBatch, Component: name}}
		case definition.GroupCollection:
			b.graph.Collections[name] = b.flatten(b.componentChildren(b.tree.Original(name)), map[string]bool{name: true})
		case definition.GroupMap:
			b.graph.Collections[name] = []depgraph.Descriptor{{Kind: depgraph.DescMap, Component: name}}
			info := depgraph.MapInfo{}
			for _, ch := range b.componentChildren(name) {
				switch b.defs[ch].Group.Kind {
				case definition.GroupTemplate:
					if info.Template == "" {
						info.Template = ch
					}
				case definition.GroupCollection:
					if info.Sources == "" {
						info.Sources = ch
					}
				}
			}
			if info.Template != "" {
				info.Members = b.flatten(b.componentChildren(info.Template), map[string]bool{})
			}
			b.graph.Maps[name] = info
			b.logger.Debug("Build: Map shape computed.", "map", name, "template", info.Template, "sources", info.Sources, "members", len(info.Members))
		}
	}
}

// flatten turns a child list into member descriptors, inlining nested
// collections so a descriptor never points at another collection.
func (b *builder) flatten(children []string, visiting map[string]bool) []depgraph.Descriptor {
	var out []depgraph.Descriptor
	for _, ch := range children {
		def := b.defs[ch]
		switch {
		case def.Group.Kind == definition.GroupCollection:
			if visiting[ch] {
				continue
			}
			visiting[ch] = true
			out = append(out, b.flatten(b.componentChildren(b.tree.Original(ch)), visiting)...)
			delete(visiting, ch)
		case def.Group.Kind == definition.GroupBatch:
			out = append(out, depgraph.Descriptor{Kind: depgraph.DescBatch, Component: ch})
		case def.Group.Kind == definition.GroupMap:
			out = append(out, depgraph.Descriptor{Kind: depgraph.DescMap, Component: ch})
		case def.Group.Kind == definition.GroupTemplate:
		case def.Guard != "":
			out = append(out, depgraph.Descriptor{Kind: depgraph.DescConditional, Component: ch})
		default:
			out = append(out, depgraph.Descriptor{Kind: depgraph.DescComponent, Component: ch})
		}
	}
	return out
}

// componentChildren lists the component children of name, including those
// inherited through a whole-component copy.
func (b *builder) componentChildren(name string) []string {
	var out []string
	for _, ch := range b.tree.ChildrenIncludingCopy(name) {
		if !ch.IsText() {
			out = append(out, ch.Component)
		}
	}
	return out
}

// computeAliases walks the tree the way the renderer does. Below the first
// whole-component copy on a path, every descendant is shown under an alias
// naming that copy.
func (b *builder) computeAliases() {
	type visit struct{ name, copy string }
	seen := make(map[visit]bool)
	var walk func(name, copy string)
	walk = func(name, copy string) {
		if seen[visit{name, copy}] {
			return
		}
		seen[visit{name, copy}] = true
		for _, ch := range b.tree.ChildrenIncludingCopy(name) {
			if ch.IsText() {
				continue
			}
			childCopy := copy
			if ch.Inherited && childCopy == "" {
				childCopy = name
			}
			if childCopy != "" {
				b.graph.Aliases[compid.Alias(ch.Component, childCopy)] = ch.Component
			}
			walk(ch.Component, childCopy)
		}
	}
	walk(b.tree.Root, "")
}

// checkChildren reports children a profile-constrained parent does not
// accept. Rejected children are left out of every children instruction.
func (b *builder) checkChildren() {
	for _, name := range b.tree.SortedNames() {
		def := b.defs[name]
		if def.Accepts == nil {
			continue
		}
		for _, ch := range b.tree.ChildrenIncludingCopy(name) {
			if ch.IsText() || b.defs[ch.Component].Group.Kind == definition.GroupTemplate {
				continue
			}
			if def.AcceptsChild(b.defs[ch.Component]) {
				continue
			}
			if b.rejected[name] == nil {
				b.rejected[name] = make(map[string]bool)
			}
			b.rejected[name][ch.Component] = true
			if !ch.Inherited {
				b.warnings = append(b.warnings, docerr.Warning{Kind: docerr.InvalidChildType, Component: name, Detail: ch.Component})
				b.logger.Debug("Build: Child rejected by parent profile.", "parent", name, "child", ch.Component)
			}
		}
	}
}
