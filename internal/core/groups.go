package core

import (
	"github.com/specialistvlad/doccore/internal/definition"
	"github.com/specialistvlad/doccore/internal/depgraph"
	"github.com/specialistvlad/doccore/internal/instance"
)

// member is one concrete member of a group: a component at an instance, or
// virtual member Member of a batch.
type member struct {
	Component string
	Member    int
	Instance  instance.Instance
}

// fit cuts or pads inst to depth. Missing levels select the first
// repetition.
func fit(inst instance.Instance, depth int) instance.Instance {
	if len(inst) >= depth {
		return inst.Prefix(depth)
	}
	out := inst.Clone()
	for len(out) < depth {
		out = out.Append(1)
	}
	return out
}

// members lists the members of group at the group's instance, in order.
func (c *Core) members(group string, inst instance.Instance) ([]member, error) {
	return c.expand(c.graph.Collections[group], inst)
}

func (c *Core) expand(descs []depgraph.Descriptor, inst instance.Instance) ([]member, error) {
	var out []member
	for _, d := range descs {
		size, err := c.descriptorSize(d, inst)
		if err != nil {
			return nil, err
		}
		for k := 1; k <= size; k++ {
			m, err := c.descriptorMember(d, inst, k)
			if err != nil {
				return nil, err
			}
			out = append(out, m)
		}
	}
	return out, nil
}

// descriptorSize is the number of members a descriptor contributes.
func (c *Core) descriptorSize(d depgraph.Descriptor, inst instance.Instance) (int, error) {
	at := fit(inst, c.graph.Depth(d.Component))
	def := c.defs[d.Component]
	switch d.Kind {
	case depgraph.DescBatch:
		return c.resolveCount(d.Component, at, definition.Basic(def.Group.Batch.SizeVar))
	case depgraph.DescConditional:
		v, ok, err := c.resolve(d.Component, at, definition.Basic(def.Guard))
		if err != nil || !ok {
			return 0, err
		}
		if b, _ := v.AsBool(); b {
			return 1, nil
		}
		return 0, nil
	case depgraph.DescMap:
		info := c.graph.Maps[d.Component]
		n, err := c.mapCount(d.Component, at)
		if err != nil {
			return 0, err
		}
		total := 0
		for i := 1; i <= n; i++ {
			for _, sub := range info.Members {
				size, err := c.descriptorSize(sub, at.Append(i))
				if err != nil {
					return 0, err
				}
				total += size
			}
		}
		return total, nil
	}
	return 1, nil
}

// descriptorMember returns the k-th (1-based) member a descriptor
// contributes.
func (c *Core) descriptorMember(d depgraph.Descriptor, inst instance.Instance, k int) (member, error) {
	at := fit(inst, c.graph.Depth(d.Component))
	switch d.Kind {
	case depgraph.DescBatch:
		return member{Component: d.Component, Member: k, Instance: at}, nil
	case depgraph.DescMap:
		info := c.graph.Maps[d.Component]
		n, err := c.mapCount(d.Component, at)
		if err != nil {
			return member{}, err
		}
		for i := 1; i <= n; i++ {
			m, found, err := c.memberAt(info.Members, at.Append(i), k)
			if err != nil || found {
				return m, err
			}
			k -= m.Member
		}
		return member{}, fatal(d.Component, at, definition.StateRef{}, "map member %d out of range", k)
	}
	return member{Component: d.Component, Instance: at}, nil
}

// memberAt walks descs first-fit for the k-th member. When it is not found,
// the returned member's Member field carries the number of members seen.
func (c *Core) memberAt(descs []depgraph.Descriptor, inst instance.Instance, k int) (member, bool, error) {
	seen := 0
	for _, d := range descs {
		size, err := c.descriptorSize(d, inst)
		if err != nil {
			return member{}, false, err
		}
		if k-seen <= size {
			m, err := c.descriptorMember(d, inst, k-seen)
			return m, err == nil, err
		}
		seen += size
	}
	return member{Member: seen}, false, nil
}

// collectionMember returns the n-th member of a group.
func (c *Core) collectionMember(group string, inst instance.Instance, n int) (member, bool, error) {
	if n < 1 {
		return member{}, false, nil
	}
	return c.memberAt(c.graph.Collections[group], inst, n)
}

// mapCount is the number of iterations of a map at the map's instance: the
// size of its sources collection.
func (c *Core) mapCount(m string, inst instance.Instance) (int, error) {
	info := c.graph.Maps[m]
	if info.Sources == "" {
		return 0, nil
	}
	var n int
	at := fit(inst, c.graph.Depth(info.Sources))
	for _, d := range c.graph.Collections[info.Sources] {
		size, err := c.descriptorSize(d, at)
		if err != nil {
			return 0, err
		}
		n += size
	}
	return n, nil
}

// exists reports whether a component has a repetition at inst.
func (c *Core) exists(component string, inst instance.Instance) (bool, error) {
	scope := c.graph.Scopes[component]
	if len(inst) != len(scope) {
		return false, nil
	}
	for level, m := range scope {
		n, err := c.mapCount(m, inst.Prefix(level))
		if err != nil {
			return false, err
		}
		if inst[level] < 1 || inst[level] > n {
			return false, nil
		}
	}
	return true, nil
}

func (c *Core) resolveCount(component string, inst instance.Instance, ref definition.StateRef) (int, error) {
	v, ok, err := c.resolve(component, inst, ref)
	if err != nil || !ok {
		return 0, err
	}
	n, err := v.AsInteger()
	if err != nil || n < 0 {
		return 0, nil
	}
	return int(n), nil
}

// memberValues returns the values a member provides for profiles, or its
// primary input when profiles is nil, together with where they came from.
func (c *Core) memberValues(m member, profiles []definition.Profile) ([]item, error) {
	def := c.defs[m.Component]
	if m.Member > 0 {
		batch := def.Group.Batch
		memberDef, ok := c.cat.Lookup(batch.MemberType)
		if !ok {
			return nil, nil
		}
		pv, ok := memberDef.PrimaryInput, memberDef.PrimaryInput != ""
		if profiles != nil {
			pv, ok = memberDef.ProvidedVar(profiles)
		}
		arr, mapped := batch.MemberVars[pv]
		if !ok || !mapped {
			return nil, nil
		}
		ref := definition.Element(arr, m.Member)
		v, found, err := c.resolve(m.Component, m.Instance, ref)
		if err != nil || !found {
			return nil, err
		}
		return []item{{
			dv:  definition.DependencyValue{Value: v, ComponentType: batch.MemberType, StateVar: pv},
			src: source{component: m.Component, inst: m.Instance, ref: ref},
		}}, nil
	}

	pv, ok := def.PrimaryInput, def.PrimaryInput != ""
	if profiles != nil {
		pv, ok = def.ProvidedVar(profiles)
	}
	if !ok {
		return nil, nil
	}
	slice := definition.Single(definition.Basic(pv))
	if def.Variables[pv].IsArray() {
		slice = definition.Array(pv)
	}
	return c.sliceItems(m.Component, m.Instance, slice)
}
