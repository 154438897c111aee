package core

import (
	"math"

	"github.com/specialistvlad/doccore/internal/definition"
	"github.com/specialistvlad/doccore/internal/depgraph"
	"github.com/specialistvlad/doccore/internal/essential"
	"github.com/specialistvlad/doccore/internal/instance"
	"github.com/specialistvlad/doccore/internal/mathexpr"
	"github.com/specialistvlad/doccore/internal/value"
)

// source is where one gathered value came from: an essential datum or a
// state-variable slice.
type source struct {
	essential bool
	key       essential.Key
	mode      depgraph.EssentialMode
	element   int

	component string
	ref       definition.StateRef

	inst instance.Instance
}

// item is one gathered value with its source. Compiled expressions carry the
// items of their parts.
type item struct {
	dv    definition.DependencyValue
	src   source
	parts []item
}

// resolve is the demand-driven evaluator. It resolves sizes before elements,
// serves cached cells, and otherwise gathers dependency values and asks the
// definition for an update.
func (c *Core) resolve(component string, inst instance.Instance, ref definition.StateRef) (value.Value, bool, error) {
	def := c.defs[component]
	v, ok := def.Variable(ref.Name)
	if !ok {
		return value.Value{}, false, fatal(component, inst, ref, "state variable is not declared")
	}

	exists, err := c.exists(component, inst)
	if err != nil || !exists {
		return value.Value{}, false, err
	}

	if ref.Kind == definition.RefElement {
		size, err := c.resolveCount(component, inst, definition.SizeOf(ref.Name))
		if err != nil {
			return value.Value{}, false, err
		}
		if ref.Index < 1 || ref.Index > size {
			return value.Value{}, false, nil
		}
	}

	cl := c.cell(component, ref, inst)
	if cl.resolved {
		return cl.value, true, nil
	}

	key := cellKey{cellVar{component, ref.Name}, cellIDOf(ref, inst)}
	if c.resolving[key] {
		return value.Value{}, false, fatal(component, inst, ref, "dependency cycle at run time")
	}
	c.resolving[key] = true
	defer delete(c.resolving, key)

	vk, ok := c.graph.Compiled(component, ref)
	if !ok {
		return value.Value{}, false, fatal(component, inst, ref, "no compiled dependencies")
	}
	vals, _, err := c.gather(vk, inst, ref)
	if err != nil {
		return value.Value{}, false, err
	}

	var update definition.Update
	if c.graph.IsShadow(vk) {
		update = shadowUpdate(v, ref, vals[depgraph.ShadowInstruction])
	} else {
		update, err = v.Determine(ref, vals)
		if err != nil {
			return value.Value{}, false, &FatalError{Component: component, Instance: inst.Clone(), Ref: ref, Err: err}
		}
	}

	if update.IsNoChange() {
		if !cl.hasValue {
			return value.Value{}, false, fatal(component, inst, ref, "no change requested for a value that was never resolved")
		}
	} else {
		cl.value = update.Value()
		cl.hasValue = true
	}
	cl.resolved = true
	c.logger.Debug("Core: Resolved.", "component", component, "instance", inst.String(), "ref", ref.String(), "value", cl.value.String())
	return cl.value, true, nil
}

// shadowUpdate takes the value read from a copy source, or the default when
// the source provides none.
func shadowUpdate(v definition.Variable, ref definition.StateRef, deps []definition.DependencyValue) definition.Update {
	kind, fallback := v.Kind(), v.Default()
	if ref.Kind == definition.RefSize {
		kind, fallback = value.KindInteger, value.Integer(0)
	}
	if len(deps) == 0 {
		return definition.Set(fallback)
	}
	return definition.Set(coerce(deps[0].Value, kind, fallback))
}

func coerce(v value.Value, kind value.Kind, fallback value.Value) value.Value {
	if v.Kind() == kind {
		return v
	}
	if v.Kind() == value.KindString {
		if parsed, err := value.Parse(kind, v.Text()); err == nil {
			return parsed
		}
		return fallback
	}
	if converted, err := v.Convert(kind); err == nil {
		return converted
	}
	return fallback
}

// gather collects the values of every instruction of a compiled key, in the
// order the builder compiled their edges. The items keep the sources for
// inversion.
func (c *Core) gather(vk depgraph.VarKey, inst instance.Instance, ref definition.StateRef) (definition.Values, map[string][]item, error) {
	names, _ := c.graph.Instructions(vk)
	vals := make(definition.Values, len(names))
	items := make(map[string][]item, len(names))
	for _, n := range names {
		var list []item
		for _, e := range c.graph.Edges(vk, n) {
			got, err := c.edgeItems(e, inst, ref)
			if err != nil {
				return nil, nil, err
			}
			list = append(list, got...)
		}
		dvs := make([]definition.DependencyValue, len(list))
		for i, it := range list {
			dvs[i] = it.dv
		}
		vals[n] = dvs
		items[n] = list
	}
	return vals, items, nil
}

// targets enumerates the instances of target an edge reaches from inst.
func (c *Core) targets(rel instance.Relative, inst instance.Instance, target string) ([]instance.Instance, error) {
	scope := c.graph.Scopes[target]
	group := rel.Forward(inst, len(scope))
	return group.Enumerate(func(prefix instance.Instance) (int, error) {
		return c.mapCount(scope[len(prefix)], prefix)
	})
}

func (c *Core) edgeItems(e depgraph.Edge, inst instance.Instance, ref definition.StateRef) ([]item, error) {
	switch e := e.(type) {
	case depgraph.EssentialEdge:
		return c.essentialItems(e, inst, ref)

	case depgraph.StateVarEdge:
		at, err := c.targets(e.Rel, inst, e.Component)
		if err != nil {
			return nil, err
		}
		var out []item
		for _, ti := range at {
			got, err := c.sliceItems(e.Component, ti, e.Slice)
			if err != nil {
				return nil, err
			}
			out = append(out, got...)
		}
		return out, nil

	case depgraph.CorrespondingEdge:
		if ref.Kind != definition.RefElement {
			return nil, nil
		}
		at, err := c.targets(e.Rel, inst, e.Component)
		if err != nil {
			return nil, err
		}
		var out []item
		for _, ti := range at {
			got, err := c.sliceItems(e.Component, ti, definition.Single(definition.Element(e.Array, ref.Index)))
			if err != nil {
				return nil, err
			}
			out = append(out, got...)
		}
		return out, nil

	case depgraph.DynamicElementEdge:
		return c.dynamicItems(e, inst)

	case depgraph.UndeterminedChildrenEdge:
		at, err := c.targets(e.Rel, inst, e.Group)
		if err != nil {
			return nil, err
		}
		var out []item
		for _, gi := range at {
			members, err := c.members(e.Group, gi)
			if err != nil {
				return nil, err
			}
			for _, m := range members {
				got, err := c.memberValues(m, e.Profiles)
				if err != nil {
					return nil, err
				}
				out = append(out, got...)
			}
		}
		return out, nil

	case depgraph.MapSourcesEdge:
		if e.Level >= len(inst) {
			return nil, nil
		}
		info := c.graph.Maps[e.Map]
		m, found, err := c.collectionMember(info.Sources, fit(inst.Prefix(e.Level), c.graph.Depth(info.Sources)), inst[e.Level])
		if err != nil || !found {
			return nil, err
		}
		return c.memberValues(m, nil)

	case depgraph.ExpressionEdge:
		return c.expressionItems(e, inst, ref)
	}
	return nil, nil
}

func (c *Core) essentialItems(e depgraph.EssentialEdge, inst instance.Instance, ref definition.StateRef) ([]item, error) {
	owner := c.graph.Depth(e.Key.Component)
	at := fit(e.Rel.Forward(inst, owner).Prefix, owner)
	src := source{essential: true, key: e.Key, mode: e.Mode, inst: at}

	var v value.Value
	switch e.Mode {
	case depgraph.EssentialSize:
		n, err := c.store.Size(e.Key, at)
		if err != nil {
			return nil, fatal(e.Key.Component, at, ref, "%w", err)
		}
		v = value.Integer(int64(n))
	case depgraph.EssentialElement:
		got, ok, err := c.store.Element(e.Key, at, ref.Index)
		if err != nil {
			return nil, fatal(e.Key.Component, at, ref, "%w", err)
		}
		if !ok {
			return nil, nil
		}
		v = got
		src.element = ref.Index
	default:
		got, err := c.store.Value(e.Key, at)
		if err != nil {
			return nil, fatal(e.Key.Component, at, ref, "%w", err)
		}
		v = got
	}
	return []item{{dv: definition.DependencyValue{Value: v, Text: e.Text}, src: src}}, nil
}

// sliceItems resolves a slice of a component at one instance. Whole arrays
// expand to their current elements.
func (c *Core) sliceItems(component string, inst instance.Instance, s definition.Slice) ([]item, error) {
	typ := c.tree.Components[component].Type
	one := func(ref definition.StateRef) ([]item, error) {
		v, ok, err := c.resolve(component, inst, ref)
		if err != nil || !ok {
			return nil, err
		}
		return []item{{
			dv:  definition.DependencyValue{Value: v, ComponentType: typ, StateVar: ref.Name},
			src: source{component: component, inst: inst, ref: ref},
		}}, nil
	}
	if !s.Array {
		return one(s.Ref)
	}
	n, err := c.resolveCount(component, inst, definition.SizeOf(s.Ref.Name))
	if err != nil {
		return nil, err
	}
	var out []item
	for i := 1; i <= n; i++ {
		got, err := one(definition.Element(s.Ref.Name, i))
		if err != nil {
			return nil, err
		}
		out = append(out, got...)
	}
	return out, nil
}

// dynamicItems resolves the index first, then the element it points at.
func (c *Core) dynamicItems(e depgraph.DynamicElementEdge, inst instance.Instance) ([]item, error) {
	at, err := c.targets(e.IndexRel, inst, e.IndexComponent)
	if err != nil || len(at) == 0 {
		return nil, err
	}
	idx, ok, err := c.resolve(e.IndexComponent, at[0], e.IndexRef)
	if err != nil || !ok {
		return nil, err
	}
	f, err := idx.AsNumber()
	if err != nil || math.IsNaN(f) || f < 1 || f != math.Trunc(f) {
		return nil, nil
	}

	targets, err := c.targets(e.Rel, inst, e.Component)
	if err != nil || len(targets) == 0 {
		return nil, err
	}
	return c.sliceItems(e.Component, targets[0], definition.Single(definition.Element(e.Array, int(f))))
}

// expressionItems assembles a compiled children expression. Literal text
// goes into the source; every component part becomes a free variable.
func (c *Core) expressionItems(e depgraph.ExpressionEdge, inst instance.Instance, ref definition.StateRef) ([]item, error) {
	var parts []mathexpr.Part
	var sub []item
	for _, p := range e.Parts {
		got, err := c.edgeItems(p, inst, ref)
		if err != nil {
			return nil, err
		}
		if _, literal := p.(depgraph.EssentialEdge); literal {
			for _, it := range got {
				parts = append(parts, mathexpr.Part{Text: it.dv.Value.Text()})
				sub = append(sub, it)
			}
			continue
		}
		if len(got) == 0 {
			parts = append(parts, mathexpr.Part{Component: true, Value: value.Number(math.NaN())})
			sub = append(sub, item{})
			continue
		}
		for _, it := range got {
			parts = append(parts, mathexpr.Part{Component: true, Value: it.dv.Value})
			sub = append(sub, it)
		}
	}
	src, vars := mathexpr.Assemble(parts)
	return []item{{
		dv:    definition.DependencyValue{Value: value.Math(src), Vars: vars, Parts: len(sub)},
		parts: sub,
	}}, nil
}
