package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/specialistvlad/doccore/internal/compid"
	"github.com/specialistvlad/doccore/internal/ctxlog"
	"github.com/specialistvlad/doccore/internal/definition"
	"github.com/specialistvlad/doccore/internal/depgraph"
	"github.com/specialistvlad/doccore/internal/essential"
	"github.com/specialistvlad/doccore/internal/instance"
	"github.com/specialistvlad/doccore/internal/value"
)

// Action is an external request sent to a component by a renderer.
type Action struct {
	// ComponentName is the qualified name as rendered, for example
	// "p1", "x[2]", "seq#3" or "__cp:t(c)".
	ComponentName string
	ActionName    string
	Args          map[string]value.Value
}

type actionPayload struct {
	ComponentName string         `json:"componentName"`
	ActionName    string         `json:"actionName"`
	Args          map[string]any `json:"args"`
}

// ParseAction decodes an action sent as JSON.
func ParseAction(data []byte) (Action, error) {
	var p actionPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return Action{}, fmt.Errorf("failed to decode action: %w", err)
	}
	if p.ComponentName == "" || p.ActionName == "" {
		return Action{}, fmt.Errorf("action needs both componentName and actionName")
	}
	a := Action{ComponentName: p.ComponentName, ActionName: p.ActionName, Args: make(map[string]value.Value, len(p.Args))}
	for k, raw := range p.Args {
		v, err := value.FromJSON(raw)
		if err != nil {
			return Action{}, fmt.Errorf("action argument %q: %w", k, err)
		}
		a.Args[k] = v
	}
	return a, nil
}

// write is one pending essential write.
type write struct {
	key     essential.Key
	inst    instance.Instance
	element int
	value   value.Value
}

// HandleAction dispatches an action to the component's definition, turns the
// updates it asks for into essential writes, applies them and invalidates
// what read them. Updates that cannot be expressed are logged and dropped.
func (c *Core) HandleAction(ctx context.Context, a Action) error {
	c.logger = ctxlog.FromContext(ctx)
	logger := c.logger.With("component", a.ComponentName, "action", a.ActionName)
	logger.Debug("Core: Handling action.")

	addr, err := compid.Parse(a.ComponentName)
	if err != nil {
		return err
	}
	name := addr.Name
	if addr.Copy != "" {
		if actual, ok := c.graph.Aliases[addr.Base()]; !ok || actual != name {
			return fmt.Errorf("unknown component alias %q", addr.Base())
		}
	}
	def, ok := c.defs[name]
	if !ok {
		return fmt.Errorf("unknown component %q", name)
	}
	inst := instance.Instance(addr.Instance)
	exists, err := c.exists(name, inst)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("component %s has no instance %s", name, inst)
	}

	// Virtual batch members act through the member type, backed by the
	// group's arrays.
	target := def
	mapRef := func(ref definition.StateRef) (definition.StateRef, bool) { return ref, true }
	if addr.Member > 0 {
		batch := def.Group.Batch
		if batch == nil {
			return fmt.Errorf("component %s has no members", name)
		}
		memberDef, ok := c.cat.Lookup(batch.MemberType)
		if !ok {
			return fmt.Errorf("unknown member type %q", batch.MemberType)
		}
		target = memberDef
		mapRef = func(ref definition.StateRef) (definition.StateRef, bool) {
			arr, ok := batch.MemberVars[ref.Name]
			return definition.Element(arr, addr.Member), ok && ref.Kind == definition.RefBasic
		}
	}

	if !hasAction(target, a.ActionName) || target.OnAction == nil {
		return fmt.Errorf("component %s has no action %q", a.ComponentName, a.ActionName)
	}

	resolver := func(ref definition.StateRef) (value.Value, error) {
		mapped, ok := mapRef(ref)
		if !ok {
			return value.Value{}, fmt.Errorf("member variable %s is not available", ref)
		}
		v, _, err := c.resolve(name, inst, mapped)
		return v, err
	}
	updates, err := target.OnAction(a.ActionName, a.Args, resolver)
	if err != nil {
		return fmt.Errorf("action %q on %s failed: %w", a.ActionName, a.ComponentName, err)
	}

	refs := make([]definition.StateRef, 0, len(updates))
	for ref := range updates {
		refs = append(refs, ref)
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].String() < refs[j].String() })

	var writes []write
	for _, ref := range refs {
		mapped, ok := mapRef(ref)
		if !ok {
			logger.Warn("Dropping update of unavailable member variable.", "ref", ref.String())
			continue
		}
		got, err := c.requestStateVar(name, inst, mapped, updates[ref])
		var inv *InversionError
		switch {
		case errors.As(err, &inv):
			logger.Warn("Dropping update that cannot be applied.", "ref", mapped.String(), "error", inv.Error())
			continue
		case err != nil:
			return err
		}
		writes = append(writes, got...)
	}

	stale := c.apply(writes)
	logger.Debug("Core: Action applied.", "writes", len(writes), "invalidated", stale)
	return nil
}

func hasAction(def *definition.Component, name string) bool {
	for _, a := range def.Actions {
		if a == name {
			return true
		}
	}
	return false
}

// requestStateVar turns a requested value for a slice into essential writes.
// Shadowed slices forward the request to their source; others ask their
// definition to invert it against their own sources.
func (c *Core) requestStateVar(component string, inst instance.Instance, ref definition.StateRef, desired value.Value) ([]write, error) {
	v, ok := c.defs[component].Variable(ref.Name)
	if !ok {
		return nil, &InversionError{Component: component, Ref: ref, Err: fmt.Errorf("state variable is not declared")}
	}
	vk, ok := c.graph.Compiled(component, ref)
	if !ok {
		return nil, &InversionError{Component: component, Ref: ref, Err: fmt.Errorf("no compiled dependencies")}
	}
	_, items, err := c.gather(vk, inst, ref)
	if err != nil {
		return nil, err
	}

	var requests []definition.Request
	if c.graph.IsShadow(vk) {
		requests = []definition.Request{{Instruction: depgraph.ShadowInstruction, Value: desired}}
	} else {
		vals := make(definition.Values, len(items))
		for n, list := range items {
			dvs := make([]definition.DependencyValue, len(list))
			for i, it := range list {
				dvs[i] = it.dv
			}
			vals[n] = dvs
		}
		requests, err = v.Invert(ref, desired, vals)
		if err != nil {
			return nil, &InversionError{Component: component, Ref: ref, Err: err}
		}
	}

	var writes []write
	for _, req := range requests {
		src, err := pick(items[req.Instruction], req.Position)
		if err != nil {
			return nil, &InversionError{Component: component, Ref: ref, Err: fmt.Errorf("instruction %q: %w", req.Instruction, err)}
		}
		got, err := c.requestSource(src, req.Value)
		if err != nil {
			return nil, err
		}
		writes = append(writes, got...)
	}
	return writes, nil
}

// pick finds the source at a request position. A single compiled expression
// is addressed by the position of its parts.
func pick(list []item, position int) (source, error) {
	if len(list) == 1 && list[0].parts != nil {
		list = list[0].parts
	}
	if position < 0 || position >= len(list) {
		return source{}, fmt.Errorf("no source at position %d", position)
	}
	src := list[position].src
	if !src.essential && src.component == "" {
		return source{}, fmt.Errorf("source at position %d has no value", position)
	}
	return src, nil
}

func (c *Core) requestSource(src source, desired value.Value) ([]write, error) {
	if !src.essential {
		return c.requestStateVar(src.component, src.inst, src.ref, desired)
	}
	if src.mode == depgraph.EssentialSize {
		return nil, &InversionError{Component: src.key.Component, Ref: definition.SizeOf(src.key.Origin.Name), Err: definition.ErrReadOnly}
	}
	return []write{{key: src.key, inst: src.inst, element: src.element, value: desired}}, nil
}

// apply performs the writes and invalidates their readers. It returns the
// number of cells that became stale.
func (c *Core) apply(writes []write) int {
	stale := 0
	for _, w := range writes {
		grew := false
		var err error
		if w.element > 0 {
			grew, err = c.store.SetElement(w.key, w.inst, w.element, w.value)
		} else {
			err = c.store.Set(w.key, w.inst, w.value)
		}
		if err != nil {
			c.logger.Warn("Dropping essential write.", "key", w.key.String(), "error", err)
			continue
		}
		c.logger.Debug("Core: Essential data written.", "key", w.key.String(), "instance", w.inst.String(), "element", w.element, "value", w.value.String())
		stale += c.invalidateEssential(w.key, w.inst, w.element, grew)
	}
	return stale
}
