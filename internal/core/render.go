package core

import (
	"context"
	"encoding/json"

	"github.com/specialistvlad/doccore/internal/compid"
	"github.com/specialistvlad/doccore/internal/ctxlog"
	"github.com/specialistvlad/doccore/internal/definition"
	"github.com/specialistvlad/doccore/internal/essential"
	"github.com/specialistvlad/doccore/internal/instance"
	"github.com/specialistvlad/doccore/internal/model"
	"github.com/specialistvlad/doccore/internal/value"
)

// RenderNode is the renderer's view of one visible component.
type RenderNode struct {
	ComponentName        string             `json:"componentName"`
	ComponentType        string             `json:"componentType"`
	RendererType         string             `json:"rendererType"`
	StateValues          map[string]any     `json:"stateValues"`
	ChildrenInstructions []ChildInstruction `json:"childrenInstructions"`
}

// ChildDescriptor names a rendered child and what it can be sent.
type ChildDescriptor struct {
	ComponentName string   `json:"componentName"`
	ComponentType string   `json:"componentType"`
	RendererType  string   `json:"rendererType"`
	Actions       []string `json:"actions"`
}

// ChildInstruction is either literal text or a child descriptor.
type ChildInstruction struct {
	Text  string
	Child *ChildDescriptor
}

// MarshalJSON encodes text as a bare string and children as objects.
func (ci ChildInstruction) MarshalJSON() ([]byte, error) {
	if ci.Child == nil {
		return json.Marshal(ci.Text)
	}
	return json.Marshal(ci.Child)
}

// renderTarget is a component about to be rendered, as it is shown.
type renderTarget struct {
	name   string
	copy   string
	member int
	inst   instance.Instance
}

func (t renderTarget) address() string {
	return compid.Address{Name: t.name, Copy: t.copy, Member: t.member, Instance: t.inst}.String()
}

// UpdateRenderers resolves every renderer-visible variable and returns the
// visible components, children before their parents.
func (c *Core) UpdateRenderers(ctx context.Context) ([]RenderNode, error) {
	c.logger = ctxlog.FromContext(ctx)
	var out []RenderNode
	if err := c.render(renderTarget{name: c.tree.Root}, &out); err != nil {
		return nil, err
	}
	c.logger.Debug("Core: Render tree updated.", "nodes", len(out))
	return out, nil
}

// typeOf returns the definition a target renders as.
func (c *Core) typeOf(t renderTarget) (*definition.Component, bool) {
	def := c.defs[t.name]
	if t.member == 0 {
		return def, true
	}
	return c.cat.Lookup(def.Group.Batch.MemberType)
}

func (c *Core) render(t renderTarget, out *[]RenderNode) error {
	def, ok := c.typeOf(t)
	if !ok {
		return nil
	}
	node := RenderNode{
		ComponentName:        t.address(),
		ComponentType:        def.Type,
		RendererType:         def.RendererType,
		StateValues:          make(map[string]any),
		ChildrenInstructions: []ChildInstruction{},
	}
	if err := c.renderValues(t, def, node.StateValues); err != nil {
		return err
	}

	if t.member == 0 && def.RenderChildren {
		visible, err := c.guardAllows(t.name, t.inst)
		if err != nil {
			return err
		}
		if visible {
			children, err := c.renderChildren(t, def, out)
			if err != nil {
				return err
			}
			node.ChildrenInstructions = children
		}
	}

	*out = append(*out, node)
	return nil
}

func (c *Core) guardAllows(name string, inst instance.Instance) (bool, error) {
	guard := c.defs[name].Guard
	if guard == "" {
		return true, nil
	}
	v, ok, err := c.resolve(name, inst, definition.Basic(guard))
	if err != nil || !ok {
		return false, err
	}
	b, _ := v.AsBool()
	return b, nil
}

// renderValues fills the renderer variables. Virtual members read the
// group's arrays at their index.
func (c *Core) renderValues(t renderTarget, def *definition.Component, into map[string]any) error {
	for _, name := range def.VariableNames() {
		v := def.Variables[name]
		if !v.ForRenderer() {
			continue
		}
		if t.member > 0 {
			arr, ok := c.defs[t.name].Group.Batch.MemberVars[name]
			if !ok {
				continue
			}
			got, found, err := c.resolve(t.name, t.inst, definition.Element(arr, t.member))
			if err != nil {
				return err
			}
			if found {
				into[name] = got
			}
			continue
		}
		if !v.IsArray() {
			got, found, err := c.resolve(t.name, t.inst, definition.Basic(name))
			if err != nil {
				return err
			}
			if found {
				into[name] = got
			}
			continue
		}
		n, err := c.resolveCount(t.name, t.inst, definition.SizeOf(name))
		if err != nil {
			return err
		}
		elems := make([]value.Value, 0, n)
		for i := 1; i <= n; i++ {
			got, found, err := c.resolve(t.name, t.inst, definition.Element(name, i))
			if err != nil {
				return err
			}
			if found {
				elems = append(elems, got)
			}
		}
		into[name] = elems
	}
	return nil
}

// renderChildren renders the visible children of t and returns the
// instructions describing them. Child-replacing groups stand for their
// members.
func (c *Core) renderChildren(t renderTarget, def *definition.Component, out *[]RenderNode) ([]ChildInstruction, error) {
	instructions := []ChildInstruction{}
	for _, ch := range c.tree.ChildrenIncludingCopy(t.name) {
		if ch.IsText() {
			instructions = append(instructions, ChildInstruction{Text: c.childText(ch, t.inst)})
			continue
		}
		childDef := c.defs[ch.Component]
		if childDef.Group.Kind == definition.GroupTemplate || !def.AcceptsChild(childDef) {
			continue
		}
		childCopy := t.copy
		if ch.Inherited && childCopy == "" {
			childCopy = t.name
		}
		at := fit(t.inst, c.graph.Depth(ch.Component))

		targets := []renderTarget{{name: ch.Component, copy: childCopy, inst: at}}
		if childDef.Group.ReplacesChildren {
			members, err := c.members(ch.Component, at)
			if err != nil {
				return nil, err
			}
			targets = targets[:0]
			for _, m := range members {
				targets = append(targets, renderTarget{name: m.Component, copy: childCopy, member: m.Member, inst: m.Instance})
			}
		}

		for _, ct := range targets {
			if err := c.render(ct, out); err != nil {
				return nil, err
			}
			ctDef, ok := c.typeOf(ct)
			if !ok {
				continue
			}
			instructions = append(instructions, ChildInstruction{Child: &ChildDescriptor{
				ComponentName: ct.address(),
				ComponentType: ctDef.Type,
				RendererType:  ctDef.RendererType,
				Actions:       append([]string{}, ctDef.Actions...),
			}})
		}
	}
	return instructions, nil
}

// childText reads the current text of a literal child. Text children are
// essential data of the component that holds them.
func (c *Core) childText(ch model.InheritedChild, inst instance.Instance) string {
	key := essential.Key{Component: ch.Owner, Origin: essential.ChildTextOrigin(ch.Position)}
	if !c.store.Has(key) {
		return ch.Text
	}
	v, err := c.store.Value(key, fit(inst, c.graph.Depth(ch.Owner)))
	if err != nil {
		return ch.Text
	}
	return v.Text()
}
