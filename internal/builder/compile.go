package builder

import (
	"reflect"
	"sort"

	"github.com/specialistvlad/doccore/internal/definition"
	"github.com/specialistvlad/doccore/internal/depgraph"
	"github.com/specialistvlad/doccore/internal/docerr"
	"github.com/specialistvlad/doccore/internal/essential"
	"github.com/specialistvlad/doccore/internal/instance"
	"github.com/specialistvlad/doccore/internal/model"
	"github.com/specialistvlad/doccore/internal/value"
)

// baseWorkingSet are the element indices every array compiles.
var baseWorkingSet = []int{1, 2}

func (b *builder) compileComponent(name string) error {
	c := b.tree.Components[name]
	def := b.defs[name]
	for _, attr := range c.AttributeNames() {
		if !def.HasAttribute(attr) {
			return &docerr.Error{Kind: docerr.AttributeNotFound, Component: name, Target: attr}
		}
	}
	for _, varName := range def.VariableNames() {
		v := def.Variables[varName]
		var err error
		if v.IsArray() {
			err = b.compileArray(name, varName, v)
		} else {
			err = b.compileKey(name, v, definition.Basic(varName), definition.Basic(varName))
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// compileArray compiles the size key, the generic element key and a
// specialized key for every working-set index whose instructions differ from
// the generic ones. Indices outside the working set always use the generic
// key.
func (b *builder) compileArray(name, varName string, v definition.Variable) error {
	if err := b.compileKey(name, v, definition.SizeOf(varName), definition.SizeOf(varName)); err != nil {
		return err
	}

	set := b.workingSet(name, varName, v)
	largest := set[len(set)-1]
	if err := b.compileKey(name, v, definition.Element(varName, 0), definition.Element(varName, largest)); err != nil {
		return err
	}
	if b.graph.IsShadow(depgraph.VarKey{Component: name, Ref: definition.SizeOf(varName)}) {
		return nil
	}

	generic := v.Instructions(definition.Element(varName, largest))
	for _, i := range set[:len(set)-1] {
		if reflect.DeepEqual(v.Instructions(definition.Element(varName, i)), generic) {
			continue
		}
		b.logger.Debug("Build: Specialized element key.", "component", name, "variable", varName, "index", i)
		ref := definition.Element(varName, i)
		if err := b.compileKey(name, v, ref, ref); err != nil {
			return err
		}
	}
	return nil
}

// workingSet returns indices 1 and 2 plus every entry index of a literal
// tuple on the array's prefill attribute, sorted.
func (b *builder) workingSet(name, varName string, v definition.Variable) []int {
	seen := make(map[int]bool)
	for _, i := range baseWorkingSet {
		seen[i] = true
	}
	for _, instr := range v.Instructions(definition.SizeOf(varName)) {
		ess, ok := instr.(definition.Essential)
		if !ok || ess.Prefill == "" {
			continue
		}
		attr, _, ok := b.tree.AttributeIncludingCopy(name, ess.Prefill)
		if !ok {
			continue
		}
		if lit, ok := attr.Literal(); ok {
			for i := range value.SplitTuple(lit) {
				seen[i+1] = true
			}
		}
	}
	out := make([]int, 0, len(seen))
	for i := range seen {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// compileKey compiles one key. asked is the ref the definition is asked
// about; for the generic element key it is the largest working-set index.
func (b *builder) compileKey(name string, v definition.Variable, ref, asked definition.StateRef) error {
	vk := depgraph.VarKey{Component: name, Ref: ref}
	instrs := v.Instructions(asked)

	if edge, ok := b.shadowEdge(name, v, ref, instrs); ok {
		b.graph.Declare(vk, []string{depgraph.ShadowInstruction})
		b.graph.MarkShadow(vk)
		b.add(vk, depgraph.ShadowInstruction, edge)
		b.logger.Debug("Build: Shadow linked.", "key", vk.String(), "edge", edge.String())
		return nil
	}

	names := make([]string, 0, len(instrs))
	for n := range instrs {
		names = append(names, n)
	}
	sort.Strings(names)
	b.graph.Declare(vk, names)

	for _, n := range names {
		edges, err := b.compileInstruction(vk, v, instrs[n])
		if err != nil {
			return wrapKey(vk, n, err)
		}
		b.add(vk, n, edges...)
	}
	return nil
}

func (b *builder) compileInstruction(vk depgraph.VarKey, v definition.Variable, instr definition.Instruction) ([]depgraph.Edge, error) {
	switch in := instr.(type) {
	case definition.Essential:
		return b.compileEssential(vk, v, in), nil
	case definition.StateVar:
		return b.compileStateVar(vk, in)
	case definition.Corresponding:
		return b.compileCorresponding(vk, in)
	case definition.Attribute:
		return b.compileAttribute(vk, in)
	case definition.Children:
		return b.compileChildren(vk, in)
	}
	return nil, nil
}

func (b *builder) compileEssential(vk depgraph.VarKey, v definition.Variable, in definition.Essential) []depgraph.Edge {
	name := vk.Component
	key := essential.Key{Component: name, Origin: essential.StateVarOrigin(vk.Ref.Name)}
	b.seed(key, b.essentialSeed(name, v, in))

	mode := depgraph.EssentialValue
	switch vk.Ref.Kind {
	case definition.RefSize:
		mode = depgraph.EssentialSize
	case definition.RefElement:
		mode = depgraph.EssentialElement
	}
	return []depgraph.Edge{depgraph.EssentialEdge{Key: key, Mode: mode, Rel: b.rel(name, name)}}
}

// essentialSeed prefills from a literal attribute, else uses the default.
func (b *builder) essentialSeed(name string, v definition.Variable, in definition.Essential) essential.Datum {
	var literal string
	prefilled := false
	if in.Prefill != "" {
		if attr, _, ok := b.tree.AttributeIncludingCopy(name, in.Prefill); ok {
			literal, prefilled = attr.Literal()
		}
	}

	if !v.IsArray() {
		if prefilled {
			if parsed, err := value.Parse(v.Kind(), literal); err == nil {
				return essential.Single(parsed)
			}
		}
		return essential.Single(v.Default())
	}

	if prefilled {
		entries := value.SplitTuple(literal)
		elems := make([]value.Value, len(entries))
		for i, e := range entries {
			parsed, err := value.Parse(v.Kind(), e)
			if err != nil {
				parsed = v.Default()
			}
			elems[i] = parsed
		}
		return essential.Array(elems, v.Default())
	}
	elems := make([]value.Value, in.DefaultSize)
	for i := range elems {
		elems[i] = v.Default()
	}
	return essential.Array(elems, v.Default())
}

// target resolves the component a StateVar or Corresponding instruction
// names. ok is false when the target legitimately does not exist.
func (b *builder) target(name string, t definition.Target, optional bool) (string, bool, error) {
	switch t.Kind {
	case definition.TargetSelf:
		return name, true, nil
	case definition.TargetParent:
		parent := b.tree.Components[name].Parent
		if parent == "" {
			if optional {
				return "", false, nil
			}
			return "", false, componentNotFound(name, "parent")
		}
		return parent, true, nil
	default:
		if _, exists := b.tree.Components[t.Name]; !exists {
			if optional {
				return "", false, nil
			}
			return "", false, componentNotFound(name, t.Name)
		}
		return t.Name, true, nil
	}
}

func (b *builder) compileStateVar(vk depgraph.VarKey, in definition.StateVar) ([]depgraph.Edge, error) {
	target, ok, err := b.target(vk.Component, in.Target, in.Optional)
	if err != nil || !ok {
		return nil, err
	}
	tv, exists := b.defs[target].Variable(in.Slice.Ref.Name)
	if !exists {
		if in.Optional {
			return nil, nil
		}
		return nil, stateVarNotFound(target, in.Slice.Ref.Name)
	}

	slice := in.Slice
	switch {
	case !tv.IsArray() && (slice.Array || slice.Ref.Kind != definition.RefBasic):
		return nil, &docerr.Error{Kind: docerr.CannotIndexNonArray, Component: vk.Component, Target: target + "." + slice.Ref.Name}
	case tv.IsArray() && !slice.Array && slice.Ref.Kind == definition.RefBasic:
		slice = definition.Array(slice.Ref.Name)
	}
	return []depgraph.Edge{depgraph.StateVarEdge{Component: target, Slice: slice, Rel: b.rel(vk.Component, target)}}, nil
}

func (b *builder) compileCorresponding(vk depgraph.VarKey, in definition.Corresponding) ([]depgraph.Edge, error) {
	if vk.Ref.Kind != definition.RefElement {
		return nil, nil
	}
	target, _, err := b.target(vk.Component, in.Target, false)
	if err != nil {
		return nil, err
	}
	tv, exists := b.defs[target].Variable(in.Array)
	if !exists {
		return nil, stateVarNotFound(target, in.Array)
	}
	if !tv.IsArray() {
		return nil, &docerr.Error{Kind: docerr.CannotIndexNonArray, Component: vk.Component, Target: target + "." + in.Array}
	}
	return []depgraph.Edge{depgraph.CorrespondingEdge{Component: target, Array: in.Array, Rel: b.rel(vk.Component, target)}}, nil
}

// compileAttribute links literal pieces to essential data owned by the
// component carrying the attribute, and component pieces to the referenced
// component's primary input.
func (b *builder) compileAttribute(vk depgraph.VarKey, in definition.Attribute) ([]depgraph.Edge, error) {
	name := vk.Component
	if !b.defs[name].HasAttribute(in.Name) {
		return nil, &docerr.Error{Kind: docerr.AttributeNotFound, Component: name, Target: in.Name}
	}
	attr, owner, ok := b.tree.AttributeIncludingCopy(name, in.Name)
	if !ok {
		return nil, nil
	}
	rel := b.pinned(name, owner, b.copyFixed(name, owner))

	if in.Index > 0 {
		if lit, ok := attr.Literal(); ok {
			entries := value.SplitTuple(lit)
			if in.Index > len(entries) {
				return nil, nil
			}
			key := essential.Key{Component: owner, Origin: essential.AttributeEntryOrigin(in.Name, in.Index)}
			b.seed(key, essential.Single(value.String(entries[in.Index-1])))
			return []depgraph.Edge{depgraph.EssentialEdge{Key: key, Rel: rel, Text: true}}, nil
		}
		if len(attr) == 1 {
			return b.referenceEdge(name, attr[0].Component, in.Index)
		}
		return nil, nil
	}

	var edges []depgraph.Edge
	for i, piece := range attr {
		if piece.IsText() {
			key := essential.Key{Component: owner, Origin: essential.AttributeOrigin(in.Name, i)}
			b.seed(key, essential.Single(value.String(piece.Text)))
			edges = append(edges, depgraph.EssentialEdge{Key: key, Rel: rel, Text: true})
			continue
		}
		refEdges, err := b.referenceEdge(name, piece.Component, 0)
		if err != nil {
			return nil, err
		}
		edges = append(edges, refEdges...)
	}
	return edges, nil
}

// referenceEdge reads the primary input of a component referenced from an
// attribute, or one element of it when index is positive.
func (b *builder) referenceEdge(name, ref string, index int) ([]depgraph.Edge, error) {
	def, ok := b.defs[ref]
	if !ok {
		return nil, componentNotFound(name, ref)
	}
	if def.PrimaryInput == "" {
		return nil, nil
	}
	pv := def.Variables[def.PrimaryInput]
	slice := definition.Single(definition.Basic(def.PrimaryInput))
	switch {
	case index > 0 && pv.IsArray():
		slice = definition.Single(definition.Element(def.PrimaryInput, index))
	case index > 0:
		return nil, &docerr.Error{Kind: docerr.CannotIndexNonArray, Component: name, Target: ref + "." + def.PrimaryInput}
	case pv.IsArray():
		slice = definition.Array(def.PrimaryInput)
	}
	return []depgraph.Edge{depgraph.StateVarEdge{Component: ref, Slice: slice, Rel: b.rel(name, ref)}}, nil
}

// compileChildren links the children of the component that match the
// requested profiles, in order.
func (b *builder) compileChildren(vk depgraph.VarKey, in definition.Children) ([]depgraph.Edge, error) {
	name := vk.Component
	children := b.tree.ChildrenIncludingCopy(name)

	static := true
	for _, ch := range children {
		if !ch.IsText() && b.defs[ch.Component].Group.ReplacesChildren {
			static = false
		}
	}

	var edges []depgraph.Edge
	for _, ch := range children {
		if ch.IsText() {
			if !in.Expression && !definition.ProfilesMatchText(in.Profiles) {
				continue
			}
			edges = append(edges, b.textEdge(name, ch))
			continue
		}
		if b.rejected[name][ch.Component] {
			continue
		}
		chDef := b.defs[ch.Component]
		if chDef.Group.Kind == definition.GroupTemplate {
			continue
		}
		if chDef.Group.ReplacesChildren {
			edges = append(edges, depgraph.UndeterminedChildrenEdge{
				Group:    ch.Component,
				Profiles: append([]definition.Profile(nil), in.Profiles...),
				Rel:      b.childRel(name, ch),
			})
			continue
		}
		if e, ok := b.childEdge(name, ch, in.Profiles); ok {
			edges = append(edges, e)
		}
	}

	if in.Expression && static && len(edges) > 0 {
		return []depgraph.Edge{depgraph.ExpressionEdge{Parts: edges}}, nil
	}
	return edges, nil
}

func (b *builder) textEdge(name string, ch model.InheritedChild) depgraph.Edge {
	key := essential.Key{Component: ch.Owner, Origin: essential.ChildTextOrigin(ch.Position)}
	b.seed(key, essential.Single(value.String(ch.Text)))
	return depgraph.EssentialEdge{Key: key, Rel: b.pinned(name, ch.Owner, b.copyFixed(name, ch.Owner)), Text: true}
}

func (b *builder) childRel(name string, ch model.InheritedChild) instance.Relative {
	if ch.Inherited {
		return b.pinned(name, ch.Component, b.copyFixed(name, ch.Owner))
	}
	return b.rel(name, ch.Component)
}

// childEdge links a component child through the variable providing one of
// profiles. Children that shadow a single variable are linked straight to
// their source.
func (b *builder) childEdge(name string, ch model.InheritedChild, profiles []definition.Profile) (depgraph.Edge, bool) {
	chDef := b.defs[ch.Component]
	pv, ok := chDef.ProvidedVar(profiles)
	if !ok {
		return nil, false
	}
	if pv == chDef.PrimaryInput && !ch.Inherited {
		if e, ok := b.primarySourceEdge(ch.Component, name, definition.Basic(pv)); ok {
			return throughCopy(e, depgraph.VarKey{Component: ch.Component, Ref: definition.Basic(pv)}), true
		}
	}
	slice := definition.Single(definition.Basic(pv))
	if chDef.Variables[pv].IsArray() {
		slice = definition.Array(pv)
	}
	return depgraph.StateVarEdge{Component: ch.Component, Slice: slice, Rel: b.childRel(name, ch)}, true
}

// throughCopy records on an edge that reads a copy's source directly which
// variable of the copy it stands for.
func throughCopy(e depgraph.Edge, via depgraph.VarKey) depgraph.Edge {
	switch e := e.(type) {
	case depgraph.StateVarEdge:
		e.Via = via
		return e
	case depgraph.DynamicElementEdge:
		e.Via = via
		return e
	}
	return e
}
