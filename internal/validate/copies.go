package validate

import (
	"github.com/specialistvlad/doccore/internal/definition"
	"github.com/specialistvlad/doccore/internal/docerr"
	"github.com/specialistvlad/doccore/internal/model"
)

// Components checks that the root, every parent, child, attribute reference
// and copy source names an existing component, and that every component type
// is in the catalogue.
func Components(tree *model.Tree, cat definition.Catalogue) error {
	if _, ok := tree.Get(tree.Root); !ok {
		return &docerr.Error{Kind: docerr.ComponentNotFound, Target: tree.Root}
	}
	exists := func(referrer, name string) error {
		if _, ok := tree.Get(name); !ok {
			return &docerr.Error{Kind: docerr.ComponentNotFound, Component: referrer, Target: name}
		}
		return nil
	}

	for _, name := range tree.SortedNames() {
		c := tree.Components[name]
		if _, ok := cat.Lookup(c.Type); !ok {
			return &docerr.Error{Kind: docerr.InvalidComponentType, Component: name, Target: c.Type}
		}
		if c.Parent != "" {
			if err := exists(name, c.Parent); err != nil {
				return err
			}
		}
		for _, ch := range c.ComponentChildren() {
			if err := exists(name, ch); err != nil {
				return err
			}
		}
		for _, attr := range c.AttributeNames() {
			for _, piece := range c.Attributes[attr] {
				if piece.IsText() {
					continue
				}
				if err := exists(name, piece.Component); err != nil {
					return err
				}
			}
		}
		if c.CopySource != nil {
			if err := exists(name, c.CopySource.SourceName()); err != nil {
				return err
			}
			if dyn, ok := c.CopySource.(model.CopyOfDynamicElement); ok {
				if err := exists(name, dyn.IndexComponent); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// CopyCycles walks the copy-source chain of every component in lexical
// order. The first chain that revisits a name fails with the names on the
// cycle, in chain order.
func CopyCycles(tree *model.Tree) error {
	done := make(map[string]bool)
	for _, start := range tree.SortedNames() {
		var chain []string
		at := make(map[string]int)
		name := start
		for !done[name] {
			if pos, seen := at[name]; seen {
				return &docerr.Error{
					Kind:      docerr.CyclicalCopySource,
					Component: name,
					Chain:     append([]string(nil), chain[pos:]...),
				}
			}
			at[name] = len(chain)
			chain = append(chain, name)
			c, ok := tree.Get(name)
			if !ok || c.CopySource == nil {
				break
			}
			name = c.CopySource.SourceName()
		}
		for _, n := range chain {
			done[n] = true
		}
	}
	return nil
}

// CopySources checks each copy source against its copy. Index literals that
// are not positive integers produce warnings; the copy then reads nothing
// through that source.
func CopySources(tree *model.Tree, cat definition.Catalogue) ([]docerr.Warning, error) {
	var warnings []docerr.Warning
	def := func(name string) *definition.Component {
		d, _ := cat.Lookup(tree.Components[name].Type)
		return d
	}

	for _, name := range tree.SortedNames() {
		c := tree.Components[name]
		switch cs := c.CopySource.(type) {
		case model.CopyOfComponent:
			if tree.IsAncestor(cs.Source, name) {
				return nil, &docerr.Error{Kind: docerr.ComponentCopiesAncestor, Component: name, Target: cs.Source}
			}
			if src := tree.Components[cs.Source]; src.Type != c.Type {
				return nil, &docerr.Error{Kind: docerr.CannotCopyDifferentType, Component: name, Target: cs.Source}
			}

		case model.CopyOfStateVar:
			sv, ok := def(cs.Source).Variable(cs.StateVar)
			if !ok {
				return nil, &docerr.Error{Kind: docerr.StateVarNotFound, Component: cs.Source, Target: cs.StateVar}
			}
			primary, ok := primaryOf(def(name))
			if !ok {
				return nil, &docerr.Error{Kind: docerr.StateVarNotFound, Component: name, Target: "primary input"}
			}
			idx, valid := cs.Index()
			switch {
			case !valid:
				warnings = append(warnings, docerr.Warning{Kind: docerr.NonPositiveIndex, Component: name, Detail: cs.IndexLiteral})
			case idx > 0 && !sv.IsArray():
				return nil, &docerr.Error{Kind: docerr.CannotIndexNonArray, Component: name, Target: cs.Source + "." + cs.StateVar}
			case idx == 0 && sv.IsArray() && !primary.IsArray():
				return nil, &docerr.Error{Kind: docerr.CannotCopyArrayAsScalar, Component: name, Target: cs.Source + "." + cs.StateVar}
			}

		case model.CopyOfDynamicElement:
			sv, ok := def(cs.Source).Variable(cs.StateVar)
			if !ok {
				return nil, &docerr.Error{Kind: docerr.StateVarNotFound, Component: cs.Source, Target: cs.StateVar}
			}
			if !sv.IsArray() {
				return nil, &docerr.Error{Kind: docerr.CannotIndexNonArray, Component: name, Target: cs.Source + "." + cs.StateVar}
			}
			if _, ok := def(cs.IndexComponent).Variable(cs.IndexStateVar); !ok {
				return nil, &docerr.Error{Kind: docerr.StateVarNotFound, Component: cs.IndexComponent, Target: cs.IndexStateVar}
			}
			if _, ok := primaryOf(def(name)); !ok {
				return nil, &docerr.Error{Kind: docerr.StateVarNotFound, Component: name, Target: "primary input"}
			}

		case model.CopyOfMapSource:
			if def(cs.Map).Group.Kind != definition.GroupMap {
				return nil, &docerr.Error{Kind: docerr.CannotCopyDifferentType, Component: name, Target: cs.Map}
			}
			if !tree.IsAncestor(cs.Map, name) {
				return nil, &docerr.Error{Kind: docerr.ComponentNotFound, Component: name, Target: cs.Map}
			}
		}
	}
	return warnings, nil
}

func primaryOf(def *definition.Component) (definition.Variable, bool) {
	if def.PrimaryInput == "" {
		return nil, false
	}
	return def.Variable(def.PrimaryInput)
}
