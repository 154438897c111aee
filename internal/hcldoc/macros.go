package hcldoc

import (
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/doccore/internal/model"
	"github.com/zclconf/go-cty/cty"
)

const (
	macroPrefix   = "$"
	mapSourceFunc = "source"
)

func invalidCopy(rng hcl.Range, detail string) hcl.Diagnostics {
	return hcl.Diagnostics{{
		Severity: hcl.DiagError,
		Summary:  "Invalid copy source",
		Detail:   detail,
		Subject:  rng.Ptr(),
	}}
}

// parseCopy turns the copy attribute into a copy source. A string starting
// with "$" is a macro for the same expression.
func parseCopy(expr hclsyntax.Expression) (model.CopySource, hcl.Diagnostics) {
	switch e := expr.(type) {
	case *hclsyntax.TemplateExpr:
		if !e.IsStringLiteral() {
			break
		}
		v, _ := e.Value(nil)
		return expandMacro(v.AsString(), e.SrcRange)
	case *hclsyntax.ScopeTraversalExpr:
		return fromTraversal(e.Traversal, e.SrcRange)
	case *hclsyntax.IndexExpr:
		return dynamicElement(e)
	case *hclsyntax.FunctionCallExpr:
		if e.Name != mapSourceFunc || len(e.Args) != 1 {
			break
		}
		m, ok := e.Args[0].(*hclsyntax.ScopeTraversalExpr)
		if !ok || len(m.Traversal) != 1 {
			return nil, invalidCopy(e.Range(), "source() takes the name of a map.")
		}
		return model.CopyOfMapSource{Map: m.Traversal.RootName()}, nil
	}
	return nil, invalidCopy(expr.Range(), "Expected a component, a state variable, an element or source(map).")
}

// expandMacro desugars "$name.var[2]".
func expandMacro(s string, rng hcl.Range) (model.CopySource, hcl.Diagnostics) {
	if !strings.HasPrefix(s, macroPrefix) {
		return nil, invalidCopy(rng, "A copy given as a string must start with \"$\".")
	}
	expr, diags := hclsyntax.ParseExpression([]byte(strings.TrimPrefix(s, macroPrefix)), rng.Filename, rng.Start)
	if diags.HasErrors() {
		return nil, diags
	}
	if _, nested := expr.(*hclsyntax.TemplateExpr); nested {
		return nil, invalidCopy(rng, "A copy macro must name a component.")
	}
	return parseCopy(expr)
}

// fromTraversal handles name, name.var and name.var[index].
func fromTraversal(t hcl.Traversal, rng hcl.Range) (model.CopySource, hcl.Diagnostics) {
	source := t.RootName()
	if len(t) == 1 {
		return model.CopyOfComponent{Source: source}, nil
	}
	attr, ok := t[1].(hcl.TraverseAttr)
	if !ok {
		return nil, invalidCopy(rng, "Expected a state variable name after the component.")
	}
	switch len(t) {
	case 2:
		return model.CopyOfStateVar{Source: source, StateVar: attr.Name}, nil
	case 3:
		idx, ok := t[2].(hcl.TraverseIndex)
		if !ok {
			break
		}
		return model.CopyOfStateVar{Source: source, StateVar: attr.Name, IndexLiteral: indexLiteral(idx.Key)}, nil
	}
	return nil, invalidCopy(rng, "Expected at most one index after the state variable.")
}

// indexLiteral keeps an index as written so bad indices surface as
// warnings later.
func indexLiteral(key cty.Value) string {
	if key.IsNull() || !key.IsKnown() {
		return ""
	}
	switch key.Type() {
	case cty.Number:
		return key.AsBigFloat().Text('f', -1)
	case cty.String:
		return key.AsString()
	}
	return ""
}

// dynamicElement handles name.var[other.var].
func dynamicElement(e *hclsyntax.IndexExpr) (model.CopySource, hcl.Diagnostics) {
	coll, ok := e.Collection.(*hclsyntax.ScopeTraversalExpr)
	if !ok || len(coll.Traversal) != 2 {
		return nil, invalidCopy(e.SrcRange, "Expected component.variable before the index.")
	}
	key, ok := e.Key.(*hclsyntax.ScopeTraversalExpr)
	if !ok || len(key.Traversal) != 2 {
		return nil, invalidCopy(e.SrcRange, "A computed index must be component.variable.")
	}
	arr, ok1 := coll.Traversal[1].(hcl.TraverseAttr)
	idx, ok2 := key.Traversal[1].(hcl.TraverseAttr)
	if !ok1 || !ok2 {
		return nil, invalidCopy(e.SrcRange, "Expected variable names, not indices.")
	}
	return model.CopyOfDynamicElement{
		Source:         coll.Traversal.RootName(),
		StateVar:       arr.Name,
		IndexComponent: key.Traversal.RootName(),
		IndexStateVar:  idx.Name,
	}, nil
}
