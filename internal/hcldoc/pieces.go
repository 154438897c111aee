package hcldoc

import (
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/doccore/internal/model"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// attributePieces turns an attribute expression into literal text pieces and
// component references. Constant expressions become a single text piece.
func attributePieces(expr hclsyntax.Expression) (model.Attribute, hcl.Diagnostics) {
	switch e := expr.(type) {
	case *hclsyntax.TemplateExpr:
		var out model.Attribute
		var diags hcl.Diagnostics
		for _, part := range e.Parts {
			got, d := attributePieces(part)
			diags = append(diags, d...)
			out = append(out, got...)
		}
		if len(out) == 0 {
			out = model.Attribute{model.TextChild("")}
		}
		return out, diags
	case *hclsyntax.TemplateWrapExpr:
		return attributePieces(e.Wrapped)
	case *hclsyntax.ScopeTraversalExpr:
		ref, diags := componentRef(e)
		if diags.HasErrors() {
			return nil, diags
		}
		return model.Attribute{ref}, nil
	}

	v, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, diags
	}
	text, err := literalText(v)
	if err != nil {
		return nil, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Unsupported attribute value",
			Detail:   err.Error(),
			Subject:  expr.Range().Ptr(),
		}}
	}
	return model.Attribute{model.TextChild(text)}, nil
}

// childPieces reads the children attribute: a string template or a list of
// strings and references.
func childPieces(expr hclsyntax.Expression) ([]model.Child, hcl.Diagnostics) {
	tuple, ok := expr.(*hclsyntax.TupleConsExpr)
	if !ok {
		pieces, diags := attributePieces(expr)
		return []model.Child(pieces), diags
	}
	var out []model.Child
	var diags hcl.Diagnostics
	for _, el := range tuple.Exprs {
		pieces, d := attributePieces(el)
		diags = append(diags, d...)
		out = append(out, pieces...)
	}
	return out, diags
}

// componentRef accepts a bare component name only.
func componentRef(e *hclsyntax.ScopeTraversalExpr) (model.Child, hcl.Diagnostics) {
	if len(e.Traversal) != 1 {
		return model.Child{}, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Invalid component reference",
			Detail:   "A reference must name a component; use a copy to read one of its variables.",
			Subject:  e.SrcRange.Ptr(),
		}}
	}
	return model.ComponentChild(e.Traversal.RootName()), nil
}

// literalText renders a constant the way markup would spell it. Lists and
// tuples become "(a,b)".
func literalText(v cty.Value) (string, error) {
	if v.IsNull() {
		return "", nil
	}
	if !v.IsWhollyKnown() {
		return "", fmt.Errorf("value is not known")
	}
	ty := v.Type()
	if ty.IsTupleType() || ty.IsListType() {
		var parts []string
		for _, el := range v.AsValueSlice() {
			s, err := literalText(el)
			if err != nil {
				return "", err
			}
			parts = append(parts, s)
		}
		return "(" + strings.Join(parts, ",") + ")", nil
	}
	s, err := convert.Convert(v, cty.String)
	if err != nil {
		return "", fmt.Errorf("cannot use a %s value as text", ty.FriendlyName())
	}
	return s.AsString(), nil
}

// intList reads a constant list of positive integers.
func intList(expr hclsyntax.Expression) ([]int, hcl.Diagnostics) {
	v, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, diags
	}
	fail := hcl.Diagnostics{{
		Severity: hcl.DiagError,
		Summary:  "Invalid instance",
		Detail:   "Expected a list of positive whole numbers.",
		Subject:  expr.Range().Ptr(),
	}}
	ty := v.Type()
	if v.IsNull() || !(ty.IsTupleType() || ty.IsListType()) {
		return nil, fail
	}
	var out []int
	for _, el := range v.AsValueSlice() {
		if el.IsNull() || el.Type() != cty.Number {
			return nil, fail
		}
		bf := el.AsBigFloat()
		if !bf.IsInt() {
			return nil, fail
		}
		n, _ := bf.Int64()
		if n < 1 {
			return nil, fail
		}
		out = append(out, int(n))
	}
	return out, nil
}
