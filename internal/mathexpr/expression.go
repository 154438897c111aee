// Package mathexpr evaluates the symbolic expressions built from a
// component's children, such as the body of <number>2 + $n</number>.
//
// Literal text pieces are concatenated into the expression source and every
// component child becomes a placeholder variable (_v1, _v2, ...) whose value
// is supplied at evaluation time. The expression language is HCL's native
// expression syntax, evaluated with go-cty, plus a handful of numeric
// functions from the cty standard library.
package mathexpr

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/doccore/internal/value"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

const placeholderPrefix = "_v"

// functions are the calls an expression may make.
var functions = map[string]function.Function{
	"abs":   stdlib.AbsoluteFunc,
	"ceil":  stdlib.CeilFunc,
	"floor": stdlib.FloorFunc,
	"log":   stdlib.LogFunc,
	"max":   stdlib.MaxFunc,
	"min":   stdlib.MinFunc,
	"pow":   stdlib.PowFunc,
	"sign":  stdlib.SignumFunc,
}

// Placeholder returns the variable name used for the n-th (1-based)
// component part of an expression.
func Placeholder(n int) string {
	return placeholderPrefix + strconv.Itoa(n)
}

// Part is one ordered piece of an expression: literal text or the value of
// a component.
type Part struct {
	Text      string
	Component bool
	Value     value.Value
}

// Assemble joins parts into expression source, replacing component values by
// placeholders. The returned map holds the placeholder values.
func Assemble(parts []Part) (string, map[string]value.Value) {
	var sb strings.Builder
	vars := make(map[string]value.Value)
	for _, p := range parts {
		if !p.Component {
			sb.WriteString(p.Text)
			continue
		}
		name := Placeholder(len(vars) + 1)
		vars[name] = p.Value
		sb.WriteString(" ")
		sb.WriteString(name)
		sb.WriteString(" ")
	}
	return strings.TrimSpace(sb.String()), vars
}

// Variables returns the sorted names the expression refers to.
func Variables(src string) ([]string, error) {
	expr, diags := hclsyntax.ParseExpression([]byte(src), "expression", hcl.InitialPos)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse expression %q: %w", src, diags)
	}
	seen := make(map[string]struct{})
	for _, traversal := range expr.Variables() {
		seen[traversal.RootName()] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out, nil
}

// Evaluate parses src and evaluates it with vars bound, converting the result
// to want.
func Evaluate(src string, vars map[string]value.Value, want value.Kind) (value.Value, error) {
	if strings.TrimSpace(src) == "" {
		return value.Value{}, fmt.Errorf("expression is empty")
	}

	expr, diags := hclsyntax.ParseExpression([]byte(src), "expression", hcl.InitialPos)
	if diags.HasErrors() {
		return value.Value{}, fmt.Errorf("failed to parse expression %q: %w", src, diags)
	}

	ctyVars := make(map[string]cty.Value, len(vars))
	for name, v := range vars {
		ctyVars[name] = v.ToCty()
	}
	for _, traversal := range expr.Variables() {
		if _, ok := ctyVars[traversal.RootName()]; !ok {
			return value.Value{}, fmt.Errorf("expression %q refers to unknown name %q", src, traversal.RootName())
		}
	}

	evalCtx := &hcl.EvalContext{Variables: ctyVars, Functions: functions}
	result, diags := expr.Value(evalCtx)
	if diags.HasErrors() {
		return value.Value{}, fmt.Errorf("failed to evaluate expression %q: %w", src, diags)
	}
	return value.FromCty(result, want)
}
