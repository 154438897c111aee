package mathexpr

import (
	"github.com/specialistvlad/doccore/internal/definition"
	"github.com/specialistvlad/doccore/internal/value"
)

// EvaluateDependencies evaluates the values gathered for a children or
// attribute instruction as one expression. A single compiled expression is
// evaluated with its own variables. Otherwise text-backed values become
// source text and every other value becomes a placeholder.
func EvaluateDependencies(deps []definition.DependencyValue, want value.Kind) (value.Value, error) {
	if len(deps) == 1 && deps[0].Vars != nil {
		return Evaluate(deps[0].Value.Text(), deps[0].Vars, want)
	}
	if len(deps) == 1 && !deps[0].Text {
		return deps[0].Value.Convert(want)
	}
	parts := make([]Part, len(deps))
	for i, d := range deps {
		if d.Text {
			parts[i] = Part{Text: d.Value.Text()}
			continue
		}
		parts[i] = Part{Component: true, Value: d.Value}
	}
	src, vars := Assemble(parts)
	return Evaluate(src, vars, want)
}
