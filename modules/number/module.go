package number

import (
	"fmt"
	"math"

	"github.com/specialistvlad/doccore/internal/definition"
	"github.com/specialistvlad/doccore/internal/mathexpr"
	"github.com/specialistvlad/doccore/internal/registry"
	"github.com/specialistvlad/doccore/internal/value"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

var childProfiles = []definition.Profile{definition.ProfileNumber, definition.ProfileMath, definition.ProfileText}

// valueVar evaluates the children as an arithmetic expression. Children that
// do not evaluate give NaN.
func valueVar() *definition.SingleVar {
	return &definition.SingleVar{
		Type:     value.KindNumber,
		Renderer: true,
		Initial:  definition.Ptr(value.Number(math.NaN())),
		Deps: func() map[string]definition.Instruction {
			return map[string]definition.Instruction{
				"children": definition.Children{Profiles: childProfiles, Expression: true},
			}
		},
		Derive: func(vals definition.Values) (definition.Update, error) {
			if len(vals["children"]) == 0 {
				return definition.Set(value.Number(math.NaN())), nil
			}
			v, err := mathexpr.EvaluateDependencies(vals["children"], value.KindNumber)
			if err != nil {
				return definition.Set(value.Number(math.NaN())), nil
			}
			return definition.Set(v), nil
		},
		Inverse: func(desired value.Value, vals definition.Values) ([]definition.Request, error) {
			deps := vals["children"]
			if len(deps) != 1 || (deps[0].Vars != nil && deps[0].Parts != 1) {
				return nil, fmt.Errorf("number with %d sources cannot be set: %w", len(deps), definition.ErrReadOnly)
			}
			v, err := desired.Convert(value.KindNumber)
			if err != nil {
				return nil, err
			}
			return []definition.Request{{Instruction: "children", Value: v}}, nil
		},
	}
}

// textVar formats the value for text consumers.
func textVar() *definition.SingleVar {
	return &definition.SingleVar{
		Type: value.KindString,
		Deps: func() map[string]definition.Instruction {
			return map[string]definition.Instruction{
				"value": definition.StateVar{Target: definition.Self(), Slice: definition.Single(definition.Basic("value"))},
			}
		},
		Derive: func(vals definition.Values) (definition.Update, error) {
			v, err := vals.Single("value")
			if err != nil {
				return definition.Update{}, err
			}
			return definition.Set(value.String(v.Text())), nil
		},
		Inverse: func(desired value.Value, _ definition.Values) ([]definition.Request, error) {
			v, err := value.Parse(value.KindNumber, desired.Text())
			if err != nil {
				return nil, err
			}
			return []definition.Request{{Instruction: "value", Value: v}}, nil
		},
	}
}

// Definition returns the number component.
func Definition() *definition.Component {
	return &definition.Component{
		Type: "number",
		Variables: map[string]definition.Variable{
			"value":    valueVar(),
			"text":     textVar(),
			"hidden":   definition.Hidden(),
			"disabled": definition.Disabled(),
		},
		PrimaryInput: "value",
		Attributes:   []string{"hide", "disabled"},
		Provides: map[definition.Profile]string{
			definition.ProfileNumber: "value",
			definition.ProfileMath:   "value",
			definition.ProfileText:   "text",
		},
		Accepts:      childProfiles,
		RendererType: "number",
	}
}

// Register registers the number component.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterComponent(Definition())
}
