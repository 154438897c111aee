package boolean

import (
	"fmt"

	"github.com/specialistvlad/doccore/internal/definition"
	"github.com/specialistvlad/doccore/internal/mathexpr"
	"github.com/specialistvlad/doccore/internal/registry"
	"github.com/specialistvlad/doccore/internal/value"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

var childProfiles = []definition.Profile{definition.ProfileBoolean, definition.ProfileNumber, definition.ProfileText}

// Definition returns the boolean component. Its children are evaluated as a
// condition such as "$n > 2"; anything that does not evaluate is false.
func Definition() *definition.Component {
	return &definition.Component{
		Type: "boolean",
		Variables: map[string]definition.Variable{
			"value": &definition.SingleVar{
				Type:     value.KindBoolean,
				Renderer: true,
				Deps: func() map[string]definition.Instruction {
					return map[string]definition.Instruction{
						"children": definition.Children{Profiles: childProfiles, Expression: true},
					}
				},
				Derive: func(vals definition.Values) (definition.Update, error) {
					v, err := mathexpr.EvaluateDependencies(vals["children"], value.KindBoolean)
					if err != nil {
						return definition.Set(value.Bool(false)), nil
					}
					return definition.Set(v), nil
				},
				Inverse: func(desired value.Value, vals definition.Values) ([]definition.Request, error) {
					deps := vals["children"]
					if len(deps) != 1 || (deps[0].Vars != nil && deps[0].Parts != 1) {
						return nil, fmt.Errorf("boolean with %d sources cannot be set: %w", len(deps), definition.ErrReadOnly)
					}
					v, err := desired.Convert(value.KindBoolean)
					if err != nil {
						return nil, err
					}
					return []definition.Request{{Instruction: "children", Value: v}}, nil
				},
			},
			"text": &definition.SingleVar{
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
			},
			"hidden":   definition.Hidden(),
			"disabled": definition.Disabled(),
		},
		PrimaryInput: "value",
		Attributes:   []string{"hide", "disabled"},
		Provides: map[definition.Profile]string{
			definition.ProfileBoolean: "value",
			definition.ProfileText:    "text",
		},
		Accepts:      childProfiles,
		RendererType: "boolean",
	}
}

// Register registers the boolean component.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterComponent(Definition())
}
