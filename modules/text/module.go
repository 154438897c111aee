package text

import (
	"github.com/specialistvlad/doccore/internal/definition"
	"github.com/specialistvlad/doccore/internal/registry"
	"github.com/specialistvlad/doccore/internal/value"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Definition returns the text component: a string built from its children.
func Definition() *definition.Component {
	return &definition.Component{
		Type: "text",
		Variables: map[string]definition.Variable{
			"value": definition.TextFromChildren(true),
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
				Inverse: func(desired value.Value, _ definition.Values) ([]definition.Request, error) {
					return []definition.Request{{Instruction: "value", Value: value.String(desired.Text())}}, nil
				},
			},
			"hidden":   definition.Hidden(),
			"disabled": definition.Disabled(),
		},
		PrimaryInput: "value",
		Attributes:   []string{"hide", "disabled"},
		Provides:     map[definition.Profile]string{definition.ProfileText: "text"},
		Accepts:      []definition.Profile{definition.ProfileText},
		RendererType: "text",
	}
}

// Register registers the text component.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterComponent(Definition())
}
