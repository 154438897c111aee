package conditional

import (
	"github.com/specialistvlad/doccore/internal/definition"
	"github.com/specialistvlad/doccore/internal/mathexpr"
	"github.com/specialistvlad/doccore/internal/registry"
	"github.com/specialistvlad/doccore/internal/value"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// condition evaluates the condition attribute. A missing or unparseable
// condition hides the content.
func condition() *definition.SingleVar {
	return &definition.SingleVar{
		Type:     value.KindBoolean,
		Renderer: true,
		Deps: func() map[string]definition.Instruction {
			return map[string]definition.Instruction{"condition": definition.Attribute{Name: "condition"}}
		},
		Derive: func(vals definition.Values) (definition.Update, error) {
			if len(vals["condition"]) == 0 {
				return definition.Set(value.Bool(false)), nil
			}
			v, err := mathexpr.EvaluateDependencies(vals["condition"], value.KindBoolean)
			if err != nil {
				return definition.Set(value.Bool(false)), nil
			}
			return definition.Set(v), nil
		},
	}
}

// Definition returns the conditionalContent component.
func Definition() *definition.Component {
	return &definition.Component{
		Type: "conditionalContent",
		Variables: map[string]definition.Variable{
			"condition": condition(),
			"hidden":    definition.Hidden(),
		},
		Attributes:     []string{"condition", "hide"},
		RenderChildren: true,
		RendererType:   "conditionalContent",
		Guard:          "condition",
	}
}

// Register registers the conditionalContent component.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterComponent(Definition())
}
