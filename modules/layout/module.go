package layout

import (
	"fmt"

	"github.com/specialistvlad/doccore/internal/definition"
	"github.com/specialistvlad/doccore/internal/registry"
	"github.com/specialistvlad/doccore/internal/value"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// container is a component that only arranges its children.
func container(typ string, actions []string, onAction definition.ActionFunc) *definition.Component {
	return &definition.Component{
		Type: typ,
		Variables: map[string]definition.Variable{
			"hidden":   definition.Hidden(),
			"disabled": definition.Disabled(),
		},
		Attributes:     []string{"hide", "disabled"},
		RenderChildren: true,
		RendererType:   typ,
		Actions:        actions,
		OnAction:       onAction,
	}
}

// OnActionP handles the actions of a paragraph. Visibility changes are
// accepted and ignored.
func OnActionP(action string, _ map[string]value.Value, _ func(definition.StateRef) (value.Value, error)) (map[definition.StateRef]value.Value, error) {
	switch action {
	case "recordVisibilityChange":
		return nil, nil
	}
	return nil, fmt.Errorf("unknown action %q on p", action)
}

// Register registers the layout components.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterComponent(container("document", nil, nil))
	r.RegisterComponent(container("section", nil, nil))
	r.RegisterComponent(container("p", []string{"recordVisibilityChange"}, OnActionP))
}
