// Package inputs holds the components a user types or clicks into.
package inputs

import (
	"fmt"

	"github.com/specialistvlad/doccore/internal/definition"
	"github.com/specialistvlad/doccore/internal/registry"
	"github.com/specialistvlad/doccore/internal/value"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// OnActionTextInput handles typing (updateImmediateValue) and committing
// (updateValue) in a text input.
func OnActionTextInput(action string, args map[string]value.Value, resolve func(definition.StateRef) (value.Value, error)) (map[definition.StateRef]value.Value, error) {
	switch action {
	case "updateImmediateValue":
		text, ok := args["text"]
		if !ok {
			return nil, fmt.Errorf("updateImmediateValue needs a text argument")
		}
		return map[definition.StateRef]value.Value{
			definition.Basic("immediateValue"): value.String(text.Text()),
		}, nil
	case "updateValue":
		current, err := resolve(definition.Basic("immediateValue"))
		if err != nil {
			return nil, err
		}
		return map[definition.StateRef]value.Value{
			definition.Basic("value"): current,
		}, nil
	}
	return nil, fmt.Errorf("unknown action %q on textInput", action)
}

// TextInput returns the text input component.
func TextInput() *definition.Component {
	return &definition.Component{
		Type: "textInput",
		Variables: map[string]definition.Variable{
			"value":          definition.FromAttribute("prefill", value.KindString, value.String(""), true),
			"immediateValue": definition.FromAttribute("prefill", value.KindString, value.String(""), true),
			"hidden":         definition.Hidden(),
			"disabled":       definition.Disabled(),
		},
		PrimaryInput: "value",
		Attributes:   []string{"prefill", "hide", "disabled"},
		Provides:     map[definition.Profile]string{definition.ProfileText: "value"},
		RendererType: "textInput",
		Actions:      []string{"updateImmediateValue", "updateValue"},
		OnAction:     OnActionTextInput,
	}
}

// OnActionBooleanInput handles toggling a boolean input.
func OnActionBooleanInput(action string, args map[string]value.Value, _ func(definition.StateRef) (value.Value, error)) (map[definition.StateRef]value.Value, error) {
	switch action {
	case "updateBoolean":
		b, ok := args["boolean"]
		if !ok {
			return nil, fmt.Errorf("updateBoolean needs a boolean argument")
		}
		return map[definition.StateRef]value.Value{definition.Basic("value"): b}, nil
	}
	return nil, fmt.Errorf("unknown action %q on booleanInput", action)
}

// BooleanInput returns the boolean input component.
func BooleanInput() *definition.Component {
	return &definition.Component{
		Type: "booleanInput",
		Variables: map[string]definition.Variable{
			"value":    definition.FromAttribute("prefill", value.KindBoolean, value.Bool(false), true),
			"hidden":   definition.Hidden(),
			"disabled": definition.Disabled(),
		},
		PrimaryInput: "value",
		Attributes:   []string{"prefill", "hide", "disabled"},
		Provides:     map[definition.Profile]string{definition.ProfileBoolean: "value"},
		RendererType: "booleanInput",
		Actions:      []string{"updateBoolean"},
		OnAction:     OnActionBooleanInput,
	}
}

// Register registers the input components.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterComponent(TextInput())
	r.RegisterComponent(BooleanInput())
}
