package point

import (
	"fmt"
	"strings"

	"github.com/specialistvlad/doccore/internal/definition"
	"github.com/specialistvlad/doccore/internal/registry"
	"github.com/specialistvlad/doccore/internal/value"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

const defaultStyle = `{"lineColor":"#648FFF","lineColorWord":"blue","lineOpacity":0.7,"lineWidth":4,"lineWidthWord":"thick","lineStyle":"solid","lineStyleWord":"","markerColor":"#648FFF","markerColorWord":"blue","markerStyle":"circle","markerStyleWord":"point","markerSize":3,"fillColor":"none","fillColorWord":"none","fillOpacity":0.3}`

// numericalXs mirrors coords element by element.
func numericalXs() *definition.ArrayVar {
	return &definition.ArrayVar{
		Type:     value.KindNumber,
		Renderer: true,
		SizeDeps: func() map[string]definition.Instruction {
			return map[string]definition.Instruction{
				"dimensions": definition.StateVar{Target: definition.Self(), Slice: definition.Single(definition.SizeOf("coords"))},
			}
		},
		DeriveSize: func(vals definition.Values) (definition.Update, error) {
			n, err := vals.Single("dimensions")
			if err != nil {
				return definition.Update{}, err
			}
			return definition.Set(n), nil
		},
		ElementDeps: func(int) map[string]definition.Instruction {
			return map[string]definition.Instruction{
				"coord": definition.Corresponding{Target: definition.Self(), Array: "coords"},
			}
		},
		DeriveElement: func(_ int, vals definition.Values) (definition.Update, error) {
			v, err := vals.Single("coord")
			if err != nil {
				return definition.Update{}, err
			}
			return definition.Set(v), nil
		},
		InverseElement: func(_ int, desired value.Value, _ definition.Values) ([]definition.Request, error) {
			return []definition.Request{{Instruction: "coord", Value: desired}}, nil
		},
	}
}

// latex renders the coordinates as a tuple.
func latex() *definition.SingleVar {
	return &definition.SingleVar{
		Type:     value.KindString,
		Renderer: true,
		Deps: func() map[string]definition.Instruction {
			return map[string]definition.Instruction{
				"coords": definition.StateVar{Target: definition.Self(), Slice: definition.Array("coords")},
			}
		},
		Derive: func(vals definition.Values) (definition.Update, error) {
			coords := vals.List("coords")
			parts := make([]string, len(coords))
			for i, c := range coords {
				parts[i] = c.Text()
			}
			return definition.Set(value.String("(" + strings.Join(parts, ", ") + ")")), nil
		},
	}
}

// OnAction handles the point's actions. Only movePoint changes state.
func OnAction(action string, args map[string]value.Value, _ func(definition.StateRef) (value.Value, error)) (map[definition.StateRef]value.Value, error) {
	switch action {
	case "movePoint":
		x, okX := args["x"]
		y, okY := args["y"]
		if !okX || !okY {
			return nil, fmt.Errorf("movePoint needs both x and y")
		}
		return map[definition.StateRef]value.Value{
			definition.Element("coords", 1): x,
			definition.Element("coords", 2): y,
		}, nil
	case "switchPoint", "pointClicked":
		return nil, nil
	}
	return nil, fmt.Errorf("unknown action %q on point", action)
}

// Definition returns the point component.
func Definition() *definition.Component {
	return &definition.Component{
		Type: "point",
		Variables: map[string]definition.Variable{
			"coords":                 definition.ArrayFromAttribute("coords", value.KindNumber, value.Number(0), 2, true),
			"numericalXs":            numericalXs(),
			"latex":                  latex(),
			"selectedStyle":          definition.Constant(value.String(defaultStyle), true),
			"draggable":              definition.FromAttribute("draggable", value.KindBoolean, value.Bool(true), false),
			"labelPosition":          definition.FromAttribute("labelPosition", value.KindString, value.String("upperright"), false),
			"showCoordsWhenDragging": definition.FromAttribute("showCoordsWhenDragging", value.KindBoolean, value.Bool(true), false),
			"showLabel":              definition.FromAttribute("showLabel", value.KindBoolean, value.Bool(true), false),
			"applyStyleToLabel":      definition.FromAttribute("applyStyleToLabel", value.KindBoolean, value.Bool(true), false),
			"layer":                  definition.FromAttribute("layer", value.KindInteger, value.Integer(0), false),
			"label":                  definition.FromAttribute("label", value.KindString, value.String(""), false),
			"labelHasLatex":          definition.FromAttribute("labelHasLatex", value.KindBoolean, value.Bool(false), false),
			"hidden":                 definition.Hidden(),
			"disabled":               definition.Disabled(),
		},
		Attributes: []string{
			"draggable", "labelPosition", "showCoordsWhenDragging", "showLabel",
			"applyStyleToLabel", "layer", "label", "labelHasLatex",
			"coords", "hide", "disabled",
		},
		RendererType: "point",
		Actions:      []string{"movePoint", "switchPoint", "pointClicked"},
		OnAction:     OnAction,
	}
}

// Register registers the point component.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterComponent(Definition())
}
