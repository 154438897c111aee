package sequence

import (
	"github.com/specialistvlad/doccore/internal/definition"
	"github.com/specialistvlad/doccore/internal/registry"
	"github.com/specialistvlad/doccore/internal/value"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

func selfVar(name string) definition.StateVar {
	return definition.StateVar{Target: definition.Self(), Slice: definition.Single(definition.Basic(name))}
}

func integer(vals definition.Values, name string) (int64, error) {
	v, err := vals.Single(name)
	if err != nil {
		return 0, err
	}
	return v.AsInteger()
}

// length is the number of members, to - from + 1, and never negative.
func length() *definition.SingleVar {
	return &definition.SingleVar{
		Type: value.KindInteger,
		Deps: func() map[string]definition.Instruction {
			return map[string]definition.Instruction{"from": selfVar("from"), "to": selfVar("to")}
		},
		Derive: func(vals definition.Values) (definition.Update, error) {
			from, err := integer(vals, "from")
			if err != nil {
				return definition.Update{}, err
			}
			to, err := integer(vals, "to")
			if err != nil {
				return definition.Update{}, err
			}
			return definition.Set(value.Integer(max(0, to-from+1))), nil
		},
	}
}

// values holds the member numbers from, from+1, ..., to.
func values() *definition.ArrayVar {
	return &definition.ArrayVar{
		Type:     value.KindNumber,
		SizeDeps: func() map[string]definition.Instruction { return map[string]definition.Instruction{"length": selfVar("length")} },
		DeriveSize: func(vals definition.Values) (definition.Update, error) {
			v, err := vals.Single("length")
			if err != nil {
				return definition.Update{}, err
			}
			return definition.Set(v), nil
		},
		ElementDeps: func(int) map[string]definition.Instruction { return map[string]definition.Instruction{"from": selfVar("from")} },
		DeriveElement: func(index int, vals definition.Values) (definition.Update, error) {
			from, err := integer(vals, "from")
			if err != nil {
				return definition.Update{}, err
			}
			return definition.Set(value.Number(float64(from + int64(index) - 1))), nil
		},
	}
}

// texts formats every member number.
func texts() *definition.ArrayVar {
	return &definition.ArrayVar{
		Type: value.KindString,
		SizeDeps: func() map[string]definition.Instruction {
			return map[string]definition.Instruction{
				"size": definition.StateVar{Target: definition.Self(), Slice: definition.Single(definition.SizeOf("value"))},
			}
		},
		DeriveSize: func(vals definition.Values) (definition.Update, error) {
			v, err := vals.Single("size")
			if err != nil {
				return definition.Update{}, err
			}
			return definition.Set(v), nil
		},
		ElementDeps: func(int) map[string]definition.Instruction {
			return map[string]definition.Instruction{"value": definition.Corresponding{Target: definition.Self(), Array: "value"}}
		},
		DeriveElement: func(_ int, vals definition.Values) (definition.Update, error) {
			v, err := vals.Single("value")
			if err != nil {
				return definition.Update{}, err
			}
			return definition.Set(value.String(v.Text())), nil
		},
	}
}

// Definition returns the sequence component: a batch of virtual numbers.
func Definition() *definition.Component {
	return &definition.Component{
		Type: "sequence",
		Variables: map[string]definition.Variable{
			"from":   definition.FromAttribute("from", value.KindInteger, value.Integer(1), false),
			"to":     definition.FromAttribute("to", value.KindInteger, value.Integer(1), false),
			"length": length(),
			"value":  values(),
			"text":   texts(),
			"hidden": definition.Hidden(),
		},
		Attributes:   []string{"from", "to", "hide"},
		RendererType: "sequence",
		Group: definition.Group{
			Kind:             definition.GroupBatch,
			ReplacesChildren: true,
			Batch: &definition.Batch{
				SizeVar:    "length",
				MemberType: "number",
				MemberVars: map[string]string{"value": "value", "text": "text"},
			},
		},
	}
}

// Register registers the sequence component.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterComponent(Definition())
}
