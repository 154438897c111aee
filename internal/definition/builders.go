package definition

import (
	"fmt"
	"strings"

	"github.com/specialistvlad/doccore/internal/value"
)

const (
	essentialInstruction = "essential"
	attributeInstruction = "attribute"
)

// referenced returns the values of an attribute made only of component
// references. Unset and literal attributes report false.
func referenced(deps []DependencyValue) ([]value.Value, bool) {
	if len(deps) == 0 {
		return nil, false
	}
	out := make([]value.Value, len(deps))
	for i, d := range deps {
		if d.Text {
			return nil, false
		}
		out[i] = d.Value
	}
	return out, true
}

// FromAttribute is a single variable backed by essential data, prefilled from
// the named attribute and settable by actions. When the attribute references
// a component the variable follows that component's value instead, and
// settings are forwarded to it.
func FromAttribute(attr string, kind value.Kind, initial value.Value, renderer bool) *SingleVar {
	return &SingleVar{
		Type:     kind,
		Renderer: renderer,
		Initial:  Ptr(initial),
		Deps: func() map[string]Instruction {
			return map[string]Instruction{
				essentialInstruction: Essential{Prefill: attr},
				attributeInstruction: Attribute{Name: attr},
			}
		},
		Derive: func(vals Values) (Update, error) {
			if refs, ok := referenced(vals[attributeInstruction]); ok {
				if len(refs) == 1 {
					return convertedUpdate(refs[0], kind, initial)
				}
				var sb strings.Builder
				for _, r := range refs {
					sb.WriteString(r.Text())
				}
				return convertedUpdate(value.String(sb.String()), kind, initial)
			}
			v, err := vals.Single(essentialInstruction)
			if err != nil {
				return Update{}, err
			}
			return convertedUpdate(v, kind, initial)
		},
		Inverse: func(desired value.Value, vals Values) ([]Request, error) {
			instr := essentialInstruction
			if refs, ok := referenced(vals[attributeInstruction]); ok {
				if len(refs) != 1 {
					return nil, fmt.Errorf("attribute %s has %d sources: %w", attr, len(refs), ErrReadOnly)
				}
				instr = attributeInstruction
			}
			v, err := desired.Convert(kind)
			if err != nil {
				return nil, err
			}
			return []Request{{Instruction: instr, Value: v}}, nil
		},
	}
}

// ArrayFromAttribute is an array variable backed by an essential array,
// prefilled from a tuple attribute such as "(3,4)". Without the attribute
// the array has defaultSize elements equal to initial.
//
// An attribute referencing one component reads that component's value as a
// tuple; references to several values, such as an array, give one element
// each. Only the latter can be set.
func ArrayFromAttribute(attr string, kind value.Kind, initial value.Value, defaultSize int, renderer bool) *ArrayVar {
	deps := func() map[string]Instruction {
		return map[string]Instruction{
			essentialInstruction: Essential{Prefill: attr, DefaultSize: defaultSize},
			attributeInstruction: Attribute{Name: attr},
		}
	}
	entries := func(refs []value.Value) []value.Value {
		if len(refs) != 1 {
			return refs
		}
		parts := value.SplitTuple(refs[0].Text())
		out := make([]value.Value, len(parts))
		for i, p := range parts {
			out[i] = value.String(p)
		}
		return out
	}
	return &ArrayVar{
		Type:     kind,
		Renderer: renderer,
		Initial:  Ptr(initial),
		SizeDeps: deps,
		DeriveSize: func(vals Values) (Update, error) {
			if refs, ok := referenced(vals[attributeInstruction]); ok {
				return Set(value.Integer(int64(len(entries(refs))))), nil
			}
			v, err := vals.Single(essentialInstruction)
			if err != nil {
				return Update{}, err
			}
			return convertedUpdate(v, value.KindInteger, value.Integer(0))
		},
		ElementDeps: func(int) map[string]Instruction { return deps() },
		DeriveElement: func(index int, vals Values) (Update, error) {
			if refs, ok := referenced(vals[attributeInstruction]); ok {
				elems := entries(refs)
				if index < 1 || index > len(elems) {
					return Set(initial), nil
				}
				return convertedUpdate(elems[index-1], kind, initial)
			}
			v, err := vals.Single(essentialInstruction)
			if err != nil {
				return Update{}, err
			}
			return convertedUpdate(v, kind, initial)
		},
		InverseElement: func(index int, desired value.Value, vals Values) ([]Request, error) {
			instr, position := essentialInstruction, 0
			if refs, ok := referenced(vals[attributeInstruction]); ok {
				if len(refs) == 1 || index < 1 || index > len(refs) {
					return nil, fmt.Errorf("element %d of attribute %s: %w", index, attr, ErrReadOnly)
				}
				instr, position = attributeInstruction, index-1
			}
			v, err := desired.Convert(kind)
			if err != nil {
				return nil, err
			}
			return []Request{{Instruction: instr, Position: position, Value: v}}, nil
		},
	}
}

// Hidden is true when the parent is hidden or the component's own hide
// attribute is set. An empty hide attribute counts as true.
func Hidden() *SingleVar {
	return &SingleVar{
		Type:     value.KindBoolean,
		Renderer: true,
		Deps: func() map[string]Instruction {
			return map[string]Instruction{
				"parent_hidden": StateVar{Target: Parent(), Slice: Single(Basic("hidden")), Optional: true},
				"hide":          Attribute{Name: "hide"},
			}
		},
		Derive: func(vals Values) (Update, error) {
			if parent, ok, err := vals.Optional("parent_hidden"); err != nil {
				return Update{}, err
			} else if ok {
				if b, _ := parent.AsBool(); b {
					return Set(value.Bool(true)), nil
				}
			}
			return Set(value.Bool(attributeFlag(vals["hide"]))), nil
		},
	}
}

// Disabled is an essential boolean prefilled from the disabled attribute.
func Disabled() *SingleVar {
	return FromAttribute("disabled", value.KindBoolean, value.Bool(false), true)
}

// TextFromChildren concatenates the text of the children. It can be set when
// it has exactly one source.
func TextFromChildren(renderer bool) *SingleVar {
	return &SingleVar{
		Type:     value.KindString,
		Renderer: renderer,
		Deps: func() map[string]Instruction {
			return map[string]Instruction{"children": Children{Profiles: []Profile{ProfileText}}}
		},
		Derive: func(vals Values) (Update, error) {
			var sb strings.Builder
			for _, v := range vals.List("children") {
				sb.WriteString(v.Text())
			}
			return Set(value.String(sb.String())), nil
		},
		Inverse: func(desired value.Value, vals Values) ([]Request, error) {
			if len(vals["children"]) != 1 {
				return nil, fmt.Errorf("text with %d sources cannot be set: %w", len(vals["children"]), ErrReadOnly)
			}
			return []Request{{Instruction: "children", Value: value.String(desired.Text())}}, nil
		},
	}
}

// Constant is a variable with a fixed value.
func Constant(v value.Value, renderer bool) *SingleVar {
	return &SingleVar{
		Type:     v.Kind(),
		Renderer: renderer,
		Initial:  Ptr(v),
		Derive:   func(Values) (Update, error) { return Set(v), nil },
	}
}

// attributeFlag interprets the values of a boolean attribute: absent is
// false, present but empty is true.
func attributeFlag(deps []DependencyValue) bool {
	if len(deps) == 0 {
		return false
	}
	var sb strings.Builder
	for _, d := range deps {
		if d.Value.Kind() == value.KindBoolean {
			b, _ := d.Value.AsBool()
			return b
		}
		sb.WriteString(d.Value.Text())
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return true
	}
	b, err := value.Parse(value.KindBoolean, text)
	if err != nil {
		return false
	}
	flag, _ := b.AsBool()
	return flag
}

// AttributeFlag exposes the boolean attribute rule to catalogue modules.
func AttributeFlag(vals Values, name string) bool { return attributeFlag(vals[name]) }

func convertedUpdate(v value.Value, kind value.Kind, fallback value.Value) (Update, error) {
	if v.Kind() == kind {
		return Set(v), nil
	}
	if v.Kind() == value.KindString {
		parsed, err := value.Parse(kind, v.Text())
		if err != nil {
			return Set(fallback), nil
		}
		return Set(parsed), nil
	}
	converted, err := v.Convert(kind)
	if err != nil {
		return Set(fallback), nil
	}
	return Set(converted), nil
}
