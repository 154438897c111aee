package definition

import (
	"sort"

	"github.com/specialistvlad/doccore/internal/value"
)

// GroupKind marks components that synthesize members instead of (or in
// addition to) having literal children.
type GroupKind uint8

const (
	GroupNone GroupKind = iota
	// GroupBatch components expose a small set of virtual members that share
	// the component's own array variables.
	GroupBatch
	// GroupCollection components collect their children (flattened) as
	// members.
	GroupCollection
	// GroupMap components repeat their template once per member of their
	// sources collection.
	GroupMap
	// GroupTemplate marks the child of a map whose descendants are
	// instanced.
	GroupTemplate
)

// Batch describes the virtual members of a batch group.
type Batch struct {
	// SizeVar is an integer single variable of the group giving the number
	// of members.
	SizeVar string
	// MemberType is the component type the members behave as.
	MemberType string
	// MemberVars maps a member variable name to the group's array variable
	// whose element at the member's index backs it.
	MemberVars map[string]string
}

// Group describes the synthesized-member behavior of a component.
type Group struct {
	Kind GroupKind
	// ReplacesChildren means that, as a child, the group stands for its
	// members rather than for itself.
	ReplacesChildren bool
	Batch            *Batch
}

// ActionFunc handles a named action. resolve reads current values of the
// component the action was sent to. The result lists the variables to update
// and their requested values.
type ActionFunc func(action string, args map[string]value.Value, resolve func(StateRef) (value.Value, error)) (map[StateRef]value.Value, error)

// Component is the catalogue entry for one component type.
type Component struct {
	Type      string
	Variables map[string]Variable
	// PrimaryInput is the variable a state-variable copy shadows.
	PrimaryInput string
	Attributes   []string
	// Provides maps each profile this type satisfies to the variable that
	// carries it.
	Provides map[Profile]string
	// Accepts restricts the children this type accepts. Nil accepts anything.
	Accepts        []Profile
	RenderChildren bool
	RendererType   string
	Actions        []string
	OnAction       ActionFunc
	Group          Group
	// Guard is a boolean variable deciding whether the component counts as a
	// member of a collection and whether its children are rendered.
	Guard string
}

// Variable returns the named variable definition.
func (c *Component) Variable(name string) (Variable, bool) {
	v, ok := c.Variables[name]
	return v, ok
}

// VariableNames returns the declared variable names in sorted order.
func (c *Component) VariableNames() []string {
	names := make([]string, 0, len(c.Variables))
	for n := range c.Variables {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// HasAttribute reports whether the type declares the attribute.
func (c *Component) HasAttribute(name string) bool {
	for _, a := range c.Attributes {
		if a == name {
			return true
		}
	}
	return false
}

// ProvidedVar returns the variable providing the first of profiles this type
// satisfies.
func (c *Component) ProvidedVar(profiles []Profile) (string, bool) {
	for _, p := range profiles {
		if v, ok := c.Provides[p]; ok {
			return v, true
		}
	}
	return "", false
}

// AcceptsChild reports whether a child of type child is acceptable under
// c.Accepts.
func (c *Component) AcceptsChild(child *Component) bool {
	if c.Accepts == nil {
		return true
	}
	if child.Group.ReplacesChildren {
		return true
	}
	_, ok := child.ProvidedVar(c.Accepts)
	return ok
}

// IsGroup reports whether the component synthesizes members.
func (c *Component) IsGroup() bool { return c.Group.Kind != GroupNone }

// Catalogue looks up component definitions by type name.
type Catalogue interface {
	Lookup(componentType string) (*Component, bool)
}
