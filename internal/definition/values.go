package definition

import (
	"fmt"

	"github.com/specialistvlad/doccore/internal/value"
)

// DependencyValue is one resolved input handed to a variable's Determine or
// Invert function.
type DependencyValue struct {
	Value value.Value
	// ComponentType is the type of the component the value came from, or
	// empty for essential data.
	ComponentType string
	// StateVar is the variable the value came from, or empty for essential
	// data.
	StateVar string
	// Text is set for values backed by literal text (a text child or a
	// literal attribute piece).
	Text bool
	// Vars holds the free variables of a compiled children expression,
	// keyed by the placeholder names used in Value.
	Vars map[string]value.Value
	// Parts is the number of sources a compiled expression was built from.
	Parts int
}

// Values maps instruction names to the values gathered for them, in the
// order the graph builder compiled their edges.
type Values map[string][]DependencyValue

// List returns the raw values of an instruction.
func (v Values) List(name string) []value.Value {
	deps := v[name]
	out := make([]value.Value, len(deps))
	for i, d := range deps {
		out[i] = d.Value
	}
	return out
}

// Optional returns the only value of an instruction, if there is one.
func (v Values) Optional(name string) (value.Value, bool, error) {
	deps := v[name]
	switch len(deps) {
	case 0:
		return value.Value{}, false, nil
	case 1:
		return deps[0].Value, true, nil
	}
	return value.Value{}, false, fmt.Errorf("instruction %q produced %d values, expected at most one", name, len(deps))
}

// Single returns the only value of an instruction, failing when there is not
// exactly one.
func (v Values) Single(name string) (value.Value, error) {
	got, ok, err := v.Optional(name)
	if err != nil {
		return value.Value{}, err
	}
	if !ok {
		return value.Value{}, fmt.Errorf("instruction %q produced no value", name)
	}
	return got, nil
}

// Update is what a Determine function produces: a new value, or a request to
// keep the current one.
type Update struct {
	keep  bool
	value value.Value
}

// Set returns an update storing v.
func Set(v value.Value) Update { return Update{value: v} }

// NoChange returns an update keeping the current value. It is only legal
// when a value has been resolved before.
func NoChange() Update { return Update{keep: true} }

// IsNoChange reports whether the update keeps the current value.
func (u Update) IsNoChange() bool { return u.keep }

// Value is the new value of a Set update.
func (u Update) Value() value.Value { return u.value }

// Request is one output of an inversion: set the source at Position of the
// named instruction's values to Value.
type Request struct {
	Instruction string
	Position    int
	Value       value.Value
}
