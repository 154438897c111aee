// Package docerr defines the closed set of structural errors that abort core
// construction and the closed set of warnings reported alongside a usable
// core.
package docerr

import (
	"fmt"
	"strings"
)

// Kind enumerates the construction errors.
type Kind uint8

const (
	ComponentNotFound Kind = iota + 1
	StateVarNotFound
	AttributeNotFound
	InvalidComponentType
	ComponentCopiesAncestor
	CannotCopyDifferentType
	CannotCopyArrayAsScalar
	CannotIndexNonArray
	CyclicalCopySource
	CyclicalDependency
)

var kindNames = map[Kind]string{
	ComponentNotFound:       "component not found",
	StateVarNotFound:        "state variable not found",
	AttributeNotFound:       "attribute not found",
	InvalidComponentType:    "invalid component type",
	ComponentCopiesAncestor: "component copies its own ancestor",
	CannotCopyDifferentType: "component cannot copy a different type",
	CannotCopyArrayAsScalar: "cannot copy an array as a scalar",
	CannotIndexNonArray:     "cannot index a non-array",
	CyclicalCopySource:      "cyclical copy source",
	CyclicalDependency:      "cyclical data dependency",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Error is a structural problem found while building a core.
type Error struct {
	Kind Kind
	// Component is the component the problem was found on.
	Component string
	// Target is the component, variable, attribute or type the problem is
	// about, depending on Kind.
	Target string
	// Chain lists the component names on a cycle, in order.
	Chain []string
}

func (e *Error) Error() string {
	switch e.Kind {
	case ComponentNotFound:
		if e.Component != "" {
			return fmt.Sprintf("%s: %q referenced by %q", e.Kind, e.Target, e.Component)
		}
		return fmt.Sprintf("%s: %q", e.Kind, e.Target)
	case StateVarNotFound, AttributeNotFound:
		return fmt.Sprintf("%s: %q on component %q", e.Kind, e.Target, e.Component)
	case InvalidComponentType:
		return fmt.Sprintf("%s: %q used by component %q", e.Kind, e.Target, e.Component)
	case ComponentCopiesAncestor:
		return fmt.Sprintf("%s: %q copies %q", e.Kind, e.Component, e.Target)
	case CannotCopyDifferentType:
		return fmt.Sprintf("%s: %q cannot copy %q", e.Kind, e.Component, e.Target)
	case CannotCopyArrayAsScalar, CannotIndexNonArray:
		return fmt.Sprintf("%s: %q reading %s", e.Kind, e.Component, e.Target)
	case CyclicalCopySource, CyclicalDependency:
		return fmt.Sprintf("%s: %s", e.Kind, strings.Join(e.Chain, " -> "))
	}
	return e.Kind.String()
}

// Is matches any *Error of the same Kind, so callers can test against the
// sentinels below with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind && t.Component == "" && t.Target == "" && t.Chain == nil
}

// Sentinels for errors.Is.
var (
	ErrComponentNotFound       = &Error{Kind: ComponentNotFound}
	ErrStateVarNotFound        = &Error{Kind: StateVarNotFound}
	ErrAttributeNotFound       = &Error{Kind: AttributeNotFound}
	ErrInvalidComponentType    = &Error{Kind: InvalidComponentType}
	ErrComponentCopiesAncestor = &Error{Kind: ComponentCopiesAncestor}
	ErrCannotCopyDifferentType = &Error{Kind: CannotCopyDifferentType}
	ErrCannotCopyArrayAsScalar = &Error{Kind: CannotCopyArrayAsScalar}
	ErrCannotIndexNonArray     = &Error{Kind: CannotIndexNonArray}
	ErrCyclicalCopySource      = &Error{Kind: CyclicalCopySource}
	ErrCyclicalDependency      = &Error{Kind: CyclicalDependency}
)

// WarningKind enumerates the non-fatal problems.
type WarningKind uint8

const (
	InvalidChildType WarningKind = iota + 1
	NonPositiveIndex
)

func (k WarningKind) String() string {
	switch k {
	case InvalidChildType:
		return "invalid child type"
	case NonPositiveIndex:
		return "index is not a positive integer"
	}
	return fmt.Sprintf("warning(%d)", uint8(k))
}

// Warning is a shape problem that leaves the core usable.
type Warning struct {
	Kind      WarningKind
	Component string
	// Detail is the offending child name or index literal.
	Detail string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %q on component %q", w.Kind, w.Detail, w.Component)
}
