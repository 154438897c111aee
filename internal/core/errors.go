package core

import (
	"fmt"

	"github.com/specialistvlad/doccore/internal/definition"
	"github.com/specialistvlad/doccore/internal/instance"
)

// FatalError reports an internal inconsistency: a runtime dependency cycle,
// NoChange on a slice that never had a value, a failing derivation or missing
// compiled data.
type FatalError struct {
	Component string
	Instance  instance.Instance
	Ref       definition.StateRef
	Err       error
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("fatal error resolving %s%s.%s: %v", e.Component, e.Instance, e.Ref, e.Err)
}

func (e *FatalError) Unwrap() error { return e.Err }

// InversionError reports a requested update that could not be turned into
// writes. It only affects the one request.
type InversionError struct {
	Component string
	Ref       definition.StateRef
	Err       error
}

func (e *InversionError) Error() string {
	return fmt.Sprintf("cannot set %s.%s: %v", e.Component, e.Ref, e.Err)
}

func (e *InversionError) Unwrap() error { return e.Err }

func fatal(component string, inst instance.Instance, ref definition.StateRef, format string, args ...any) error {
	return &FatalError{Component: component, Instance: inst.Clone(), Ref: ref, Err: fmt.Errorf(format, args...)}
}
