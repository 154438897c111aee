package definition

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/doccore/internal/value"
)

// ErrReadOnly is returned by Invert for values that cannot be set.
var ErrReadOnly = errors.New("state variable is read-only")

// Variable is the capability contract every state variable definition
// implements. The core never looks inside a definition; it only calls these
// methods.
//
// For single variables every method is called with a Basic ref. For arrays,
// Instructions and Determine are called with SizeOf and with Element refs, and
// Invert with Element refs.
type Variable interface {
	Kind() value.Kind
	IsArray() bool
	ForRenderer() bool
	// Default is the value used to seed essential data and the value of a
	// shadowing variable whose source produces nothing.
	Default() value.Value
	Instructions(ref StateRef) map[string]Instruction
	Determine(ref StateRef, vals Values) (Update, error)
	Invert(ref StateRef, desired value.Value, vals Values) ([]Request, error)
}

// SingleVar implements Variable for a single variable with plain functions.
type SingleVar struct {
	Type     value.Kind
	Renderer bool
	Initial  *value.Value
	Deps     func() map[string]Instruction
	Derive   func(vals Values) (Update, error)
	// Inverse is optional; without it the variable is read-only.
	Inverse func(desired value.Value, vals Values) ([]Request, error)
}

func (s *SingleVar) Kind() value.Kind  { return s.Type }
func (s *SingleVar) IsArray() bool     { return false }
func (s *SingleVar) ForRenderer() bool { return s.Renderer }

func (s *SingleVar) Default() value.Value {
	if s.Initial != nil {
		return *s.Initial
	}
	return value.Zero(s.Type)
}

func (s *SingleVar) Instructions(StateRef) map[string]Instruction {
	if s.Deps == nil {
		return nil
	}
	return s.Deps()
}

func (s *SingleVar) Determine(_ StateRef, vals Values) (Update, error) {
	return s.Derive(vals)
}

func (s *SingleVar) Invert(_ StateRef, desired value.Value, vals Values) ([]Request, error) {
	if s.Inverse == nil {
		return nil, ErrReadOnly
	}
	return s.Inverse(desired, vals)
}

// ArrayVar implements Variable for an array variable.
type ArrayVar struct {
	Type     value.Kind
	Renderer bool
	Initial  *value.Value

	SizeDeps   func() map[string]Instruction
	DeriveSize func(vals Values) (Update, error)

	ElementDeps    func(index int) map[string]Instruction
	DeriveElement  func(index int, vals Values) (Update, error)
	InverseElement func(index int, desired value.Value, vals Values) ([]Request, error)
}

func (a *ArrayVar) Kind() value.Kind  { return a.Type }
func (a *ArrayVar) IsArray() bool     { return true }
func (a *ArrayVar) ForRenderer() bool { return a.Renderer }

func (a *ArrayVar) Default() value.Value {
	if a.Initial != nil {
		return *a.Initial
	}
	return value.Zero(a.Type)
}

func (a *ArrayVar) Instructions(ref StateRef) map[string]Instruction {
	switch ref.Kind {
	case RefSize:
		return a.SizeDeps()
	case RefElement:
		return a.ElementDeps(ref.Index)
	}
	return nil
}

func (a *ArrayVar) Determine(ref StateRef, vals Values) (Update, error) {
	switch ref.Kind {
	case RefSize:
		return a.DeriveSize(vals)
	case RefElement:
		return a.DeriveElement(ref.Index, vals)
	}
	return Update{}, fmt.Errorf("array %s cannot be determined as a single value", ref.Name)
}

func (a *ArrayVar) Invert(ref StateRef, desired value.Value, vals Values) ([]Request, error) {
	if ref.Kind != RefElement || a.InverseElement == nil {
		return nil, ErrReadOnly
	}
	return a.InverseElement(ref.Index, desired, vals)
}

// Ptr is a convenience for filling Initial fields.
func Ptr(v value.Value) *value.Value { return &v }
