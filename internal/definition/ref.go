package definition

import "fmt"

// RefKind distinguishes the three ways a state variable can be addressed.
type RefKind uint8

const (
	// RefBasic addresses a single (non-array) variable.
	RefBasic RefKind = iota
	// RefSize addresses the size of an array variable.
	RefSize
	// RefElement addresses one element of an array variable.
	RefElement
)

// StateRef names one resolvable slice of a state variable. Element indices
// are 1-based; Index 0 on an element ref is the generic element key the graph
// builder compiles for indices without a dedicated key.
type StateRef struct {
	Name  string
	Kind  RefKind
	Index int
}

// Basic references a single variable.
func Basic(name string) StateRef { return StateRef{Name: name} }

// SizeOf references the size of an array variable.
func SizeOf(name string) StateRef { return StateRef{Name: name, Kind: RefSize} }

// Element references element i (1-based) of an array variable.
func Element(name string, i int) StateRef { return StateRef{Name: name, Kind: RefElement, Index: i} }

// IsGeneric reports whether the ref is the generic element key.
func (r StateRef) IsGeneric() bool { return r.Kind == RefElement && r.Index == 0 }

func (r StateRef) String() string {
	switch r.Kind {
	case RefSize:
		return r.Name + "[#]"
	case RefElement:
		if r.Index == 0 {
			return r.Name + "[*]"
		}
		return fmt.Sprintf("%s[%d]", r.Name, r.Index)
	default:
		return r.Name
	}
}

// Slice is what an instruction asks for: a single ref, or a whole array
// (its size followed by every element).
type Slice struct {
	Ref   StateRef
	Array bool
}

// Single returns a slice for one ref.
func Single(ref StateRef) Slice { return Slice{Ref: ref} }

// Array returns a slice for a whole array variable.
func Array(name string) Slice { return Slice{Ref: StateRef{Name: name}, Array: true} }

func (s Slice) String() string {
	if s.Array {
		return s.Ref.Name + "[]"
	}
	return s.Ref.String()
}
