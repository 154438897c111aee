// internal/compid/address.go
package compid

import (
	"strconv"
	"strings"
)

const copyPrefix = "__cp:"

// Address is the parsed form of an instance-qualified component name.
type Address struct {
	// Name is the actual component name.
	Name string
	// Copy is set when the component is rendered as an inherited child of a
	// whole-component copy.
	Copy string
	// Member is the 1-based virtual member index inside a batch group, or 0.
	Member   int
	Instance []int
}

// New returns the address of a plain component at an instance.
func New(name string, instance []int) Address {
	return Address{Name: name, Instance: append([]int(nil), instance...)}
}

// Alias returns the alias under which child is shown when inherited by copy.
func Alias(child, copy string) string {
	return copyPrefix + child + "(" + copy + ")"
}

// Base returns the name part without member and instance suffixes.
func (a Address) Base() string {
	if a.Copy != "" {
		return Alias(a.Name, a.Copy)
	}
	return a.Name
}

// String returns the canonical representation.
func (a Address) String() string {
	var sb strings.Builder
	sb.WriteString(a.Base())
	if a.Member > 0 {
		sb.WriteByte('#')
		sb.WriteString(strconv.Itoa(a.Member))
	}
	for _, idx := range a.Instance {
		sb.WriteByte('[')
		sb.WriteString(strconv.Itoa(idx))
		sb.WriteByte(']')
	}
	return sb.String()
}

// Equal checks if two addresses are identical.
func (a Address) Equal(other Address) bool {
	if a.Name != other.Name || a.Copy != other.Copy || a.Member != other.Member {
		return false
	}
	if len(a.Instance) != len(other.Instance) {
		return false
	}
	for i := range a.Instance {
		if a.Instance[i] != other.Instance[i] {
			return false
		}
	}
	return true
}
