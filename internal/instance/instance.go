// Package instance implements the algebra that lets one static dependency
// graph serve every repetition of a templated component.
//
// An Instance is the path of 1-based iteration indices of the maps a
// component sits inside, outermost first. Components outside any map have the
// empty instance. Every compiled edge carries a Relative, derived once from
// the enclosing-map chains of the dependent and of the dependency, which
// translates a concrete dependent instance into the instances of the
// dependency (Forward) and a concrete writer instance into the affected
// dependents (Reverse).
package instance

import (
	"strconv"
	"strings"
)

// Instance is an absolute instance.
type Instance []int

// Key returns a compact map key for the instance.
func (i Instance) Key() string {
	if len(i) == 0 {
		return ""
	}
	parts := make([]string, len(i))
	for n, idx := range i {
		parts[n] = strconv.Itoa(idx)
	}
	return strings.Join(parts, ".")
}

// FromKey parses a key produced by Key.
func FromKey(key string) Instance {
	if key == "" {
		return nil
	}
	parts := strings.Split(key, ".")
	out := make(Instance, len(parts))
	for n, p := range parts {
		out[n], _ = strconv.Atoi(p)
	}
	return out
}

func (i Instance) String() string {
	var sb strings.Builder
	for _, idx := range i {
		sb.WriteByte('[')
		sb.WriteString(strconv.Itoa(idx))
		sb.WriteByte(']')
	}
	return sb.String()
}

// Prefix returns the first n indices, or the whole instance when it is
// shorter.
func (i Instance) Prefix(n int) Instance {
	if n >= len(i) {
		return i.Clone()
	}
	return append(Instance(nil), i[:n]...)
}

// Append returns a new instance with idx appended.
func (i Instance) Append(idx ...int) Instance {
	out := make(Instance, 0, len(i)+len(idx))
	out = append(out, i...)
	return append(out, idx...)
}

// HasPrefix reports whether p is a prefix of i.
func (i Instance) HasPrefix(p Instance) bool {
	if len(p) > len(i) {
		return false
	}
	for n := range p {
		if i[n] != p[n] {
			return false
		}
	}
	return true
}

// Equal reports whether both instances are identical.
func (i Instance) Equal(o Instance) bool {
	return len(i) == len(o) && i.HasPrefix(o)
}

// Clone returns a copy that shares no memory with i.
func (i Instance) Clone() Instance {
	if i == nil {
		return nil
	}
	return append(Instance(nil), i...)
}

// CommonDepth returns the length of the common prefix of two enclosing-map
// chains.
func CommonDepth(a, b []string) int {
	n := 0
	for n < len(a) && n < len(b) && a[n] == b[n] {
		n++
	}
	return n
}
