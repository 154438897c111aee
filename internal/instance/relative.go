package instance

import "fmt"

// Relative describes how a dependency's instance relates to its dependent's.
//
// Common is the number of enclosing maps both share; the dependency's
// instance always starts with the dependent's first Common indices. When the
// dependency sits inside further maps, Fixed pins those extra indices (a copy
// of one specific repetition); without Fixed the dependency stands for every
// repetition of the extra maps.
type Relative struct {
	Common int
	Fixed  []int
}

// Between computes the relative instance of an edge from a dependent whose
// enclosing-map chain is dependent to a target whose chain is target.
func Between(dependent, target []string) Relative {
	return Relative{Common: CommonDepth(dependent, target)}
}

// WithFixed returns r pinned to the given extra indices.
func (r Relative) WithFixed(fixed []int) Relative {
	r.Fixed = append([]int(nil), fixed...)
	return r
}

// Forward returns the instance group of the dependency, whose enclosing-map
// chain has targetDepth entries, as seen from the dependent instance dep.
func (r Relative) Forward(dep Instance, targetDepth int) Group {
	common := r.Common
	if common > len(dep) {
		common = len(dep)
	}
	if common > targetDepth {
		common = targetDepth
	}
	prefix := dep.Prefix(common)
	extra := targetDepth - common
	if extra == 0 {
		return Group{Prefix: prefix}
	}
	if len(r.Fixed) > 0 {
		for n := 0; n < extra; n++ {
			idx := 1
			if n < len(r.Fixed) {
				idx = r.Fixed[n]
			}
			prefix = prefix.Append(idx)
		}
		return Group{Prefix: prefix}
	}
	return Group{Prefix: prefix, Free: extra}
}

// Reverse translates the instance of a written dependency into the prefix
// shared by every affected dependent instance. ok is false when a pinned
// edge does not point at the written repetition.
func (r Relative) Reverse(written Instance) (prefix Instance, ok bool) {
	common := r.Common
	if common > len(written) {
		common = len(written)
	}
	if len(r.Fixed) > 0 {
		for n, idx := range written[common:] {
			want := 1
			if n < len(r.Fixed) {
				want = r.Fixed[n]
			}
			if idx != want {
				return nil, false
			}
		}
	}
	return written.Prefix(common), true
}

func (r Relative) String() string {
	if len(r.Fixed) > 0 {
		return fmt.Sprintf("common=%d fixed=%v", r.Common, r.Fixed)
	}
	return fmt.Sprintf("common=%d", r.Common)
}

// Group is an instance group: every instance that starts with Prefix and has
// Free further indices.
type Group struct {
	Prefix Instance
	Free   int
}

// SizeFunc returns the number of repetitions at the level following prefix.
type SizeFunc func(prefix Instance) (int, error)

// Enumerate lists the instances of the group in order.
func (g Group) Enumerate(size SizeFunc) ([]Instance, error) {
	out := []Instance{g.Prefix.Clone()}
	for level := 0; level < g.Free; level++ {
		var next []Instance
		for _, p := range out {
			n, err := size(p)
			if err != nil {
				return nil, err
			}
			for idx := 1; idx <= n; idx++ {
				next = append(next, p.Append(idx))
			}
		}
		out = next
	}
	return out, nil
}

// Contains reports whether inst belongs to the group.
func (g Group) Contains(inst Instance) bool {
	return len(inst) == len(g.Prefix)+g.Free && inst.HasPrefix(g.Prefix)
}
