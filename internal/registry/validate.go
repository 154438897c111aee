package registry

import (
	"errors"
	"fmt"
	"sort"

	"github.com/specialistvlad/doccore/internal/definition"
	"github.com/specialistvlad/doccore/internal/value"
)

// Validate checks every registered definition against the rules the core
// relies on, returning all problems found at once.
func (r *Registry) Validate() error {
	var errs []error
	for _, t := range r.Types() {
		errs = append(errs, validateComponent(r, r.components[t])...)
	}
	return errors.Join(errs...)
}

func validateComponent(r *Registry, def *definition.Component) []error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("component type '%s': "+format, append([]any{def.Type}, args...)...))
	}

	if def.PrimaryInput != "" {
		if v, ok := def.Variable(def.PrimaryInput); !ok {
			fail("primary input %q is not a declared variable", def.PrimaryInput)
		} else if v.IsArray() {
			fail("primary input %q must not be an array", def.PrimaryInput)
		}
	}

	profiles := make([]string, 0, len(def.Provides))
	for p := range def.Provides {
		profiles = append(profiles, string(p))
	}
	sort.Strings(profiles)
	for _, p := range profiles {
		name := def.Provides[definition.Profile(p)]
		if _, ok := def.Variable(name); !ok {
			fail("profile %q is provided by undeclared variable %q", p, name)
		}
	}

	if def.Guard != "" {
		if v, ok := def.Variable(def.Guard); !ok || v.Kind() != value.KindBoolean || v.IsArray() {
			fail("guard %q must be a declared single boolean variable", def.Guard)
		}
	}

	if len(def.Actions) > 0 && def.OnAction == nil {
		fail("declares actions but has no action handler")
	}

	if def.Group.Kind == definition.GroupBatch {
		validateBatch(r, def, fail)
	}
	return errs
}

func validateBatch(r *Registry, def *definition.Component, fail func(string, ...any)) {
	b := def.Group.Batch
	if b == nil {
		fail("batch group has no batch description")
		return
	}
	if v, ok := def.Variable(b.SizeVar); !ok || v.IsArray() {
		fail("batch size %q must be a declared single variable", b.SizeVar)
	}
	if _, ok := r.Lookup(b.MemberType); !ok {
		fail("batch member type %q is not registered", b.MemberType)
	}
	for member, array := range b.MemberVars {
		if v, ok := def.Variable(array); !ok || !v.IsArray() {
			fail("batch member variable %q must map to an array, got %q", member, array)
		}
	}
}
