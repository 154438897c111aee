// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the Tree arena and the copy-aware lookups used by every
// later stage.
package model

import (
	"fmt"
	"sort"
)

// NonInheritedAttributes lists attributes a whole-component copy never takes
// over from its source.
var NonInheritedAttributes = map[string]bool{"hide": true}

// Tree is the name-keyed arena of components.
type Tree struct {
	Root       string
	Components map[string]*Component
}

// NewTree returns an empty tree with the given root name.
func NewTree(root string) *Tree {
	return &Tree{Root: root, Components: make(map[string]*Component)}
}

// Add inserts a component. Adding a duplicate name is an error.
func (t *Tree) Add(c *Component) error {
	if _, exists := t.Components[c.Name]; exists {
		return fmt.Errorf("component %q defined more than once", c.Name)
	}
	t.Components[c.Name] = c
	return nil
}

// Get returns the named component.
func (t *Tree) Get(name string) (*Component, bool) {
	c, ok := t.Components[name]
	return c, ok
}

// SortedNames returns every component name in lexical order. All passes over
// the tree iterate in this order so that their output is deterministic.
func (t *Tree) SortedNames() []string {
	names := make([]string, 0, len(t.Components))
	for n := range t.Components {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Ancestors returns the ancestors of name, outermost first.
func (t *Tree) Ancestors(name string) []string {
	var chain []string
	seen := map[string]bool{name: true}
	c, ok := t.Components[name]
	for ok && c.Parent != "" && !seen[c.Parent] {
		chain = append(chain, c.Parent)
		seen[c.Parent] = true
		c, ok = t.Components[c.Parent]
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

// IsAncestor reports whether anc is a strict ancestor of name.
func (t *Tree) IsAncestor(anc, name string) bool {
	for _, a := range t.Ancestors(name) {
		if a == anc {
			return true
		}
	}
	return false
}

// WholeCopySource returns the source of a whole-component copy.
func (t *Tree) WholeCopySource(name string) (CopyOfComponent, bool) {
	c, ok := t.Components[name]
	if !ok || c.CopySource == nil {
		return CopyOfComponent{}, false
	}
	cc, ok := c.CopySource.(CopyOfComponent)
	return cc, ok
}

// Original follows whole-component copies back to the component that is not
// itself such a copy.
func (t *Tree) Original(name string) string {
	seen := map[string]bool{}
	for !seen[name] {
		seen[name] = true
		cc, ok := t.WholeCopySource(name)
		if !ok {
			return name
		}
		name = cc.Source
	}
	return name
}

// InheritedChild is one entry of a component's children including those it
// takes over through a whole-component copy.
type InheritedChild struct {
	Child
	// Owner is the component whose Children literally hold this child.
	Owner string
	// Position is the index of the child in Owner.Children.
	Position int
	// Inherited is true when Owner is not the component asked about.
	Inherited bool
}

// ChildrenIncludingCopy returns the source's children (recursively including
// its own copy source) followed by the component's own children.
func (t *Tree) ChildrenIncludingCopy(name string) []InheritedChild {
	return t.childrenIncludingCopy(name, map[string]bool{})
}

func (t *Tree) childrenIncludingCopy(name string, seen map[string]bool) []InheritedChild {
	c, ok := t.Components[name]
	if !ok || seen[name] {
		return nil
	}
	seen[name] = true

	var out []InheritedChild
	if cc, ok := c.CopySource.(CopyOfComponent); ok {
		for _, ch := range t.childrenIncludingCopy(cc.Source, seen) {
			ch.Inherited = true
			out = append(out, ch)
		}
	}
	for i, ch := range c.Children {
		out = append(out, InheritedChild{Child: ch, Owner: name, Position: i})
	}
	return out
}

// AttributeIncludingCopy returns the named attribute from the component or,
// failing that, from its whole-component copy source chain. owner is the
// component that actually carries the attribute.
func (t *Tree) AttributeIncludingCopy(name, attr string) (value Attribute, owner string, ok bool) {
	seen := map[string]bool{}
	for !seen[name] {
		seen[name] = true
		c, exists := t.Components[name]
		if !exists {
			return nil, "", false
		}
		if a, has := c.Attributes[attr]; has {
			return a, name, true
		}
		cc, isCopy := c.CopySource.(CopyOfComponent)
		if !isCopy || NonInheritedAttributes[attr] {
			return nil, "", false
		}
		name = cc.Source
	}
	return nil, "", false
}
