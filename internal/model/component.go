// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the Component node and its children.
package model

import "sort"

// Child is either a reference to another component or a piece of literal
// text. The zero Child is an empty text child.
type Child struct {
	Component string
	Text      string
}

// TextChild returns a literal text child.
func TextChild(s string) Child { return Child{Text: s} }

// ComponentChild returns a child that references a component by name.
func ComponentChild(name string) Child { return Child{Component: name} }

// IsText reports whether the child is literal text.
func (c Child) IsText() bool { return c.Component == "" }

// Attribute is the ordered content of one attribute: literal text pieces and
// references to components.
type Attribute []Child

// Literal returns the attribute's text when it consists of literal pieces
// only.
func (a Attribute) Literal() (string, bool) {
	s := ""
	for _, piece := range a {
		if !piece.IsText() {
			return "", false
		}
		s += piece.Text
	}
	return s, true
}

// Component is a single node of the document tree.
type Component struct {
	Name       string
	Type       string
	Parent     string
	Children   []Child
	Attributes map[string]Attribute
	CopySource CopySource
}

// Attribute returns the named attribute set directly on this component.
func (c *Component) Attribute(name string) (Attribute, bool) {
	a, ok := c.Attributes[name]
	return a, ok
}

// AttributeNames returns the component's own attribute names, sorted.
func (c *Component) AttributeNames() []string {
	names := make([]string, 0, len(c.Attributes))
	for n := range c.Attributes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ComponentChildren returns the names of the component children in order.
func (c *Component) ComponentChildren() []string {
	var out []string
	for _, ch := range c.Children {
		if !ch.IsText() {
			out = append(out, ch.Component)
		}
	}
	return out
}
