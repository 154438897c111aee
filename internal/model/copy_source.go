// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the copy source variants. A copy source makes a component
// wholly or partially an alias of another one.
package model

import (
	"strconv"
	"strings"
)

// CopySource is implemented by every copy source variant.
type CopySource interface {
	// SourceName is the component the copy reads from.
	SourceName() string
	copySource()
}

// CopyOfComponent copies a whole component. When the source sits inside
// maps the copy is not inside, Instance selects the repetition, one index per
// extra map. Missing trailing indices default to 1.
type CopyOfComponent struct {
	Source   string
	Instance []int
}

// CopyOfStateVar shadows a single state variable of the source. IndexLiteral
// selects an array element when it is not empty; it is kept as written so that
// an invalid literal can be reported as a warning instead of failing the
// whole document.
type CopyOfStateVar struct {
	Source       string
	StateVar     string
	IndexLiteral string
}

// CopyOfDynamicElement shadows an array element whose 1-based index is the
// current value of IndexComponent's IndexStateVar.
type CopyOfDynamicElement struct {
	Source         string
	StateVar       string
	IndexComponent string
	IndexStateVar  string
}

// CopyOfMapSource copies the item of Map's sources collection that belongs to
// the current iteration. The copy must be inside Map's template.
type CopyOfMapSource struct {
	Map string
}

func (c CopyOfComponent) SourceName() string      { return c.Source }
func (c CopyOfStateVar) SourceName() string       { return c.Source }
func (c CopyOfDynamicElement) SourceName() string { return c.Source }
func (c CopyOfMapSource) SourceName() string      { return c.Map }

func (CopyOfComponent) copySource()      {}
func (CopyOfStateVar) copySource()       {}
func (CopyOfDynamicElement) copySource() {}
func (CopyOfMapSource) copySource()      {}

// Index parses IndexLiteral. An empty literal selects no element (index 0).
// ok is false when the literal is not a positive integer.
func (c CopyOfStateVar) Index() (index int, ok bool) {
	lit := strings.TrimSpace(c.IndexLiteral)
	if lit == "" {
		return 0, true
	}
	n, err := strconv.Atoi(lit)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}
