// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package model provides the in-memory representation of a document: a tree
// of components keyed by name. It is the construction input of the core and
// is produced by a loader (see internal/hcldoc).
//
// # Core Concepts
//
//   - Tree: an arena of components keyed by their unique name, plus the name
//     of the root. Components reference each other only by name, never by
//     pointer, so copy sources may point anywhere without creating ownership
//     cycles. Detecting actual cycles is the job of internal/validate.
//
//   - Component: one node. It carries its type (the key into the definition
//     catalogue), its parent, its ordered children (component references or
//     literal text), its attributes and an optional copy source.
//
//   - CopySource: the alias relationship of a component. A component may copy
//     a whole component, shadow a single state variable or array element,
//     shadow an element whose index is itself computed, or copy the current
//     item of an enclosing map's sources.
//
// The tree is immutable once built. Every later stage, from validation to
// rendering, reads it without modifying it.
package model
