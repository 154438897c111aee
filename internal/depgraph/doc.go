// Package depgraph holds the compiled, static dependency graph of a document.
//
// # Why a separate package
//
// The graph separates the immutable structure of a document (which slice
// reads which, compiled once by internal/builder) from the mutable state the
// core keeps next to it (cache cells and essential data). Everything in a
// Graph is written during construction and only read afterwards, so the same
// edges serve every repetition of a template and every array size.
//
// # Contents
//
//   - Edges: for each (component, state-variable slice, instruction name) the
//     ordered list of typed edges the instruction compiled into.
//   - Reads: the reverse view of the same edges, keyed by the component that
//     is read. The invalidation pass and the dependency-cycle validator both
//     walk it.
//   - Scopes: for each component, the chain of maps it is repeated by.
//   - Collections and Maps: flattened member descriptors of groups.
//   - Aliases: the names under which inherited children of copies are shown.
package depgraph
