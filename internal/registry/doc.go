// Package registry provides the central "glue" for the component catalogue.
//
// The Registry maps component type names, as they appear in documents (e.g.,
// "point"), to their definitions: the state variables, actions and group
// behavior the core calls through the definition.Variable contract. Each
// catalogue module registers its types through the Module interface.
//
// During application startup, the registry is populated once and then
// validated so that broken definitions fail fast instead of surfacing as
// runtime inconsistencies inside a document. After that it is never mutated;
// the core only reads it through the Lookup method.
package registry
