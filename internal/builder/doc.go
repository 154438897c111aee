/*
Package builder compiles a component tree into the static dependency graph of
internal/depgraph. It is the bridge between the document model (internal/model)
and the resolution engine (internal/core).

Graph construction is a multi-pass process:

 1. Definitions: every component is bound to its catalogue entry.

 2. Structure: the builder computes, for each component, the chain of maps it
    is repeated by (its scope), the flattened member descriptors of every
    group, the shape of every map and the aliases of children inherited
    through whole-component copies. Children a profile-constrained parent
    does not accept are reported as warnings and left out.

 3. Variables: every state variable of every component asks its definition
    for dependency instructions. Single variables have one set; arrays have
    one for their size and one per element key of a small working set of
    indices. Each instruction compiles into typed edges. Variables of copies
    are linked straight to their source instead (shadowing).
    Essential data is allocated and seeded the first time an instruction
    needs it.

 4. Reads: every edge is also recorded in reverse, keyed by what it reads,
    for the invalidation pass and the dependency-cycle validator.

The builder assumes the structural validation of internal/validate has passed
(copy sources exist and are acyclic); it still reports errors for anything an
instruction asks for that does not exist.
*/
package builder
