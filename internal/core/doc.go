/*
Package core is the reactive evaluation core of a document.

A Core owns everything that changes while a document is used: one cache cell
per resolved (component, instance, state-variable slice) and the essential
data store. The compiled dependency graph and the component tree next to them
never change after New returns.

The core is demand driven. Resolve computes a slice by gathering the values of
the edges its instructions compiled into, recursively resolving what they
point at, and handing them to the variable's definition. Results are cached
until a write invalidates them. Writes only ever reach essential data: an
action asks definitions to invert requested values into writes, the writes
are applied, and every cached slice that transitively read the written data
is marked stale through the graph's reverse read index.

A Core is not safe for concurrent use. Hosts serialize calls (see
internal/session).

Runtime failures come in two kinds. A *FatalError means the core reached a
state construction should have ruled out, such as a dependency cycle, and the
host should drop the session. An *InversionError means one requested update
could not be expressed; HandleAction logs and drops it and carries on.
*/
package core
