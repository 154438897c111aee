package dag

// Graph is a collection of nodes and their dependencies. It is built and
// checked by a single goroutine.
type Graph struct {
	// nodes stores all nodes in the graph, keyed by their unique ID.
	nodes map[string]*node
	// order records insertion order so traversals are deterministic.
	order []string
}

// node represents a single vertex in the graph. It is un-exported to
// enforce interaction with the graph via the public API (using string IDs),
// not by direct struct manipulation.
type node struct {
	// id is the unique identifier for the node.
	id string
	// deps holds the nodes that this node depends on, in insertion order.
	deps []*node
	// depSet deduplicates deps.
	depSet map[string]bool
}

// CycleError reports a cycle as the ordered list of node IDs on it. Each
// entry depends on the next one, and the last depends on the first.
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	msg := "cycle detected:"
	for _, id := range e.Path {
		msg += " " + id + " ->"
	}
	if len(e.Path) > 0 {
		msg += " " + e.Path[0]
	}
	return msg
}
