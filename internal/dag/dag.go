package dag

import (
	"fmt"
)

// New creates and returns an initialized, empty Graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[string]*node),
	}
}

// AddNode adds a new node with the given ID to the graph. If a node with
// the same ID already exists, the function does nothing.
func (g *Graph) AddNode(id string) {
	if _, ok := g.nodes[id]; ok {
		return
	}

	g.nodes[id] = &node{
		id:     id,
		depSet: make(map[string]bool),
	}
	g.order = append(g.order, id)
}

// AddEdge records that `fromID` depends on `toID`. Self edges are allowed;
// they are cycles of length one and DetectCycles reports them. An error is
// returned if either node does not exist.
func (g *Graph) AddEdge(fromID, toID string) error {
	fromNode, ok := g.nodes[fromID]
	if !ok {
		return fmt.Errorf("source node not found: %s", fromID)
	}

	toNode, ok := g.nodes[toID]
	if !ok {
		return fmt.Errorf("destination node not found: %s", toID)
	}

	if fromNode.depSet[toID] {
		return nil
	}
	fromNode.depSet[toID] = true
	fromNode.deps = append(fromNode.deps, toNode)

	return nil
}

// DetectCycles checks the graph for cycles. It walks dependencies depth
// first from every node in insertion order and returns a *CycleError holding
// the path of the first cycle found.
func (g *Graph) DetectCycles() error {
	// permanent: nodes fully visited and known not to reach a cycle.
	// onStack: position of nodes in the current DFS path.
	permanent := make(map[string]bool)
	onStack := make(map[string]int)
	var path []string

	var visit func(n *node) error
	visit = func(n *node) error {
		if permanent[n.id] {
			return nil
		}
		if at, ok := onStack[n.id]; ok {
			cycle := append([]string(nil), path[at:]...)
			return &CycleError{Path: cycle}
		}

		onStack[n.id] = len(path)
		path = append(path, n.id)

		for _, dep := range n.deps {
			if err := visit(dep); err != nil {
				return err
			}
		}

		path = path[:len(path)-1]
		delete(onStack, n.id)
		permanent[n.id] = true
		return nil
	}

	for _, id := range g.order {
		if err := visit(g.nodes[id]); err != nil {
			return err
		}
	}

	return nil
}
