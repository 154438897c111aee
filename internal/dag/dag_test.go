package dag

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	g := New()
	require.NotNil(t, g)
	assert.NotNil(t, g.nodes)
	assert.Empty(t, g.nodes)
}

func TestAddNode(t *testing.T) {
	g := New()

	g.AddNode("a")
	assert.Len(t, g.nodes, 1)
	nodeA, ok := g.nodes["a"]
	require.True(t, ok)
	assert.Equal(t, "a", nodeA.id)
	assert.NotNil(t, nodeA.depSet)

	g.AddNode("a") // Test idempotency
	assert.Len(t, g.nodes, 1)

	g.AddNode("b")
	assert.Len(t, g.nodes, 2)
	assert.Equal(t, []string{"a", "b"}, g.order)
}

func TestAddEdge(t *testing.T) {
	t.Run("success case", func(t *testing.T) {
		g := New()
		g.AddNode("a")
		g.AddNode("b")

		require.NoError(t, g.AddEdge("a", "b")) // a depends on b
		require.NoError(t, g.AddEdge("a", "b")) // duplicate is ignored

		nodeA := g.nodes["a"]
		require.Len(t, nodeA.deps, 1)
		assert.Equal(t, "b", nodeA.deps[0].id)
		assert.Empty(t, g.nodes["b"].deps)
	})

	t.Run("error cases", func(t *testing.T) {
		g := New()
		g.AddNode("a")

		err := g.AddEdge("dne", "a")
		assert.ErrorContains(t, err, "source node not found")

		err = g.AddEdge("a", "dne")
		assert.ErrorContains(t, err, "destination node not found")
	})
}

func TestDetectCycles(t *testing.T) {
	build := func(t *testing.T, nodes []string, edges [][2]string) *Graph {
		t.Helper()
		g := New()
		for _, n := range nodes {
			g.AddNode(n)
		}
		for _, e := range edges {
			require.NoError(t, g.AddEdge(e[0], e[1]))
		}
		return g
	}

	t.Run("empty graph has no cycles", func(t *testing.T) {
		assert.NoError(t, New().DetectCycles())
	})

	t.Run("valid dag has no cycles", func(t *testing.T) {
		g := build(t, []string{"a", "b", "c", "d"}, [][2]string{{"a", "b"}, {"b", "c"}, {"a", "c"}, {"c", "d"}})
		assert.NoError(t, g.DetectCycles())
	})

	t.Run("self edge is a cycle", func(t *testing.T) {
		g := build(t, []string{"a"}, [][2]string{{"a", "a"}})
		var cycleErr *CycleError
		require.True(t, errors.As(g.DetectCycles(), &cycleErr))
		assert.Equal(t, []string{"a"}, cycleErr.Path)
	})

	t.Run("longer cycle reports its path", func(t *testing.T) {
		g := build(t, []string{"start", "a", "b", "c"}, [][2]string{{"start", "a"}, {"a", "b"}, {"b", "c"}, {"c", "a"}})
		err := g.DetectCycles()
		var cycleErr *CycleError
		require.True(t, errors.As(err, &cycleErr))
		assert.Equal(t, []string{"a", "b", "c"}, cycleErr.Path)
		assert.EqualError(t, err, "cycle detected: a -> b -> c -> a")
	})

	t.Run("cycle in a disjoint component is detected", func(t *testing.T) {
		g := build(t, []string{"a", "b", "x", "y", "z"}, [][2]string{{"a", "b"}, {"x", "y"}, {"y", "z"}, {"z", "y"}})
		var cycleErr *CycleError
		require.True(t, errors.As(g.DetectCycles(), &cycleErr))
		assert.Equal(t, []string{"y", "z"}, cycleErr.Path)
	})
}
