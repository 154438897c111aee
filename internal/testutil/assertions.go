package testutil

import (
	"testing"

	"github.com/specialistvlad/doccore/internal/core"
	"github.com/stretchr/testify/require"
)

// FindNode returns the render node with the given qualified name.
func FindNode(t *testing.T, nodes []core.RenderNode, name string) core.RenderNode {
	t.Helper()
	for _, n := range nodes {
		if n.ComponentName == name {
			return n
		}
	}
	require.Failf(t, "render node not found", "no node named %q among %d nodes", name, len(nodes))
	return core.RenderNode{}
}

// HasNode reports whether a render node with the given name exists.
func HasNode(nodes []core.RenderNode, name string) bool {
	for _, n := range nodes {
		if n.ComponentName == name {
			return true
		}
	}
	return false
}
