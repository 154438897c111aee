package session_test

import (
	"bytes"
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/doccore/internal/core"
	"github.com/specialistvlad/doccore/internal/testutil"
	"github.com/specialistvlad/doccore/internal/value"
)

const doc = `
document "doc" {
  textInput "ti" { prefill = "hello" }
  text "t" { copy = ti.value }
}
`

func textOf(t *testing.T, nodes []core.RenderNode, name string) string {
	t.Helper()
	v, ok := testutil.FindNode(t, nodes, name).StateValues["value"].(value.Value)
	require.True(t, ok)
	return v.Text()
}

func TestSession_HandleActionJSON(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewSession(t, doc)

	nodes, err := s.HandleActionJSON(ctx, []byte(`{"componentName":"ti","actionName":"updateImmediateValue","args":{"text":"bye"}}`))
	require.NoError(t, err)
	assert.Equal(t, "hello", textOf(t, nodes, "t"))

	nodes, err = s.HandleActionJSON(ctx, []byte(`{"componentName":"ti","actionName":"updateValue"}`))
	require.NoError(t, err)
	assert.Equal(t, "bye", textOf(t, nodes, "t"))

	_, err = s.HandleActionJSON(ctx, []byte(`{"componentName":"ti"}`))
	require.Error(t, err)
}

func TestSession_ReloadKeepsEdits(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewSession(t, doc)

	_, err := s.HandleActionJSON(ctx, []byte(`{"componentName":"ti","actionName":"updateImmediateValue","args":{"text":"edited"}}`))
	require.NoError(t, err)

	// The reloaded document adds a component; the edit survives.
	warnings, err := s.Reload(ctx, testutil.LoadTree(t, `
document "doc" {
  textInput "ti" { prefill = "hello" }
  text "t" { copy = ti.immediateValue }
  p "extra" { children = "new" }
}
`))
	require.NoError(t, err)
	assert.Empty(t, warnings)

	nodes, err := s.Render(ctx)
	require.NoError(t, err)
	assert.Equal(t, "edited", textOf(t, nodes, "t"))
	assert.True(t, testutil.HasNode(nodes, "extra"))
}

func TestSession_ReloadFailureKeepsDocument(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewSession(t, doc)

	_, err := s.Reload(ctx, testutil.LoadTree(t, `
document "doc" {
  text "a" { copy = b }
  text "b" { copy = a }
}
`))
	require.Error(t, err)

	nodes, err := s.Render(ctx)
	require.NoError(t, err)
	assert.True(t, testutil.HasNode(nodes, "ti"))
}

func TestSession_Dump(t *testing.T) {
	s := testutil.NewSession(t, doc)
	var buf bytes.Buffer
	require.NoError(t, s.Dump(&buf))
	assert.Contains(t, buf.String(), "variables:")
	assert.Contains(t, buf.String(), "ti/")
}

func TestSession_ConcurrentUse(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewSession(t, doc)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.HandleActionJSON(ctx, []byte(`{"componentName":"ti","actionName":"updateImmediateValue","args":{"text":"x"}}`))
			assert.NoError(t, err)
			_, err = s.Render(ctx)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
}
