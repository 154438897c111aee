package dump_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/specialistvlad/doccore/internal/core"
	"github.com/specialistvlad/doccore/internal/dump"
	"github.com/specialistvlad/doccore/internal/testutil"
	"github.com/specialistvlad/doccore/internal/value"
)

func TestBuildAndWrite(t *testing.T) {
	c, _ := testutil.NewCore(t, `
document "doc" {
  textInput "ti" { prefill = "a" }
  text "t" { copy = ti.value }
  point "pt" { coords = [1, 2] }
}`)
	require.NoError(t, c.HandleAction(context.Background(), core.Action{
		ComponentName: "pt", ActionName: "movePoint",
		Args: map[string]value.Value{"x": value.Number(7), "y": value.Number(8)},
	}))

	doc, err := dump.Build(c.Graph(), c.Essential())
	require.NoError(t, err)

	var shadowed bool
	for _, v := range doc.Variables {
		if v.Key == "t:value" {
			shadowed = v.Shadow
		}
	}
	assert.True(t, shadowed, "t.value reads ti.value through its copy source")

	data := map[string]dump.Instance{}
	for _, d := range doc.Essential {
		require.NotEmpty(t, d.Instances)
		data[d.Key] = d.Instances[0]
	}
	var coords *dump.Instance
	for key, inst := range data {
		if len(inst.Elements) > 0 && strings.HasPrefix(key, "pt/") {
			inst := inst
			coords = &inst
		}
	}
	require.NotNil(t, coords, "the point's coordinates are essential")
	assert.Equal(t, []string{"7", "8"}, coords.Elements)

	var buf bytes.Buffer
	require.NoError(t, dump.Write(&buf, doc))

	var decoded dump.Document
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, len(doc.Variables), len(decoded.Variables))
	assert.Equal(t, len(doc.Essential), len(decoded.Essential))
}
