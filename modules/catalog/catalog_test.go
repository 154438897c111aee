package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	r, err := Default()
	require.NoError(t, err)

	again, err := Default()
	require.NoError(t, err)
	assert.Same(t, r, again, "the catalogue should be built once")

	assert.Equal(t, []string{
		"boolean", "booleanInput", "conditionalContent", "document", "map",
		"number", "p", "point", "section", "sequence", "sources", "template",
		"text", "textInput",
	}, r.Types())
}

func TestHiddenUsersDeclareHide(t *testing.T) {
	r, err := Default()
	require.NoError(t, err)
	for _, typ := range r.Types() {
		def, _ := r.Lookup(typ)
		if _, ok := def.Variable("hidden"); ok {
			assert.True(t, def.HasAttribute("hide"), "%s reads the hide attribute", typ)
		}
	}
}
