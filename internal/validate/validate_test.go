package validate_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/doccore/internal/builder"
	"github.com/specialistvlad/doccore/internal/docerr"
	"github.com/specialistvlad/doccore/internal/essential"
	"github.com/specialistvlad/doccore/internal/hcldoc"
	"github.com/specialistvlad/doccore/internal/model"
	"github.com/specialistvlad/doccore/internal/validate"
	"github.com/specialistvlad/doccore/modules/catalog"
)

func load(t *testing.T, src string) *model.Tree {
	t.Helper()
	tree, err := hcldoc.LoadSource(context.Background(), "test.hcl", []byte(src))
	require.NoError(t, err)
	return tree
}

func asDocErr(t *testing.T, err error) *docerr.Error {
	t.Helper()
	var docErr *docerr.Error
	require.True(t, errors.As(err, &docErr), "expected a *docerr.Error, got %v", err)
	return docErr
}

func TestComponents(t *testing.T) {
	cat, err := catalog.Default()
	require.NoError(t, err)

	require.NoError(t, validate.Components(load(t, "document \"doc\" {\n  p \"q\" {}\n}"), cat))

	err = validate.Components(load(t, "document \"doc\" {\n  widget \"w\" {}\n}"), cat)
	got := asDocErr(t, err)
	assert.Equal(t, docerr.InvalidComponentType, got.Kind)
	assert.Equal(t, "widget", got.Target)

	err = validate.Components(load(t, "document \"doc\" {\n  p \"q\" { hide = ghost }\n}"), cat)
	got = asDocErr(t, err)
	assert.Equal(t, docerr.ComponentNotFound, got.Kind)
	assert.Equal(t, "ghost", got.Target)
}

func TestCopyCycles(t *testing.T) {
	err := validate.CopyCycles(load(t, `
document "doc" {
  text "a" { copy = b }
  text "b" { copy = c }
  text "c" { copy = a }
  text "d" { copy = a }
}`))
	got := asDocErr(t, err)
	assert.Equal(t, docerr.CyclicalCopySource, got.Kind)
	assert.Equal(t, []string{"a", "b", "c"}, got.Chain)

	require.NoError(t, validate.CopyCycles(load(t, `
document "doc" {
  text "a" { children = "x" }
  text "b" { copy = a }
  text "c" { copy = b }
}`)))
}

func TestCopySources(t *testing.T) {
	cat, err := catalog.Default()
	require.NoError(t, err)

	testCases := []struct {
		name string
		src  string
		kind docerr.Kind
	}{
		{
			name: "copies ancestor",
			src:  `
document "doc" {
  p "outer" {
    p "inner" { copy = outer }
  }
}`,
			kind: docerr.ComponentCopiesAncestor,
		},
		{
			name: "different type",
			src:  `
document "doc" {
  text "t" {}
  number "n" { copy = t }
}`,
			kind: docerr.CannotCopyDifferentType,
		},
		{
			name: "index into scalar",
			src:  `
document "doc" {
  number "n" {}
  text "t" { copy = n.value[2] }
}`,
			kind: docerr.CannotIndexNonArray,
		},
		{
			name: "array into scalar",
			src:  `
document "doc" {
  point "pt" {}
  text "t" { copy = pt.coords }
}`,
			kind: docerr.CannotCopyArrayAsScalar,
		},
		{
			name: "unknown state variable",
			src:  `
document "doc" {
  number "n" {}
  text "t" { copy = n.nothing }
}`,
			kind: docerr.StateVarNotFound,
		},
		{
			name: "map source outside the map",
			src: `
document "doc" {
  map "m" {
    template "tmpl" {}
    sources "src" {}
  }
  text "t" { copy = source(m) }
}`,
			kind: docerr.ComponentNotFound,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := validate.CopySources(load(t, tc.src), cat)
			assert.Equal(t, tc.kind, asDocErr(t, err).Kind)
		})
	}

	t.Run("non-positive index warns", func(t *testing.T) {
		warnings, err := validate.CopySources(load(t, `
document "doc" {
  point "pt" {}
  number "x" { copy = pt.coords[0] }
}`), cat)
		require.NoError(t, err)
		require.Len(t, warnings, 1)
		assert.Equal(t, docerr.NonPositiveIndex, warnings[0].Kind)
		assert.Equal(t, "x", warnings[0].Component)
	})
}

func TestDependencyCycles(t *testing.T) {
	cat, err := catalog.Default()
	require.NoError(t, err)

	testCases := []struct {
		name  string
		src   string
		chain []string
	}{
		{
			name: "cycle through a copied child",
			src: `
document "doc" {
  number "a" {
    children = "${b} + 1"
    number "b" { copy = a.value }
  }
}`,
			chain: []string{"a", "b"},
		},
		{
			name: "longer cycle",
			src: `
document "doc" {
  number "a" {
    children = "${b} + 1"
    number "b" {
      children = "${c} * 2"
      number "c" { copy = a.value }
    }
  }
}`,
			chain: []string{"a", "b", "c"},
		},
		{
			name: "cycle through an attribute",
			src: `
document "doc" {
  sequence "s" { to = n }
  number "n" { copy = s.length }
}`,
			chain: []string{"n", "s"},
		},
		{
			name: "acyclic",
			src: `
document "doc" {
  number "x" { children = "2" }
  number "a" {
    children = "${b} + 1"
    number "b" { copy = x.value }
  }
}`,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			g, _, err := builder.Build(context.Background(), load(t, tc.src), cat, essential.New())
			require.NoError(t, err)
			err = validate.DependencyCycles(g)
			if tc.chain == nil {
				assert.NoError(t, err)
				return
			}
			got := asDocErr(t, err)
			assert.Equal(t, docerr.CyclicalDependency, got.Kind)
			assert.ElementsMatch(t, tc.chain, got.Chain)
		})
	}
}
