package builder_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/doccore/internal/builder"
	"github.com/specialistvlad/doccore/internal/definition"
	"github.com/specialistvlad/doccore/internal/depgraph"
	"github.com/specialistvlad/doccore/internal/docerr"
	"github.com/specialistvlad/doccore/internal/essential"
	"github.com/specialistvlad/doccore/internal/hcldoc"
	"github.com/specialistvlad/doccore/internal/instance"
	"github.com/specialistvlad/doccore/modules/catalog"
)

func build(t *testing.T, src string) (*depgraph.Graph, []docerr.Warning, *essential.Store) {
	t.Helper()
	tree, err := hcldoc.LoadSource(context.Background(), "test.hcl", []byte(src))
	require.NoError(t, err)
	cat, err := catalog.Default()
	require.NoError(t, err)
	store := essential.New()
	g, warnings, err := builder.Build(context.Background(), tree, cat, store)
	require.NoError(t, err)
	return g, warnings, store
}

func TestBuild_MapStructure(t *testing.T) {
	g, _, _ := build(t, `
document "doc" {
  map "m" {
    template "tmpl" {
      text "t" { copy = source(m) }
    }
    sources "src" {
      number { children = "1" }
      number { children = "2" }
    }
  }
}`)
	assert.Equal(t, []string{"m"}, g.Scopes["t"])
	assert.Empty(t, g.Scopes["m"])
	assert.Equal(t, 1, g.Depth("t"))

	info := g.Maps["m"]
	assert.Equal(t, "tmpl", info.Template)
	assert.Equal(t, "src", info.Sources)
	require.Len(t, info.Members, 1)
	assert.Equal(t, depgraph.Descriptor{Kind: depgraph.DescComponent, Component: "t"}, info.Members[0])

	require.Len(t, g.Collections["src"], 2)
}

func TestBuild_CopyAliasesAndShadows(t *testing.T) {
	g, _, _ := build(t, `
document "doc" {
  p "orig" {
    text "child" { children = "x" }
  }
  p "cp" { copy = orig }
}`)
	assert.Equal(t, "child", g.Aliases["__cp:child(cp)"])

	disabled, ok := g.Compiled("cp", definition.Basic("disabled"))
	require.True(t, ok)
	assert.True(t, g.IsShadow(disabled), "disabled is inherited from the source")

	hidden, ok := g.Compiled("cp", definition.Basic("hidden"))
	require.True(t, ok)
	assert.False(t, g.IsShadow(hidden), "hidden reads the copy's own parent")

	orig, ok := g.Compiled("orig", definition.Basic("disabled"))
	require.True(t, ok)
	assert.False(t, g.IsShadow(orig))
}

func TestBuild_RejectedChildWarns(t *testing.T) {
	_, warnings, _ := build(t, `
document "doc" {
  number "n" {
    p "q" {}
  }
}`)
	require.Len(t, warnings, 1)
	assert.Equal(t, docerr.Warning{Kind: docerr.InvalidChildType, Component: "n", Detail: "q"}, warnings[0])
}

func TestBuild_SeedsEssentialData(t *testing.T) {
	_, _, store := build(t, `
document "doc" {
  textInput "ti" { prefill = "start" }
}`)
	key := essential.Key{Component: "ti", Origin: essential.StateVarOrigin("value")}
	require.True(t, store.Has(key))
	v, err := store.Value(key, instance.Instance{})
	require.NoError(t, err)
	assert.Equal(t, "start", v.Text())
}

func TestBuild_ReverseReads(t *testing.T) {
	g, _, _ := build(t, `
document "doc" {
  number "x" { children = "2" }
  number "b" {
    children = "${a} + 1"
    number "a" { children = "1" }
  }
  number "c" {
    children = "${y} * 2"
    number "y" { copy = x.value }
  }
  sequence "s" { to = x }
}`)
	find := func(target, from, name string) (depgraph.Read, bool) {
		for _, r := range g.ReadsOf(target) {
			if r.From.Component == from && r.From.Ref.Name == name {
				return r, true
			}
		}
		return depgraph.Read{}, false
	}

	r, ok := find("a", "b", "value")
	require.True(t, ok, "b.value should be recorded as a reader of a.value")
	assert.Empty(t, r.Via.Component)

	r, ok = find("x", "c", "value")
	require.True(t, ok, "c.value reads the source of its copied child")
	assert.Equal(t, "y", r.Via.Component)
	assert.Equal(t, "value", r.Via.Ref.Name)

	_, ok = find("x", "s", "to")
	assert.True(t, ok, "a referenced attribute reads the component's value")
}
