package hcldoc

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/doccore/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadString(t *testing.T, src string) (*model.Tree, error) {
	t.Helper()
	return LoadSource(context.Background(), "test.hcl", []byte(src))
}

func TestLoadSource_Structure(t *testing.T) {
	tree, err := loadString(t, `
document "doc" {
  p "intro" {
    children = ["The answer is ", n, "."]
    number "n" { children = "40 + 2" }
  }
  p {
    text { children = "unnamed" }
  }
  point "pt" {
    coords = [3, 4]
    hide   = ""
  }
}
`)
	require.NoError(t, err)
	assert.Equal(t, "doc", tree.Root)

	doc := tree.Components["doc"]
	want := []model.Child{model.ComponentChild("intro"), model.ComponentChild("_p1"), model.ComponentChild("pt")}
	if diff := cmp.Diff(want, doc.Children); diff != "" {
		t.Errorf("root children mismatch (-want +got):\n%s", diff)
	}

	intro := tree.Components["intro"]
	want = []model.Child{model.TextChild("The answer is "), model.ComponentChild("n"), model.TextChild(".")}
	if diff := cmp.Diff(want, intro.Children); diff != "" {
		t.Errorf("intro children mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "intro", tree.Components["n"].Parent)
	assert.Equal(t, []model.Child{model.TextChild("40 + 2")}, tree.Components["n"].Children)

	unnamed, ok := tree.Get("_text1")
	require.True(t, ok)
	assert.Equal(t, "_p1", unnamed.Parent)

	pt := tree.Components["pt"]
	assert.Equal(t, model.Attribute{model.TextChild("(3,4)")}, pt.Attributes["coords"])
	assert.Equal(t, model.Attribute{model.TextChild("")}, pt.Attributes["hide"])
}

func TestLoadSource_AttributeReferences(t *testing.T) {
	tree, err := loadString(t, `
document "doc" {
  number "n" { children = "3" }
  conditionalContent "c" {
    condition = "${n} > 2"
  }
  p "q" { hide = n }
}
`)
	require.NoError(t, err)
	assert.Equal(t,
		model.Attribute{model.ComponentChild("n"), model.TextChild(" > 2")},
		tree.Components["c"].Attributes["condition"])
	assert.Equal(t, model.Attribute{model.ComponentChild("n")}, tree.Components["q"].Attributes["hide"])
}

func TestLoadSource_CopySources(t *testing.T) {
	testCases := []struct {
		name string
		expr string
		want model.CopySource
	}{
		{name: "whole component", expr: `pt`, want: model.CopyOfComponent{Source: "pt"}},
		{name: "state variable", expr: `pt.latex`, want: model.CopyOfStateVar{Source: "pt", StateVar: "latex"}},
		{name: "element", expr: `pt.coords[2]`, want: model.CopyOfStateVar{Source: "pt", StateVar: "coords", IndexLiteral: "2"}},
		{name: "zero index kept", expr: `pt.coords[0]`, want: model.CopyOfStateVar{Source: "pt", StateVar: "coords", IndexLiteral: "0"}},
		{name: "macro", expr: `"$pt.coords[1]"`, want: model.CopyOfStateVar{Source: "pt", StateVar: "coords", IndexLiteral: "1"}},
		{
			name: "dynamic element",
			expr: `pt.coords[i.value]`,
			want: model.CopyOfDynamicElement{Source: "pt", StateVar: "coords", IndexComponent: "i", IndexStateVar: "value"},
		},
		{name: "map source", expr: `source(m)`, want: model.CopyOfMapSource{Map: "m"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tree, err := loadString(t, "document \"doc\" {\n  number \"x\" { copy = "+tc.expr+" }\n}")
			require.NoError(t, err)
			assert.Equal(t, tc.want, tree.Components["x"].CopySource)
		})
	}
}

func TestLoadSource_CopyInstance(t *testing.T) {
	tree, err := loadString(t, `
document "doc" {
  p "c" {
    copy          = q
    copy_instance = [2]
  }
}`)
	require.NoError(t, err)
	assert.Equal(t, model.CopyOfComponent{Source: "q", Instance: []int{2}}, tree.Components["c"].CopySource)
}

func TestLoadSource_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		src     string
		errText string
	}{
		{name: "two roots", src: `document "a" {}
document "b" {}`, errText: "exactly one top-level block"},
		{name: "top-level attribute", src: `x = 1
document "a" {}`, errText: "Unexpected top-level attribute"},
		{name: "duplicate name", src: "document \"a\" {\n  p \"x\" {}\n  p \"x\" {}\n}", errText: "Duplicate component"},
		{name: "child not nested", src: "document \"a\" {\n  p \"x\" { children = [y] }\n  p \"y\" {}\n}", errText: "Invalid child reference"},
		{name: "reference with attribute", src: "document \"a\" {\n  p \"x\" { hide = y.value }\n}", errText: "Invalid component reference"},
		{name: "bad copy", src: "document \"a\" {\n  p \"x\" { copy = 1 + 2 }\n}", errText: "Invalid copy source"},
		{name: "macro without dollar", src: "document \"a\" {\n  p \"x\" { copy = \"pt\" }\n}", errText: "must start with"},
		{name: "source of a variable", src: "document \"a\" {\n  p \"x\" { copy = source(m.value) }\n}", errText: "source() takes the name of a map"},
		{name: "copy instance on element copy", src: `
document "a" {
  p "x" {
    copy          = y.v
    copy_instance = [1]
  }
}`, errText: "Unexpected copy_instance"},
		{name: "syntax error", src: `document "a" {`, errText: "failed to parse"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := loadString(t, tc.src)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errText)
		})
	}
}

func TestLoad_Directory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "doc.hcl"), []byte("document \"doc\" {\n  p \"p1\" {}\n}"), 0o644))

	tree, err := Load(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, "doc", tree.Root)
	assert.Contains(t, tree.Components, "p1")
}
