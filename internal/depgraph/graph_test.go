package depgraph

import (
	"testing"

	"github.com/specialistvlad/doccore/internal/definition"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompiled_SpecializedElements(t *testing.T) {
	g := New()
	g.Declare(VarKey{Component: "p", Ref: definition.Element("coords", 0)}, []string{"attr"})
	g.Declare(VarKey{Component: "p", Ref: definition.Element("coords", 2)}, []string{"attr"})
	g.Declare(VarKey{Component: "p", Ref: definition.SizeOf("coords")}, nil)

	testCases := []struct {
		name string
		ref  definition.StateRef
		want definition.StateRef
		ok   bool
	}{
		{"generic element", definition.Element("coords", 1), definition.Element("coords", 0), true},
		{"specialized element", definition.Element("coords", 2), definition.Element("coords", 2), true},
		{"size", definition.SizeOf("coords"), definition.SizeOf("coords"), true},
		{"undeclared", definition.Basic("latex"), definition.Basic("latex"), false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			vk, ok := g.Compiled("p", tc.ref)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, vk.Ref)
		})
	}

	assert.True(t, g.IsSpecialized("p", "coords", 2))
	assert.False(t, g.IsSpecialized("p", "coords", 1))
	assert.Equal(t, []int{2}, g.Specialized("p", "coords"))
}

func TestReadTargets(t *testing.T) {
	g := New()
	g.Declare(VarKey{Component: "p", Ref: definition.SizeOf("coords")}, nil)
	g.Declare(VarKey{Component: "p", Ref: definition.Element("coords", 0)}, nil)
	g.Declare(VarKey{Component: "p", Ref: definition.Element("coords", 2)}, nil)
	g.Declare(VarKey{Component: "p", Ref: definition.Basic("latex")}, nil)

	reader := VarKey{Component: "x", Ref: definition.Element("values", 2)}
	testCases := []struct {
		name string
		read Read
		want []string
	}{
		{"basic", Read{From: reader, Target: "p", Name: "latex", Kind: ReadBasic}, []string{"p:latex"}},
		{"size", Read{From: reader, Target: "p", Name: "coords", Kind: ReadSize}, []string{"p:coords[#]"}},
		{"fixed element", Read{From: reader, Target: "p", Name: "coords", Kind: ReadElement, Index: 1}, []string{"p:coords[*]"}},
		{"corresponding", Read{From: reader, Target: "p", Name: "coords", Kind: ReadCorresponding}, []string{"p:coords[2]"}},
		{"any", Read{From: reader, Target: "p", Name: "coords", Kind: ReadAny}, []string{"p:coords[#]", "p:coords[*]", "p:coords[2]"}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var got []string
			for _, vk := range g.ReadTargets(tc.read) {
				got = append(got, vk.String())
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestReads_StableOrder(t *testing.T) {
	g := New()
	from := VarKey{Component: "c", Ref: definition.Basic("value")}
	g.AddRead(Read{From: from, Target: "b", Name: "value"})
	g.AddRead(Read{From: from, Target: "a", Name: "value"})
	g.Declare(VarKey{Component: "b", Ref: definition.Basic("value")}, nil)
	g.Declare(VarKey{Component: "a", Ref: definition.Basic("value")}, nil)

	reads := g.AllReads()
	require.Len(t, reads, 2)
	assert.Equal(t, "a", reads[0].Target)
	assert.Equal(t, "b", reads[1].Target)
	assert.Len(t, g.ReadsOf("a"), 1)
	assert.Empty(t, g.ReadsOf("c"))

	keys := g.VarKeys()
	require.Len(t, keys, 2)
	assert.Equal(t, "a:value", keys[0].String())
}
