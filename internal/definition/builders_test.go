package definition

import (
	"testing"

	"github.com/specialistvlad/doccore/internal/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromAttribute(t *testing.T) {
	v := FromAttribute("draggable", value.KindBoolean, value.Bool(true), true)

	assert.Equal(t, Instruction(Essential{Prefill: "draggable"}), v.Instructions(Basic("draggable"))["essential"])
	assert.True(t, value.Bool(true).Equal(v.Default()))

	up, err := v.Determine(Basic("draggable"), Values{"essential": {{Value: value.String("false")}}})
	require.NoError(t, err)
	assert.True(t, value.Bool(false).Equal(up.Value()))

	reqs, err := v.Invert(Basic("draggable"), value.String("true"), nil)
	require.NoError(t, err)
	require.Len(t, reqs, 1)
	assert.Equal(t, "essential", reqs[0].Instruction)
	assert.True(t, value.Bool(true).Equal(reqs[0].Value))
}

func TestHidden(t *testing.T) {
	h := Hidden()
	ref := Basic("hidden")

	testCases := []struct {
		name string
		vals Values
		want bool
	}{
		{name: "nothing set", vals: Values{}, want: false},
		{name: "parent hidden", vals: Values{"parent_hidden": {{Value: value.Bool(true)}}}, want: true},
		{name: "empty hide attribute", vals: Values{"hide": {{Value: value.String(""), Text: true}}}, want: true},
		{name: "hide false", vals: Values{"hide": {{Value: value.String("false"), Text: true}}}, want: false},
		{name: "hide from boolean component", vals: Values{"hide": {{Value: value.Bool(true)}}}, want: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			up, err := h.Determine(ref, tc.vals)
			require.NoError(t, err)
			assert.True(t, value.Bool(tc.want).Equal(up.Value()))
		})
	}
}

func TestTextFromChildren(t *testing.T) {
	tv := TextFromChildren(true)
	vals := Values{"children": {{Value: value.String("a"), Text: true}, {Value: value.Number(2)}}}

	up, err := tv.Determine(Basic("value"), vals)
	require.NoError(t, err)
	assert.Equal(t, "a2", up.Value().Text())

	_, err = tv.Invert(Basic("value"), value.String("x"), vals)
	assert.ErrorIs(t, err, ErrReadOnly)
}

func TestArrayFromAttribute(t *testing.T) {
	a := ArrayFromAttribute("coords", value.KindNumber, value.Number(0), 2, true)
	assert.True(t, a.IsArray())

	up, err := a.Determine(SizeOf("coords"), Values{"essential": {{Value: value.Integer(3)}}})
	require.NoError(t, err)
	assert.True(t, value.Integer(3).Equal(up.Value()))

	_, err = a.Invert(SizeOf("coords"), value.Integer(4), nil)
	assert.ErrorIs(t, err, ErrReadOnly)

	reqs, err := a.Invert(Element("coords", 1), value.Integer(5), nil)
	require.NoError(t, err)
	assert.True(t, value.Number(5).Equal(reqs[0].Value))
}

func TestFromAttribute_Referenced(t *testing.T) {
	v := FromAttribute("to", value.KindInteger, value.Integer(1), false)
	assert.Equal(t, Instruction(Attribute{Name: "to"}), v.Instructions(Basic("to"))["attribute"])

	testCases := []struct {
		name string
		vals Values
		want value.Value
	}{
		{
			name: "literal attribute uses essential data",
			vals: Values{"essential": {{Value: value.Integer(4)}}, "attribute": {{Value: value.String("2"), Text: true}}},
			want: value.Integer(4),
		},
		{
			name: "referenced component",
			vals: Values{"essential": {{Value: value.Integer(1)}}, "attribute": {{Value: value.Number(3)}}},
			want: value.Integer(3),
		},
		{
			name: "several references are joined",
			vals: Values{"essential": {{Value: value.Integer(1)}}, "attribute": {{Value: value.Number(1)}, {Value: value.Number(2)}}},
			want: value.Integer(12),
		},
		{
			name: "unusable reference falls back",
			vals: Values{"essential": {{Value: value.Integer(9)}}, "attribute": {{Value: value.String("many")}}},
			want: value.Integer(1),
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			up, err := v.Determine(Basic("to"), tc.vals)
			require.NoError(t, err)
			assert.True(t, tc.want.Equal(up.Value()), "got %s", up.Value())
		})
	}

	reqs, err := v.Invert(Basic("to"), value.Integer(5), Values{"attribute": {{Value: value.Number(3)}}})
	require.NoError(t, err)
	require.Len(t, reqs, 1)
	assert.Equal(t, Request{Instruction: "attribute", Value: value.Integer(5)}, reqs[0])

	_, err = v.Invert(Basic("to"), value.Integer(5), Values{"attribute": {{Value: value.Number(1)}, {Value: value.Number(2)}}})
	assert.ErrorIs(t, err, ErrReadOnly)
}

func TestArrayFromAttribute_Referenced(t *testing.T) {
	a := ArrayFromAttribute("coords", value.KindNumber, value.Number(0), 2, true)
	tuple := Values{"attribute": {{Value: value.String("(1,2,3)")}}}
	array := Values{"attribute": {{Value: value.Number(7)}, {Value: value.Number(8)}}}

	up, err := a.Determine(SizeOf("coords"), tuple)
	require.NoError(t, err)
	assert.True(t, value.Integer(3).Equal(up.Value()))

	up, err = a.Determine(Element("coords", 3), tuple)
	require.NoError(t, err)
	assert.True(t, value.Number(3).Equal(up.Value()))

	up, err = a.Determine(SizeOf("coords"), array)
	require.NoError(t, err)
	assert.True(t, value.Integer(2).Equal(up.Value()))

	up, err = a.Determine(Element("coords", 2), array)
	require.NoError(t, err)
	assert.True(t, value.Number(8).Equal(up.Value()))

	reqs, err := a.Invert(Element("coords", 2), value.Number(1), array)
	require.NoError(t, err)
	assert.Equal(t, []Request{{Instruction: "attribute", Position: 1, Value: value.Number(1)}}, reqs)

	_, err = a.Invert(Element("coords", 1), value.Number(1), tuple)
	assert.ErrorIs(t, err, ErrReadOnly)
}
