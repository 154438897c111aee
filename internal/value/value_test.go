package value

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name    string
		kind    Kind
		text    string
		want    Value
		wantErr bool
	}{
		{name: "number", kind: KindNumber, text: " 3.5 ", want: Number(3.5)},
		{name: "integer", kind: KindInteger, text: "7", want: Integer(7)},
		{name: "bad integer", kind: KindInteger, text: "7.2", wantErr: true},
		{name: "boolean", kind: KindBoolean, text: "true", want: Bool(true)},
		{name: "string keeps spaces", kind: KindString, text: " hi ", want: String(" hi ")},
		{name: "math trims", kind: KindMath, text: " x+1 ", want: Math("x+1")},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Parse(tc.kind, tc.text)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tc.want.Equal(got), "want %s, got %s", tc.want, got)
		})
	}

	t.Run("bad number becomes NaN", func(t *testing.T) {
		got, err := Parse(KindNumber, "abc")
		require.NoError(t, err)
		f, _ := got.AsNumber()
		assert.True(t, math.IsNaN(f))
	})
}

func TestConvert(t *testing.T) {
	v, err := Integer(4).Convert(KindNumber)
	require.NoError(t, err)
	assert.True(t, Number(4).Equal(v))

	v, err = Number(2).Convert(KindInteger)
	require.NoError(t, err)
	assert.True(t, Integer(2).Equal(v))

	_, err = Number(2.5).Convert(KindInteger)
	assert.Error(t, err)

	v, err = Bool(true).Convert(KindString)
	require.NoError(t, err)
	assert.Equal(t, "true", v.Text())

	_, err = Bool(true).Convert(KindNumber)
	assert.Error(t, err)
}

func TestSplitTuple(t *testing.T) {
	assert.Equal(t, []string{"3", "4"}, SplitTuple("(3,4)"))
	assert.Equal(t, []string{"1", "2", "x"}, SplitTuple(" 1, 2 ,x"))
	assert.Nil(t, SplitTuple("()"))
}

func TestCtyInterop(t *testing.T) {
	assert.True(t, Integer(3).ToCty().Equals(cty.NumberIntVal(3)).True())
	assert.True(t, Number(math.NaN()).ToCty().IsNull())

	got, err := FromCty(cty.NumberFloatVal(2.5), KindNumber)
	require.NoError(t, err)
	assert.True(t, Number(2.5).Equal(got))

	got, err = FromCty(cty.StringVal("12"), KindInteger)
	require.NoError(t, err)
	assert.True(t, Integer(12).Equal(got))

	got, err = FromCty(cty.True, KindString)
	require.NoError(t, err)
	assert.Equal(t, "true", got.Text())

	_, err = FromCty(cty.NullVal(cty.Number), KindNumber)
	assert.Error(t, err)
}

func TestMarshalJSON(t *testing.T) {
	out, err := json.Marshal([]Value{Number(1.5), Integer(2), Bool(false), String("a"), Number(math.NaN())})
	require.NoError(t, err)
	assert.JSONEq(t, `[1.5, 2, false, "a", "NaN"]`, string(out))
}
