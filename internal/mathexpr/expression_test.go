package mathexpr

import (
	"testing"

	"github.com/specialistvlad/doccore/internal/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssemble(t *testing.T) {
	src, vars := Assemble([]Part{
		{Text: "2 *"},
		{Component: true, Value: value.Number(3)},
		{Text: "+ 1"},
	})
	assert.Equal(t, "2 * _v1 + 1", src)
	require.Contains(t, vars, "_v1")
	assert.True(t, value.Number(3).Equal(vars["_v1"]))
}

func TestEvaluate(t *testing.T) {
	testCases := []struct {
		name    string
		src     string
		vars    map[string]value.Value
		want    value.Kind
		expect  value.Value
		wantErr string
	}{
		{name: "literal", src: "5", want: value.KindNumber, expect: value.Number(5)},
		{name: "arithmetic", src: "2 * _v1 + 1", vars: map[string]value.Value{"_v1": value.Number(3)}, want: value.KindNumber, expect: value.Number(7)},
		{name: "function", src: "max(1, _v1)", vars: map[string]value.Value{"_v1": value.Integer(4)}, want: value.KindNumber, expect: value.Number(4)},
		{name: "comparison", src: "_v1 > 3", vars: map[string]value.Value{"_v1": value.Number(4)}, want: value.KindBoolean, expect: value.Bool(true)},
		{name: "boolean literal", src: "true && false", want: value.KindBoolean, expect: value.Bool(false)},
		{name: "integer result", src: "10 / 2", want: value.KindInteger, expect: value.Integer(5)},
		{name: "unknown name", src: "x + 1", want: value.KindNumber, wantErr: `unknown name "x"`},
		{name: "syntax error", src: "2 +", want: value.KindNumber, wantErr: "failed to parse"},
		{name: "empty", src: "  ", want: value.KindNumber, wantErr: "empty"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Evaluate(tc.src, tc.vars, tc.want)
			if tc.wantErr != "" {
				assert.ErrorContains(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, tc.expect.Equal(got), "want %s, got %s", tc.expect, got)
		})
	}
}

func TestVariables(t *testing.T) {
	names, err := Variables("_v2 + _v1 * _v2")
	require.NoError(t, err)
	assert.Equal(t, []string{"_v1", "_v2"}, names)
}
