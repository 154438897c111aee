// internal/compid/parser_test.go
package compid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name      string
		raw       string
		expectErr bool
		expected  Address
	}{
		{name: "plain name", raw: "p1", expected: Address{Name: "p1"}},
		{name: "instanced", raw: "t1[2][3]", expected: Address{Name: "t1", Instance: []int{2, 3}}},
		{name: "copy alias", raw: "__cp:t1(p2)", expected: Address{Name: "t1", Copy: "p2"}},
		{name: "copy alias with instance", raw: "__cp:t1(p2)[1]", expected: Address{Name: "t1", Copy: "p2", Instance: []int{1}}},
		{name: "batch member", raw: "seq#2[4]", expected: Address{Name: "seq", Member: 2, Instance: []int{4}}},
		{name: "zero instance", raw: "t1[0]", expectErr: true},
		{name: "zero member", raw: "seq#0", expectErr: true},
		{name: "empty", raw: "", expectErr: true},
		{name: "bad characters", raw: "a b", expectErr: true},
		{name: "unclosed alias", raw: "__cp:t1(p2", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			addr, err := Parse(tc.raw)
			if tc.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tc.expected.Equal(addr), "want %+v, got %+v", tc.expected, addr)
		})
	}
}

func TestRoundTrip(t *testing.T) {
	addrs := []Address{
		New("p1", nil),
		New("t1", []int{1, 2}),
		{Name: "t1", Copy: "p2", Instance: []int{3}},
		{Name: "seq", Member: 1},
	}
	for _, a := range addrs {
		t.Run(a.String(), func(t *testing.T) {
			parsed, err := Parse(a.String())
			require.NoError(t, err)
			assert.True(t, a.Equal(parsed))
		})
	}
}

func TestAlias(t *testing.T) {
	assert.Equal(t, "__cp:t1(p2)", Alias("t1", "p2"))
	assert.Equal(t, "__cp:t1(p2)", Address{Name: "t1", Copy: "p2", Member: 3}.Base())
}
