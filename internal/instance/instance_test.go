package instance

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstance_Key(t *testing.T) {
	assert.Equal(t, "", Instance(nil).Key())
	assert.Equal(t, "2.3", Instance{2, 3}.Key())
	assert.Equal(t, Instance{2, 3}, FromKey("2.3"))
	assert.Nil(t, FromKey(""))
	assert.Equal(t, "[2][3]", Instance{2, 3}.String())
}

func TestInstance_Prefix(t *testing.T) {
	i := Instance{1, 2, 3}
	p := i.Prefix(2)
	p[0] = 9
	assert.Equal(t, Instance{1, 2, 3}, i, "Prefix must not alias")
	assert.True(t, i.HasPrefix(Instance{1, 2}))
	assert.False(t, i.HasPrefix(Instance{2}))
	assert.True(t, i.Equal(Instance{1, 2, 3}))
}

func TestRelative(t *testing.T) {
	outer := []string{}
	inMap := []string{"m"}
	inNested := []string{"m", "n"}

	testCases := []struct {
		name       string
		dependent  []string
		target     []string
		fixed      []int
		dep        Instance
		wantGroup  Group
		written    Instance
		wantPrefix Instance
		wantOK     bool
	}{
		{
			name: "same scope", dependent: inMap, target: inMap,
			dep: Instance{2}, wantGroup: Group{Prefix: Instance{2}},
			written: Instance{2}, wantPrefix: Instance{2}, wantOK: true,
		},
		{
			name: "dependency outside", dependent: inNested, target: outer,
			dep: Instance{2, 1}, wantGroup: Group{Prefix: Instance{}},
			written: Instance{}, wantPrefix: Instance{}, wantOK: true,
		},
		{
			name: "dependency one map deeper", dependent: inMap, target: inNested,
			dep: Instance{3}, wantGroup: Group{Prefix: Instance{3}, Free: 1},
			written: Instance{3, 5}, wantPrefix: Instance{3}, wantOK: true,
		},
		{
			name: "pinned repetition", dependent: outer, target: inMap, fixed: []int{2},
			dep: Instance{}, wantGroup: Group{Prefix: Instance{2}},
			written: Instance{2}, wantPrefix: Instance{}, wantOK: true,
		},
		{
			name: "pinned repetition not written", dependent: outer, target: inMap, fixed: []int{2},
			dep: Instance{}, wantGroup: Group{Prefix: Instance{2}},
			written: Instance{1}, wantOK: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rel := Between(tc.dependent, tc.target)
			if tc.fixed != nil {
				rel = rel.WithFixed(tc.fixed)
			}
			got := rel.Forward(tc.dep, len(tc.target))
			if diff := cmp.Diff(tc.wantGroup.Prefix.Key(), got.Prefix.Key()); diff != "" {
				t.Errorf("prefix mismatch (-want +got):\n%s", diff)
			}
			assert.Equal(t, tc.wantGroup.Free, got.Free)

			prefix, ok := rel.Reverse(tc.written)
			assert.Equal(t, tc.wantOK, ok)
			if tc.wantOK {
				assert.Equal(t, tc.wantPrefix.Key(), prefix.Key())
			}
		})
	}
}

func TestGroup_Enumerate(t *testing.T) {
	g := Group{Prefix: Instance{1}, Free: 2}
	sizes := map[string]int{"1": 2, "1.1": 1, "1.2": 3}

	got, err := g.Enumerate(func(p Instance) (int, error) { return sizes[p.Key()], nil })
	require.NoError(t, err)

	var keys []string
	for _, inst := range got {
		keys = append(keys, inst.Key())
		assert.True(t, g.Contains(inst))
	}
	assert.Equal(t, []string{"1.1.1", "1.2.1", "1.2.2", "1.2.3"}, keys)
	assert.False(t, g.Contains(Instance{1, 1}))
}
