package essential

import (
	"testing"

	"github.com/specialistvlad/doccore/internal/instance"
	"github.com/specialistvlad/doccore/internal/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_CreateOnce(t *testing.T) {
	s := New()
	key := Key{Component: "t", Origin: StateVarOrigin("value")}

	require.True(t, s.Create(key, Single(value.String("a"))))
	assert.False(t, s.Create(key, Single(value.String("b"))), "second create must be a no-op")

	got, err := s.Value(key, nil)
	require.NoError(t, err)
	assert.Equal(t, "a", got.Text())
}

func TestStore_InstancesAreIndependent(t *testing.T) {
	s := New()
	key := Key{Component: "ti", Origin: StateVarOrigin("value")}
	s.Create(key, Single(value.String("seed")))

	require.NoError(t, s.Set(key, instance.Instance{2}, value.String("two")))

	for _, tc := range []struct {
		inst instance.Instance
		want string
	}{
		{instance.Instance{1}, "seed"},
		{instance.Instance{2}, "two"},
		{instance.Instance{3}, "seed"},
	} {
		got, err := s.Value(key, tc.inst)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got.Text(), "instance %v", tc.inst)
	}
	assert.Equal(t, []instance.Instance{{2}}, s.Instances(key))
}

func TestStore_Array(t *testing.T) {
	s := New()
	key := Key{Component: "P", Origin: StateVarOrigin("coords")}
	s.Create(key, Array([]value.Value{value.Number(3), value.Number(4)}, value.Number(0)))

	size, err := s.Size(key, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, size)

	_, ok, err := s.Element(key, nil, 3)
	require.NoError(t, err)
	assert.False(t, ok)

	grew, err := s.SetElement(key, nil, 1, value.Number(5))
	require.NoError(t, err)
	assert.False(t, grew)

	grew, err = s.SetElement(key, nil, 4, value.Number(9))
	require.NoError(t, err)
	assert.True(t, grew)

	size, _ = s.Size(key, nil)
	assert.Equal(t, 4, size)

	v, ok, err := s.Element(key, nil, 3)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, value.Number(0).Equal(v), "unset element reads the fill value")

	v, _, _ = s.Element(key, nil, 1)
	assert.True(t, value.Number(5).Equal(v))

	_, err = s.Value(key, nil)
	assert.Error(t, err)
}

func TestStore_MissingKey(t *testing.T) {
	s := New()
	_, err := s.Value(Key{Component: "nope"}, nil)
	assert.ErrorContains(t, err, "does not exist")
}

func TestStore_SnapshotImport(t *testing.T) {
	key := Key{Component: "ti", Origin: StateVarOrigin("value")}

	first := New()
	first.Create(key, Single(value.String("seed")))
	require.NoError(t, first.Set(key, nil, value.String("edited")))
	snap := first.Snapshot()

	require.NoError(t, first.Set(key, nil, value.String("later")))

	second := New()
	second.Import(snap)
	second.Create(key, Single(value.String("seed")))

	got, err := second.Value(key, nil)
	require.NoError(t, err)
	assert.Equal(t, "edited", got.Text())
}
