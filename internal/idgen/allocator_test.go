package idgen

import (
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"manifestkit/pkg/types"
)

func TestAllocate_UniqueAcrossSession(t *testing.T) {
	a := New(nil)
	seen := make(map[types.ObjectID]bool)
	for i := 0; i < 1000; i++ {
		id, err := a.Allocate()
		require.NoError(t, err)
		assert.False(t, seen[id], "allocator returned %s twice", id)
		seen[id] = true
	}
}

func TestAllocate_TokenShape(t *testing.T) {
	a := New(nil)
	shape := regexp.MustCompile(`^[0-9A-F]{24}$`)
	for i := 0; i < 20; i++ {
		id, err := a.Allocate()
		require.NoError(t, err)
		assert.True(t, shape.MatchString(string(id)), "unexpected token %s", id)
	}
}

func TestAllocate_AvoidsObserved(t *testing.T) {
	// Observed identifiers come straight back as the forbidden set; the odds
	// of randomly hitting one are negligible, but the contract is absolute,
	// so check against everything the allocator hands out.
	observed := []types.ObjectID{"SF001", "BF001", "GR001"}
	a := New(observed)
	forbidden := make(map[types.ObjectID]bool)
	for _, id := range observed {
		forbidden[id] = true
	}
	for i := 0; i < 100; i++ {
		id, err := a.Allocate()
		require.NoError(t, err)
		assert.False(t, forbidden[id])
	}
}

func TestReserve(t *testing.T) {
	a := New([]types.ObjectID{"SF001"})

	require.NoError(t, a.Reserve("CAFEBABE001"))

	err := a.Reserve("SF001")
	require.Error(t, err)
	var terr *types.Error
	require.True(t, errors.As(err, &terr))
	assert.Equal(t, types.ErrKindDuplicateID, terr.Kind)

	err = a.Reserve("CAFEBABE001")
	require.Error(t, err, "reserving the same token twice must fail")
}
