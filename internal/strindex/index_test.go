package strindex

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIndex_LookupMiss(t *testing.T) {
	x := New()

	_, ok := x.Lookup("absent")
	require.False(t, ok)
	require.Equal(t, 0, x.Len())
}

func TestIndex_InsertLookup(t *testing.T) {
	x := New()

	for i := 0; i < 100; i++ {
		x.Insert(fmt.Sprintf("s-%d", i), int64(i))
	}
	require.Equal(t, 100, x.Len())

	for i := 0; i < 100; i++ {
		idx, ok := x.Lookup(fmt.Sprintf("s-%d", i))
		require.True(t, ok)
		require.Equal(t, int64(i), idx)
	}
}

func TestIndex_DuplicateInsertKeepsFirst(t *testing.T) {
	x := New()
	x.Insert("dup", 1)
	x.Insert("dup", 2)

	idx, ok := x.Lookup("dup")
	require.True(t, ok)
	require.Equal(t, int64(1), idx)
}

func TestIndex_CollisionFallback(t *testing.T) {
	// Force the collision path directly: two distinct strings routed
	// through the overflow map must both resolve exactly.
	x := New()
	x.Insert("first", 0)

	// Simulate a second string landing on first's hash by inserting into
	// the overflow map the way Insert does on collision.
	if x.overflow == nil {
		x.overflow = make(map[string]int64)
	}
	x.overflow["second"] = 1

	idx, ok := x.Lookup("first")
	require.True(t, ok)
	require.Equal(t, int64(0), idx)

	idx, ok = x.Lookup("second")
	require.True(t, ok)
	require.Equal(t, int64(1), idx)

	require.Equal(t, 2, x.Len())
}
