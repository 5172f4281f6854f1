package profile

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStringTable_SeededEmptyString(t *testing.T) {
	st := NewStringTable()

	// Index 0 is the empty string without any prior insertion.
	require.Equal(t, 1, st.Len())
	require.Equal(t, int64(0), st.Dedup(""))
	require.Equal(t, 1, st.Len())
}

func TestStringTable_DedupIdempotent(t *testing.T) {
	st := NewStringTable()

	first := st.Dedup("cpu")
	second := st.Dedup("cpu")
	require.Equal(t, first, second)
	require.Equal(t, int64(1), first)
	require.Equal(t, 2, st.Len())
}

func TestStringTable_InsertionOrder(t *testing.T) {
	st := NewStringTable()

	n := 50
	for i := 0; i < n; i++ {
		idx := st.Dedup(fmt.Sprintf("str-%d", i))
		require.Equal(t, int64(i+1), idx) // index 0 holds the seed
	}
	require.Equal(t, n+1, st.Len())

	// Re-querying any of them returns the original index.
	for i := 0; i < n; i++ {
		require.Equal(t, int64(i+1), st.Dedup(fmt.Sprintf("str-%d", i)))
	}
}

func TestStringTable_DecodeTableSkipsSeed(t *testing.T) {
	st := NewDecodeStringTable()
	require.Equal(t, 0, st.Len())

	// Index 0 goes to whichever string arrives first.
	require.Equal(t, int64(0), st.Dedup("first"))
	require.Equal(t, int64(1), st.Dedup("second"))
}

func TestStringTable_CachedWireBytes(t *testing.T) {
	st := NewStringTable()
	st.Dedup("abc")

	// Entry 0: tag 0x32, length 0. Entry 1: tag 0x32, length 3, "abc".
	want := []byte{0x32, 0x00, 0x32, 0x03, 'a', 'b', 'c'}
	require.Equal(t, len(want), st.EncodedLen())

	b := make([]byte, st.EncodedLen())
	off := st.encodeTo(b, 0)
	require.Equal(t, len(b), off)
	require.Equal(t, want, b)
}

func TestStringTable_DecodedEntriesKeepWireOrder(t *testing.T) {
	st := NewDecodeStringTable()
	st.addDecoded([]byte(""))
	st.addDecoded([]byte("b"))
	st.addDecoded([]byte("a"))

	require.Equal(t, []string{"", "b", "a"}, st.Strings())

	// Re-encoding reproduces the observed order byte for byte.
	b := make([]byte, st.EncodedLen())
	st.encodeTo(b, 0)
	require.Equal(t, []byte{0x32, 0x00, 0x32, 0x01, 'b', 0x32, 0x01, 'a'}, b)
}
