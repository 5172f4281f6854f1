package wire

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// boundaryValues covers the 7-bit group boundaries of the varint encoding
// plus negative values, which encode as their 64-bit two's-complement
// pattern.
var boundaryValues = []struct {
	v    int64
	size int
}{
	{0, 1},
	{1, 1},
	{127, 1},
	{128, 2},
	{16383, 2},
	{16384, 3},
	{1<<21 - 1, 3},
	{1 << 21, 4},
	{1<<28 - 1, 4},
	{1 << 28, 5},
	{1<<32 - 1, 5},
	{1 << 32, 5},
	{1<<53 - 1, 8},
	{1 << 53, 8},
	{1<<63 - 1, 9},
	{-1, 10},
	{-128, 10},
	{-1 << 63, 10},
}

func TestVarint_RoundTrip(t *testing.T) {
	for _, tc := range boundaryValues {
		b := AppendVarint(nil, tc.v)
		require.Len(t, b, tc.size, "value %d", tc.v)
		require.Equal(t, tc.size, VarintLen(tc.v), "value %d", tc.v)

		got, off := Varint(b, 0)
		require.Equal(t, tc.v, got, "value %d", tc.v)
		require.Equal(t, len(b), off, "value %d", tc.v)
	}
}

func TestVarint_PutMatchesAppend(t *testing.T) {
	for _, tc := range boundaryValues {
		appended := AppendVarint(nil, tc.v)

		put := make([]byte, VarintLen(tc.v))
		end := PutVarint(put, 0, tc.v)
		require.Equal(t, len(put), end, "value %d", tc.v)
		require.Equal(t, appended, put, "value %d", tc.v)
	}
}

func TestVarint_KnownEncodings(t *testing.T) {
	require.Equal(t, []byte{0x00}, AppendVarint(nil, 0))
	require.Equal(t, []byte{0x7f}, AppendVarint(nil, 127))
	require.Equal(t, []byte{0x80, 0x01}, AppendVarint(nil, 128))
	require.Equal(t, []byte{0xac, 0x02}, AppendVarint(nil, 300))

	// -1 is the full 64-bit two's-complement pattern: nine 0xff then 0x01.
	want := []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x01}
	require.Equal(t, want, AppendVarint(nil, -1))
}

func TestVarint_TruncatedInput(t *testing.T) {
	// A continuation byte at the end of the buffer terminates the decode
	// with the partial accumulation; decoding never fails.
	v, off := Varint([]byte{0x80}, 0)
	require.Equal(t, int64(0), v)
	require.Equal(t, 1, off)

	v, off = Varint([]byte{0xac}, 0)
	require.Equal(t, int64(0x2c), v)
	require.Equal(t, 1, off)

	full := AppendVarint(nil, 1<<53)
	v, off = Varint(full[:4], 0)
	require.Equal(t, 4, off)
	require.Less(t, v, int64(1<<53))

	v, off = Varint(nil, 0)
	require.Equal(t, int64(0), v)
	require.Equal(t, 0, off)
}

func TestVarint_OverlongInput(t *testing.T) {
	// 15 continuation groups then a terminator: the extra groups are
	// consumed without contributing bits.
	b := make([]byte, 0, 16)
	for i := 0; i < 15; i++ {
		b = append(b, 0x81)
	}
	b = append(b, 0x01)

	v, off := Varint(b, 0)
	require.Equal(t, len(b), off)
	// Only the groups that fit in 64 bits contribute.
	var want uint64
	for i := 0; i < 10; i++ {
		want |= 1 << (7 * i)
	}
	require.Equal(t, int64(want), v)
}

func TestVarint_Offset(t *testing.T) {
	b := []byte{0x05, 0xac, 0x02, 0x07}

	v, off := Varint(b, 0)
	require.Equal(t, int64(5), v)
	require.Equal(t, 1, off)

	v, off = Varint(b, off)
	require.Equal(t, int64(300), v)
	require.Equal(t, 3, off)

	v, off = Varint(b, off)
	require.Equal(t, int64(7), v)
	require.Equal(t, 4, off)
}
