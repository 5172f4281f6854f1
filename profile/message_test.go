package profile

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func encodeMessage(t *testing.T, length int, encode func(b []byte, off int) int) []byte {
	t.Helper()

	b := make([]byte, length)
	off := encode(b, 0)
	require.Equal(t, length, off, "encodeTo end offset must match encodedLen")

	return b
}

func TestSample_KnownBytes(t *testing.T) {
	s := Sample{LocationID: []int64{1, 2, 300}, Value: []int64{5}}

	got := encodeMessage(t, s.encodedLen(), s.encodeTo)
	want := []byte{
		0x0a, 0x04, 0x01, 0x02, 0xac, 0x02, // locationId packed: 1, 2, 300
		0x12, 0x01, 0x05, // value packed: 5
	}
	require.Equal(t, want, got)
}

func TestValueType_RoundTrip(t *testing.T) {
	for _, v := range []ValueType{{}, {Type: 1, Unit: 2}, {Type: 300}} {
		b := encodeMessage(t, v.encodedLen(), v.encodeTo)
		got, err := decodeValueType(b)
		require.NoError(t, err)
		require.Equal(t, v, got)
	}
}

func TestLabel_RoundTrip(t *testing.T) {
	labels := []Label{
		{},
		{Key: 1, Str: 2},
		{Key: 3, Num: -5, NumUnit: 4},
		{Key: 1, Str: 2, Num: 1 << 40, NumUnit: 5},
	}
	for _, l := range labels {
		b := encodeMessage(t, l.encodedLen(), l.encodeTo)
		got, err := decodeLabel(b)
		require.NoError(t, err)
		require.Equal(t, l, got)
	}
}

func TestSample_RoundTrip(t *testing.T) {
	samples := []Sample{
		{},
		{LocationID: []int64{1, 2, 300}, Value: []int64{5}},
		{LocationID: []int64{7}, Value: []int64{-1, 0, 1 << 53}},
		{
			LocationID: []int64{1, 0, 2},
			Value:      []int64{10, 20},
			Label:      []Label{{Key: 1, Str: 2}, {Key: 3, Num: 99}},
		},
	}
	for _, s := range samples {
		b := encodeMessage(t, s.encodedLen(), s.encodeTo)
		got, err := decodeSample(b)
		require.NoError(t, err)
		require.Equal(t, s.LocationID, got.LocationID)
		require.Equal(t, s.Value, got.Value)
		require.Equal(t, s.Label, got.Label)
	}
}

func TestSample_DecodeUnpackedNumericFields(t *testing.T) {
	// A conforming protobuf encoder may emit repeated int64 fields one
	// varint per tag instead of packed; the decoder folds them in.
	data := []byte{
		0x08, 0x01, // locationId: 1
		0x08, 0xac, 0x02, // locationId: 300
		0x10, 0x05, // value: 5
	}

	got, err := decodeSample(data)
	require.NoError(t, err)
	require.Equal(t, []int64{1, 300}, got.LocationID)
	require.Equal(t, []int64{5}, got.Value)
}

func TestSample_DecodeUnknownFieldIgnored(t *testing.T) {
	data := []byte{
		0x0a, 0x01, 0x07, // locationId: 7
		0x22, 0x02, 0xff, 0xff, // unknown field 4, skipped
		0x20, 0x01, // unknown varint field 4, skipped
	}

	got, err := decodeSample(data)
	require.NoError(t, err)
	require.Equal(t, []int64{7}, got.LocationID)
}

func TestMapping_RoundTrip(t *testing.T) {
	mappings := []Mapping{
		{},
		{ID: 1, MemoryStart: 0x400000, MemoryLimit: 0x500000, FileOffset: 0x1000},
		{
			ID: 2, Filename: 3, BuildID: 4,
			HasFunctions: true, HasFilenames: true,
			HasLineNumbers: true, HasInlineFrames: true,
		},
		{ID: 3, HasLineNumbers: true},
	}
	for _, m := range mappings {
		b := encodeMessage(t, m.encodedLen(), m.encodeTo)
		got, err := decodeMapping(b)
		require.NoError(t, err)
		require.Equal(t, m, got)
	}
}

func TestLine_RoundTrip(t *testing.T) {
	for _, l := range []Line{{}, {FunctionID: 1, Line: 42}, {FunctionID: 300}} {
		b := encodeMessage(t, l.encodedLen(), l.encodeTo)
		got, err := decodeLine(b)
		require.NoError(t, err)
		require.Equal(t, l, got)
	}
}

func TestLocation_RoundTrip(t *testing.T) {
	locations := []Location{
		{},
		{ID: 1, MappingID: 2, Address: 0xdeadbeef},
		{
			ID: 2, MappingID: 1, Address: 0x1000,
			Line:     []Line{{FunctionID: 1, Line: 10}, {FunctionID: 2, Line: 20}},
			IsFolded: true,
		},
	}
	for _, l := range locations {
		b := encodeMessage(t, l.encodedLen(), l.encodeTo)
		got, err := decodeLocation(b)
		require.NoError(t, err)
		require.Equal(t, l.ID, got.ID)
		require.Equal(t, l.MappingID, got.MappingID)
		require.Equal(t, l.Address, got.Address)
		require.Equal(t, l.Line, got.Line)
		require.Equal(t, l.IsFolded, got.IsFolded)
	}
}

func TestFunction_RoundTrip(t *testing.T) {
	functions := []Function{
		{},
		{ID: 1, Name: 2, SystemName: 3, Filename: 4, StartLine: 100},
	}
	for _, f := range functions {
		b := encodeMessage(t, f.encodedLen(), f.encodeTo)
		got, err := decodeFunction(b)
		require.NoError(t, err)
		require.Equal(t, f, got)
	}
}
