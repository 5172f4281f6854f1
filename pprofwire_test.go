package pprofwire

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/pprofwire/errs"
	"github.com/arloliu/pprofwire/format"
	"github.com/arloliu/pprofwire/profile"
)

func testProfile() *profile.Profile {
	st := profile.NewStringTable()
	cpu := st.Dedup("cpu")
	ns := st.Dedup("nanoseconds")

	return &profile.Profile{
		SampleType: []profile.ValueType{{Type: cpu, Unit: ns}},
		Sample: []profile.Sample{
			{LocationID: []int64{1, 2, 300}, Value: []int64{10000000}},
		},
		Location: []profile.Location{
			{ID: 1, Address: 0x401000},
			{ID: 2, Address: 0x402000},
			{ID: 300, Address: 0x403000},
		},
		StringTable: st,
		Period:      10000000,
		PeriodType:  &profile.ValueType{Type: cpu, Unit: ns},
	}
}

func TestMarshalUnmarshal_Raw(t *testing.T) {
	p := testProfile()

	data, err := Marshal(p)
	require.NoError(t, err)
	require.Len(t, data, p.EncodedLen())

	got, err := Unmarshal(data)
	require.NoError(t, err)
	require.Equal(t, p.Sample, got.Sample)
	require.Equal(t, p.StringTable.Strings(), got.StringTable.Strings())
	require.Equal(t, p.Period, got.Period)
}

func TestMarshalUnmarshal_Gzip(t *testing.T) {
	p := testProfile()

	data, err := Marshal(p, WithCompression(format.CompressionGzip))
	require.NoError(t, err)

	// Gzip magic present; Unmarshal unwraps it transparently.
	require.Equal(t, byte(0x1f), data[0])
	require.Equal(t, byte(0x8b), data[1])

	got, err := Unmarshal(data)
	require.NoError(t, err)
	require.Equal(t, p.Sample, got.Sample)
	require.Equal(t, p.PeriodType, got.PeriodType)
}

func TestMarshalUnmarshal_Zstd(t *testing.T) {
	p := testProfile()

	data, err := Marshal(p, WithCompression(format.CompressionZstd))
	require.NoError(t, err)

	got, err := Unmarshal(data)
	require.NoError(t, err)
	require.Equal(t, p.Sample, got.Sample)
}

func TestMarshal_CooperativeYield(t *testing.T) {
	p := testProfile()

	plain, err := Marshal(p)
	require.NoError(t, err)

	yielded, err := Marshal(p, WithCooperativeYield())
	require.NoError(t, err)
	require.Equal(t, plain, yielded)
}

func TestMarshal_InvalidCompression(t *testing.T) {
	_, err := Marshal(testProfile(), WithCompression(format.CompressionType(0xee)))
	require.ErrorIs(t, err, errs.ErrUnsupportedCompression)
}

func TestUnmarshal_GarbageWireType(t *testing.T) {
	// Wire type 5 in the first tag byte: not part of this schema family.
	_, err := Unmarshal([]byte{0x0d, 0x00, 0x00, 0x00, 0x00})
	require.ErrorIs(t, err, errs.ErrUnknownWireType)
}
