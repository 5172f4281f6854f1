package compress

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/pprofwire/errs"
	"github.com/arloliu/pprofwire/format"
)

var testPayload = bytes.Repeat([]byte("pprofwire compression test payload "), 64)

func TestCodec_RoundTrip(t *testing.T) {
	types := []format.CompressionType{
		format.CompressionNone,
		format.CompressionGzip,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	}
	for _, ct := range types {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := GetCodec(ct)
			require.NoError(t, err)

			compressed, err := codec.Compress(testPayload)
			require.NoError(t, err)

			decompressed, err := codec.Decompress(compressed)
			require.NoError(t, err)
			require.Equal(t, testPayload, decompressed)
		})
	}
}

func TestCodec_CompressibleInputShrinks(t *testing.T) {
	for _, ct := range []format.CompressionType{
		format.CompressionGzip,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		codec, err := GetCodec(ct)
		require.NoError(t, err)

		compressed, err := codec.Compress(testPayload)
		require.NoError(t, err)
		require.Less(t, len(compressed), len(testPayload), ct.String())
	}
}

func TestGetCodec_Unsupported(t *testing.T) {
	_, err := GetCodec(format.CompressionType(0xff))
	require.ErrorIs(t, err, errs.ErrUnsupportedCompression)
}

func TestSniff(t *testing.T) {
	gzipCodec, err := GetCodec(format.CompressionGzip)
	require.NoError(t, err)
	gzipped, err := gzipCodec.Compress(testPayload)
	require.NoError(t, err)
	require.Equal(t, format.CompressionGzip, Sniff(gzipped))

	zstdCodec, err := GetCodec(format.CompressionZstd)
	require.NoError(t, err)
	zstded, err := zstdCodec.Compress(testPayload)
	require.NoError(t, err)
	require.Equal(t, format.CompressionZstd, Sniff(zstded))

	// Raw encoded profiles lead with a field tag byte, never a magic.
	require.Equal(t, format.CompressionNone, Sniff([]byte{0x0a, 0x04, 0x08, 0x01}))
	require.Equal(t, format.CompressionNone, Sniff(nil))
	require.Equal(t, format.CompressionNone, Sniff([]byte{0x1f}))
}

func TestCodec_EmptyInput(t *testing.T) {
	for _, ct := range []format.CompressionType{
		format.CompressionGzip,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		codec, err := GetCodec(ct)
		require.NoError(t, err)

		compressed, err := codec.Compress(nil)
		require.NoError(t, err)

		decompressed, err := codec.Decompress(compressed)
		require.NoError(t, err)
		require.Empty(t, decompressed, ct.String())
	}
}
