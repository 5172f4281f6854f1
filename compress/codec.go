// Package compress provides the optional compression envelope around encoded
// profiles. The codec core never compresses; this package wraps or unwraps
// the finished bytes.
//
// Gzip is the pprof ecosystem convention: the runtime and pprof tooling
// write gzipped profiles, and consumers are expected to decompress
// transparently. Zstd, S2 and LZ4 are offered for storage pipelines that
// prefer them. Gzip and Zstd (and anything else with a self-describing
// header) can be detected with Sniff; S2 and LZ4 block payloads carry no
// magic bytes and must be tracked out of band.
package compress

import (
	"fmt"

	"github.com/arloliu/pprofwire/errs"
	"github.com/arloliu/pprofwire/format"
)

// Compressor compresses one finished payload.
//
// Memory management:
//   - Returned slice is newly allocated and owned by the caller
//   - Input slice is not modified
//   - Internal buffers may be reused for efficiency
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor is the inverse of Compressor. Implementations validate the
// input framing and return an error for corrupted or mismatched data.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions. All implementations in this package are
// stateless values safe for concurrent use; pooled encoder/decoder state is
// handled internally.
type Codec interface {
	Compressor
	Decompressor
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionGzip: NewGzipCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec retrieves the built-in Codec for the specified compression type.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("%w: %s", errs.ErrUnsupportedCompression, compressionType)
}

// Magic byte sequences of the self-describing compression formats.
var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// Sniff inspects the leading bytes of data and reports the compression
// envelope it carries, or CompressionNone when none is recognized. Raw
// encoded profiles start with a field tag (0x0a for the first sampleType in
// practice) and never collide with the gzip or zstd magic.
func Sniff(data []byte) format.CompressionType {
	if hasPrefix(data, gzipMagic) {
		return format.CompressionGzip
	}
	if hasPrefix(data, zstdMagic) {
		return format.CompressionZstd
	}

	return format.CompressionNone
}

func hasPrefix(data, magic []byte) bool {
	if len(data) < len(magic) {
		return false
	}
	for i := range magic {
		if data[i] != magic[i] {
			return false
		}
	}

	return true
}
