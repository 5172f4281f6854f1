package format

// CompressionType identifies the compression envelope applied around an
// encoded profile. The codec itself never compresses; compression is an
// optional wrapper over the finished bytes.
type CompressionType uint8

const (
	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionGzip CompressionType = 0x2 // CompressionGzip represents gzip, the pprof file convention.
	CompressionZstd CompressionType = 0x3 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x4 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x5 // CompressionLZ4 represents LZ4 block compression.
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionGzip:
		return "Gzip"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}
