package compress

// ZstdCompressor provides Zstandard compression for stored profiles. It is
// the best ratio/speed trade-off of the offered codecs when the consumer is
// not constrained to the gzip pprof convention.
//
// Two implementations exist behind build tags, mirroring how the library was
// deployed: a cgo binding (valyala/gozstd) when cgo is available, and a
// pure-Go fallback (klauspost/compress/zstd) otherwise. Both produce
// standard zstd frames and interoperate freely.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
