package compress

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/gzip"

	"github.com/arloliu/pprofwire/internal/pool"
)

// gzipWriterPool pools gzip writers for reuse; Reset makes them fully
// reusable and creating one per call dominates small-profile encode cost.
var gzipWriterPool = sync.Pool{
	New: func() any {
		return gzip.NewWriter(io.Discard)
	},
}

// gzipReaderPool pools gzip readers. A pooled reader is re-armed with Reset
// against the next input.
var gzipReaderPool = sync.Pool{
	New: func() any {
		return new(gzip.Reader)
	},
}

// GzipCompressor provides gzip compression, the conventional envelope for
// pprof profiles on disk and over the wire.
type GzipCompressor struct{}

var _ Codec = (*GzipCompressor)(nil)

// NewGzipCompressor creates a new gzip compressor.
func NewGzipCompressor() GzipCompressor {
	return GzipCompressor{}
}

// Compress compresses the input data into a gzip stream.
func (c GzipCompressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	bb := pool.GetProfileBuffer()
	defer pool.PutProfileBuffer(bb)

	w, _ := gzipWriterPool.Get().(*gzip.Writer)
	defer gzipWriterPool.Put(w)
	w.Reset(bb)

	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("gzip compression failed: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("gzip compression failed: %w", err)
	}

	out := make([]byte, bb.Len())
	copy(out, bb.Bytes())

	return out, nil
}

// Decompress decompresses a gzip stream.
func (c GzipCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	r, _ := gzipReaderPool.Get().(*gzip.Reader)
	defer gzipReaderPool.Put(r)
	if err := r.Reset(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("gzip decompression failed: %w", err)
	}

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("gzip decompression failed: %w", err)
	}
	if err := r.Close(); err != nil {
		return nil, fmt.Errorf("gzip decompression failed: %w", err)
	}

	return out, nil
}
