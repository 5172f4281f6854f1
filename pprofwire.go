// Package pprofwire provides a hand-built, allocation-conscious codec for the
// pprof profiling interchange format.
//
// A profile is a tree of messages (samples, locations, functions, mappings,
// value types, a deduplicating string table) serialized to the compact
// tag-length-value binary encoding of the upstream profile.proto schema. The
// output is byte-identical to a standard protobuf encoding of the same
// logical message, so any pprof-consuming tool can read it, and the decoder
// accepts any conforming encoder's output.
//
// # Basic Usage
//
// Building and encoding a profile:
//
//	import (
//	    "github.com/arloliu/pprofwire"
//	    "github.com/arloliu/pprofwire/profile"
//	)
//
//	st := profile.NewStringTable()
//	p := &profile.Profile{
//	    SampleType: []profile.ValueType{
//	        {Type: st.Dedup("cpu"), Unit: st.Dedup("nanoseconds")},
//	    },
//	    Sample: []profile.Sample{
//	        {LocationID: []int64{1, 2}, Value: []int64{10000000}},
//	    },
//	    StringTable: st,
//	}
//	data, _ := pprofwire.Marshal(p)
//
// Decoding transparently handles the gzip envelope pprof files
// conventionally carry:
//
//	p, err := pprofwire.Unmarshal(data)
//
// # Package Structure
//
// This package provides convenient top-level wrappers. For fine-grained
// control use the profile package (message types and their codecs) and the
// wire package (varint, field framing, batch decoding) directly; the
// compress package holds the optional compression envelope.
package pprofwire

import (
	"fmt"

	"github.com/arloliu/pprofwire/compress"
	"github.com/arloliu/pprofwire/format"
	"github.com/arloliu/pprofwire/internal/pool"
	"github.com/arloliu/pprofwire/profile"
)

type marshalConfig struct {
	compression format.CompressionType
	yield       bool
}

// MarshalOption configures Marshal.
type MarshalOption func(*marshalConfig) error

// WithCompression wraps the encoded profile in the given compression
// envelope. CompressionGzip matches the pprof file convention;
// CompressionNone (the default) emits raw bytes.
func WithCompression(ct format.CompressionType) MarshalOption {
	return func(c *marshalConfig) error {
		if ct != format.CompressionNone {
			if _, err := compress.GetCodec(ct); err != nil {
				return err
			}
		}
		c.compression = ct

		return nil
	}
}

// WithCooperativeYield makes Marshal yield the processor between encode
// sections, for very large profiles serialized inside a latency-sensitive
// process. Output is byte-identical to the non-yielding path.
func WithCooperativeYield() MarshalOption {
	return func(c *marshalConfig) error {
		c.yield = true

		return nil
	}
}

// Marshal encodes a profile to its wire format, optionally compressed.
//
// The profile must not be mutated until Marshal returns.
func Marshal(p *profile.Profile, opts ...MarshalOption) ([]byte, error) {
	cfg := marshalConfig{compression: format.CompressionNone}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if cfg.compression == format.CompressionNone {
		if cfg.yield {
			return p.MarshalBinaryYield()
		}

		return p.MarshalBinary()
	}

	codec, err := compress.GetCodec(cfg.compression)
	if err != nil {
		return nil, err
	}

	// The uncompressed bytes are transient, so they go through a pooled
	// scratch buffer; only the compressed copy escapes.
	bb := pool.GetProfileBuffer()
	defer pool.PutProfileBuffer(bb)

	var raw []byte
	if cfg.yield {
		raw, _ = p.MarshalBinaryYield()
	} else {
		raw, _ = p.AppendBinary(bb.Bytes())
		bb.B = raw
	}

	out, err := codec.Compress(raw)
	if err != nil {
		return nil, fmt.Errorf("pprofwire: compress profile: %w", err)
	}

	return out, nil
}

// Unmarshal decodes an encoded profile. A gzip or zstd envelope is detected
// by its magic bytes and unwrapped transparently, matching how pprof
// consumers treat profile files.
func Unmarshal(data []byte) (*profile.Profile, error) {
	if ct := compress.Sniff(data); ct != format.CompressionNone {
		codec, err := compress.GetCodec(ct)
		if err != nil {
			return nil, err
		}
		raw, err := codec.Decompress(data)
		if err != nil {
			return nil, fmt.Errorf("pprofwire: decompress profile: %w", err)
		}
		data = raw
	}

	return profile.UnmarshalProfile(data)
}
