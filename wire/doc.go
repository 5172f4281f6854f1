// Package wire implements the low-level protobuf wire primitives used by the
// pprof codec: varint measurement/encoding/decoding, tag-length-value field
// framing, a throughput-optimized batch varint decoder for packed fields, and
// a generic tag scanner that walks an encoded message and dispatches raw field
// payloads to per-message handlers.
//
// The pprof schema only ever uses two wire types, varint (0) and
// length-delimited (2), and every field number is below 16, so every tag fits
// in a single byte. All integer values are carried as int64; negative values
// encode as their 64-bit two's-complement bit pattern, i.e. as very large
// unsigned varints, matching a reference protobuf encoder.
//
// Decoding is tolerant: a varint truncated by the end of the buffer
// yields the partial value accumulated so far, and an over-long varint (more
// than 10 continuation groups) yields its partial value with the cursor forced
// past the malformed run. The single fatal error in the package is
// errs.ErrUnknownWireType, returned by Scan for a tag whose wire type is
// neither varint nor length-delimited.
package wire
