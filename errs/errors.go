// Package errs defines the sentinel errors returned by pprofwire.
//
// Callers can match these with errors.Is after unwrapping the
// contextual wrapping added at the call site.
package errs

import "errors"

var (
	// ErrUnknownWireType indicates a tag byte whose wire type is neither
	// varint (0) nor length-delimited (2). The pprof schema never emits any
	// other wire type, so the buffer cannot belong to this schema family.
	// This is the only unrecoverable decode error in the codec.
	ErrUnknownWireType = errors.New("pprofwire: unknown wire type")

	// ErrUnsupportedCompression indicates a compression type with no
	// registered codec.
	ErrUnsupportedCompression = errors.New("pprofwire: unsupported compression type")
)
