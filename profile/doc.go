// Package profile implements the pprof message tree and its hand-built wire
// codec: ValueType, Label, Sample, Mapping, Line, Location, Function, the
// deduplicating string table, and the top-level Profile aggregate.
//
// Encoding is two-pass and top-down: Profile measures every child, allocates
// one exact-size buffer, then writes fields in ascending field-number order
// with proto3 default elision. Decoding is a single linear scan that
// recursively re-invokes the message decoders on sliced payloads, builds the
// string table in wire-encounter order, and silently ignores unknown field
// numbers. The output is byte-identical to a standard protobuf encoding of
// the same logical message, so any pprof-consuming tool can read it.
//
// Messages are immutable by convention: construct a value, encode or decode
// it, discard it. There is no mutation API and the codec takes no locks;
// concurrent decodes of independent buffers are safe, but a Profile being
// encoded must not be mutated until the encode returns.
package profile
