package wire

// WireType is the 3-bit framing discriminator in the low bits of a tag byte.
// The pprof schema only ever uses TypeVarint and TypeBytes.
type WireType byte

const (
	// TypeVarint frames a single variable-length integer.
	TypeVarint WireType = 0
	// TypeBytes frames a length-delimited payload: nested message, string
	// bytes, or a packed run of varints.
	TypeBytes WireType = 2
)

// Tag builds the single-byte tag for a field. Every field number in the
// schema is below 16, so (field << 3) | wireType always fits in one byte.
func Tag(field int, wt WireType) byte {
	return byte(field)<<3 | byte(wt)
}

// VarintFieldLen returns the encoded size of a scalar varint field: zero when
// v is zero (proto3 elides default values), otherwise one tag byte plus the
// varint.
func VarintFieldLen(v int64) int {
	if v == 0 {
		return 0
	}

	return 1 + VarintLen(v)
}

// PutVarintField writes tag + varint(v) at off and returns the new offset.
// A zero value writes nothing, matching VarintFieldLen.
func PutVarintField(b []byte, off int, tag byte, v int64) int {
	if v == 0 {
		return off
	}
	b[off] = tag

	return PutVarint(b, off+1, v)
}

// BoolFieldLen returns the encoded size of a varint bool field: zero when v
// is false, otherwise two bytes (tag + 0x01).
func BoolFieldLen(v bool) int {
	if !v {
		return 0
	}

	return 2
}

// PutBoolField writes tag + 0x01 at off when v is true and returns the new
// offset.
func PutBoolField(b []byte, off int, tag byte, v bool) int {
	if !v {
		return off
	}
	b[off] = tag
	b[off+1] = 1

	return off + 2
}

// PackedLen returns the byte length of the concatenated varint encodings of
// vals, without any framing. Zero-valued elements still count one byte each:
// inside a packed run position is significant, so elements are never elided.
func PackedLen(vals []int64) int {
	n := 0
	for _, v := range vals {
		n += VarintLen(v)
	}

	return n
}

// PackedFieldLen returns the encoded size of a packed varint array field:
// zero for an empty list, otherwise tag + varint(payload length) + payload.
func PackedFieldLen(vals []int64) int {
	if len(vals) == 0 {
		return 0
	}
	n := PackedLen(vals)

	return 1 + VarintLen(int64(n)) + n
}

// PutPackedField writes a packed varint array field at off and returns the
// new offset. An empty list writes nothing.
func PutPackedField(b []byte, off int, tag byte, vals []int64) int {
	if len(vals) == 0 {
		return off
	}
	b[off] = tag
	off = PutVarint(b, off+1, int64(PackedLen(vals)))
	for _, v := range vals {
		off = PutVarint(b, off, v)
	}

	return off
}

// LenFieldLen returns the framing overhead plus payload size of a
// length-delimited field whose payload occupies n bytes. Unlike scalar
// fields a zero-length payload is still framed (callers elide absent values
// themselves where appropriate; repeated elements and string-table entries
// are emitted even when empty).
func LenFieldLen(n int) int {
	return 1 + VarintLen(int64(n)) + n
}

// PutLenHeader writes the tag and varint payload length of a
// length-delimited field at off and returns the offset where the payload
// begins. The caller writes the n payload bytes itself, which lets nested
// messages encode in place without an intermediate buffer.
func PutLenHeader(b []byte, off int, tag byte, n int) int {
	b[off] = tag

	return PutVarint(b, off+1, int64(n))
}
