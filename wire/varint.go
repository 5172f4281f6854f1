package wire

// MaxVarintLen is the maximum number of bytes a 64-bit varint occupies.
// A uint64 holds 64 bits and each varint byte carries 7, so ceil(64/7) = 10.
const MaxVarintLen = 10

// VarintLen returns the number of bytes the varint encoding of v occupies.
// Zero occupies one byte; negative values occupy the full 10 bytes because
// they encode as their 64-bit two's-complement bit pattern.
//
// This is a branch-ladder on the unsigned magnitude rather than a loop,
// checking the low and high 32-bit halves separately so the common small
// values resolve in at most three comparisons.
func VarintLen(v int64) int {
	u := uint64(v)

	lo := uint32(u)
	hi := uint32(u >> 32)
	if hi == 0 {
		if lo < 1<<7 {
			return 1
		}
		if lo < 1<<14 {
			return 2
		}
		if lo < 1<<21 {
			return 3
		}
		if lo < 1<<28 {
			return 4
		}

		return 5
	}

	if hi < 1<<3 {
		return 5
	}
	if hi < 1<<10 {
		return 6
	}
	if hi < 1<<17 {
		return 7
	}
	if hi < 1<<24 {
		return 8
	}
	if hi < 1<<31 {
		return 9
	}

	return 10
}

// AppendVarint appends the varint encoding of v to b and returns the extended
// slice. Zero appends a single zero byte. Negative values are reinterpreted as
// uint64, reproducing protobuf's raw encoding of negative int64 fields.
//
// Example encodings:
//   - 0 → [0x00]
//   - 127 → [0x7f]
//   - 300 → [0xac, 0x02]
//   - -1 → [0xff ×9, 0x01]
func AppendVarint(b []byte, v int64) []byte {
	u := uint64(v)
	for u >= 0x80 {
		b = append(b, byte(u)|0x80)
		u >>= 7
	}

	return append(b, byte(u))
}

// PutVarint writes the varint encoding of v into b starting at off and
// returns the offset just past the last byte written. The caller must have
// sized b via VarintLen; PutVarint does not grow the slice.
func PutVarint(b []byte, off int, v int64) int {
	u := uint64(v)
	for u >= 0x80 {
		b[off] = byte(u) | 0x80
		off++
		u >>= 7
	}
	b[off] = byte(u)

	return off + 1
}

// Varint decodes one varint from b starting at off and returns the value and
// the offset just past the last byte consumed.
//
// Decoding never fails. The end of the buffer mid-sequence terminates the
// decode and returns whatever has been accumulated so far, and groups past
// the 64-bit capacity are consumed without contributing bits. Values that
// used all 10 groups come back bit-exact as int64, so negative numbers
// round-trip through their two's-complement encoding.
func Varint(b []byte, off int) (int64, int) {
	if off >= len(b) {
		return 0, off
	}

	// 1-byte fast path, by far the most common case in profile data.
	b0 := b[off]
	if b0 < 0x80 {
		return int64(b0), off + 1
	}
	if off+1 >= len(b) {
		return int64(b0 & 0x7f), off + 1
	}

	// 2-byte fast path.
	b1 := b[off+1]
	if b1 < 0x80 {
		return int64(b0&0x7f) | int64(b1)<<7, off + 2
	}

	v := uint64(b0&0x7f) | uint64(b1&0x7f)<<7
	shift := uint(14)
	i := off + 2
	for i < len(b) {
		c := b[i]
		i++
		if shift < 64 {
			v |= uint64(c&0x7f) << shift
		}
		shift += 7
		if c < 0x80 {
			return int64(v), i
		}
	}

	// Truncated sequence: partial value, cursor at end of buffer.
	return int64(v), i
}
