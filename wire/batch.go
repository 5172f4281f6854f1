package wire

// maxBatchPrealloc caps the output pre-allocation of AppendVarints at 8 MiB
// of int64 storage. The one-element-per-byte estimate is exact for runs of
// single-byte varints and an overestimate otherwise; the cap keeps a huge
// packed payload from pre-allocating more than it could ever need to hold
// before the append loop takes over growth.
const maxBatchPrealloc = (8 << 20) / 8

// AppendVarints decodes a contiguous run of back-to-back varints, the payload
// of a packed field, appending the values to dst in order and returning the
// extended slice.
//
// The decode consumes every byte of data and yields exactly one value per
// terminated varint group. Two malformations are tolerated rather than
// reported: a trailing group truncated by the end of the payload yields its
// partial value, and a group with more than 10 continuation bytes yields its
// partial value with the cursor forced past the run so the scan always makes
// forward progress.
//
// Per iteration the decoder takes the first applicable fast path: four
// consecutive single-byte values appended in one batch, two consecutive
// two-byte values detected by a four-byte lookahead pattern, or a fully
// unrolled 1-to-4-byte decode, before falling back to a general 5-to-10 group
// accumulation.
func AppendVarints(dst []int64, data []byte) []int64 {
	if len(data) == 0 {
		return dst
	}

	est := len(data)
	if est > maxBatchPrealloc {
		est = maxBatchPrealloc
	}
	if cap(dst)-len(dst) < est {
		grown := make([]int64, len(dst), len(dst)+est)
		copy(grown, dst)
		dst = grown
	}

	i, n := 0, len(data)
	for i < n {
		if i+3 < n {
			// Four single-byte values at once.
			if data[i]|data[i+1]|data[i+2]|data[i+3] < 0x80 {
				dst = append(dst,
					int64(data[i]), int64(data[i+1]),
					int64(data[i+2]), int64(data[i+3]))
				i += 4

				continue
			}
			// Two two-byte values: continuation, terminator, continuation,
			// terminator.
			if data[i] >= 0x80 && data[i+1] < 0x80 && data[i+2] >= 0x80 && data[i+3] < 0x80 {
				dst = append(dst,
					int64(data[i]&0x7f)|int64(data[i+1])<<7,
					int64(data[i+2]&0x7f)|int64(data[i+3])<<7)
				i += 4

				continue
			}
		}

		// Unrolled 1-to-4-byte decode.
		b0 := data[i]
		i++
		if b0 < 0x80 {
			dst = append(dst, int64(b0))

			continue
		}
		v := uint64(b0 & 0x7f)
		if i >= n {
			dst = append(dst, int64(v))

			break
		}

		b1 := data[i]
		i++
		v |= uint64(b1&0x7f) << 7
		if b1 < 0x80 {
			dst = append(dst, int64(v))

			continue
		}
		if i >= n {
			dst = append(dst, int64(v))

			break
		}

		b2 := data[i]
		i++
		v |= uint64(b2&0x7f) << 14
		if b2 < 0x80 {
			dst = append(dst, int64(v))

			continue
		}
		if i >= n {
			dst = append(dst, int64(v))

			break
		}

		b3 := data[i]
		i++
		v |= uint64(b3&0x7f) << 21
		if b3 < 0x80 {
			dst = append(dst, int64(v))

			continue
		}

		// General 5-to-10 group accumulation.
		shift := uint(28)
		groups := 4
		for i < n {
			c := data[i]
			i++
			groups++
			if shift < 64 {
				v |= uint64(c&0x7f) << shift
			}
			shift += 7
			if c < 0x80 {
				break
			}
			if groups == MaxVarintLen {
				// Malformed over-long run: skip the remaining continuation
				// bytes and the terminator when present, emit the partial
				// accumulator below.
				for i < n && data[i] >= 0x80 {
					i++
				}
				if i < n {
					i++
				}

				break
			}
		}
		dst = append(dst, int64(v))
	}

	return dst
}
