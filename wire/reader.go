package wire

import (
	"fmt"

	"github.com/arloliu/pprofwire/errs"
)

// FieldFunc receives one field extracted by Scan: the field number, the wire
// type, and the raw payload bytes. For TypeVarint the payload is the raw
// continuation-terminated varint, not yet decoded; handlers decode it with
// Varint or hand it to AppendVarints, which treats a single raw varint as a
// one-element packed run. For TypeBytes the payload is the length-delimited
// slice. Handlers ignore field numbers they do not recognize, which is what
// makes decoding forward-compatible with newer schema revisions.
type FieldFunc func(field int, wt WireType, payload []byte) error

// Scan walks an encoded message buffer field by field, splitting each tag
// byte into field number and wire type and extracting the raw payload, then
// dispatches (field, wireType, payload) to fn.
//
// A wire type other than varint or length-delimited returns
// errs.ErrUnknownWireType: the schema never emits one, so the buffer cannot
// belong to this schema family. Any error from fn aborts the scan. Truncated
// payloads are clamped to the end of the buffer rather than rejected, in line
// with the codec's tolerant decode policy.
func Scan(data []byte, fn FieldFunc) error {
	off := 0
	for off < len(data) {
		tag := data[off]
		off++
		field := int(tag >> 3)
		wt := WireType(tag & 7)

		var payload []byte
		switch wt {
		case TypeVarint:
			start := off
			for off < len(data) && data[off] >= 0x80 {
				off++
			}
			if off < len(data) {
				off++ // terminating byte
			}
			payload = data[start:off]
		case TypeBytes:
			l, next := Varint(data, off)
			off = next
			end := off + int(l)
			if end > len(data) || end < off {
				end = len(data)
			}
			payload = data[off:end]
			off = end
		default:
			return fmt.Errorf("field %d tag 0x%02x: %w", field, tag, errs.ErrUnknownWireType)
		}

		if err := fn(field, wt, payload); err != nil {
			return err
		}
	}

	return nil
}
