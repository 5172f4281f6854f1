package profile

import (
	"fmt"

	"github.com/arloliu/pprofwire/errs"
	"github.com/arloliu/pprofwire/wire"
)

// UnmarshalProfile decodes one encoded profile. The string table is rebuilt
// without the implicit empty-string seed, in wire-encounter order, so a
// re-encode reproduces the source bytes exactly. Unknown field numbers are
// ignored; the only error is an unknown wire type, which marks a buffer
// outside this schema family.
func UnmarshalProfile(data []byte) (*Profile, error) {
	p := &Profile{StringTable: NewDecodeStringTable()}

	err := wire.Scan(data, func(field int, _ wire.WireType, payload []byte) error {
		switch field {
		case profileSampleTypeField:
			vt, err := decodeValueType(payload)
			if err != nil {
				return err
			}
			p.SampleType = append(p.SampleType, vt)
		case profileSampleField:
			s, err := decodeSample(payload)
			if err != nil {
				return err
			}
			p.Sample = append(p.Sample, s)
		case profileMappingField:
			m, err := decodeMapping(payload)
			if err != nil {
				return err
			}
			p.Mapping = append(p.Mapping, m)
		case profileLocationField:
			l, err := decodeLocation(payload)
			if err != nil {
				return err
			}
			p.Location = append(p.Location, l)
		case profileFunctionField:
			f, err := decodeFunction(payload)
			if err != nil {
				return err
			}
			p.Function = append(p.Function, f)
		case profileStringTableField:
			p.StringTable.addDecoded(payload)
		case profileDropFramesField:
			p.DropFrames, _ = wire.Varint(payload, 0)
		case profileKeepFramesField:
			p.KeepFrames, _ = wire.Varint(payload, 0)
		case profileTimeNanosField:
			p.TimeNanos, _ = wire.Varint(payload, 0)
		case profileDurationNanosField:
			p.DurationNanos, _ = wire.Varint(payload, 0)
		case profilePeriodTypeField:
			vt, err := decodeValueType(payload)
			if err != nil {
				return err
			}
			p.PeriodType = &vt
		case profilePeriodField:
			p.Period, _ = wire.Varint(payload, 0)
		case profileCommentField:
			// Handles both the packed payload and a singular varint.
			p.Comment = wire.AppendVarints(p.Comment, payload)
		case profileDefaultSampleTypeField:
			p.DefaultSampleType, _ = wire.Varint(payload, 0)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return p, nil
}

// UnmarshalBinary decodes data into p, replacing its contents. It implements
// encoding.BinaryUnmarshaler.
func (p *Profile) UnmarshalBinary(data []byte) error {
	decoded, err := UnmarshalProfile(data)
	if err != nil {
		return err
	}
	*p = *decoded

	return nil
}

func decodeValueType(data []byte) (ValueType, error) {
	var v ValueType
	err := wire.Scan(data, func(field int, _ wire.WireType, payload []byte) error {
		switch field {
		case valueTypeTypeField:
			v.Type, _ = wire.Varint(payload, 0)
		case valueTypeUnitField:
			v.Unit, _ = wire.Varint(payload, 0)
		}

		return nil
	})

	return v, err
}

func decodeLabel(data []byte) (Label, error) {
	var l Label
	err := wire.Scan(data, func(field int, _ wire.WireType, payload []byte) error {
		switch field {
		case labelKeyField:
			l.Key, _ = wire.Varint(payload, 0)
		case labelStrField:
			l.Str, _ = wire.Varint(payload, 0)
		case labelNumField:
			l.Num, _ = wire.Varint(payload, 0)
		case labelNumUnitField:
			l.NumUnit, _ = wire.Varint(payload, 0)
		}

		return nil
	})

	return l, err
}

// decodeSample inlines the generic tag scan instead of going through
// wire.Scan: samples dominate decode time and their packed numeric lists go
// straight from the length-delimited payload into the batch varint decoder
// with no intermediate dispatch or re-slicing.
func decodeSample(data []byte) (Sample, error) {
	var s Sample
	off := 0
	for off < len(data) {
		tag := data[off]
		off++
		switch tag {
		case tagSampleLocationID:
			l, next := wire.Varint(data, off)
			off = next
			end := clampEnd(off, int(l), len(data))
			s.LocationID = wire.AppendVarints(s.LocationID, data[off:end])
			off = end
		case tagSampleValue:
			l, next := wire.Varint(data, off)
			off = next
			end := clampEnd(off, int(l), len(data))
			s.Value = wire.AppendVarints(s.Value, data[off:end])
			off = end
		case tagSampleLabel:
			l, next := wire.Varint(data, off)
			off = next
			end := clampEnd(off, int(l), len(data))
			lbl, err := decodeLabel(data[off:end])
			if err != nil {
				return Sample{}, err
			}
			s.Label = append(s.Label, lbl)
			off = end
		default:
			field := int(tag >> 3)
			switch wire.WireType(tag & 7) {
			case wire.TypeVarint:
				start := off
				for off < len(data) && data[off] >= 0x80 {
					off++
				}
				if off < len(data) {
					off++
				}
				// A conforming encoder may emit the numeric lists unpacked,
				// one varint per tag; fold those in element by element.
				switch field {
				case sampleLocationIDField:
					s.LocationID = wire.AppendVarints(s.LocationID, data[start:off])
				case sampleValueField:
					s.Value = wire.AppendVarints(s.Value, data[start:off])
				}
			case wire.TypeBytes:
				l, next := wire.Varint(data, off)
				off = next
				off = clampEnd(off, int(l), len(data))
			default:
				return Sample{}, fmt.Errorf("field %d tag 0x%02x: %w", field, tag, errs.ErrUnknownWireType)
			}
		}
	}

	return s, nil
}

func decodeMapping(data []byte) (Mapping, error) {
	var m Mapping
	err := wire.Scan(data, func(field int, _ wire.WireType, payload []byte) error {
		switch field {
		case mappingIDField:
			m.ID, _ = wire.Varint(payload, 0)
		case mappingMemoryStartField:
			m.MemoryStart, _ = wire.Varint(payload, 0)
		case mappingMemoryLimitField:
			m.MemoryLimit, _ = wire.Varint(payload, 0)
		case mappingFileOffsetField:
			m.FileOffset, _ = wire.Varint(payload, 0)
		case mappingFilenameField:
			m.Filename, _ = wire.Varint(payload, 0)
		case mappingBuildIDField:
			m.BuildID, _ = wire.Varint(payload, 0)
		case mappingHasFunctionsField:
			m.HasFunctions = decodeBool(payload)
		case mappingHasFilenamesField:
			m.HasFilenames = decodeBool(payload)
		case mappingHasLineNumbersField:
			m.HasLineNumbers = decodeBool(payload)
		case mappingHasInlineFramesField:
			m.HasInlineFrames = decodeBool(payload)
		}

		return nil
	})

	return m, err
}

func decodeLine(data []byte) (Line, error) {
	var l Line
	err := wire.Scan(data, func(field int, _ wire.WireType, payload []byte) error {
		switch field {
		case lineFunctionIDField:
			l.FunctionID, _ = wire.Varint(payload, 0)
		case lineLineField:
			l.Line, _ = wire.Varint(payload, 0)
		}

		return nil
	})

	return l, err
}

func decodeLocation(data []byte) (Location, error) {
	var loc Location
	err := wire.Scan(data, func(field int, _ wire.WireType, payload []byte) error {
		switch field {
		case locationIDField:
			loc.ID, _ = wire.Varint(payload, 0)
		case locationMappingIDField:
			loc.MappingID, _ = wire.Varint(payload, 0)
		case locationAddressField:
			loc.Address, _ = wire.Varint(payload, 0)
		case locationLineField:
			ln, err := decodeLine(payload)
			if err != nil {
				return err
			}
			loc.Line = append(loc.Line, ln)
		case locationIsFoldedField:
			loc.IsFolded = decodeBool(payload)
		}

		return nil
	})

	return loc, err
}

func decodeFunction(data []byte) (Function, error) {
	var f Function
	err := wire.Scan(data, func(field int, _ wire.WireType, payload []byte) error {
		switch field {
		case functionIDField:
			f.ID, _ = wire.Varint(payload, 0)
		case functionNameField:
			f.Name, _ = wire.Varint(payload, 0)
		case functionSystemNameField:
			f.SystemName, _ = wire.Varint(payload, 0)
		case functionFilenameField:
			f.Filename, _ = wire.Varint(payload, 0)
		case functionStartLineField:
			f.StartLine, _ = wire.Varint(payload, 0)
		}

		return nil
	})

	return f, err
}

func decodeBool(payload []byte) bool {
	v, _ := wire.Varint(payload, 0)
	return v != 0
}

// clampEnd bounds a length-delimited payload to the buffer, tolerating
// truncated input the same way the generic scanner does.
func clampEnd(off, l, n int) int {
	end := off + l
	if end > n || end < off {
		return n
	}

	return end
}
