package profile

import (
	"runtime"
	"slices"

	"github.com/arloliu/pprofwire/wire"
)

// Pre-built single-byte tags for every schema field. All field numbers are
// below 16, so each tag is one byte.
var (
	tagProfileSampleType        = wire.Tag(profileSampleTypeField, wire.TypeBytes)
	tagProfileSample            = wire.Tag(profileSampleField, wire.TypeBytes)
	tagProfileMapping           = wire.Tag(profileMappingField, wire.TypeBytes)
	tagProfileLocation          = wire.Tag(profileLocationField, wire.TypeBytes)
	tagProfileFunction          = wire.Tag(profileFunctionField, wire.TypeBytes)
	tagProfileDropFrames        = wire.Tag(profileDropFramesField, wire.TypeVarint)
	tagProfileKeepFrames        = wire.Tag(profileKeepFramesField, wire.TypeVarint)
	tagProfileTimeNanos         = wire.Tag(profileTimeNanosField, wire.TypeVarint)
	tagProfileDurationNanos     = wire.Tag(profileDurationNanosField, wire.TypeVarint)
	tagProfilePeriodType        = wire.Tag(profilePeriodTypeField, wire.TypeBytes)
	tagProfilePeriod            = wire.Tag(profilePeriodField, wire.TypeVarint)
	tagProfileComment           = wire.Tag(profileCommentField, wire.TypeBytes)
	tagProfileDefaultSampleType = wire.Tag(profileDefaultSampleTypeField, wire.TypeVarint)

	tagValueTypeType = wire.Tag(valueTypeTypeField, wire.TypeVarint)
	tagValueTypeUnit = wire.Tag(valueTypeUnitField, wire.TypeVarint)

	tagSampleLocationID = wire.Tag(sampleLocationIDField, wire.TypeBytes)
	tagSampleValue      = wire.Tag(sampleValueField, wire.TypeBytes)
	tagSampleLabel      = wire.Tag(sampleLabelField, wire.TypeBytes)

	tagLabelKey     = wire.Tag(labelKeyField, wire.TypeVarint)
	tagLabelStr     = wire.Tag(labelStrField, wire.TypeVarint)
	tagLabelNum     = wire.Tag(labelNumField, wire.TypeVarint)
	tagLabelNumUnit = wire.Tag(labelNumUnitField, wire.TypeVarint)

	tagMappingID              = wire.Tag(mappingIDField, wire.TypeVarint)
	tagMappingMemoryStart     = wire.Tag(mappingMemoryStartField, wire.TypeVarint)
	tagMappingMemoryLimit     = wire.Tag(mappingMemoryLimitField, wire.TypeVarint)
	tagMappingFileOffset      = wire.Tag(mappingFileOffsetField, wire.TypeVarint)
	tagMappingFilename        = wire.Tag(mappingFilenameField, wire.TypeVarint)
	tagMappingBuildID         = wire.Tag(mappingBuildIDField, wire.TypeVarint)
	tagMappingHasFunctions    = wire.Tag(mappingHasFunctionsField, wire.TypeVarint)
	tagMappingHasFilenames    = wire.Tag(mappingHasFilenamesField, wire.TypeVarint)
	tagMappingHasLineNumbers  = wire.Tag(mappingHasLineNumbersField, wire.TypeVarint)
	tagMappingHasInlineFrames = wire.Tag(mappingHasInlineFramesField, wire.TypeVarint)

	tagLocationID        = wire.Tag(locationIDField, wire.TypeVarint)
	tagLocationMappingID = wire.Tag(locationMappingIDField, wire.TypeVarint)
	tagLocationAddress   = wire.Tag(locationAddressField, wire.TypeVarint)
	tagLocationLine      = wire.Tag(locationLineField, wire.TypeBytes)
	tagLocationIsFolded  = wire.Tag(locationIsFoldedField, wire.TypeVarint)

	tagLineFunctionID = wire.Tag(lineFunctionIDField, wire.TypeVarint)
	tagLineLine       = wire.Tag(lineLineField, wire.TypeVarint)

	tagFunctionID         = wire.Tag(functionIDField, wire.TypeVarint)
	tagFunctionName       = wire.Tag(functionNameField, wire.TypeVarint)
	tagFunctionSystemName = wire.Tag(functionSystemNameField, wire.TypeVarint)
	tagFunctionFilename   = wire.Tag(functionFilenameField, wire.TypeVarint)
	tagFunctionStartLine  = wire.Tag(functionStartLineField, wire.TypeVarint)
)

// Every message follows the same contract: encodedLen measures the
// framing-aware size on demand (messages are immutable after construction,
// so nothing is cached), and encodeTo writes fields in ascending
// field-number order into a pre-sized buffer, skipping default values, and
// returns the offset just past the last byte written.

func (v ValueType) encodedLen() int {
	return wire.VarintFieldLen(v.Type) + wire.VarintFieldLen(v.Unit)
}

func (v ValueType) encodeTo(b []byte, off int) int {
	off = wire.PutVarintField(b, off, tagValueTypeType, v.Type)
	off = wire.PutVarintField(b, off, tagValueTypeUnit, v.Unit)

	return off
}

func (l Label) encodedLen() int {
	return wire.VarintFieldLen(l.Key) +
		wire.VarintFieldLen(l.Str) +
		wire.VarintFieldLen(l.Num) +
		wire.VarintFieldLen(l.NumUnit)
}

func (l Label) encodeTo(b []byte, off int) int {
	off = wire.PutVarintField(b, off, tagLabelKey, l.Key)
	off = wire.PutVarintField(b, off, tagLabelStr, l.Str)
	off = wire.PutVarintField(b, off, tagLabelNum, l.Num)
	off = wire.PutVarintField(b, off, tagLabelNumUnit, l.NumUnit)

	return off
}

func (s Sample) encodedLen() int {
	n := wire.PackedFieldLen(s.LocationID) + wire.PackedFieldLen(s.Value)
	for i := range s.Label {
		n += wire.LenFieldLen(s.Label[i].encodedLen())
	}

	return n
}

func (s Sample) encodeTo(b []byte, off int) int {
	off = wire.PutPackedField(b, off, tagSampleLocationID, s.LocationID)
	off = wire.PutPackedField(b, off, tagSampleValue, s.Value)
	for i := range s.Label {
		off = wire.PutLenHeader(b, off, tagSampleLabel, s.Label[i].encodedLen())
		off = s.Label[i].encodeTo(b, off)
	}

	return off
}

func (m Mapping) encodedLen() int {
	return wire.VarintFieldLen(m.ID) +
		wire.VarintFieldLen(m.MemoryStart) +
		wire.VarintFieldLen(m.MemoryLimit) +
		wire.VarintFieldLen(m.FileOffset) +
		wire.VarintFieldLen(m.Filename) +
		wire.VarintFieldLen(m.BuildID) +
		wire.BoolFieldLen(m.HasFunctions) +
		wire.BoolFieldLen(m.HasFilenames) +
		wire.BoolFieldLen(m.HasLineNumbers) +
		wire.BoolFieldLen(m.HasInlineFrames)
}

func (m Mapping) encodeTo(b []byte, off int) int {
	off = wire.PutVarintField(b, off, tagMappingID, m.ID)
	off = wire.PutVarintField(b, off, tagMappingMemoryStart, m.MemoryStart)
	off = wire.PutVarintField(b, off, tagMappingMemoryLimit, m.MemoryLimit)
	off = wire.PutVarintField(b, off, tagMappingFileOffset, m.FileOffset)
	off = wire.PutVarintField(b, off, tagMappingFilename, m.Filename)
	off = wire.PutVarintField(b, off, tagMappingBuildID, m.BuildID)
	off = wire.PutBoolField(b, off, tagMappingHasFunctions, m.HasFunctions)
	off = wire.PutBoolField(b, off, tagMappingHasFilenames, m.HasFilenames)
	off = wire.PutBoolField(b, off, tagMappingHasLineNumbers, m.HasLineNumbers)
	off = wire.PutBoolField(b, off, tagMappingHasInlineFrames, m.HasInlineFrames)

	return off
}

func (l Line) encodedLen() int {
	return wire.VarintFieldLen(l.FunctionID) + wire.VarintFieldLen(l.Line)
}

func (l Line) encodeTo(b []byte, off int) int {
	off = wire.PutVarintField(b, off, tagLineFunctionID, l.FunctionID)
	off = wire.PutVarintField(b, off, tagLineLine, l.Line)

	return off
}

func (l Location) encodedLen() int {
	n := wire.VarintFieldLen(l.ID) +
		wire.VarintFieldLen(l.MappingID) +
		wire.VarintFieldLen(l.Address)
	for i := range l.Line {
		n += wire.LenFieldLen(l.Line[i].encodedLen())
	}

	return n + wire.BoolFieldLen(l.IsFolded)
}

func (l Location) encodeTo(b []byte, off int) int {
	off = wire.PutVarintField(b, off, tagLocationID, l.ID)
	off = wire.PutVarintField(b, off, tagLocationMappingID, l.MappingID)
	off = wire.PutVarintField(b, off, tagLocationAddress, l.Address)
	for i := range l.Line {
		off = wire.PutLenHeader(b, off, tagLocationLine, l.Line[i].encodedLen())
		off = l.Line[i].encodeTo(b, off)
	}
	off = wire.PutBoolField(b, off, tagLocationIsFolded, l.IsFolded)

	return off
}

func (f Function) encodedLen() int {
	return wire.VarintFieldLen(f.ID) +
		wire.VarintFieldLen(f.Name) +
		wire.VarintFieldLen(f.SystemName) +
		wire.VarintFieldLen(f.Filename) +
		wire.VarintFieldLen(f.StartLine)
}

func (f Function) encodeTo(b []byte, off int) int {
	off = wire.PutVarintField(b, off, tagFunctionID, f.ID)
	off = wire.PutVarintField(b, off, tagFunctionName, f.Name)
	off = wire.PutVarintField(b, off, tagFunctionSystemName, f.SystemName)
	off = wire.PutVarintField(b, off, tagFunctionFilename, f.Filename)
	off = wire.PutVarintField(b, off, tagFunctionStartLine, f.StartLine)

	return off
}

// EncodedLen returns the exact size of the profile's wire encoding: the sum
// of every child's measured length plus the string table's cached encoded
// length. MarshalBinary uses it to allocate the destination in one shot.
func (p *Profile) EncodedLen() int {
	n := 0
	for i := range p.SampleType {
		n += wire.LenFieldLen(p.SampleType[i].encodedLen())
	}
	for i := range p.Sample {
		n += wire.LenFieldLen(p.Sample[i].encodedLen())
	}
	for i := range p.Mapping {
		n += wire.LenFieldLen(p.Mapping[i].encodedLen())
	}
	for i := range p.Location {
		n += wire.LenFieldLen(p.Location[i].encodedLen())
	}
	for i := range p.Function {
		n += wire.LenFieldLen(p.Function[i].encodedLen())
	}
	if p.StringTable != nil {
		n += p.StringTable.EncodedLen()
	}
	n += wire.VarintFieldLen(p.DropFrames)
	n += wire.VarintFieldLen(p.KeepFrames)
	n += wire.VarintFieldLen(p.TimeNanos)
	n += wire.VarintFieldLen(p.DurationNanos)
	if p.PeriodType != nil {
		n += wire.LenFieldLen(p.PeriodType.encodedLen())
	}
	n += wire.VarintFieldLen(p.Period)
	n += wire.PackedFieldLen(p.Comment)
	n += wire.VarintFieldLen(p.DefaultSampleType)

	return n
}

// MarshalBinary encodes the profile into one exact-size buffer using a
// measure pass followed by a single write pass. It implements
// encoding.BinaryMarshaler; the error is always nil since encoding an
// in-memory tree cannot fail.
//
// The profile must not be mutated until MarshalBinary returns.
func (p *Profile) MarshalBinary() ([]byte, error) {
	b := make([]byte, p.EncodedLen())
	p.encodeTo(b, 0)

	return b, nil
}

// AppendBinary appends the profile's wire encoding to b and returns the
// extended slice. It implements encoding.BinaryAppender and lets callers
// encode into pooled or reused buffers; the error is always nil.
func (p *Profile) AppendBinary(b []byte) ([]byte, error) {
	off := len(b)
	n := p.EncodedLen()
	b = slices.Grow(b, n)[:off+n]
	p.encodeTo(b, off)

	return b, nil
}

// MarshalBinaryYield is the cooperatively-yielding variant of MarshalBinary,
// for serializing very large profiles without monopolizing the scheduler of
// a busy process. It performs the identical section sequence but calls
// runtime.Gosched between section boundaries so other goroutines can run.
// It is not cancellable: once begun it always runs to completion, and its
// output is byte-identical to MarshalBinary.
func (p *Profile) MarshalBinaryYield() ([]byte, error) {
	b := make([]byte, p.EncodedLen())

	off := p.encodeSampleTypes(b, 0)
	runtime.Gosched()
	off = p.encodeSamples(b, off)
	runtime.Gosched()
	off = p.encodeMappings(b, off)
	runtime.Gosched()
	off = p.encodeLocations(b, off)
	runtime.Gosched()
	off = p.encodeFunctions(b, off)
	runtime.Gosched()
	off = p.encodeStringTable(b, off)
	runtime.Gosched()
	p.encodeScalars(b, off)

	return b, nil
}

// encodeTo writes the sections in fixed field-number order: sampleType,
// sample, mapping, location, function, string table, then the scalar fields
// 7 through 14.
func (p *Profile) encodeTo(b []byte, off int) int {
	off = p.encodeSampleTypes(b, off)
	off = p.encodeSamples(b, off)
	off = p.encodeMappings(b, off)
	off = p.encodeLocations(b, off)
	off = p.encodeFunctions(b, off)
	off = p.encodeStringTable(b, off)

	return p.encodeScalars(b, off)
}

func (p *Profile) encodeSampleTypes(b []byte, off int) int {
	for i := range p.SampleType {
		off = wire.PutLenHeader(b, off, tagProfileSampleType, p.SampleType[i].encodedLen())
		off = p.SampleType[i].encodeTo(b, off)
	}

	return off
}

func (p *Profile) encodeSamples(b []byte, off int) int {
	for i := range p.Sample {
		off = wire.PutLenHeader(b, off, tagProfileSample, p.Sample[i].encodedLen())
		off = p.Sample[i].encodeTo(b, off)
	}

	return off
}

func (p *Profile) encodeMappings(b []byte, off int) int {
	for i := range p.Mapping {
		off = wire.PutLenHeader(b, off, tagProfileMapping, p.Mapping[i].encodedLen())
		off = p.Mapping[i].encodeTo(b, off)
	}

	return off
}

func (p *Profile) encodeLocations(b []byte, off int) int {
	for i := range p.Location {
		off = wire.PutLenHeader(b, off, tagProfileLocation, p.Location[i].encodedLen())
		off = p.Location[i].encodeTo(b, off)
	}

	return off
}

func (p *Profile) encodeFunctions(b []byte, off int) int {
	for i := range p.Function {
		off = wire.PutLenHeader(b, off, tagProfileFunction, p.Function[i].encodedLen())
		off = p.Function[i].encodeTo(b, off)
	}

	return off
}

func (p *Profile) encodeStringTable(b []byte, off int) int {
	if p.StringTable == nil {
		return off
	}

	return p.StringTable.encodeTo(b, off)
}

func (p *Profile) encodeScalars(b []byte, off int) int {
	off = wire.PutVarintField(b, off, tagProfileDropFrames, p.DropFrames)
	off = wire.PutVarintField(b, off, tagProfileKeepFrames, p.KeepFrames)
	off = wire.PutVarintField(b, off, tagProfileTimeNanos, p.TimeNanos)
	off = wire.PutVarintField(b, off, tagProfileDurationNanos, p.DurationNanos)
	if p.PeriodType != nil {
		off = wire.PutLenHeader(b, off, tagProfilePeriodType, p.PeriodType.encodedLen())
		off = p.PeriodType.encodeTo(b, off)
	}
	off = wire.PutVarintField(b, off, tagProfilePeriod, p.Period)
	off = wire.PutPackedField(b, off, tagProfileComment, p.Comment)
	off = wire.PutVarintField(b, off, tagProfileDefaultSampleType, p.DefaultSampleType)

	return off
}
