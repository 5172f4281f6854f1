package profile

// Field numbers of the pprof protobuf schema. These are wire-compatibility
// constants fixed by the upstream profile.proto; hard-coded rather than
// iota-derived so they are not order-sensitive.
// See https://github.com/google/pprof/blob/main/proto/profile.proto
const (
	profileSampleTypeField        = 1
	profileSampleField            = 2
	profileMappingField           = 3
	profileLocationField          = 4
	profileFunctionField          = 5
	profileStringTableField       = 6
	profileDropFramesField        = 7
	profileKeepFramesField        = 8
	profileTimeNanosField         = 9
	profileDurationNanosField     = 10
	profilePeriodTypeField        = 11
	profilePeriodField            = 12
	profileCommentField           = 13
	profileDefaultSampleTypeField = 14

	valueTypeTypeField = 1
	valueTypeUnitField = 2

	sampleLocationIDField = 1
	sampleValueField      = 2
	sampleLabelField      = 3

	labelKeyField     = 1
	labelStrField     = 2
	labelNumField     = 3
	labelNumUnitField = 4

	mappingIDField              = 1
	mappingMemoryStartField     = 2
	mappingMemoryLimitField     = 3
	mappingFileOffsetField      = 4
	mappingFilenameField        = 5
	mappingBuildIDField         = 6
	mappingHasFunctionsField    = 7
	mappingHasFilenamesField    = 8
	mappingHasLineNumbersField  = 9
	mappingHasInlineFramesField = 10

	locationIDField        = 1
	locationMappingIDField = 2
	locationAddressField   = 3
	locationLineField      = 4
	locationIsFoldedField  = 5

	lineFunctionIDField = 1
	lineLineField       = 2

	functionIDField         = 1
	functionNameField       = 2
	functionSystemNameField = 3
	functionFilenameField   = 4
	functionStartLineField  = 5
)

// ValueType describes the type and unit of one sample measurement dimension.
// Both fields are string-table indices.
type ValueType struct {
	Type int64
	Unit int64
}

// Label attaches a key/value annotation to a Sample. Key and Str are
// string-table indices; Num carries a numeric label value with NumUnit as
// its optional unit, again a string-table index.
type Label struct {
	Key     int64
	Str     int64
	Num     int64
	NumUnit int64
}

// Sample is one collected measurement: the location IDs of its call stack
// (innermost frame first), one value per entry of the profile's SampleType
// list, and any labels.
type Sample struct {
	LocationID []int64
	Value      []int64
	Label      []Label
}

// Mapping describes one binary image mapped into the profiled address space.
// Filename and BuildID are string-table indices.
type Mapping struct {
	ID              int64
	MemoryStart     int64
	MemoryLimit     int64
	FileOffset      int64
	Filename        int64
	BuildID         int64
	HasFunctions    bool
	HasFilenames    bool
	HasLineNumbers  bool
	HasInlineFrames bool
}

// Line is one source line attributed to a Location, referencing a Function
// by ID.
type Line struct {
	FunctionID int64
	Line       int64
}

// Location is one resolved program counter: its mapping, address, and the
// inlining chain of source lines, outermost call last.
type Location struct {
	ID        int64
	MappingID int64
	Address   int64
	Line      []Line
	IsFolded  bool
}

// Function describes one function. Name, SystemName and Filename are
// string-table indices.
type Function struct {
	ID         int64
	Name       int64
	SystemName int64
	Filename   int64
	StartLine  int64
}

// Profile is the top-level aggregate: the message lists, the string table,
// and the scalar metadata fields. Cross-references between messages are
// plain integer IDs into the respective lists; the codec does not enforce
// referential integrity, that is the producer's responsibility.
//
// DropFrames, KeepFrames and Comment entries are string-table indices.
// A nil StringTable encodes as an empty table.
type Profile struct {
	SampleType        []ValueType
	Sample            []Sample
	Mapping           []Mapping
	Location          []Location
	Function          []Function
	StringTable       *StringTable
	DropFrames        int64
	KeepFrames        int64
	TimeNanos         int64
	DurationNanos     int64
	PeriodType        *ValueType
	Period            int64
	Comment           []int64
	DefaultSampleType int64
}
