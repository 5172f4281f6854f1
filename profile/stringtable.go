package profile

import (
	"github.com/arloliu/pprofwire/internal/strindex"
	"github.com/arloliu/pprofwire/wire"
)

var stringTableTag = wire.Tag(profileStringTableField, wire.TypeBytes)

// StringTable is the deduplicating, insertion-ordered registry backing every
// textual field in a profile. Each distinct string is stored once and
// assigned the index of its first insertion; messages reference strings by
// those indices instead of embedding text.
//
// Every entry caches its ready-to-write wire bytes (field-6 tag, varint
// length, UTF-8 payload) when it is added, so encoding the whole table is a
// pure memory copy with no per-string re-encoding.
type StringTable struct {
	strings []string
	enc     [][]byte // cached wire bytes per entry, parallel to strings
	encLen  int      // sum of cached entry lengths
	idx     *strindex.Index
}

// NewStringTable creates a table pre-seeded with the empty string at index 0,
// as the pprof schema requires of producers.
func NewStringTable() *StringTable {
	t := newStringTable(8)
	t.add("")

	return t
}

// NewDecodeStringTable creates a table without the implicit empty-string
// seed. Used exclusively when reconstructing a table from decoded bytes,
// where index 0 is whatever the source encoder actually emitted first.
func NewDecodeStringTable() *StringTable {
	return newStringTable(8)
}

func newStringTable(capacity int) *StringTable {
	return &StringTable{
		strings: make([]string, 0, capacity),
		enc:     make([][]byte, 0, capacity),
		idx:     strindex.New(),
	}
}

// Dedup returns the index of s, appending it as a new entry on first sight.
// Calling Dedup twice with the same string returns the same index both
// times.
func (t *StringTable) Dedup(s string) int64 {
	if idx, ok := t.idx.Lookup(s); ok {
		return idx
	}

	return t.add(s)
}

// add appends s unconditionally and returns its index.
func (t *StringTable) add(s string) int64 {
	idx := int64(len(t.strings))
	t.strings = append(t.strings, s)
	t.idx.Insert(s, idx)

	e := make([]byte, 0, 2+len(s))
	e = append(e, stringTableTag)
	e = wire.AppendVarint(e, int64(len(s)))
	e = append(e, s...)
	t.enc = append(t.enc, e)
	t.encLen += len(e)

	return idx
}

// addDecoded appends a string observed during decoding in wire-encounter
// order. It is not deduplicated against existing entries: decode order
// already reflects the original encoder's deduplication, and collapsing a
// duplicate here would shift every later index.
func (t *StringTable) addDecoded(raw []byte) {
	t.add(string(raw))
}

// Strings returns the table contents in index order. The returned slice is
// the table's own backing store; callers must not modify it.
func (t *StringTable) Strings() []string {
	return t.strings
}

// Len returns the number of entries.
func (t *StringTable) Len() int {
	return len(t.strings)
}

// EncodedLen returns the total size of the table's repeated field-6 entries.
func (t *StringTable) EncodedLen() int {
	return t.encLen
}

// encodeTo concatenates every entry's cached wire bytes into b at off and
// returns the new offset.
func (t *StringTable) encodeTo(b []byte, off int) int {
	for _, e := range t.enc {
		off += copy(b[off:], e)
	}

	return off
}
