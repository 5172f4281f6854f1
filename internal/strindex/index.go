// Package strindex maps string contents to their string-table indices via
// xxHash64 keys, with an explicit fallback for hash collisions so lookups
// stay exact regardless of hash quality.
package strindex

import "github.com/arloliu/pprofwire/internal/hash"

type entry struct {
	s   string
	idx int64
}

// Index is a content→index map for the string table. The primary map is
// keyed by xxHash64 of the string; the first string observed for a hash owns
// the primary slot and any later string colliding on that hash goes to an
// exact string-keyed overflow map. Lookups verify string equality on a
// primary hit, so a collision can never alias two distinct strings to one
// index.
type Index struct {
	primary  map[uint64]entry
	overflow map[string]int64 // allocated only when a collision occurs
}

// New creates an empty Index.
func New() *Index {
	return &Index{
		primary: make(map[uint64]entry),
	}
}

// Lookup returns the index previously inserted for s, if any.
func (x *Index) Lookup(s string) (int64, bool) {
	if e, ok := x.primary[hash.ID(s)]; ok && e.s == s {
		return e.idx, true
	}
	if x.overflow != nil {
		if idx, ok := x.overflow[s]; ok {
			return idx, true
		}
	}

	return 0, false
}

// Insert records s at idx. The caller guarantees s is not already present;
// the string table only inserts after a failed Lookup.
func (x *Index) Insert(s string, idx int64) {
	h := hash.ID(s)
	if e, ok := x.primary[h]; ok {
		if e.s == s {
			return
		}
		// Hash collision: the primary slot keeps its first owner.
		if x.overflow == nil {
			x.overflow = make(map[string]int64)
		}
		x.overflow[s] = idx

		return
	}
	x.primary[h] = entry{s: s, idx: idx}
}

// Len returns the number of distinct strings recorded.
func (x *Index) Len() int {
	return len(x.primary) + len(x.overflow)
}
