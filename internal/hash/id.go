package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of the given string. The string table uses it as
// the lookup key for content deduplication, avoiding string-keyed map
// overhead on the encode hot path.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}
