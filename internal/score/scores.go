package score

import (
	"slices"
	"strings"
	"unicode/utf16"
)

// Scores maps a line to its usage score.
// The zero value (nil) is a valid, empty, read-only mapping; use New before Set.
type Scores map[string]int64

// New returns an empty, writable Scores.
func New() Scores {
	return make(Scores)
}

// Get returns the score for key, or 0 if the key is not tracked.
func (s Scores) Get(key string) int64 {
	return s[key]
}

// Has reports whether key is tracked.
func (s Scores) Has(key string) bool {
	_, ok := s[key]
	return ok
}

// Set inserts or overwrites the score for key.
func (s Scores) Set(key string, value int64) {
	s[key] = value
}

// Delete removes key. Deleting an untracked key is a no-op.
func (s Scores) Delete(key string) {
	delete(s, key)
}

// Len returns the number of tracked keys.
func (s Scores) Len() int {
	return len(s)
}

// Keys returns the tracked keys in RFC 8785 canonical order (UTF-16 code units).
func (s Scores) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareKeysRFC8785)
	return keys
}

// Clone returns an independent copy. Cloning nil yields an empty, writable Scores.
func (s Scores) Clone() Scores {
	out := make(Scores, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Equal reports whether both mappings hold the same keys with the same scores.
func (s Scores) Equal(other Scores) bool {
	if len(s) != len(other) {
		return false
	}
	for k, v := range s {
		ov, ok := other[k]
		if !ok || ov != v {
			return false
		}
	}
	return true
}

// compareKeysRFC8785 compares strings by UTF-16 code units.
// Go's native string comparison works on UTF-8 bytes, which orders
// supplementary-plane characters differently.
func compareKeysRFC8785(a, b string) int {
	a16 := utf16.Encode([]rune(a))
	b16 := utf16.Encode([]rune(b))

	minLen := len(a16)
	if len(b16) < minLen {
		minLen = len(b16)
	}
	for i := 0; i < minLen; i++ {
		if a16[i] != b16[i] {
			if a16[i] < b16[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a16) < len(b16):
		return -1
	case len(a16) > len(b16):
		return 1
	}
	// Invalid UTF-8 collapses to U+FFFD; fall back to bytes for a total order.
	return strings.Compare(a, b)
}
