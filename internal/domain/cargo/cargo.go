package cargo

import (
	"fmt"
	"sort"
	"strconv"
)

// Unknown marks a quantity the backend could not report. It renders as "?"
// and never takes part in arithmetic.
const Unknown = -1

// Map is a sparse commodity id -> count mapping. Missing entries mean zero.
type Map map[string]int

// Get returns the count for id, zero when absent.
func (m Map) Get(id string) int {
	return m[id]
}

// IsUnknown reports whether id carries a negative (unknown) count.
func (m Map) IsUnknown(id string) bool {
	n, ok := m[id]
	return ok && n < 0
}

// Known returns the count for id with unknown values clamped to zero.
func (m Map) Known(id string) int {
	if n := m[id]; n > 0 {
		return n
	}
	return 0
}

// Keys returns the commodity ids in lexicographic order.
func (m Map) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Needed returns the ids with a positive count, sorted.
func (m Map) Needed() []string {
	keys := make([]string, 0, len(m))
	for k, n := range m {
		if n > 0 {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// Clone returns an independent copy.
func (m Map) Clone() Map {
	out := make(Map, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Validate rejects empty commodity ids and negative counts other than Unknown.
func (m Map) Validate() error {
	for id, n := range m {
		if id == "" {
			return fmt.Errorf("cargo contains an empty commodity id")
		}
		if n < Unknown {
			return fmt.Errorf("cargo count for %s cannot be %d", id, n)
		}
	}
	return nil
}

// Merge sums any number of maps. Unknown (negative) counts contribute zero
// but their keys still appear in the result. The result never contains
// Unknown.
func Merge(maps ...Map) Map {
	out := make(Map)
	for _, m := range maps {
		for id, n := range m {
			if n < 0 {
				n = 0
			}
			out[id] += n
		}
	}
	return out
}

// FormatCount renders a count for display, "?" for Unknown.
func FormatCount(n int) string {
	if n < 0 {
		return "?"
	}
	return strconv.Itoa(n)
}
