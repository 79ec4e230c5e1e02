package commodity

import (
	"sort"
	"strings"
)

// SortMode selects how commodity rows are bucketed for display.
type SortMode string

const (
	SortAlpha      SortMode = "alpha"
	SortByCategory SortMode = "category"
	SortByEconomy  SortMode = "economy"
)

// AlphaGroup is the single synthetic bucket used by SortAlpha.
const AlphaGroup = "alpha"

// ParseSortMode accepts the persisted / query-string forms of a sort mode.
func ParseSortMode(s string) (SortMode, bool) {
	switch SortMode(strings.ToLower(strings.TrimSpace(s))) {
	case SortAlpha, "":
		return SortAlpha, true
	case SortByCategory, "type":
		return SortByCategory, true
	case SortByEconomy, "econ":
		return SortByEconomy, true
	}
	return SortAlpha, false
}

// GroupedCommodities maps a group label to its member ids, each list
// lexicographically sorted. Every input id is in exactly one group and empty
// groups are never present.
type GroupedCommodities struct {
	Mode   SortMode
	Groups map[string][]string
}

// Labels returns the group labels in render order.
func (g GroupedCommodities) Labels() []string {
	labels := make([]string, 0, len(g.Groups))
	for label := range g.Groups {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// Len returns the number of commodity ids across all groups.
func (g GroupedCommodities) Len() int {
	n := 0
	for _, ids := range g.Groups {
		n += len(ids)
	}
	return n
}

// Group buckets ids for display. Input order and duplicates do not affect
// the result. A mode other than category or economy groups alphabetically.
func (t *Taxonomy) Group(ids []string, mode SortMode) GroupedCommodities {
	if mode != SortByCategory && mode != SortByEconomy {
		mode = SortAlpha
	}
	grouped := GroupedCommodities{Mode: mode, Groups: make(map[string][]string)}

	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true

		label := t.groupLabel(id, mode)
		grouped.Groups[label] = append(grouped.Groups[label], id)
	}

	for _, members := range grouped.Groups {
		sort.Strings(members)
	}
	return grouped
}

func (t *Taxonomy) groupLabel(id string, mode SortMode) string {
	switch mode {
	case SortByCategory:
		return string(t.Classify(id))
	case SortByEconomy:
		econs := t.Economies(id)
		if len(econs) == 0 {
			return string(CategoryUnknown)
		}
		parts := make([]string, len(econs))
		for i, e := range econs {
			parts[i] = string(e)
		}
		return strings.Join(parts, " / ")
	default:
		return AlphaGroup
	}
}

// Group uses the default taxonomy.
func Group(ids []string, mode SortMode) GroupedCommodities {
	return Default().Group(ids, mode)
}

// Entry is one row of a flattened grouping: either a group header (ID empty)
// or a commodity belonging to Label.
type Entry struct {
	Label string
	ID    string
}

// IsHeader reports whether the entry is a group marker.
func (e Entry) IsHeader() bool {
	return e.ID == ""
}

// Flatten produces the render order: groups in label order, each preceded by
// a header entry unless the grouping is alphabetical.
func Flatten(grouped GroupedCommodities) []Entry {
	out := make([]Entry, 0, grouped.Len()+len(grouped.Groups))
	withHeaders := grouped.Mode == SortByCategory || grouped.Mode == SortByEconomy
	for _, label := range grouped.Labels() {
		if withHeaders {
			out = append(out, Entry{Label: label})
		}
		for _, id := range grouped.Groups[label] {
			out = append(out, Entry{Label: label, ID: id})
		}
	}
	return out
}
