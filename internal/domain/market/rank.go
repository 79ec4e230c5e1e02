package market

import (
	"cmp"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/andrescamacho/colonial-go/internal/domain/cargo"
)

// Column selects the sort key of a ranked market list.
type Column string

const (
	ColumnMatches           Column = "matches"
	ColumnStationName       Column = "stationName"
	ColumnSystemName        Column = "systemName"
	ColumnDistance          Column = "distance"
	ColumnDistanceToArrival Column = "distanceToArrival"
)

// DefaultColumn is used when no column is given.
const DefaultColumn = ColumnMatches

// ParseColumn accepts column names case-insensitively. Unknown names fall
// back to DefaultColumn with ok=false.
func ParseColumn(s string) (Column, bool) {
	for _, c := range []Column{ColumnMatches, ColumnStationName, ColumnSystemName, ColumnDistance, ColumnDistanceToArrival} {
		if strings.EqualFold(s, string(c)) {
			return c, true
		}
	}
	return DefaultColumn, s == ""
}

// Reduce narrows each market's supplies to commodities with a positive need
// and drops markets left with nothing relevant. Inputs are not modified.
func Reduce(markets []MarketSummary, need cargo.Map) []MarketSummary {
	out := make([]MarketSummary, 0, len(markets))
	for _, m := range markets {
		reduced := make(cargo.Map)
		for id, n := range m.Supplies {
			if need[id] > 0 {
				reduced[id] = n
			}
		}
		if len(reduced) == 0 {
			continue
		}
		m.Supplies = reduced
		out = append(out, m)
	}
	return out
}

// Rank reduces markets against need and stable-sorts them by column. The
// base comparator orders ascending; descending flips it, so ties keep their
// input order either way.
func Rank(markets []MarketSummary, need cargo.Map, column Column, ascending bool) []MarketSummary {
	ranked := Reduce(markets, need)

	dir := -1
	if ascending {
		dir = 1
	}
	compare := comparator(column)
	sort.SliceStable(ranked, func(i, j int) bool {
		return dir*compare(ranked[i], ranked[j]) < 0
	})
	return ranked
}

func comparator(column Column) func(a, b MarketSummary) int {
	switch column {
	case ColumnStationName, ColumnSystemName:
		// collators keep internal buffers and must not be shared
		col := collate.New(language.English)
		if column == ColumnStationName {
			return func(a, b MarketSummary) int { return col.CompareString(a.StationName, b.StationName) }
		}
		return func(a, b MarketSummary) int { return col.CompareString(a.SystemName, b.SystemName) }
	case ColumnDistance:
		return func(a, b MarketSummary) int { return cmp.Compare(a.Distance, b.Distance) }
	case ColumnDistanceToArrival:
		return func(a, b MarketSummary) int { return cmp.Compare(a.DistanceToArrival, b.DistanceToArrival) }
	default:
		return func(a, b MarketSummary) int { return cmp.Compare(a.Matches(), b.Matches()) }
	}
}

// MissedCommodities lists the positive-need commodities no market in the
// full, unfiltered result offers. The list is sorted.
func MissedCommodities(markets []MarketSummary, need cargo.Map) []string {
	var missed []string
	for _, id := range need.Needed() {
		found := false
		for _, m := range markets {
			if m.Sells(id) {
				found = true
				break
			}
		}
		if !found {
			missed = append(missed, id)
		}
	}
	return missed
}
