package market_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/colonial-go/internal/domain/cargo"
	"github.com/andrescamacho/colonial-go/internal/domain/market"
)

func names(markets []market.MarketSummary) []string {
	out := make([]string, len(markets))
	for i, m := range markets {
		out[i] = m.StationName
	}
	return out
}

func sampleMarkets() []market.MarketSummary {
	return []market.MarketSummary{
		{StationName: "Bravo Hub", SystemName: "Sol", Distance: 12, DistanceToArrival: 900,
			Supplies: cargo.Map{"steel": 10, "water": 4}},
		{StationName: "alpha port", SystemName: "Achenar", Distance: 3, DistanceToArrival: 90,
			Supplies: cargo.Map{"steel": 50}},
		{StationName: "Charlie Dock", SystemName: "Lave", Distance: 3, DistanceToArrival: 5000,
			Supplies: cargo.Map{"gold": 2}},
		{StationName: "Delta Yard", SystemName: "Diso", Distance: 40, DistanceToArrival: 12,
			Supplies: cargo.Map{"water": 9}},
	}
}

func TestRank_FiltersToNeededCommodities(t *testing.T) {
	markets := []market.MarketSummary{
		{StationName: "A", Supplies: cargo.Map{"steel": 10}},
		{StationName: "B", Supplies: cargo.Map{"water": 5}},
	}

	ranked := market.Rank(markets, cargo.Map{"steel": 1}, market.ColumnMatches, false)

	assert.Equal(t, []string{"A"}, names(ranked))
	assert.Equal(t, []string{"gold"}, market.MissedCommodities(markets, cargo.Map{"steel": 1, "gold": 1}))
}

func TestRank_ReducesSuppliesWithoutMutatingInput(t *testing.T) {
	markets := sampleMarkets()
	need := cargo.Map{"steel": 100, "water": cargo.Unknown}

	ranked := market.Rank(markets, need, market.ColumnMatches, false)

	require.Len(t, ranked, 2)
	for _, m := range ranked {
		assert.Equal(t, []string{"steel"}, m.Supplies.Keys())
	}
	assert.Equal(t, 2, markets[0].Matches())
}

func TestRank_EveryResultHasANeededCommodity(t *testing.T) {
	markets := sampleMarkets()
	need := cargo.Map{"water": 3, "gold": 0, "steel": cargo.Unknown}

	for _, m := range market.Rank(markets, need, market.ColumnDistance, true) {
		found := false
		for id := range m.Supplies {
			if need[id] > 0 {
				found = true
			}
		}
		assert.True(t, found, m.StationName)
	}
}

func TestRank_SortColumns(t *testing.T) {
	need := cargo.Map{"steel": 1, "water": 1, "gold": 1}

	tests := []struct {
		column    market.Column
		ascending bool
		want      []string
	}{
		{market.ColumnMatches, false, []string{"Bravo Hub", "alpha port", "Charlie Dock", "Delta Yard"}},
		{market.ColumnStationName, true, []string{"alpha port", "Bravo Hub", "Charlie Dock", "Delta Yard"}},
		{market.ColumnSystemName, true, []string{"alpha port", "Delta Yard", "Charlie Dock", "Bravo Hub"}},
		{market.ColumnDistance, true, []string{"alpha port", "Charlie Dock", "Bravo Hub", "Delta Yard"}},
		{market.ColumnDistance, false, []string{"Delta Yard", "Bravo Hub", "alpha port", "Charlie Dock"}},
		{market.ColumnDistanceToArrival, true, []string{"Delta Yard", "alpha port", "Bravo Hub", "Charlie Dock"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.column), func(t *testing.T) {
			ranked := market.Rank(sampleMarkets(), need, tt.column, tt.ascending)
			assert.Equal(t, tt.want, names(ranked))
		})
	}
}

func TestRank_ReversingKeepsTiesInInputOrder(t *testing.T) {
	need := cargo.Map{"steel": 1}
	markets := []market.MarketSummary{
		{StationName: "one", Distance: 5, Supplies: cargo.Map{"steel": 1}},
		{StationName: "two", Distance: 1, Supplies: cargo.Map{"steel": 1}},
		{StationName: "three", Distance: 5, Supplies: cargo.Map{"steel": 1}},
		{StationName: "four", Distance: 9, Supplies: cargo.Map{"steel": 1}},
	}

	asc := market.Rank(markets, need, market.ColumnDistance, true)
	desc := market.Rank(markets, need, market.ColumnDistance, false)

	assert.Equal(t, []string{"two", "one", "three", "four"}, names(asc))
	assert.Equal(t, []string{"four", "one", "three", "two"}, names(desc))
}

func TestMissedCommodities_UsesUnreducedSupplies(t *testing.T) {
	markets := []market.MarketSummary{
		{StationName: "A", Supplies: cargo.Map{"steel": 0}},
	}

	missed := market.MissedCommodities(markets, cargo.Map{"titanium": 4, "steel": 2, "copper": 1, "water": cargo.Unknown})

	assert.Equal(t, []string{"copper", "titanium"}, missed)
	assert.Empty(t, market.MissedCommodities(markets, cargo.Map{}))
}

func TestParseColumn(t *testing.T) {
	c, ok := market.ParseColumn("distancetoarrival")
	assert.True(t, ok)
	assert.Equal(t, market.ColumnDistanceToArrival, c)

	c, ok = market.ParseColumn("")
	assert.True(t, ok)
	assert.Equal(t, market.ColumnMatches, c)

	c, ok = market.ParseColumn("price")
	assert.False(t, ok)
	assert.Equal(t, market.ColumnMatches, c)
}
