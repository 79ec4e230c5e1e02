package market_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/andrescamacho/colonial-go/internal/domain/cargo"
	"github.com/andrescamacho/colonial-go/internal/domain/market"
)

func TestCriteria_KeyIgnoresCommodityOrder(t *testing.T) {
	a := market.Criteria{ReferenceSystem: "Sol", Commodities: []string{"steel", "water"}}
	b := market.Criteria{ReferenceSystem: "sol", Commodities: []string{"water", "steel"}}

	assert.Equal(t, a.Key(), b.Key())
	assert.NotEqual(t, a.Key(), market.Criteria{ReferenceSystem: "Sol", MaxDistance: 20}.Key())
}

func TestCriteria_Filter(t *testing.T) {
	markets := []market.MarketSummary{
		{StationName: "near", Distance: 5, DistanceToArrival: 100, PadSize: market.PadLarge},
		{StationName: "far", Distance: 50, DistanceToArrival: 100, PadSize: market.PadLarge},
		{StationName: "deep", Distance: 5, DistanceToArrival: 90000, PadSize: market.PadLarge},
		{StationName: "ground", Distance: 5, Surface: true, PadSize: market.PadLarge},
		{StationName: "small", Distance: 5, PadSize: market.PadMedium},
		{StationName: "carrier", Distance: 1, StationType: "FleetCarrier", PadSize: market.PadLarge},
	}
	criteria := market.Criteria{
		ReferenceSystem: "Sol",
		PadSize:         market.PadLarge,
		MaxDistance:     20,
		MaxArrival:      5000,
		NoSurface:       true,
		NoCarriers:      true,
	}

	assert.Equal(t, []string{"near"}, names(criteria.Filter(markets)))
}

func TestPadSize_Fits(t *testing.T) {
	assert.True(t, market.PadMedium.Fits(market.PadLarge))
	assert.True(t, market.PadLarge.Fits(market.PadLarge))
	assert.False(t, market.PadLarge.Fits(market.PadSmall))
}

func TestFoundMarkets_ValidFor(t *testing.T) {
	found := &market.FoundMarkets{BuildID: "b-1", PreparedAt: time.Now()}

	assert.True(t, found.ValidFor("b-1"))
	assert.False(t, found.ValidFor("b-2"))
	var none *market.FoundMarkets
	assert.False(t, none.ValidFor("b-1"))
}

func TestEstimateCost(t *testing.T) {
	m := market.MarketSummary{
		StationName: "Hub",
		Supplies:    cargo.Map{"steel": 40, "water": cargo.Unknown, "gold": 10},
		Prices: map[string]decimal.Decimal{
			"steel": decimal.NewFromInt(100),
			"water": decimal.RequireFromString("12.5"),
		},
	}

	est := market.EstimateCost(m, cargo.Map{"steel": 100, "water": 4, "gold": 1, "copper": 9})

	assert.Equal(t, 44, est.Units)
	assert.True(t, decimal.NewFromInt(4050).Equal(est.Cost), est.Cost.String())
	assert.False(t, est.Complete)
}
