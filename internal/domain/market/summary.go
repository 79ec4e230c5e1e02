package market

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/andrescamacho/colonial-go/internal/domain/cargo"
)

// PadSize is the largest landing pad a station offers.
type PadSize string

const (
	PadSmall  PadSize = "S"
	PadMedium PadSize = "M"
	PadLarge  PadSize = "L"
)

// Fits reports whether a ship needing pad p can land on a station offering station.
func (p PadSize) Fits(station PadSize) bool {
	return padRank[station] >= padRank[p]
}

var padRank = map[PadSize]int{PadSmall: 1, PadMedium: 2, PadLarge: 3}

// MarketSummary is one candidate trading location from a search. Supplies
// lists quantities available for sale; Prices is optional per-unit buy price.
type MarketSummary struct {
	MarketID          int64                      `json:"marketId" validate:"required"`
	StationName       string                     `json:"stationName" validate:"required"`
	StationType       string                     `json:"stationType,omitempty"`
	SystemName        string                     `json:"systemName" validate:"required"`
	Distance          float64                    `json:"distance" validate:"gte=0"`
	DistanceToArrival float64                    `json:"distanceToArrival" validate:"gte=0"`
	Surface           bool                       `json:"surface"`
	PadSize           PadSize                    `json:"padSize,omitempty"`
	Economy           string                     `json:"economy,omitempty"`
	Supplies          cargo.Map                  `json:"supplies"`
	Prices            map[string]decimal.Decimal `json:"prices,omitempty"`
}

// Matches is the number of commodities the market lists.
func (m MarketSummary) Matches() int {
	return len(m.Supplies)
}

// Sells reports whether the market lists id, regardless of quantity.
func (m MarketSummary) Sells(id string) bool {
	_, ok := m.Supplies[id]
	return ok
}

// FoundMarkets is a search result envelope for one project.
type FoundMarkets struct {
	BuildID    string          `json:"buildId"`
	PreparedAt time.Time       `json:"preparedAt"`
	Markets    []MarketSummary `json:"markets" validate:"dive"`
}

// ValidFor reports whether the result still belongs to the active project.
// Results for any other build are discarded by callers.
func (f *FoundMarkets) ValidFor(buildID string) bool {
	return f != nil && f.BuildID == buildID
}

// Age returns how long ago the result was prepared.
func (f *FoundMarkets) Age(now time.Time) time.Duration {
	return now.Sub(f.PreparedAt)
}
