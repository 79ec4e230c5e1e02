package market

import (
	"fmt"
	"sort"
	"strings"
)

// Criteria narrows a market search around a reference system.
type Criteria struct {
	ReferenceSystem string   `json:"referenceSystem" validate:"required"`
	PadSize         PadSize  `json:"padSize,omitempty" validate:"omitempty,oneof=S M L"`
	MaxDistance     float64  `json:"maxDistance,omitempty" validate:"gte=0"`
	MaxArrival      float64  `json:"maxArrival,omitempty" validate:"gte=0"`
	NoSurface       bool     `json:"noSurface,omitempty"`
	NoCarriers      bool     `json:"noCarriers,omitempty"`
	Commodities     []string `json:"commodities,omitempty"`
}

// Key is a stable cache key for the criteria. Commodity order does not matter.
func (c Criteria) Key() string {
	commodities := append([]string(nil), c.Commodities...)
	sort.Strings(commodities)
	return fmt.Sprintf("%s|%s|%g|%g|%t|%t|%s",
		strings.ToLower(c.ReferenceSystem), c.PadSize, c.MaxDistance, c.MaxArrival,
		c.NoSurface, c.NoCarriers, strings.Join(commodities, ","))
}

// Allows applies the location filters to a market. An unknown pad size on
// either side is not filtered.
func (c Criteria) Allows(m MarketSummary) bool {
	if c.MaxDistance > 0 && m.Distance > c.MaxDistance {
		return false
	}
	if c.MaxArrival > 0 && m.DistanceToArrival > c.MaxArrival {
		return false
	}
	if c.NoSurface && m.Surface {
		return false
	}
	if c.NoCarriers && strings.EqualFold(m.StationType, "FleetCarrier") {
		return false
	}
	if c.PadSize != "" && m.PadSize != "" && !c.PadSize.Fits(m.PadSize) {
		return false
	}
	return true
}

// Filter returns the markets that satisfy Allows, preserving order.
func (c Criteria) Filter(markets []MarketSummary) []MarketSummary {
	out := make([]MarketSummary, 0, len(markets))
	for _, m := range markets {
		if c.Allows(m) {
			out = append(out, m)
		}
	}
	return out
}
