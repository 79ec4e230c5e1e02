package market

import (
	"github.com/shopspring/decimal"

	"github.com/andrescamacho/colonial-go/internal/domain/cargo"
)

// Estimate is the projected purchase of a shopping list at one market.
type Estimate struct {
	Units    int             `json:"units"`
	Cost     decimal.Decimal `json:"cost"`
	Complete bool            `json:"complete"`
}

// EstimateCost prices the positive need the market can fill. Quantities are
// capped by known stock; a commodity with unknown stock is assumed to cover
// the need. Complete is false when a needed commodity the market sells has
// no price.
func EstimateCost(m MarketSummary, need cargo.Map) Estimate {
	est := Estimate{Cost: decimal.Zero, Complete: true}
	for _, id := range need.Needed() {
		stock, ok := m.Supplies[id]
		if !ok {
			continue
		}
		units := need[id]
		if stock >= 0 && stock < units {
			units = stock
		}
		if units == 0 {
			continue
		}
		price, ok := m.Prices[id]
		if !ok {
			est.Complete = false
			continue
		}
		est.Units += units
		est.Cost = est.Cost.Add(price.Mul(decimal.NewFromInt(int64(units))))
	}
	return est
}
