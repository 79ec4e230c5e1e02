package steps

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/cucumber/godog"
	"github.com/shopspring/decimal"

	"github.com/andrescamacho/colonial-go/internal/domain/cargo"
	"github.com/andrescamacho/colonial-go/internal/domain/market"
)

type marketRankingContext struct {
	need    cargo.Map
	markets []market.MarketSummary
	ranked  []market.MarketSummary
}

func (m *marketRankingContext) reset() {
	m.need = nil
	m.markets = nil
	m.ranked = nil
}

func (m *marketRankingContext) theRemainingNeed(table *godog.Table) error {
	need, err := cargoTable(table)
	if err != nil {
		return err
	}
	m.need = need
	return nil
}

// parseSupplies reads "steel:200@10, titanium:100"; the price is optional.
func parseSupplies(s string) (cargo.Map, map[string]decimal.Decimal, error) {
	supplies := make(cargo.Map)
	prices := make(map[string]decimal.Decimal)
	for _, item := range splitList(s) {
		id, rest, ok := strings.Cut(item, ":")
		if !ok {
			return nil, nil, fmt.Errorf("invalid supply %q", item)
		}
		qty, price, hasPrice := strings.Cut(rest, "@")
		n, err := strconv.Atoi(qty)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid quantity in %q", item)
		}
		supplies[id] = n
		if hasPrice {
			p, err := decimal.NewFromString(price)
			if err != nil {
				return nil, nil, fmt.Errorf("invalid price in %q", item)
			}
			prices[id] = p
		}
	}
	return supplies, prices, nil
}

func (m *marketRankingContext) theMarkets(table *godog.Table) error {
	for i, row := range table.Rows[1:] {
		distance, err := strconv.ParseFloat(getCellValue(table, row, "distance"), 64)
		if err != nil {
			return err
		}
		arrival, err := strconv.ParseFloat(getCellValue(table, row, "arrival"), 64)
		if err != nil {
			return err
		}
		supplies, prices, err := parseSupplies(getCellValue(table, row, "supplies"))
		if err != nil {
			return err
		}
		m.markets = append(m.markets, market.MarketSummary{
			MarketID:          int64(i + 1),
			StationName:       getCellValue(table, row, "station"),
			SystemName:        getCellValue(table, row, "system"),
			Distance:          distance,
			DistanceToArrival: arrival,
			Supplies:          supplies,
			Prices:            prices,
		})
	}
	return nil
}

func (m *marketRankingContext) iRankTheMarketsBy(column, direction string) error {
	col, ok := market.ParseColumn(column)
	if !ok {
		return fmt.Errorf("unknown column %q", column)
	}
	m.ranked = market.Rank(m.markets, m.need, col, direction == "ascending")
	return nil
}

func (m *marketRankingContext) theRankedStationsShouldBe(list string) error {
	names := make([]string, len(m.ranked))
	for i, r := range m.ranked {
		names[i] = r.StationName
	}
	if got, want := strings.Join(names, ", "), strings.Join(splitList(list), ", "); got != want {
		return fmt.Errorf("expected %q, got %q", want, got)
	}
	return nil
}

func (m *marketRankingContext) theMissedCommoditiesShouldBe(list string) error {
	got := strings.Join(market.MissedCommodities(m.markets, m.need), ", ")
	if want := strings.Join(splitList(list), ", "); got != want {
		return fmt.Errorf("expected missed %q, got %q", want, got)
	}
	return nil
}

func (m *marketRankingContext) theEstimateForShouldBe(station string, units int, cost int64, complete string) error {
	for _, r := range m.ranked {
		if r.StationName != station {
			continue
		}
		est := market.EstimateCost(r, m.need)
		if est.Units != units {
			return fmt.Errorf("expected %d units at %s, got %d", units, station, est.Units)
		}
		if !est.Cost.Equal(decimal.NewFromInt(cost)) {
			return fmt.Errorf("expected cost %d at %s, got %s", cost, station, est.Cost)
		}
		if strconv.FormatBool(est.Complete) != complete {
			return fmt.Errorf("expected complete=%s at %s, got %t", complete, station, est.Complete)
		}
		return nil
	}
	return fmt.Errorf("%s is not in the ranking", station)
}

// InitializeMarketRankingScenario registers market ranking step definitions
func InitializeMarketRankingScenario(sc *godog.ScenarioContext) {
	ctx := &marketRankingContext{}

	sc.Before(func(gctx context.Context, s *godog.Scenario) (context.Context, error) {
		ctx.reset()
		return gctx, nil
	})

	sc.Step(`^the remaining need:$`, ctx.theRemainingNeed)
	sc.Step(`^the markets:$`, ctx.theMarkets)
	sc.Step(`^I rank the markets by "([^"]*)" (ascending|descending)$`, ctx.iRankTheMarketsBy)
	sc.Step(`^the ranked stations should be "([^"]*)"$`, ctx.theRankedStationsShouldBe)
	sc.Step(`^the missed commodities should be "([^"]*)"$`, ctx.theMissedCommoditiesShouldBe)
	sc.Step(`^the estimate for "([^"]*)" should be (\d+) units costing (\d+) complete "([^"]*)"$`, ctx.theEstimateForShouldBe)
}
