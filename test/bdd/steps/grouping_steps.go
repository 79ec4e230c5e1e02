package steps

import (
	"context"
	"fmt"
	"reflect"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/colonial-go/internal/domain/commodity"
)

type groupingContext struct {
	ids     []string
	grouped commodity.GroupedCommodities
	mode    commodity.SortMode
	ok      bool
}

func (g *groupingContext) reset() {
	g.ids = nil
	g.grouped = commodity.GroupedCommodities{}
	g.mode = ""
	g.ok = false
}

func (g *groupingContext) theCommodities(list string) error {
	g.ids = splitList(list)
	return nil
}

func (g *groupingContext) iGroupThemBy(mode string) error {
	parsed, ok := commodity.ParseSortMode(mode)
	if !ok {
		return fmt.Errorf("unknown sort mode %q", mode)
	}
	g.grouped = commodity.Group(g.ids, parsed)
	return nil
}

func (g *groupingContext) groupShouldContain(label, list string) error {
	got := g.grouped.Groups[label]
	want := splitList(list)
	if !reflect.DeepEqual(want, got) {
		return fmt.Errorf("expected group %q to be %v, got %v", label, want, got)
	}
	return nil
}

func (g *groupingContext) everyCommodityShouldAppearExactlyOnce() error {
	seen := make(map[string]int)
	for _, members := range g.grouped.Groups {
		for _, id := range members {
			seen[id]++
		}
	}
	for _, id := range g.ids {
		if seen[id] != 1 {
			return fmt.Errorf("%s appears %d times", id, seen[id])
		}
	}
	if g.grouped.Len() != len(g.ids) {
		return fmt.Errorf("expected %d grouped commodities, got %d", len(g.ids), g.grouped.Len())
	}
	return nil
}

func (g *groupingContext) thereShouldBeGroup(n int) error {
	if len(g.grouped.Groups) != n {
		return fmt.Errorf("expected %d groups, got %d", n, len(g.grouped.Groups))
	}
	return nil
}

func (g *groupingContext) theFlattenedRowsShouldHaveNoHeaders() error {
	for _, e := range commodity.Flatten(g.grouped) {
		if e.IsHeader() {
			return fmt.Errorf("unexpected header %q", e.Label)
		}
	}
	return nil
}

func (g *groupingContext) theFlattenedRowsShouldStartWithAHeader() error {
	rows := commodity.Flatten(g.grouped)
	if len(rows) == 0 || !rows[0].IsHeader() {
		return fmt.Errorf("expected the first row to be a header, got %v", rows)
	}
	return nil
}

func (g *groupingContext) iParseTheSortMode(input string) error {
	g.mode, g.ok = commodity.ParseSortMode(input)
	return nil
}

func (g *groupingContext) theSortModeShouldBeAndRecognised(mode, ok string) error {
	if string(g.mode) != mode {
		return fmt.Errorf("expected mode %q, got %q", mode, g.mode)
	}
	if fmt.Sprint(g.ok) != ok {
		return fmt.Errorf("expected recognised=%s, got %t", ok, g.ok)
	}
	return nil
}

// InitializeGroupingScenario registers commodity grouping step definitions
func InitializeGroupingScenario(sc *godog.ScenarioContext) {
	ctx := &groupingContext{}

	sc.Before(func(gctx context.Context, s *godog.Scenario) (context.Context, error) {
		ctx.reset()
		return gctx, nil
	})

	sc.Step(`^the commodities "([^"]*)"$`, ctx.theCommodities)
	sc.Step(`^I group them by "([^"]*)"$`, ctx.iGroupThemBy)
	sc.Step(`^group "([^"]*)" should contain "([^"]*)"$`, ctx.groupShouldContain)
	sc.Step(`^every commodity should appear exactly once$`, ctx.everyCommodityShouldAppearExactlyOnce)
	sc.Step(`^there should be (\d+) groups?$`, ctx.thereShouldBeGroup)
	sc.Step(`^the flattened rows should have no headers$`, ctx.theFlattenedRowsShouldHaveNoHeaders)
	sc.Step(`^the flattened rows should start with a header$`, ctx.theFlattenedRowsShouldStartWithAHeader)
	sc.Step(`^I parse the sort mode "([^"]*)"$`, ctx.iParseTheSortMode)
	sc.Step(`^the sort mode should be "([^"]*)" and recognised "([^"]*)"$`, ctx.theSortModeShouldBeAndRecognised)
}
