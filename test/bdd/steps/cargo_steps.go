package steps

import (
	"context"
	"fmt"
	"math"
	"reflect"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/colonial-go/internal/domain/cargo"
)

type cargoContext struct {
	inventories map[string]cargo.Map
	merged      cargo.Map

	need  cargo.Map
	have  cargo.Map
	lines map[string]cargo.Line
}

func (c *cargoContext) reset() {
	c.inventories = make(map[string]cargo.Map)
	c.merged = nil
	c.need = nil
	c.have = nil
	c.lines = nil
}

// Merge steps

func (c *cargoContext) carrierInventories(table *godog.Table) error {
	for _, row := range table.Rows[1:] {
		carrier := getCellValue(table, row, "carrier")
		n, err := parseCount(getCellValue(table, row, "count"))
		if err != nil {
			return err
		}
		if c.inventories[carrier] == nil {
			c.inventories[carrier] = make(cargo.Map)
		}
		c.inventories[carrier][getCellValue(table, row, "commodity")] = n
	}
	return nil
}

func (c *cargoContext) iMergeTheInventories() error {
	maps := make([]cargo.Map, 0, len(c.inventories))
	for _, inv := range c.inventories {
		maps = append(maps, inv)
	}
	c.merged = cargo.Merge(maps...)
	return nil
}

func (c *cargoContext) theMergedCountOfShouldBe(id string, want int) error {
	got, ok := c.merged[id]
	if !ok {
		return fmt.Errorf("merged inventory has no %q", id)
	}
	if got != want {
		return fmt.Errorf("expected %s to be %d, got %d", id, want, got)
	}
	return nil
}

func (c *cargoContext) theMergedInventoryShouldNotContainUnknownCounts() error {
	for id, n := range c.merged {
		if n < 0 {
			return fmt.Errorf("%s is still unknown after merge", id)
		}
	}
	return nil
}

func (c *cargoContext) theMergedInventoryShouldBeEmpty() error {
	if len(c.merged) != 0 {
		return fmt.Errorf("expected empty inventory, got %v", c.merged)
	}
	return nil
}

// Reconcile steps

func (c *cargoContext) aProjectNeeding(table *godog.Table) error {
	need, err := cargoTable(table)
	if err != nil {
		return err
	}
	c.need = need
	return nil
}

func (c *cargoContext) theCarriersHold(table *godog.Table) error {
	have, err := cargoTable(table)
	if err != nil {
		return err
	}
	c.have = have
	return nil
}

func (c *cargoContext) iReconcileTheProject() error {
	if c.have == nil {
		c.have = cargo.Map{}
	}
	c.lines = make(map[string]cargo.Line)
	for _, line := range cargo.Reconcile(c.need, c.have) {
		c.lines[line.ID] = line
	}
	return nil
}

func (c *cargoContext) line(id string) (cargo.Line, error) {
	line, ok := c.lines[id]
	if !ok {
		return cargo.Line{}, fmt.Errorf("no grid line for %q", id)
	}
	return line, nil
}

func (c *cargoContext) theDifferenceForShouldBe(id string, want int) error {
	line, err := c.line(id)
	if err != nil {
		return err
	}
	if line.Diff != want {
		return fmt.Errorf("expected diff %d for %s, got %d", want, id, line.Diff)
	}
	return nil
}

func (c *cargoContext) theNeedForShouldBeUnknown(id string) error {
	line, err := c.line(id)
	if err != nil {
		return err
	}
	if !line.UnknownNeed || cargo.FormatCount(line.Need) != "?" {
		return fmt.Errorf("expected need for %s to be unknown, got %d", id, line.Need)
	}
	return nil
}

func (c *cargoContext) theTotalNeedShouldBe(want int) error {
	if got := cargo.TotalNeed(c.need); got != want {
		return fmt.Errorf("expected total need %d, got %d", want, got)
	}
	return nil
}

func (c *cargoContext) theOnHandCountShouldBe(want int) error {
	if got := cargo.OnHandCount(c.need, c.have); got != want {
		return fmt.Errorf("expected on-hand %d, got %d", want, got)
	}
	return nil
}

func (c *cargoContext) theProgressShouldBePercent(want float64) error {
	got := cargo.Progress(c.need, c.have)
	if math.Abs(got-want) > 0.05 {
		return fmt.Errorf("expected progress %.1f%%, got %.1f%%", want, got)
	}
	return nil
}

func (c *cargoContext) theRemainingShoppingListShouldBe(table *godog.Table) error {
	want, err := cargoTable(table)
	if err != nil {
		return err
	}
	got := cargo.Remaining(c.need, c.have)
	if !reflect.DeepEqual(want, got) {
		return fmt.Errorf("expected remaining %v, got %v", want, got)
	}
	return nil
}

func (c *cargoContext) theRemainingShoppingListShouldBeEmpty() error {
	if got := cargo.Remaining(c.need, c.have); len(got) != 0 {
		return fmt.Errorf("expected nothing remaining, got %v", got)
	}
	return nil
}

// InitializeCargoScenario registers merge and reconcile step definitions
func InitializeCargoScenario(sc *godog.ScenarioContext) {
	ctx := &cargoContext{}

	sc.Before(func(gctx context.Context, s *godog.Scenario) (context.Context, error) {
		ctx.reset()
		return gctx, nil
	})

	sc.Step(`^carrier inventories:$`, ctx.carrierInventories)
	sc.Step(`^I merge the inventories$`, ctx.iMergeTheInventories)
	sc.Step(`^the merged count of "([^"]*)" should be (\d+)$`, ctx.theMergedCountOfShouldBe)
	sc.Step(`^the merged inventory should not contain unknown counts$`, ctx.theMergedInventoryShouldNotContainUnknownCounts)
	sc.Step(`^the merged inventory should be empty$`, ctx.theMergedInventoryShouldBeEmpty)

	sc.Step(`^a project needing:$`, ctx.aProjectNeeding)
	sc.Step(`^the carriers hold:$`, ctx.theCarriersHold)
	sc.Step(`^I reconcile the project$`, ctx.iReconcileTheProject)
	sc.Step(`^the difference for "([^"]*)" should be (-?\d+)$`, ctx.theDifferenceForShouldBe)
	sc.Step(`^the need for "([^"]*)" should be unknown$`, ctx.theNeedForShouldBeUnknown)
	sc.Step(`^the total need should be (\d+)$`, ctx.theTotalNeedShouldBe)
	sc.Step(`^the on-hand count should be (\d+)$`, ctx.theOnHandCountShouldBe)
	sc.Step(`^the progress should be (\d+(?:\.\d+)?) percent$`, ctx.theProgressShouldBePercent)
	sc.Step(`^the remaining shopping list should be:$`, ctx.theRemainingShoppingListShouldBe)
	sc.Step(`^the remaining shopping list should be empty$`, ctx.theRemainingShoppingListShouldBeEmpty)
}
