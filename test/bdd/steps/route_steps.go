package steps

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/colonial-go/internal/domain/page"
)

type routeContext struct {
	route page.Route
}

func (r *routeContext) iParseTheFragment(fragment string) error {
	r.route = page.Parse(fragment)
	return nil
}

func (r *routeContext) thePageShouldBeWithParameter(p, param string) error {
	if string(r.route.Page) != p {
		return fmt.Errorf("expected page %q, got %q", p, r.route.Page)
	}
	if r.route.Param != param {
		return fmt.Errorf("expected parameter %q, got %q", param, r.route.Param)
	}
	return nil
}

// InitializeRouteScenario registers hash routing step definitions
func InitializeRouteScenario(sc *godog.ScenarioContext) {
	ctx := &routeContext{}

	sc.Before(func(gctx context.Context, s *godog.Scenario) (context.Context, error) {
		ctx.route = page.Route{}
		return gctx, nil
	})

	sc.Step(`^I parse the fragment "([^"]*)"$`, ctx.iParseTheFragment)
	sc.Step(`^the page should be "([^"]*)" with parameter "([^"]*)"$`, ctx.thePageShouldBeWithParameter)
}
