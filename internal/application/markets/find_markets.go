package markets

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/andrescamacho/colonial-go/internal/adapters/metrics"
	"github.com/andrescamacho/colonial-go/internal/application/mediator"
	"github.com/andrescamacho/colonial-go/internal/domain/cargo"
	"github.com/andrescamacho/colonial-go/internal/domain/market"
	"github.com/andrescamacho/colonial-go/internal/domain/project"
	"github.com/andrescamacho/colonial-go/internal/domain/shared"
)

// FindMarketsQuery searches for markets supplying what a project still needs
// and ranks them. UseCached ranks the last stored search instead of searching.
type FindMarketsQuery struct {
	BuildID   string
	Criteria  market.Criteria
	Column    market.Column
	Ascending bool
	Source    string
	UseCached bool
}

// RankedMarket is a market with its estimated purchase of the shopping list
type RankedMarket struct {
	market.MarketSummary
	Estimate market.Estimate `json:"estimate"`
}

// FindMarketsResponse is the ranked list. It is only produced when the whole
// search succeeded.
type FindMarketsResponse struct {
	BuildID    string          `json:"buildId"`
	Criteria   market.Criteria `json:"criteria"`
	PreparedAt time.Time       `json:"preparedAt"`
	Column     market.Column   `json:"column"`
	Ascending  bool            `json:"ascending"`
	Remaining  cargo.Map       `json:"remaining"`
	Markets    []RankedMarket  `json:"markets"`
	Missed     []string        `json:"missed"`
}

// FindMarketsHandler handles FindMarketsQuery
type FindMarketsHandler struct {
	projects project.ProjectRepository
	carriers project.CarrierRepository
	search   *SearchService
}

// NewFindMarketsHandler creates a new handler
func NewFindMarketsHandler(
	projects project.ProjectRepository,
	carriers project.CarrierRepository,
	search *SearchService,
) *FindMarketsHandler {
	return &FindMarketsHandler{projects: projects, carriers: carriers, search: search}
}

// Handle executes the query
func (h *FindMarketsHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*FindMarketsQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *FindMarketsQuery")
	}
	if query.BuildID == "" {
		return nil, shared.NewValidationError("buildId", "build id is required")
	}

	p, err := h.projects.GetProject(ctx, query.BuildID)
	if err != nil {
		return nil, fmt.Errorf("failed to load project %s: %w", query.BuildID, err)
	}

	criteria := query.Criteria
	if criteria.ReferenceSystem == "" {
		criteria.ReferenceSystem = p.SystemName
	}

	// carrier stock and the search are independent; both must succeed
	inventories := make([]cargo.Map, len(p.LinkedFC))
	var found *market.FoundMarkets
	g, gctx := errgroup.WithContext(ctx)
	for i, link := range p.LinkedFC {
		g.Go(func() error {
			inv, err := h.carriers.GetFleetCarrierCargo(gctx, link.MarketID)
			if err != nil {
				return fmt.Errorf("failed to load carrier %d cargo: %w", link.MarketID, err)
			}
			inventories[i] = inv
			return nil
		})
	}
	g.Go(func() error {
		var err error
		if query.UseCached {
			var stored market.Criteria
			stored, found, err = h.search.Cached(gctx, query.BuildID)
			if err == nil {
				criteria = stored
			}
			return err
		}
		if len(criteria.Commodities) == 0 {
			criteria.Commodities = p.Need().Needed()
		}
		found, err = h.search.Search(gctx, query.BuildID, query.Source, criteria)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	remaining := cargo.Remaining(p.Need(), cargo.Merge(inventories...))
	column := query.Column
	if column == "" {
		column = market.DefaultColumn
	}
	ranked := market.Rank(found.Markets, remaining, column, query.Ascending)
	missed := market.MissedCommodities(found.Markets, remaining)
	metrics.RecordRanking(string(column), len(ranked), len(missed))

	out := make([]RankedMarket, len(ranked))
	for i, m := range ranked {
		out[i] = RankedMarket{MarketSummary: m, Estimate: market.EstimateCost(m, remaining)}
	}
	if missed == nil {
		missed = []string{}
	}

	return &FindMarketsResponse{
		BuildID:    query.BuildID,
		Criteria:   criteria,
		PreparedAt: found.PreparedAt,
		Column:     column,
		Ascending:  query.Ascending,
		Remaining:  remaining,
		Markets:    out,
		Missed:     missed,
	}, nil
}
