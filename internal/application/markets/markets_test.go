package markets_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/colonial-go/internal/application/markets"
	"github.com/andrescamacho/colonial-go/internal/domain/cargo"
	"github.com/andrescamacho/colonial-go/internal/domain/market"
	"github.com/andrescamacho/colonial-go/internal/domain/prefs"
	"github.com/andrescamacho/colonial-go/internal/domain/project"
	"github.com/andrescamacho/colonial-go/internal/domain/shared"
	"github.com/andrescamacho/colonial-go/test/helpers"
)

type searcherFunc func(ctx context.Context, buildID string, criteria market.Criteria) (*market.FoundMarkets, error)

func (f searcherFunc) SearchMarkets(ctx context.Context, buildID string, criteria market.Criteria) (*market.FoundMarkets, error) {
	return f(ctx, buildID, criteria)
}

func seeded() *helpers.MockBackend {
	backend := helpers.NewMockBackend()
	backend.AddProject(&project.Project{
		BuildID: "b1", BuildName: "Orbis Alpha", BuildType: "orbis", MarketID: 42,
		SystemName:  "HIP 1234",
		Commodities: cargo.Map{"steel": 100, "titanium": 50, "gold": 10, "water": cargo.Unknown},
		LinkedFC:    []project.CarrierLink{{MarketID: 7, Name: "Hauler"}},
	})
	backend.AddProject(&project.Project{
		BuildID: "b2", BuildName: "Outpost Beta", BuildType: "outpost", MarketID: 43,
		SystemName:  "HIP 1234",
		Commodities: cargo.Map{"steel": 5},
	})
	backend.AddCarrier(&project.FleetCarrier{MarketID: 7, Name: "Hauler", Cargo: cargo.Map{"steel": 30}})
	backend.SetMarkets("b1", &market.FoundMarkets{Markets: []market.MarketSummary{
		{MarketID: 1, StationName: "Alpha Port", SystemName: "HIP 1234", Distance: 5,
			Supplies: cargo.Map{"steel": 200},
			Prices:   map[string]decimal.Decimal{"steel": decimal.NewFromInt(10)}},
		{MarketID: 2, StationName: "Bravo Hub", SystemName: "HIP 1235", Distance: 2,
			Supplies: cargo.Map{"steel": 20, "titanium": 100}},
		{MarketID: 3, StationName: "Charlie Dock", SystemName: "HIP 1236", Distance: 9,
			Supplies: cargo.Map{"water": 10}},
	}})
	return backend
}

func newHandler(backend *helpers.MockBackend, store prefs.Store) (*markets.FindMarketsHandler, *markets.SearchService) {
	var p *prefs.Preferences
	if store != nil {
		p = prefs.New(store)
	}
	search := markets.NewSearchService(map[string]market.Searcher{markets.SourceBackend: backend}, p, nil)
	return markets.NewFindMarketsHandler(backend, backend, search), search
}

func find(t *testing.T, h *markets.FindMarketsHandler, q *markets.FindMarketsQuery) (*markets.FindMarketsResponse, error) {
	t.Helper()
	resp, err := h.Handle(context.Background(), q)
	if err != nil {
		return nil, err
	}
	return resp.(*markets.FindMarketsResponse), nil
}

func TestFindMarkets_RanksAgainstRemainingNeed(t *testing.T) {
	// Arrange
	backend := seeded()
	handler, _ := newHandler(backend, nil)

	// Act
	resp, err := find(t, handler, &markets.FindMarketsQuery{BuildID: "b1"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "HIP 1234", resp.Criteria.ReferenceSystem)
	assert.Equal(t, cargo.Map{"steel": 70, "titanium": 50, "gold": 10}, resp.Remaining)
	require.Len(t, resp.Markets, 2, "markets without a needed commodity are dropped")
	assert.Equal(t, "Bravo Hub", resp.Markets[0].StationName)
	assert.Equal(t, "Alpha Port", resp.Markets[1].StationName)
	assert.Equal(t, []string{"gold"}, resp.Missed)

	alpha := resp.Markets[1].Estimate
	assert.Equal(t, 70, alpha.Units)
	assert.True(t, alpha.Cost.Equal(decimal.NewFromInt(700)))
	assert.True(t, alpha.Complete)
	assert.False(t, resp.Markets[0].Estimate.Complete, "unpriced commodities mark the estimate incomplete")
}

func TestFindMarkets_ColumnAndDirection(t *testing.T) {
	// Arrange
	handler, _ := newHandler(seeded(), nil)

	// Act
	resp, err := find(t, handler, &markets.FindMarketsQuery{BuildID: "b1", Column: market.ColumnDistance, Ascending: true})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Bravo Hub", resp.Markets[0].StationName)
	assert.Equal(t, market.ColumnDistance, resp.Column)
}

func TestFindMarkets_ReusesMemoizedSearch(t *testing.T) {
	// Arrange
	backend := seeded()
	handler, _ := newHandler(backend, nil)

	// Act
	_, err1 := find(t, handler, &markets.FindMarketsQuery{BuildID: "b1"})
	_, err2 := find(t, handler, &markets.FindMarketsQuery{BuildID: "b1", Column: market.ColumnStationName})

	// Assert
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, 1, backend.Calls("SearchMarkets"))
}

func TestFindMarkets_SwitchingBuildDiscardsMemo(t *testing.T) {
	// Arrange
	backend := seeded()
	handler, search := newHandler(backend, nil)

	// Act
	_, err := find(t, handler, &markets.FindMarketsQuery{BuildID: "b1"})
	require.NoError(t, err)
	_, errOther := find(t, handler, &markets.FindMarketsQuery{BuildID: "b2"})
	_, err = find(t, handler, &markets.FindMarketsQuery{BuildID: "b1"})

	// Assert
	require.NoError(t, err)
	assert.ErrorIs(t, errOther, market.ErrNoSearchResults)
	assert.Equal(t, 3, backend.Calls("SearchMarkets"))
	assert.Equal(t, "b1", search.Active())
}

func TestFindMarkets_FailedSearchProducesNoList(t *testing.T) {
	// Arrange
	backend := seeded()
	boom := errors.New("backend unavailable")
	search := markets.NewSearchService(map[string]market.Searcher{
		markets.SourceBackend: searcherFunc(func(context.Context, string, market.Criteria) (*market.FoundMarkets, error) {
			return nil, boom
		}),
	}, nil, nil)
	handler := markets.NewFindMarketsHandler(backend, backend, search)

	// Act
	resp, err := find(t, handler, &markets.FindMarketsQuery{BuildID: "b1"})

	// Assert
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, resp)
}

func TestFindMarkets_UsesStoredSearch(t *testing.T) {
	// Arrange
	backend := seeded()
	store := prefs.NewMemoryStore()
	first, _ := newHandler(backend, store)
	_, err := find(t, first, &markets.FindMarketsQuery{BuildID: "b1"})
	require.NoError(t, err)
	second, _ := newHandler(backend, store)

	// Act
	resp, err := find(t, second, &markets.FindMarketsQuery{BuildID: "b1", UseCached: true})

	// Assert
	require.NoError(t, err)
	assert.Len(t, resp.Markets, 2)
	assert.Equal(t, "HIP 1234", resp.Criteria.ReferenceSystem)
	assert.Equal(t, 1, backend.Calls("SearchMarkets"))
}

func TestFindMarkets_NoStoredSearch(t *testing.T) {
	// Arrange
	handler, _ := newHandler(seeded(), prefs.NewMemoryStore())

	// Act
	_, err := find(t, handler, &markets.FindMarketsQuery{BuildID: "b1", UseCached: true})

	// Assert
	assert.ErrorIs(t, err, market.ErrNoSearchResults)
}

func TestSearchService_UnknownSource(t *testing.T) {
	// Arrange
	_, search := newHandler(seeded(), nil)

	// Act
	_, err := search.Search(context.Background(), "b1", "telepathy", market.Criteria{ReferenceSystem: "Sol"})

	// Assert
	msg, ok := shared.FieldError(err, "source")
	assert.True(t, ok)
	assert.Contains(t, msg, "telepathy")
}

func TestSearchService_InvalidCriteria(t *testing.T) {
	// Arrange
	_, search := newHandler(seeded(), nil)

	// Act
	_, err := search.Search(context.Background(), "b1", "", market.Criteria{})

	// Assert
	_, ok := shared.FieldError(err, "criteria")
	assert.True(t, ok)
}

func TestSearchService_ResultsForAnotherBuildAreStale(t *testing.T) {
	// Arrange
	search := markets.NewSearchService(map[string]market.Searcher{
		markets.SourceBackend: searcherFunc(func(context.Context, string, market.Criteria) (*market.FoundMarkets, error) {
			return &market.FoundMarkets{BuildID: "b2", Markets: []market.MarketSummary{{MarketID: 1}}}, nil
		}),
	}, nil, nil)

	// Act
	_, err := search.Search(context.Background(), "b1", "", market.Criteria{ReferenceSystem: "Sol"})

	// Assert
	assert.ErrorIs(t, err, market.ErrStaleResults)
	assert.Equal(t, "b1", search.Active())
}
