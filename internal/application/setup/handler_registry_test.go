package setup_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	carrierQueries "github.com/andrescamacho/colonial-go/internal/application/carrier/queries"
	"github.com/andrescamacho/colonial-go/internal/application/markets"
	"github.com/andrescamacho/colonial-go/internal/application/mediator"
	projectQueries "github.com/andrescamacho/colonial-go/internal/application/project/queries"
	"github.com/andrescamacho/colonial-go/internal/application/setup"
	"github.com/andrescamacho/colonial-go/internal/domain/cargo"
	"github.com/andrescamacho/colonial-go/internal/domain/market"
	"github.com/andrescamacho/colonial-go/internal/domain/prefs"
	"github.com/andrescamacho/colonial-go/internal/domain/project"
	"github.com/andrescamacho/colonial-go/test/helpers"
)

func TestRegisterAll_DispatchesThroughMediator(t *testing.T) {
	// Arrange
	backend := helpers.NewMockBackend()
	backend.AddProject(&project.Project{
		BuildID: "b1", BuildName: "Orbis Alpha", BuildType: "orbis", MarketID: 42,
		SystemName: "Sol", Commodities: cargo.Map{"steel": 10},
	})
	backend.AddCarrier(&project.FleetCarrier{MarketID: 7, Name: "Hauler"})
	preferences := prefs.New(prefs.NewMemoryStore())
	search := markets.NewSearchService(map[string]market.Searcher{markets.SourceBackend: backend}, preferences, nil)
	registry := setup.NewHandlerRegistry(backend, backend, nil, search, preferences, nil, nil)
	m := mediator.NewMediator()

	// Act
	err := registry.RegisterAll(m)
	require.NoError(t, err)
	grid, gridErr := mediator.Send[*projectQueries.GetCargoGridResponse](context.Background(), m,
		&projectQueries.GetCargoGridQuery{BuildID: "b1"})
	fc, fcErr := mediator.Send[*carrierQueries.GetCarrierResponse](context.Background(), m,
		&carrierQueries.GetCarrierQuery{MarketID: 7})

	// Assert
	require.NoError(t, gridErr)
	require.NoError(t, fcErr)
	assert.Equal(t, 10, grid.TotalNeed)
	assert.Equal(t, "Hauler", fc.Carrier.Name)
}

func TestRegisterAll_TwiceFails(t *testing.T) {
	// Arrange
	backend := helpers.NewMockBackend()
	search := markets.NewSearchService(map[string]market.Searcher{markets.SourceBackend: backend}, nil, nil)
	registry := setup.NewHandlerRegistry(backend, backend, nil, search, nil, nil, nil)
	m := mediator.NewMediator()
	require.NoError(t, registry.RegisterAll(m))

	// Act
	err := registry.RegisterAll(m)

	// Assert
	assert.ErrorContains(t, err, "failed to register project handlers")
}

func TestRegisterMarketHandlers_NeedsSearch(t *testing.T) {
	// Arrange
	backend := helpers.NewMockBackend()
	registry := setup.NewHandlerRegistry(backend, backend, nil, nil, nil, nil, nil)

	// Act
	err := registry.RegisterMarketHandlers(mediator.NewMediator())

	// Assert
	assert.Error(t, err)
}
