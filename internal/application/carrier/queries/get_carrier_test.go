package queries_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/colonial-go/internal/application/carrier/queries"
	"github.com/andrescamacho/colonial-go/internal/domain/cargo"
	"github.com/andrescamacho/colonial-go/internal/domain/project"
	"github.com/andrescamacho/colonial-go/test/helpers"
)

func TestGetCarrier_LoadsDetailsAndCargo(t *testing.T) {
	// Arrange
	backend := helpers.NewMockBackend()
	backend.AddCarrier(&project.FleetCarrier{MarketID: 7, Name: "Hauler", Callsign: "K7Q-1HT", Cargo: cargo.Map{"steel": 10}})
	handler := queries.NewGetCarrierHandler(backend)

	// Act
	resp, err := handler.Handle(context.Background(), &queries.GetCarrierQuery{MarketID: 7})

	// Assert
	require.NoError(t, err)
	fc := resp.(*queries.GetCarrierResponse).Carrier
	assert.Equal(t, "Hauler (K7Q-1HT)", fc.String())
	assert.Equal(t, cargo.Map{"steel": 10}, fc.Cargo)
}

func TestGetCarrier_NotFound(t *testing.T) {
	// Arrange
	handler := queries.NewGetCarrierHandler(helpers.NewMockBackend())

	// Act
	_, err := handler.Handle(context.Background(), &queries.GetCarrierQuery{MarketID: 9})

	// Assert
	assert.ErrorIs(t, err, project.ErrCarrierNotFound)
}
