package queries

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/andrescamacho/colonial-go/internal/application/mediator"
	"github.com/andrescamacho/colonial-go/internal/domain/cargo"
	"github.com/andrescamacho/colonial-go/internal/domain/project"
)

// GetCarrierQuery asks for a fleet carrier and its inventory
type GetCarrierQuery struct {
	MarketID int64
}

// GetCarrierResponse is the carrier with Cargo filled in
type GetCarrierResponse struct {
	Carrier *project.FleetCarrier `json:"carrier"`
}

// GetCarrierHandler loads carrier details and cargo concurrently
type GetCarrierHandler struct {
	carriers project.CarrierRepository
}

// NewGetCarrierHandler creates a new handler
func NewGetCarrierHandler(carriers project.CarrierRepository) *GetCarrierHandler {
	return &GetCarrierHandler{carriers: carriers}
}

// Handle executes the query
func (h *GetCarrierHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*GetCarrierQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetCarrierQuery")
	}

	var (
		fc  *project.FleetCarrier
		inv cargo.Map
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		fc, err = h.carriers.GetFleetCarrier(gctx, query.MarketID)
		return err
	})
	g.Go(func() error {
		var err error
		inv, err = h.carriers.GetFleetCarrierCargo(gctx, query.MarketID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	fc.Cargo = inv
	return &GetCarrierResponse{Carrier: fc}, nil
}
