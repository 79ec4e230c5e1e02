package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/colonial-go/internal/application/mediator"
	"github.com/andrescamacho/colonial-go/internal/domain/cargo"
	"github.com/andrescamacho/colonial-go/internal/domain/project"
	"github.com/andrescamacho/colonial-go/internal/domain/shared"
)

// UpdateCarrierCargoCommand adjusts a fleet carrier's inventory by a delta.
// Negative entries remove stock.
type UpdateCarrierCargoCommand struct {
	MarketID int64
	Delta    cargo.Map
}

// UpdateCarrierCargoResponse carries the inventory after the update
type UpdateCarrierCargoResponse struct {
	Cargo cargo.Map `json:"cargo"`
}

// UpdateCarrierCargoHandler handles UpdateCarrierCargoCommand
type UpdateCarrierCargoHandler struct {
	carriers project.CarrierRepository
}

// NewUpdateCarrierCargoHandler creates a new handler
func NewUpdateCarrierCargoHandler(carriers project.CarrierRepository) *UpdateCarrierCargoHandler {
	return &UpdateCarrierCargoHandler{carriers: carriers}
}

// Handle executes the command
func (h *UpdateCarrierCargoHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*UpdateCarrierCargoCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *UpdateCarrierCargoCommand")
	}
	if cmd.MarketID <= 0 {
		return nil, shared.NewValidationError("marketId", "market id is required")
	}

	delta := make(cargo.Map, len(cmd.Delta))
	for id, n := range cmd.Delta {
		if id == "" {
			return nil, shared.NewValidationError("delta", "commodity id is required")
		}
		if n != 0 {
			delta[id] = n
		}
	}
	if len(delta) == 0 {
		return nil, shared.NewValidationError("delta", "nothing to change")
	}

	updated, err := h.carriers.UpdateFleetCarrierCargo(ctx, cmd.MarketID, delta)
	if err != nil {
		return nil, err
	}
	return &UpdateCarrierCargoResponse{Cargo: updated}, nil
}
