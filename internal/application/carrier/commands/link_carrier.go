package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/colonial-go/internal/application/mediator"
	"github.com/andrescamacho/colonial-go/internal/domain/project"
	"github.com/andrescamacho/colonial-go/internal/domain/shared"
)

// LinkCarrierCommand links a fleet carrier to a project, or unlinks it
type LinkCarrierCommand struct {
	BuildID  string
	MarketID int64
	Unlink   bool
}

// LinkCarrierHandler handles LinkCarrierCommand
type LinkCarrierHandler struct {
	carriers project.CarrierRepository
}

// NewLinkCarrierHandler creates a new handler
func NewLinkCarrierHandler(carriers project.CarrierRepository) *LinkCarrierHandler {
	return &LinkCarrierHandler{carriers: carriers}
}

// Handle executes the command
func (h *LinkCarrierHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*LinkCarrierCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *LinkCarrierCommand")
	}

	var errs shared.ValidationErrors
	if cmd.BuildID == "" {
		errs = append(errs, shared.NewValidationError("buildId", "build id is required"))
	}
	if cmd.MarketID <= 0 {
		errs = append(errs, shared.NewValidationError("marketId", "market id is required"))
	}
	if err := errs.ErrOrNil(); err != nil {
		return nil, err
	}

	if cmd.Unlink {
		return nil, h.carriers.UnlinkFleetCarrier(ctx, cmd.BuildID, cmd.MarketID)
	}
	return nil, h.carriers.LinkFleetCarrier(ctx, cmd.BuildID, cmd.MarketID)
}
