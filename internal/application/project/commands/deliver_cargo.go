package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/colonial-go/internal/application/common"
	"github.com/andrescamacho/colonial-go/internal/application/mediator"
	"github.com/andrescamacho/colonial-go/internal/domain/cargo"
	"github.com/andrescamacho/colonial-go/internal/domain/prefs"
	"github.com/andrescamacho/colonial-go/internal/domain/project"
	"github.com/andrescamacho/colonial-go/internal/infrastructure/logging"
)

// DeliverCargoCommand records cargo handed in to a construction site. An
// empty Cmdr uses the stored commander identity.
type DeliverCargoCommand struct {
	BuildID string
	Cmdr    string
	Cargo   cargo.Map
}

// DeliverCargoResponse reports what was sent
type DeliverCargoResponse struct {
	Cmdr      string    `json:"cmdr"`
	Delivered cargo.Map `json:"delivered"`
	Units     int       `json:"units"`
}

// DeliverCargoHandler validates and submits a delivery, then drops the
// stored draft for the build. The submission is attempted once.
type DeliverCargoHandler struct {
	projects project.ProjectRepository
	prefs    *prefs.Preferences
}

// NewDeliverCargoHandler creates a new handler
func NewDeliverCargoHandler(projects project.ProjectRepository, preferences *prefs.Preferences) *DeliverCargoHandler {
	return &DeliverCargoHandler{projects: projects, prefs: preferences}
}

// Handle executes the command
func (h *DeliverCargoHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*DeliverCargoCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *DeliverCargoCommand")
	}

	delivery := project.Delivery{BuildID: cmd.BuildID, Cmdr: cmd.Cmdr, Cargo: cmd.Cargo}
	if delivery.Cmdr == "" && h.prefs != nil {
		identity, err := h.prefs.Commander(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to read commander: %w", err)
		}
		delivery.Cmdr = identity.Name
	}
	if err := delivery.Validate(); err != nil {
		return nil, err
	}

	if err := h.projects.Contribute(ctx, delivery); err != nil {
		return nil, err
	}

	delivered := delivery.Positive()
	units := cargo.TotalNeed(delivered)
	logger := common.LoggerFromContext(ctx)
	logger.Info("cargo delivered",
		logging.String("build_id", delivery.BuildID),
		logging.String("cmdr", delivery.Cmdr),
		logging.Int("units", units))

	if h.prefs != nil {
		if err := h.prefs.ClearDraft(ctx, delivery.BuildID); err != nil {
			logger.Warn("failed to clear delivery draft", logging.Err(err))
		}
	}
	return &DeliverCargoResponse{Cmdr: delivery.Cmdr, Delivered: delivered, Units: units}, nil
}
