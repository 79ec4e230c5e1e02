package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/colonial-go/internal/application/mediator"
	"github.com/andrescamacho/colonial-go/internal/domain/cargo"
	"github.com/andrescamacho/colonial-go/internal/domain/prefs"
	"github.com/andrescamacho/colonial-go/internal/domain/shared"
)

// SaveDraftCommand stores undelivered cargo for a build so it survives a
// restart. An empty draft removes the stored one.
type SaveDraftCommand struct {
	BuildID string
	Cargo   cargo.Map
}

// SaveDraftHandler handles SaveDraftCommand
type SaveDraftHandler struct {
	prefs *prefs.Preferences
}

// NewSaveDraftHandler creates a new handler
func NewSaveDraftHandler(preferences *prefs.Preferences) *SaveDraftHandler {
	return &SaveDraftHandler{prefs: preferences}
}

// Handle executes the command
func (h *SaveDraftHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*SaveDraftCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *SaveDraftCommand")
	}
	if cmd.BuildID == "" {
		return nil, shared.NewValidationError("buildId", "build id is required")
	}
	if err := cmd.Cargo.Validate(); err != nil {
		return nil, shared.NewValidationError("cargo", err.Error())
	}
	if err := h.prefs.SaveDraft(ctx, cmd.BuildID, cmd.Cargo); err != nil {
		return nil, fmt.Errorf("failed to save draft: %w", err)
	}
	return nil, nil
}
