package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/colonial-go/internal/application/mediator"
	"github.com/andrescamacho/colonial-go/internal/domain/project"
	"github.com/andrescamacho/colonial-go/internal/domain/shared"
)

// UpdateProjectCommand applies a partial update to a project
type UpdateProjectCommand struct {
	BuildID string
	Patch   project.Patch
}

// UpdateProjectResponse carries the updated project
type UpdateProjectResponse struct {
	Project *project.Project `json:"project"`
}

// UpdateProjectHandler handles UpdateProjectCommand
type UpdateProjectHandler struct {
	projects project.ProjectRepository
}

// NewUpdateProjectHandler creates a new handler
func NewUpdateProjectHandler(projects project.ProjectRepository) *UpdateProjectHandler {
	return &UpdateProjectHandler{projects: projects}
}

// Handle executes the command
func (h *UpdateProjectHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*UpdateProjectCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *UpdateProjectCommand")
	}
	if cmd.BuildID == "" {
		return nil, shared.NewValidationError("buildId", "build id is required")
	}
	if cmd.Patch.Commodities != nil {
		if err := cmd.Patch.Commodities.Validate(); err != nil {
			return nil, shared.NewValidationError("commodities", err.Error())
		}
	}

	p, err := h.projects.UpdateProject(ctx, cmd.BuildID, cmd.Patch)
	if err != nil {
		return nil, err
	}
	return &UpdateProjectResponse{Project: p}, nil
}
