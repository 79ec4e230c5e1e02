package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/colonial-go/internal/application/common"
	"github.com/andrescamacho/colonial-go/internal/application/mediator"
	"github.com/andrescamacho/colonial-go/internal/domain/prefs"
	"github.com/andrescamacho/colonial-go/internal/domain/project"
	"github.com/andrescamacho/colonial-go/internal/infrastructure/logging"
)

// CreateProjectCommand registers a new construction project
type CreateProjectCommand struct {
	Draft project.Draft
}

// CreateProjectResponse carries the created project
type CreateProjectResponse struct {
	Project *project.Project `json:"project"`
}

// CreateProjectHandler validates the draft before submitting it. A site that
// is already tracked surfaces as project.ErrProjectExists.
type CreateProjectHandler struct {
	projects project.ProjectRepository
	prefs    *prefs.Preferences
}

// NewCreateProjectHandler creates a new handler
func NewCreateProjectHandler(projects project.ProjectRepository, preferences *prefs.Preferences) *CreateProjectHandler {
	return &CreateProjectHandler{projects: projects, prefs: preferences}
}

// Handle executes the command
func (h *CreateProjectHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*CreateProjectCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *CreateProjectCommand")
	}
	if err := cmd.Draft.Validate(); err != nil {
		return nil, err
	}

	p, err := h.projects.CreateProject(ctx, cmd.Draft)
	if err != nil {
		return nil, err
	}

	logger := common.LoggerFromContext(ctx)
	logger.Info("project created",
		logging.String("build_id", p.BuildID),
		logging.String("build_name", p.BuildName))

	if h.prefs != nil {
		if err := h.prefs.TouchRecent(ctx, p.Ref()); err != nil {
			logger.Warn("failed to remember project", logging.Err(err))
		}
	}
	return &CreateProjectResponse{Project: p}, nil
}
