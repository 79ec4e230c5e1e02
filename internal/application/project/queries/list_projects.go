package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/colonial-go/internal/application/mediator"
	"github.com/andrescamacho/colonial-go/internal/domain/prefs"
	"github.com/andrescamacho/colonial-go/internal/domain/project"
)

// ListProjectsQuery lists projects by system, by commander, or the locally
// remembered recent list. Exactly one selector is used, in that order.
type ListProjectsQuery struct {
	SystemName string
	Cmdr       string
	Recent     bool
}

// ListProjectsResponse holds the short project forms
type ListProjectsResponse struct {
	Projects []project.Ref `json:"projects"`
}

// ListProjectsHandler handles ListProjectsQuery
type ListProjectsHandler struct {
	projects project.ProjectRepository
	prefs    *prefs.Preferences
}

// NewListProjectsHandler creates a new handler
func NewListProjectsHandler(projects project.ProjectRepository, preferences *prefs.Preferences) *ListProjectsHandler {
	return &ListProjectsHandler{projects: projects, prefs: preferences}
}

// Handle executes the query
func (h *ListProjectsHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*ListProjectsQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ListProjectsQuery")
	}

	var (
		refs []project.Ref
		err  error
	)
	switch {
	case query.SystemName != "":
		refs, err = h.projects.ListSystemProjects(ctx, query.SystemName)
	case query.Cmdr != "":
		refs, err = h.projects.ListCommanderProjects(ctx, query.Cmdr)
	case query.Recent && h.prefs != nil:
		refs, err = h.prefs.Recent(ctx)
	case query.Recent:
		// no preferences store, nothing recent
	default:
		return nil, fmt.Errorf("list projects needs a system, a commander or the recent flag")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	if refs == nil {
		refs = []project.Ref{}
	}
	return &ListProjectsResponse{Projects: refs}, nil
}
