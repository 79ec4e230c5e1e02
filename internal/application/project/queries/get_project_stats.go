package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/colonial-go/internal/application/mediator"
	"github.com/andrescamacho/colonial-go/internal/domain/project"
)

// GetProjectStatsQuery asks for per-commander delivery totals
type GetProjectStatsQuery struct {
	BuildID string
}

// GetProjectStatsResponse is the leaderboard of a project
type GetProjectStatsResponse struct {
	Stats       *project.Stats         `json:"stats"`
	Leaderboard []project.Contribution `json:"leaderboard"`
}

// GetProjectStatsHandler handles GetProjectStatsQuery
type GetProjectStatsHandler struct {
	projects project.ProjectRepository
}

// NewGetProjectStatsHandler creates a new handler
func NewGetProjectStatsHandler(projects project.ProjectRepository) *GetProjectStatsHandler {
	return &GetProjectStatsHandler{projects: projects}
}

// Handle executes the query
func (h *GetProjectStatsHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*GetProjectStatsQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetProjectStatsQuery")
	}

	stats, err := h.projects.GetProjectStats(ctx, query.BuildID)
	if err != nil {
		return nil, err
	}
	return &GetProjectStatsResponse{Stats: stats, Leaderboard: stats.Leaderboard()}, nil
}
