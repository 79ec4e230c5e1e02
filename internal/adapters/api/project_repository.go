package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/google/uuid"

	"github.com/andrescamacho/colonial-go/internal/domain/cargo"
	"github.com/andrescamacho/colonial-go/internal/domain/market"
	"github.com/andrescamacho/colonial-go/internal/domain/project"
)

// ProjectAPIRepository implements project.ProjectRepository and
// project.CarrierRepository against the colonization backend.
type ProjectAPIRepository struct {
	client *Client
}

// NewProjectRepository creates a repository on top of a backend client.
func NewProjectRepository(client *Client) *ProjectAPIRepository {
	return &ProjectAPIRepository{client: client}
}

// GetProject retrieves a project by build id.
func (r *ProjectAPIRepository) GetProject(ctx context.Context, buildID string) (*project.Project, error) {
	var p project.Project
	path := "/api/project/" + url.PathEscape(buildID)
	if err := r.client.Get(ctx, "/api/project/{buildId}", path, nil, &p); err != nil {
		if apiErr, ok := AsAPIError(err); ok && apiErr.IsNotFound() {
			return nil, fmt.Errorf("%w: %s", project.ErrProjectNotFound, buildID)
		}
		return nil, fmt.Errorf("failed to get project %s: %w", buildID, err)
	}
	return &p, nil
}

// CreateProject submits a validated draft. A 409 means the site is already
// tracked and is reported as project.ErrProjectExists. A 202 carries no build
// id and fails with ErrAccepted.
func (r *ProjectAPIRepository) CreateProject(ctx context.Context, draft project.Draft) (*project.Project, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}
	var p project.Project
	err := r.client.do(ctx, call{
		method:   http.MethodPut,
		path:     "/api/project",
		endpoint: "/api/project",
		body:     draft,
		result:   &p,
	})
	if err != nil {
		if apiErr, ok := AsAPIError(err); ok && apiErr.IsConflict() {
			return nil, errors.Join(project.ErrProjectExists, apiErr)
		}
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	return &p, nil
}

// UpdateProject applies a partial update and returns the new state. When the
// backend only accepts the patch, the project is read back.
func (r *ProjectAPIRepository) UpdateProject(ctx context.Context, buildID string, patch project.Patch) (*project.Project, error) {
	var p project.Project
	err := r.client.do(ctx, call{
		method:   http.MethodPatch,
		path:     "/api/project/" + url.PathEscape(buildID),
		endpoint: "/api/project/{buildId}",
		body:     patch,
		result:   &p,
	})
	if errors.Is(err, ErrAccepted) {
		return r.GetProject(ctx, buildID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update project %s: %w", buildID, err)
	}
	return &p, nil
}

// ListSystemProjects lists the projects in a star system.
func (r *ProjectAPIRepository) ListSystemProjects(ctx context.Context, systemName string) ([]project.Ref, error) {
	var refs []project.Ref
	path := "/api/system/" + url.PathEscape(systemName)
	if err := r.client.Get(ctx, "/api/system/{systemName}", path, nil, &refs); err != nil {
		return nil, fmt.Errorf("failed to list projects in %s: %w", systemName, err)
	}
	return refs, nil
}

// ListCommanderProjects lists the projects a commander is assigned to.
func (r *ProjectAPIRepository) ListCommanderProjects(ctx context.Context, cmdr string) ([]project.Ref, error) {
	var refs []project.Ref
	path := "/api/cmdr/" + url.PathEscape(cmdr)
	if err := r.client.Get(ctx, "/api/cmdr/{cmdr}", path, nil, &refs); err != nil {
		return nil, fmt.Errorf("failed to list projects for %s: %w", cmdr, err)
	}
	return refs, nil
}

// Contribute posts a delivery delta. The backend adds it to per-commodity
// counters; the idempotency key lets it drop a duplicate submission.
func (r *ProjectAPIRepository) Contribute(ctx context.Context, delivery project.Delivery) error {
	if err := delivery.Validate(); err != nil {
		return err
	}
	err := r.client.do(ctx, call{
		method:         http.MethodPost,
		path:           fmt.Sprintf("/api/project/%s/contribute/%s", url.PathEscape(delivery.BuildID), url.PathEscape(delivery.Cmdr)),
		endpoint:       "/api/project/{buildId}/contribute/{cmdr}",
		body:           delivery.Positive(),
		idempotencyKey: uuid.NewString(),
	})
	if err != nil {
		return fmt.Errorf("failed to deliver to %s: %w", delivery.BuildID, err)
	}
	return nil
}

// GetProjectStats retrieves per-commander delivery totals.
func (r *ProjectAPIRepository) GetProjectStats(ctx context.Context, buildID string) (*project.Stats, error) {
	var stats project.Stats
	path := fmt.Sprintf("/api/project/%s/stats", url.PathEscape(buildID))
	if err := r.client.Get(ctx, "/api/project/{buildId}/stats", path, nil, &stats); err != nil {
		return nil, fmt.Errorf("failed to get stats for %s: %w", buildID, err)
	}
	if stats.BuildID == "" {
		stats.BuildID = buildID
	}
	return &stats, nil
}

// GetFleetCarrier retrieves a carrier's identity.
func (r *ProjectAPIRepository) GetFleetCarrier(ctx context.Context, marketID int64) (*project.FleetCarrier, error) {
	var fc project.FleetCarrier
	path := fmt.Sprintf("/api/fc/%d", marketID)
	if err := r.client.Get(ctx, "/api/fc/{marketId}", path, nil, &fc); err != nil {
		if apiErr, ok := AsAPIError(err); ok && apiErr.IsNotFound() {
			return nil, fmt.Errorf("%w: %d", project.ErrCarrierNotFound, marketID)
		}
		return nil, fmt.Errorf("failed to get fleet carrier %d: %w", marketID, err)
	}
	return &fc, nil
}

// GetFleetCarrierCargo retrieves a carrier's inventory.
func (r *ProjectAPIRepository) GetFleetCarrierCargo(ctx context.Context, marketID int64) (cargo.Map, error) {
	inventory := cargo.Map{}
	path := fmt.Sprintf("/api/fc/%d/cargo", marketID)
	if err := r.client.Get(ctx, "/api/fc/{marketId}/cargo", path, nil, &inventory); err != nil {
		return nil, fmt.Errorf("failed to get cargo of fleet carrier %d: %w", marketID, err)
	}
	if err := inventory.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	return inventory, nil
}

// UpdateFleetCarrierCargo applies a delta to a carrier's inventory and returns
// the new inventory, reading it back when the backend answers 202.
func (r *ProjectAPIRepository) UpdateFleetCarrierCargo(ctx context.Context, marketID int64, delta cargo.Map) (cargo.Map, error) {
	inventory := cargo.Map{}
	err := r.client.do(ctx, call{
		method:         http.MethodPatch,
		path:           fmt.Sprintf("/api/fc/%d/cargo", marketID),
		endpoint:       "/api/fc/{marketId}/cargo",
		body:           delta,
		result:         &inventory,
		idempotencyKey: uuid.NewString(),
	})
	if errors.Is(err, ErrAccepted) {
		return r.GetFleetCarrierCargo(ctx, marketID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update cargo of fleet carrier %d: %w", marketID, err)
	}
	if err := inventory.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	return inventory, nil
}

// LinkFleetCarrier links a carrier to a project.
func (r *ProjectAPIRepository) LinkFleetCarrier(ctx context.Context, buildID string, marketID int64) error {
	return r.link(ctx, http.MethodPut, buildID, marketID)
}

// UnlinkFleetCarrier removes a carrier from a project.
func (r *ProjectAPIRepository) UnlinkFleetCarrier(ctx context.Context, buildID string, marketID int64) error {
	return r.link(ctx, http.MethodDelete, buildID, marketID)
}

func (r *ProjectAPIRepository) link(ctx context.Context, method, buildID string, marketID int64) error {
	err := r.client.do(ctx, call{
		method:   method,
		path:     fmt.Sprintf("/api/project/%s/link/%d", url.PathEscape(buildID), marketID),
		endpoint: "/api/project/{buildId}/link/{marketId}",
	})
	if err != nil {
		return fmt.Errorf("failed to change carrier link %d on %s: %w", marketID, buildID, err)
	}
	return nil
}

// SearchMarkets asks the backend for markets selling the project's remaining
// need around the reference system.
func (r *ProjectAPIRepository) SearchMarkets(ctx context.Context, buildID string, criteria market.Criteria) (*market.FoundMarkets, error) {
	var found market.FoundMarkets
	err := r.client.do(ctx, call{
		method:   http.MethodPost,
		path:     fmt.Sprintf("/api/project/%s/markets", url.PathEscape(buildID)),
		endpoint: "/api/project/{buildId}/markets",
		body:     criteria,
		result:   &found,
	})
	if err != nil {
		return nil, fmt.Errorf("market search for %s failed: %w", buildID, err)
	}
	if found.BuildID == "" {
		found.BuildID = buildID
	}
	return &found, nil
}
