package project

import (
	"context"

	"github.com/andrescamacho/colonial-go/internal/domain/cargo"
)

// ProjectRepository is the backend's project resource.
type ProjectRepository interface {
	GetProject(ctx context.Context, buildID string) (*Project, error)
	CreateProject(ctx context.Context, draft Draft) (*Project, error)
	UpdateProject(ctx context.Context, buildID string, patch Patch) (*Project, error)
	ListSystemProjects(ctx context.Context, systemName string) ([]Ref, error)
	ListCommanderProjects(ctx context.Context, cmdr string) ([]Ref, error)
	Contribute(ctx context.Context, delivery Delivery) error
	GetProjectStats(ctx context.Context, buildID string) (*Stats, error)
}

// CarrierRepository is the backend's fleet-carrier resource.
type CarrierRepository interface {
	GetFleetCarrier(ctx context.Context, marketID int64) (*FleetCarrier, error)
	GetFleetCarrierCargo(ctx context.Context, marketID int64) (cargo.Map, error)
	UpdateFleetCarrierCargo(ctx context.Context, marketID int64, delta cargo.Map) (cargo.Map, error)
	LinkFleetCarrier(ctx context.Context, buildID string, marketID int64) error
	UnlinkFleetCarrier(ctx context.Context, buildID string, marketID int64) error
}
