package setup

import (
	"fmt"

	carrierCommands "github.com/andrescamacho/colonial-go/internal/application/carrier/commands"
	carrierQueries "github.com/andrescamacho/colonial-go/internal/application/carrier/queries"
	"github.com/andrescamacho/colonial-go/internal/application/markets"
	"github.com/andrescamacho/colonial-go/internal/application/mediator"
	projectCommands "github.com/andrescamacho/colonial-go/internal/application/project/commands"
	projectQueries "github.com/andrescamacho/colonial-go/internal/application/project/queries"
	"github.com/andrescamacho/colonial-go/internal/domain/commodity"
	"github.com/andrescamacho/colonial-go/internal/domain/prefs"
	"github.com/andrescamacho/colonial-go/internal/domain/project"
	"github.com/andrescamacho/colonial-go/internal/domain/shared"
)

// HandlerRegistry holds all application dependencies for handler creation
type HandlerRegistry struct {
	projects  project.ProjectRepository
	carriers  project.CarrierRepository
	snapshots projectQueries.SnapshotStore
	search    *markets.SearchService
	prefs     *prefs.Preferences
	taxonomy  *commodity.Taxonomy
	clock     shared.Clock
}

// NewHandlerRegistry creates a new handler registry with required dependencies.
// snapshots may be nil; nil taxonomy and clock use the defaults.
func NewHandlerRegistry(
	projects project.ProjectRepository,
	carriers project.CarrierRepository,
	snapshots projectQueries.SnapshotStore,
	search *markets.SearchService,
	preferences *prefs.Preferences,
	taxonomy *commodity.Taxonomy,
	clock shared.Clock,
) *HandlerRegistry {
	// Default to real clock if not provided
	if clock == nil {
		clock = shared.NewRealClock()
	}
	if taxonomy == nil {
		taxonomy = commodity.Default()
	}

	return &HandlerRegistry{
		projects:  projects,
		carriers:  carriers,
		snapshots: snapshots,
		search:    search,
		prefs:     preferences,
		taxonomy:  taxonomy,
		clock:     clock,
	}
}

// RegisterAll registers every command and query handler with the mediator
func (r *HandlerRegistry) RegisterAll(m mediator.Mediator) error {
	if err := r.RegisterProjectHandlers(m); err != nil {
		return err
	}
	if err := r.RegisterCarrierHandlers(m); err != nil {
		return err
	}
	return r.RegisterMarketHandlers(m)
}

// RegisterProjectHandlers registers:
//   - GetCargoGridQuery → GetCargoGridHandler
//   - ListProjectsQuery → ListProjectsHandler
//   - GetProjectStatsQuery → GetProjectStatsHandler
//   - CreateProjectCommand, UpdateProjectCommand, DeliverCargoCommand and
//     SaveDraftCommand → their handlers
func (r *HandlerRegistry) RegisterProjectHandlers(m mediator.Mediator) error {
	registrations := []func() error{
		func() error {
			return mediator.RegisterHandler[*projectQueries.GetCargoGridQuery](m,
				projectQueries.NewGetCargoGridHandler(r.projects, r.carriers, r.snapshots, r.taxonomy, r.clock))
		},
		func() error {
			return mediator.RegisterHandler[*projectQueries.ListProjectsQuery](m,
				projectQueries.NewListProjectsHandler(r.projects, r.prefs))
		},
		func() error {
			return mediator.RegisterHandler[*projectQueries.GetProjectStatsQuery](m,
				projectQueries.NewGetProjectStatsHandler(r.projects))
		},
		func() error {
			return mediator.RegisterHandler[*projectCommands.CreateProjectCommand](m,
				projectCommands.NewCreateProjectHandler(r.projects, r.prefs))
		},
		func() error {
			return mediator.RegisterHandler[*projectCommands.UpdateProjectCommand](m,
				projectCommands.NewUpdateProjectHandler(r.projects))
		},
		func() error {
			return mediator.RegisterHandler[*projectCommands.DeliverCargoCommand](m,
				projectCommands.NewDeliverCargoHandler(r.projects, r.prefs))
		},
		func() error {
			return mediator.RegisterHandler[*projectCommands.SaveDraftCommand](m,
				projectCommands.NewSaveDraftHandler(r.prefs))
		},
	}
	return runAll("project", registrations)
}

// RegisterCarrierHandlers registers the fleet carrier handlers
func (r *HandlerRegistry) RegisterCarrierHandlers(m mediator.Mediator) error {
	registrations := []func() error{
		func() error {
			return mediator.RegisterHandler[*carrierQueries.GetCarrierQuery](m,
				carrierQueries.NewGetCarrierHandler(r.carriers))
		},
		func() error {
			return mediator.RegisterHandler[*carrierCommands.UpdateCarrierCargoCommand](m,
				carrierCommands.NewUpdateCarrierCargoHandler(r.carriers))
		},
		func() error {
			return mediator.RegisterHandler[*carrierCommands.LinkCarrierCommand](m,
				carrierCommands.NewLinkCarrierHandler(r.carriers))
		},
	}
	return runAll("carrier", registrations)
}

// RegisterMarketHandlers registers FindMarketsQuery
func (r *HandlerRegistry) RegisterMarketHandlers(m mediator.Mediator) error {
	if r.search == nil {
		return fmt.Errorf("market handlers need a search service")
	}
	return mediator.RegisterHandler[*markets.FindMarketsQuery](m,
		markets.NewFindMarketsHandler(r.projects, r.carriers, r.search))
}

func runAll(group string, registrations []func() error) error {
	for _, register := range registrations {
		if err := register(); err != nil {
			return fmt.Errorf("failed to register %s handlers: %w", group, err)
		}
	}
	return nil
}
