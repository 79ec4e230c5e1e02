package queries

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/andrescamacho/colonial-go/internal/application/common"
	"github.com/andrescamacho/colonial-go/internal/application/mediator"
	"github.com/andrescamacho/colonial-go/internal/domain/cargo"
	"github.com/andrescamacho/colonial-go/internal/domain/commodity"
	"github.com/andrescamacho/colonial-go/internal/domain/project"
	"github.com/andrescamacho/colonial-go/internal/domain/shared"
	"github.com/andrescamacho/colonial-go/internal/infrastructure/logging"
)

// SnapshotStore keeps the last project payload fetched per build
type SnapshotStore interface {
	Save(ctx context.Context, p *project.Project) error
	Find(ctx context.Context, buildID string) (*project.Project, time.Time, error)
}

// GetCargoGridQuery asks for the reconciled commodity grid of a project
type GetCargoGridQuery struct {
	BuildID         string
	SortMode        commodity.SortMode
	IncludeCarriers bool
	// AllowStale serves the last stored snapshot when the backend fails
	AllowStale bool
}

// CargoRow is one rendered grid row: a group header or a reconciled commodity
type CargoRow struct {
	Label       string        `json:"label"`
	Header      bool          `json:"header,omitempty"`
	DisplayName string        `json:"displayName,omitempty"`
	Category    string        `json:"category,omitempty"`
	Line        *cargo.Line   `json:"line,omitempty"`
	PerCarrier  map[int64]int `json:"perCarrier,omitempty"`
}

// GetCargoGridResponse is the grid plus its summary figures
type GetCargoGridResponse struct {
	Project   *project.Project        `json:"project"`
	Carriers  []*project.FleetCarrier `json:"carriers,omitempty"`
	Rows      []CargoRow              `json:"rows"`
	Need      cargo.Map               `json:"need"`
	Have      cargo.Map               `json:"have"`
	OnHand    int                     `json:"onHand"`
	TotalNeed int                     `json:"totalNeed"`
	Progress  float64                 `json:"progress"`
	Stale     bool                    `json:"stale,omitempty"`
	FetchedAt time.Time               `json:"fetchedAt"`
}

// GetCargoGridHandler builds the cargo grid
type GetCargoGridHandler struct {
	projects  project.ProjectRepository
	carriers  project.CarrierRepository
	snapshots SnapshotStore
	taxonomy  *commodity.Taxonomy
	clock     shared.Clock
}

// NewGetCargoGridHandler creates a new handler. snapshots may be nil; a nil
// taxonomy uses the built-in one.
func NewGetCargoGridHandler(
	projects project.ProjectRepository,
	carriers project.CarrierRepository,
	snapshots SnapshotStore,
	taxonomy *commodity.Taxonomy,
	clock shared.Clock,
) *GetCargoGridHandler {
	if taxonomy == nil {
		taxonomy = commodity.Default()
	}
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &GetCargoGridHandler{
		projects:  projects,
		carriers:  carriers,
		snapshots: snapshots,
		taxonomy:  taxonomy,
		clock:     clock,
	}
}

// Handle executes the query
func (h *GetCargoGridHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*GetCargoGridQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetCargoGridQuery")
	}
	if query.BuildID == "" {
		return nil, shared.NewValidationError("buildId", "build id is required")
	}
	logger := common.LoggerFromContext(ctx).With(logging.String("build_id", query.BuildID))

	p, carriers, err := h.load(ctx, query)
	fetchedAt := h.clock.Now()
	stale := false
	if err != nil {
		if !query.AllowStale || h.snapshots == nil || errors.Is(err, project.ErrProjectNotFound) {
			return nil, err
		}
		snapshot, at, findErr := h.snapshots.Find(ctx, query.BuildID)
		if findErr != nil {
			return nil, err
		}
		logger.Warn("serving stale project snapshot", logging.Err(err), logging.Duration("age", h.clock.Now().Sub(at)))
		p, carriers, fetchedAt, stale = snapshot, nil, at, true
	} else if h.snapshots != nil {
		if err := h.snapshots.Save(ctx, p); err != nil {
			logger.Warn("failed to store project snapshot", logging.Err(err))
		}
	}

	return h.build(p, carriers, query.SortMode, fetchedAt, stale), nil
}

// load fetches the project, then every linked carrier's cargo concurrently.
// Any failure fails the whole load.
func (h *GetCargoGridHandler) load(ctx context.Context, query *GetCargoGridQuery) (*project.Project, []*project.FleetCarrier, error) {
	p, err := h.projects.GetProject(ctx, query.BuildID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load project %s: %w", query.BuildID, err)
	}
	if !query.IncludeCarriers || len(p.LinkedFC) == 0 {
		return p, nil, nil
	}

	carriers := make([]*project.FleetCarrier, len(p.LinkedFC))
	g, gctx := errgroup.WithContext(ctx)
	for i, link := range p.LinkedFC {
		g.Go(func() error {
			inv, err := h.carriers.GetFleetCarrierCargo(gctx, link.MarketID)
			if err != nil {
				return fmt.Errorf("failed to load carrier %d cargo: %w", link.MarketID, err)
			}
			carriers[i] = &project.FleetCarrier{MarketID: link.MarketID, Name: link.Name, Cargo: inv}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return p, carriers, nil
}

func (h *GetCargoGridHandler) build(
	p *project.Project,
	carriers []*project.FleetCarrier,
	mode commodity.SortMode,
	fetchedAt time.Time,
	stale bool,
) *GetCargoGridResponse {
	need := p.Need()
	inventories := make([]cargo.Map, len(carriers))
	for i, fc := range carriers {
		inventories[i] = fc.Cargo
	}
	have := cargo.Merge(inventories...)

	lines := make(map[string]cargo.Line)
	ids := make([]string, 0, len(need))
	for _, line := range cargo.Reconcile(need, have) {
		lines[line.ID] = line
		ids = append(ids, line.ID)
	}

	grouped := h.taxonomy.Group(ids, mode)
	rows := make([]CargoRow, 0, len(ids)+len(grouped.Groups))
	for _, entry := range commodity.Flatten(grouped) {
		if entry.IsHeader() {
			rows = append(rows, CargoRow{Label: entry.Label, Header: true})
			continue
		}
		line := lines[entry.ID]
		row := CargoRow{
			Label:       entry.Label,
			DisplayName: h.taxonomy.DisplayName(entry.ID),
			Category:    string(h.taxonomy.Classify(entry.ID)),
			Line:        &line,
		}
		if len(carriers) > 0 {
			row.PerCarrier = make(map[int64]int, len(carriers))
			for _, fc := range carriers {
				row.PerCarrier[fc.MarketID] = fc.Cargo.Get(entry.ID)
			}
		}
		rows = append(rows, row)
	}

	return &GetCargoGridResponse{
		Project:   p,
		Carriers:  carriers,
		Rows:      rows,
		Need:      need,
		Have:      have,
		OnHand:    cargo.OnHandCount(need, have),
		TotalNeed: cargo.TotalNeed(need),
		Progress:  cargo.Progress(need, have),
		Stale:     stale,
		FetchedAt: fetchedAt,
	}
}
