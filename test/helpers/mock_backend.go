package helpers

import (
	"context"
	"fmt"
	"sync"

	"github.com/andrescamacho/colonial-go/internal/domain/cargo"
	"github.com/andrescamacho/colonial-go/internal/domain/market"
	"github.com/andrescamacho/colonial-go/internal/domain/project"
)

// MockBackend is a test double for the colonization backend. It implements
// project.ProjectRepository, project.CarrierRepository and market.Searcher.
type MockBackend struct {
	mu         sync.RWMutex
	projects   map[string]*project.Project
	carriers   map[int64]*project.FleetCarrier
	stats      map[string]*project.Stats
	markets    map[string]*market.FoundMarkets // buildID -> search result
	deliveries []project.Delivery
	calls      map[string]int

	// Err, when set, is returned by every call
	Err error
	// ProjectErr, when set, is returned by GetProject only
	ProjectErr error
	// OnGetProject runs on every GetProject before the lookup
	OnGetProject func(buildID string)
}

// NewMockBackend creates an empty mock backend
func NewMockBackend() *MockBackend {
	return &MockBackend{
		projects: make(map[string]*project.Project),
		carriers: make(map[int64]*project.FleetCarrier),
		stats:    make(map[string]*project.Stats),
		markets:  make(map[string]*market.FoundMarkets),
		calls:    make(map[string]int),
	}
}

// AddProject stores a project
func (m *MockBackend) AddProject(p *project.Project) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.projects[p.BuildID] = p
}

// SetNeed replaces a stored project's commodity need
func (m *MockBackend) SetNeed(buildID string, need cargo.Map) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.projects[buildID]; ok {
		updated := *p
		updated.Commodities = need.Clone()
		m.projects[buildID] = &updated
	}
}

// AddCarrier stores a fleet carrier with its cargo
func (m *MockBackend) AddCarrier(fc *project.FleetCarrier) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.carriers[fc.MarketID] = fc
}

// SetMarkets stores the result returned by SearchMarkets for a build
func (m *MockBackend) SetMarkets(buildID string, found *market.FoundMarkets) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.markets[buildID] = found
}

// SetStats stores delivery stats for a build
func (m *MockBackend) SetStats(s *project.Stats) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats[s.BuildID] = s
}

// Deliveries returns the recorded contributions
func (m *MockBackend) Deliveries() []project.Delivery {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]project.Delivery(nil), m.deliveries...)
}

// Calls returns how often an operation was invoked
func (m *MockBackend) Calls(op string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.calls[op]
}

func (m *MockBackend) record(op string) error {
	m.calls[op]++
	return m.Err
}

// GetProject retrieves a project by build id
func (m *MockBackend) GetProject(ctx context.Context, buildID string) (*project.Project, error) {
	if m.OnGetProject != nil {
		m.OnGetProject(buildID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("GetProject"); err != nil {
		return nil, err
	}
	if m.ProjectErr != nil {
		return nil, m.ProjectErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p, ok := m.projects[buildID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", project.ErrProjectNotFound, buildID)
	}
	copied := *p
	copied.Commodities = p.Commodities.Clone()
	return &copied, nil
}

// CreateProject stores a project built from the draft
func (m *MockBackend) CreateProject(ctx context.Context, draft project.Draft) (*project.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("CreateProject"); err != nil {
		return nil, err
	}
	for _, p := range m.projects {
		if p.MarketID == draft.MarketID {
			return nil, project.ErrProjectExists
		}
	}
	p := &project.Project{
		BuildID:       fmt.Sprintf("b%d", len(m.projects)+1),
		BuildName:     draft.BuildName,
		BuildType:     draft.BuildType,
		MarketID:      draft.MarketID,
		SystemName:    draft.SystemName,
		ArchitectName: draft.ArchitectName,
		Commodities:   cargo.Map{},
	}
	m.projects[p.BuildID] = p
	return p, nil
}

// UpdateProject applies a patch
func (m *MockBackend) UpdateProject(ctx context.Context, buildID string, patch project.Patch) (*project.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("UpdateProject"); err != nil {
		return nil, err
	}
	p, ok := m.projects[buildID]
	if !ok {
		return nil, project.ErrProjectNotFound
	}
	updated := *p
	if patch.BuildName != nil {
		updated.BuildName = *patch.BuildName
	}
	if patch.ArchitectName != nil {
		updated.ArchitectName = *patch.ArchitectName
	}
	if patch.Notes != nil {
		updated.Notes = *patch.Notes
	}
	if patch.Commodities != nil {
		updated.Commodities = patch.Commodities.Clone()
	}
	m.projects[buildID] = &updated
	return &updated, nil
}

// ListSystemProjects lists projects by system name
func (m *MockBackend) ListSystemProjects(ctx context.Context, systemName string) ([]project.Ref, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("ListSystemProjects"); err != nil {
		return nil, err
	}
	var refs []project.Ref
	for _, p := range m.projects {
		if p.SystemName == systemName {
			refs = append(refs, p.Ref())
		}
	}
	return refs, nil
}

// ListCommanderProjects lists projects a commander is assigned to
func (m *MockBackend) ListCommanderProjects(ctx context.Context, cmdr string) ([]project.Ref, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("ListCommanderProjects"); err != nil {
		return nil, err
	}
	var refs []project.Ref
	for _, p := range m.projects {
		if p.HasCommander(cmdr) {
			refs = append(refs, p.Ref())
		}
	}
	return refs, nil
}

// Contribute records a delivery and reduces the stored need
func (m *MockBackend) Contribute(ctx context.Context, delivery project.Delivery) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("Contribute"); err != nil {
		return err
	}
	p, ok := m.projects[delivery.BuildID]
	if !ok {
		return project.ErrProjectNotFound
	}
	m.deliveries = append(m.deliveries, delivery)
	updated := *p
	updated.Commodities = p.Commodities.Clone()
	for id, n := range delivery.Positive() {
		if have := updated.Commodities[id]; have > 0 {
			updated.Commodities[id] = max(have-n, 0)
		}
	}
	m.projects[delivery.BuildID] = &updated
	return nil
}

// GetProjectStats returns stored stats
func (m *MockBackend) GetProjectStats(ctx context.Context, buildID string) (*project.Stats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("GetProjectStats"); err != nil {
		return nil, err
	}
	s, ok := m.stats[buildID]
	if !ok {
		return nil, project.ErrProjectNotFound
	}
	return s, nil
}

// GetFleetCarrier retrieves a carrier
func (m *MockBackend) GetFleetCarrier(ctx context.Context, marketID int64) (*project.FleetCarrier, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("GetFleetCarrier"); err != nil {
		return nil, err
	}
	fc, ok := m.carriers[marketID]
	if !ok {
		return nil, project.ErrCarrierNotFound
	}
	copied := *fc
	copied.Cargo = nil
	return &copied, nil
}

// GetFleetCarrierCargo retrieves a carrier's inventory
func (m *MockBackend) GetFleetCarrierCargo(ctx context.Context, marketID int64) (cargo.Map, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("GetFleetCarrierCargo"); err != nil {
		return nil, err
	}
	fc, ok := m.carriers[marketID]
	if !ok {
		return nil, project.ErrCarrierNotFound
	}
	return fc.Cargo.Clone(), nil
}

// UpdateFleetCarrierCargo applies a delta to a carrier's inventory
func (m *MockBackend) UpdateFleetCarrierCargo(ctx context.Context, marketID int64, delta cargo.Map) (cargo.Map, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("UpdateFleetCarrierCargo"); err != nil {
		return nil, err
	}
	fc, ok := m.carriers[marketID]
	if !ok {
		return nil, project.ErrCarrierNotFound
	}
	fc.Cargo = project.ApplyDelta(fc.Cargo, delta)
	return fc.Cargo.Clone(), nil
}

// LinkFleetCarrier links a carrier to a project
func (m *MockBackend) LinkFleetCarrier(ctx context.Context, buildID string, marketID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("LinkFleetCarrier"); err != nil {
		return err
	}
	p, ok := m.projects[buildID]
	if !ok {
		return project.ErrProjectNotFound
	}
	fc, ok := m.carriers[marketID]
	if !ok {
		return project.ErrCarrierNotFound
	}
	if p.HasCarrier(marketID) {
		return nil
	}
	updated := *p
	updated.LinkedFC = append(append([]project.CarrierLink(nil), p.LinkedFC...), project.CarrierLink{MarketID: marketID, Name: fc.Name})
	m.projects[buildID] = &updated
	return nil
}

// UnlinkFleetCarrier removes a carrier link
func (m *MockBackend) UnlinkFleetCarrier(ctx context.Context, buildID string, marketID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("UnlinkFleetCarrier"); err != nil {
		return err
	}
	p, ok := m.projects[buildID]
	if !ok {
		return project.ErrProjectNotFound
	}
	updated := *p
	updated.LinkedFC = nil
	for _, link := range p.LinkedFC {
		if link.MarketID != marketID {
			updated.LinkedFC = append(updated.LinkedFC, link)
		}
	}
	m.projects[buildID] = &updated
	return nil
}

// SearchMarkets returns the stored result for a build
func (m *MockBackend) SearchMarkets(ctx context.Context, buildID string, criteria market.Criteria) (*market.FoundMarkets, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("SearchMarkets"); err != nil {
		return nil, err
	}
	found, ok := m.markets[buildID]
	if !ok {
		return &market.FoundMarkets{BuildID: buildID}, nil
	}
	copied := *found
	copied.Markets = criteria.Filter(found.Markets)
	return &copied, nil
}
