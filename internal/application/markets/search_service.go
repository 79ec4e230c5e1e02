package markets

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/andrescamacho/colonial-go/internal/adapters/cache"
	"github.com/andrescamacho/colonial-go/internal/adapters/metrics"
	"github.com/andrescamacho/colonial-go/internal/application/common"
	"github.com/andrescamacho/colonial-go/internal/domain/market"
	"github.com/andrescamacho/colonial-go/internal/domain/prefs"
	"github.com/andrescamacho/colonial-go/internal/domain/shared"
	"github.com/andrescamacho/colonial-go/internal/infrastructure/logging"
)

// SourceBackend is the colonization backend search; it is the default source
const SourceBackend = "backend"

// SourcePOI is the third-party points-of-interest search
const SourcePOI = "poi"

// SearchService runs market searches for the active project. Results are
// memoized per build and criteria; activating another build discards them.
type SearchService struct {
	sources  map[string]market.Searcher
	prefs    *prefs.Preferences
	clock    shared.Clock
	validate *validator.Validate

	mu     sync.Mutex
	active string
	memo   cache.Memo[string, *market.FoundMarkets]
}

// NewSearchService creates a service over named sources. preferences may be
// nil, in which case searches are not persisted.
func NewSearchService(sources map[string]market.Searcher, preferences *prefs.Preferences, clock shared.Clock) *SearchService {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &SearchService{
		sources:  sources,
		prefs:    preferences,
		clock:    clock,
		validate: validator.New(),
	}
}

// Sources lists the configured source names.
func (s *SearchService) Sources() []string {
	names := make([]string, 0, len(s.sources))
	for name := range s.sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Activate makes buildID the active project, discarding memoized results of
// any other build.
func (s *SearchService) Activate(buildID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active != buildID {
		s.active = buildID
		s.memo.Invalidate()
	}
}

// Active returns the active build id.
func (s *SearchService) Active() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Search activates buildID and searches source (empty means backend). A
// search that finds nothing returns market.ErrNoSearchResults; a search that
// completes after another build was activated returns market.ErrStaleResults.
func (s *SearchService) Search(ctx context.Context, buildID, source string, criteria market.Criteria) (*market.FoundMarkets, error) {
	if err := s.validate.Struct(criteria); err != nil {
		return nil, shared.NewValidationError("criteria", err.Error())
	}
	if source == "" {
		source = SourceBackend
	}
	searcher, ok := s.sources[source]
	if !ok {
		return nil, shared.NewValidationError("source", fmt.Sprintf("unknown market source %q", source))
	}

	s.Activate(buildID)
	logger := common.LoggerFromContext(ctx).With(
		logging.String("build_id", buildID),
		logging.String("source", source))

	key := source + "|" + buildID + "|" + criteria.Key()
	loaded := false
	found, err := s.memo.Get(key, func() (*market.FoundMarkets, error) {
		loaded = true
		start := s.clock.Now()
		found, err := searcher.SearchMarkets(ctx, buildID, criteria)
		count := 0
		if found != nil {
			count = len(found.Markets)
		}
		metrics.RecordMarketSearch(source, count, s.clock.Now().Sub(start).Seconds(), err)
		if err != nil {
			return nil, err
		}
		if found.BuildID == "" {
			found.BuildID = buildID
		}
		if found.PreparedAt.IsZero() {
			found.PreparedAt = s.clock.Now()
		}
		return found, nil
	})
	metrics.RecordSearchCache(!loaded)
	if err != nil {
		logger.Warn("market search failed", logging.Err(err))
		return nil, err
	}

	if s.Active() != buildID || !found.ValidFor(buildID) {
		return nil, market.ErrStaleResults
	}
	if len(found.Markets) == 0 {
		return nil, market.ErrNoSearchResults
	}

	if s.prefs != nil {
		if err := s.prefs.SaveSearch(ctx, buildID, prefs.SearchState{Criteria: criteria, Results: found}); err != nil {
			logger.Warn("failed to store market search", logging.Err(err))
		}
	}
	return found, nil
}

// Cached returns the last search stored for buildID, if any. Stored results
// of another build are never returned.
func (s *SearchService) Cached(ctx context.Context, buildID string) (market.Criteria, *market.FoundMarkets, error) {
	s.Activate(buildID)
	if s.prefs == nil {
		return market.Criteria{}, nil, market.ErrNoSearchResults
	}
	state, ok, err := s.prefs.Search(ctx, buildID)
	if err != nil {
		return market.Criteria{}, nil, fmt.Errorf("failed to read stored search: %w", err)
	}
	if !ok || state.Results == nil || len(state.Results.Markets) == 0 {
		return state.Criteria, nil, market.ErrNoSearchResults
	}
	return state.Criteria, state.Results, nil
}
