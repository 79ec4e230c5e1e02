package market

import "context"

// Searcher finds candidate markets for a project.
type Searcher interface {
	SearchMarkets(ctx context.Context, buildID string, criteria Criteria) (*FoundMarkets, error)
}
