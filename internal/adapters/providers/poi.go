package providers

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/andrescamacho/colonial-go/internal/adapters/api"
	"github.com/andrescamacho/colonial-go/internal/domain/market"
	"github.com/andrescamacho/colonial-go/internal/domain/shared"
)

// POIClient queries the point-of-interest market search provider.
type POIClient struct {
	client *api.Client
	clock  shared.Clock
}

// NewPOIClient creates a client. If clock is nil, uses RealClock.
func NewPOIClient(client *api.Client, clock shared.Clock) *POIClient {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &POIClient{client: client, clock: clock}
}

// FindMarkets returns markets near the reference system that sell any of
// the criteria's commodities.
func (c *POIClient) FindMarkets(ctx context.Context, criteria market.Criteria) ([]market.MarketSummary, error) {
	q := url.Values{"system": {criteria.ReferenceSystem}}
	if len(criteria.Commodities) > 0 {
		q.Set("commodities", strings.Join(criteria.Commodities, ","))
	}
	if criteria.MaxDistance > 0 {
		q.Set("maxDistance", strconv.FormatFloat(criteria.MaxDistance, 'f', -1, 64))
	}
	if criteria.PadSize != "" {
		q.Set("pad", string(criteria.PadSize))
	}

	var resp struct {
		Markets []market.MarketSummary `json:"markets" validate:"dive"`
	}
	if err := c.client.Get(ctx, "/api/markets", "/api/markets", q, &resp); err != nil {
		return nil, fmt.Errorf("market search near %s failed: %w", criteria.ReferenceSystem, err)
	}
	return criteria.Filter(resp.Markets), nil
}

// SearchMarkets satisfies market.Searcher with this provider as the source.
func (c *POIClient) SearchMarkets(ctx context.Context, buildID string, criteria market.Criteria) (*market.FoundMarkets, error) {
	markets, err := c.FindMarkets(ctx, criteria)
	if err != nil {
		return nil, err
	}
	return &market.FoundMarkets{BuildID: buildID, PreparedAt: c.clock.Now(), Markets: markets}, nil
}
