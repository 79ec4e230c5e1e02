package cache_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/colonial-go/internal/adapters/cache"
	"github.com/andrescamacho/colonial-go/internal/domain/cargo"
	"github.com/andrescamacho/colonial-go/internal/domain/market"
)

type countingSearcher struct {
	calls int
}

func (s *countingSearcher) SearchMarkets(_ context.Context, buildID string, _ market.Criteria) (*market.FoundMarkets, error) {
	s.calls++
	return &market.FoundMarkets{
		BuildID:    buildID,
		PreparedAt: time.Date(3310, 5, 1, 0, 0, 0, 0, time.UTC),
		Markets: []market.MarketSummary{{
			MarketID:    1,
			StationName: "Ohm Port",
			SystemName:  "Col 285 Sector AB-C d1",
			Supplies:    cargo.Map{"steel": 1000},
		}},
	}, nil
}

func newTestCache(t *testing.T, primary market.Searcher) *cache.MarketSearchCache {
	t.Helper()
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set")
	}
	rdb, err := cache.NewRedisClient(context.Background(), url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })
	return cache.NewMarketSearchCache(primary, rdb, time.Minute, "colonial:test:"+uuid.NewString()+":")
}

func TestMarketSearchCache_ReadThrough(t *testing.T) {
	// Arrange
	primary := &countingSearcher{}
	c := newTestCache(t, primary)
	ctx := context.Background()
	criteria := market.Criteria{ReferenceSystem: "Sol", Commodities: []string{"steel"}}

	// Act
	first, err := c.SearchMarkets(ctx, "b1", criteria)
	require.NoError(t, err)
	second, err := c.SearchMarkets(ctx, "b1", criteria)
	require.NoError(t, err)

	// Assert
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, first.Markets[0].StationName, second.Markets[0].StationName)
	assert.Equal(t, 1000, second.Markets[0].Supplies["steel"])
}

func TestMarketSearchCache_Invalidate(t *testing.T) {
	// Arrange
	primary := &countingSearcher{}
	c := newTestCache(t, primary)
	ctx := context.Background()
	criteria := market.Criteria{ReferenceSystem: "Sol"}
	_, err := c.SearchMarkets(ctx, "b1", criteria)
	require.NoError(t, err)

	// Act
	require.NoError(t, c.Invalidate(ctx, "b1"))
	_, err = c.SearchMarkets(ctx, "b1", criteria)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 2, primary.calls)
}
