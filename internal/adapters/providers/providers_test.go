package providers_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/colonial-go/internal/adapters/api"
	"github.com/andrescamacho/colonial-go/internal/adapters/providers"
	"github.com/andrescamacho/colonial-go/internal/domain/market"
	"github.com/andrescamacho/colonial-go/internal/domain/shared"
)

func newClient(t *testing.T, handler http.HandlerFunc) *api.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return api.NewClient(api.Options{
		BaseURL:           server.URL,
		RequestsPerSecond: 1000,
		Burst:             1000,
		BackoffBase:       time.Millisecond,
		Clock:             shared.NewMockClock(time.Time{}),
	})
}

func TestAstro_SearchSystems(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Col 2", r.URL.Query().Get("q"))
		_, _ = io.WriteString(w, `{"values": ["Col 285 Sector AB-C", "Col 285 Sector XY-Z"]}`)
	})
	astro := providers.NewAstroClient(client)

	names, err := astro.SearchSystems(context.Background(), " Col 2 ")
	require.NoError(t, err)
	assert.Len(t, names, 2)

	none, err := astro.SearchSystems(context.Background(), "C")
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestAstro_GetSystemAndStations(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/system/Sol":
			_, _ = io.WriteString(w, `{"name": "Sol", "id64": 10477373803, "coords": {"x": 0, "y": 0, "z": 0}}`)
		case "/api/v1/system/Sol/stations":
			_, _ = io.WriteString(w, `{"stations": [{"name": "Abraham Lincoln", "marketId": 128016640, "padSize": "L"}]}`)
		default:
			http.NotFound(w, r)
		}
	})
	astro := providers.NewAstroClient(client)

	sys, err := astro.GetSystem(context.Background(), "Sol")
	require.NoError(t, err)
	assert.Equal(t, int64(10477373803), sys.ID64)

	stations, err := astro.ListStations(context.Background(), "Sol")
	require.NoError(t, err)
	require.Len(t, stations, 1)
	assert.Equal(t, market.PadLarge, stations[0].PadSize)

	_, err = astro.GetSystem(context.Background(), "Nowhere")
	assert.Equal(t, http.StatusNotFound, api.StatusCode(err))
}

func TestPOI_SearchMarketsAppliesFilters(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "steel,water", r.URL.Query().Get("commodities"))
		_, _ = io.WriteString(w, `{"markets": [
			{"marketId": 1, "stationName": "Near", "systemName": "Sol", "distance": 2, "supplies": {"steel": 5}},
			{"marketId": 2, "stationName": "Ground", "systemName": "Sol", "distance": 2, "surface": true, "supplies": {"water": 5}}
		]}`)
	})
	clock := shared.NewMockClock(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))
	poi := providers.NewPOIClient(client, clock)

	found, err := poi.SearchMarkets(context.Background(), "x1y2", market.Criteria{
		ReferenceSystem: "Sol",
		NoSurface:       true,
		Commodities:     []string{"steel", "water"},
	})

	require.NoError(t, err)
	assert.Equal(t, "x1y2", found.BuildID)
	assert.Equal(t, clock.Now(), found.PreparedAt)
	require.Len(t, found.Markets, 1)
	assert.Equal(t, "Near", found.Markets[0].StationName)
}

func TestBodies_Survey(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"bodyCount": 3, "bodies": [
			{"name": "A 1", "isLandable": true, "bioSignals": 2, "geoSignals": 1},
			{"name": "A 2", "bioSignals": 1},
			{"name": "A 3", "isLandable": true, "geoSignals": 4}
		]}`)
	})

	survey, err := providers.NewBodiesClient(client).GetBodies(context.Background(), "Col 285 Sector AB-C")

	require.NoError(t, err)
	assert.Equal(t, "Col 285 Sector AB-C", survey.SystemName)
	assert.Equal(t, 3, survey.BioSignals())
	assert.Equal(t, 5, survey.GeoSignals())
	assert.Len(t, survey.Landable(), 2)
}
