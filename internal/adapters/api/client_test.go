package api_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/colonial-go/internal/adapters/api"
	"github.com/andrescamacho/colonial-go/internal/domain/cargo"
	"github.com/andrescamacho/colonial-go/internal/domain/market"
	"github.com/andrescamacho/colonial-go/internal/domain/project"
	"github.com/andrescamacho/colonial-go/internal/domain/shared"
)

func newTestRepo(t *testing.T, handler http.HandlerFunc) (*api.ProjectAPIRepository, *api.Client) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := api.NewClient(api.Options{
		BaseURL:           server.URL,
		RequestsPerSecond: 1000,
		Burst:             1000,
		MaxRetries:        2,
		BackoffBase:       time.Millisecond,
		BreakerFailures:   3,
		BreakerTimeout:    time.Minute,
		Clock:             shared.NewMockClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)),
	})
	return api.NewProjectRepository(client), client
}

const projectJSON = `{
	"buildId": "x1y2",
	"buildName": "Hub",
	"buildType": "coriolis",
	"marketId": 3700012,
	"systemName": "Col 285 Sector",
	"maxNeed": 1000,
	"commodities": {"steel": 600, "water": -1},
	"linkedFC": [{"marketId": 3701, "name": "Ursa"}]
}`

func TestGetProject_DecodesTypedPayload(t *testing.T) {
	repo, _ := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/project/x1y2", r.URL.Path)
		_, _ = io.WriteString(w, projectJSON)
	})

	p, err := repo.GetProject(context.Background(), "x1y2")

	require.NoError(t, err)
	assert.Equal(t, "Hub", p.BuildName)
	assert.Equal(t, cargo.Map{"steel": 600, "water": cargo.Unknown}, p.Commodities)
	assert.Equal(t, []int64{3701}, p.CarrierIDs())
}

func TestGetProject_MalformedPayloadIsRejected(t *testing.T) {
	repo, _ := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"buildId": "x1y2", "commodities": {}}`)
	})

	_, err := repo.GetProject(context.Background(), "x1y2")

	assert.ErrorIs(t, err, api.ErrMalformedPayload)
}

func TestGetProject_NotFound(t *testing.T) {
	repo, _ := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such build", http.StatusNotFound)
	})

	_, err := repo.GetProject(context.Background(), "nope")

	assert.ErrorIs(t, err, project.ErrProjectNotFound)
}

func TestGet_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	repo, _ := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = io.WriteString(w, projectJSON)
	})

	_, err := repo.GetProject(context.Background(), "x1y2")

	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
}

func TestGet_GivesUpAfterMaxRetries(t *testing.T) {
	var calls atomic.Int32
	repo, _ := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Retry-After", "1")
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := repo.GetProject(context.Background(), "x1y2")

	require.Error(t, err)
	assert.Equal(t, http.StatusTooManyRequests, api.StatusCode(err))
	assert.Equal(t, int32(3), calls.Load())
}

func TestMutations_AreNotRetried(t *testing.T) {
	var calls atomic.Int32
	repo, _ := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "backend down", http.StatusBadGateway)
	})

	err := repo.Contribute(context.Background(), project.Delivery{BuildID: "x1y2", Cmdr: "Jameson", Cargo: cargo.Map{"steel": 5}})

	require.Error(t, err)
	assert.Equal(t, http.StatusBadGateway, api.StatusCode(err))
	assert.Contains(t, err.Error(), "backend down")
	assert.Equal(t, int32(1), calls.Load())
}

func TestContribute_AcceptedWithoutBody(t *testing.T) {
	repo, _ := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/project/x1y2/contribute/Jameson", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("Idempotency-Key"))
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"steel": 5}`, string(body))
		w.WriteHeader(http.StatusAccepted)
	})

	err := repo.Contribute(context.Background(), project.Delivery{
		BuildID: "x1y2", Cmdr: "Jameson", Cargo: cargo.Map{"steel": 5, "water": 0},
	})

	assert.NoError(t, err)
}

func TestGetProject_AcceptedWithoutBodyIsAnError(t *testing.T) {
	repo, client := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})

	p, err := repo.GetProject(context.Background(), "x1y2")

	assert.ErrorIs(t, err, api.ErrAccepted)
	assert.Nil(t, p)
	assert.Equal(t, api.CircuitClosed, client.Breaker().State())
}

func TestCreateProject_AcceptedWithoutBodyIsAnError(t *testing.T) {
	repo, _ := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		w.WriteHeader(http.StatusAccepted)
	})

	p, err := repo.CreateProject(context.Background(), project.Draft{BuildName: "Hub", BuildType: "coriolis", MarketID: 37})

	assert.ErrorIs(t, err, api.ErrAccepted)
	assert.Nil(t, p)
}

func TestUpdateProject_AcceptedReadsTheProjectBack(t *testing.T) {
	var reads atomic.Int32
	repo, _ := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPatch {
			w.WriteHeader(http.StatusAccepted)
			return
		}
		reads.Add(1)
		_, _ = io.WriteString(w, projectJSON)
	})
	name := "Hub"

	p, err := repo.UpdateProject(context.Background(), "x1y2", project.Patch{BuildName: &name})

	require.NoError(t, err)
	assert.Equal(t, "x1y2", p.BuildID)
	assert.Equal(t, int32(1), reads.Load())
}

func TestContribute_ValidationBlocksTheRequest(t *testing.T) {
	var calls atomic.Int32
	repo, _ := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	})

	err := repo.Contribute(context.Background(), project.Delivery{BuildID: "x1y2"})

	assert.True(t, shared.IsValidationError(err))
	assert.Zero(t, calls.Load())
}

func TestCreateProject_ConflictIsProjectExists(t *testing.T) {
	repo, _ := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "project already exists at this market", http.StatusConflict)
	})

	_, err := repo.CreateProject(context.Background(), project.Draft{BuildName: "Hub", BuildType: "coriolis", MarketID: 37})

	assert.ErrorIs(t, err, project.ErrProjectExists)
	apiErr, ok := api.AsAPIError(err)
	require.True(t, ok)
	assert.True(t, apiErr.IsConflict())
}

func TestAPIError_UpstreamAuthFailure(t *testing.T) {
	repo, _ := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	_, err := repo.ListCommanderProjects(context.Background(), "Jameson")

	apiErr, ok := api.AsAPIError(err)
	require.True(t, ok)
	assert.True(t, apiErr.IsUpstreamAuthFailure())
	assert.Contains(t, apiErr.Error(), "I'm a teapot")
}

func TestOtherSuccessStatusesAreFailures(t *testing.T) {
	repo, _ := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	err := repo.LinkFleetCarrier(context.Background(), "x1y2", 3701)

	assert.Equal(t, http.StatusNoContent, api.StatusCode(err))
}

func TestFleetCarrierCargo_RejectsInvalidCounts(t *testing.T) {
	repo, _ := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"steel": -7}`)
	})

	_, err := repo.GetFleetCarrierCargo(context.Background(), 3701)

	assert.ErrorIs(t, err, api.ErrMalformedPayload)
}

func TestSearchMarkets(t *testing.T) {
	repo, _ := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		_, _ = io.WriteString(w, `{
			"preparedAt": "2025-01-01T00:00:00Z",
			"markets": [{"marketId": 1, "stationName": "Hub", "systemName": "Sol", "distance": 3.5,
				"distanceToArrival": 12, "supplies": {"steel": 100}, "prices": {"steel": "123.5"}}]
		}`)
	})

	found, err := repo.SearchMarkets(context.Background(), "x1y2", market.Criteria{ReferenceSystem: "Sol"})

	require.NoError(t, err)
	assert.Equal(t, "x1y2", found.BuildID)
	require.Len(t, found.Markets, 1)
	assert.Equal(t, "123.5", found.Markets[0].Prices["steel"].String())
}

func TestCircuitBreaker_OpensOnServerErrorsOnly(t *testing.T) {
	status := atomic.Int32{}
	status.Store(http.StatusBadRequest)
	repo, client := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(int(status.Load()))
	})
	delivery := project.Delivery{BuildID: "x1y2", Cmdr: "Jameson", Cargo: cargo.Map{"steel": 1}}

	for i := 0; i < 5; i++ {
		_ = repo.Contribute(context.Background(), delivery)
	}
	assert.Equal(t, api.CircuitClosed, client.Breaker().State())

	status.Store(http.StatusInternalServerError)
	for i := 0; i < 3; i++ {
		_ = repo.Contribute(context.Background(), delivery)
	}
	assert.Equal(t, api.CircuitOpen, client.Breaker().State())

	err := repo.Contribute(context.Background(), delivery)
	assert.True(t, errors.Is(err, api.ErrCircuitOpen))
}
