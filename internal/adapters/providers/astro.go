package providers

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/andrescamacho/colonial-go/internal/adapters/api"
	"github.com/andrescamacho/colonial-go/internal/domain/market"
)

// Coords are galactic coordinates in light years.
type Coords struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// System is an astrographical system record.
type System struct {
	Name   string `json:"name" validate:"required"`
	ID64   int64  `json:"id64" validate:"required"`
	Coords Coords `json:"coords"`
}

// Station is a dockable station in a system.
type Station struct {
	Name              string         `json:"name" validate:"required"`
	MarketID          int64          `json:"marketId"`
	Type              string         `json:"type"`
	DistanceToArrival float64        `json:"distanceToArrival" validate:"gte=0"`
	PadSize           market.PadSize `json:"padSize,omitempty"`
	Economy           string         `json:"economy,omitempty"`
}

// AstroClient queries the astrographical data provider.
type AstroClient struct {
	client *api.Client
}

// NewAstroClient creates a client on top of a configured HTTP client.
func NewAstroClient(client *api.Client) *AstroClient {
	return &AstroClient{client: client}
}

// minTypeahead is the shortest prefix worth sending.
const minTypeahead = 2

// SearchSystems returns system names starting with prefix.
func (c *AstroClient) SearchSystems(ctx context.Context, prefix string) ([]string, error) {
	prefix = strings.TrimSpace(prefix)
	if len(prefix) < minTypeahead {
		return nil, nil
	}
	var resp struct {
		Values []string `json:"values"`
	}
	q := url.Values{"q": {prefix}}
	if err := c.client.Get(ctx, "/api/v1/typeahead", "/api/v1/typeahead", q, &resp); err != nil {
		return nil, fmt.Errorf("system typeahead for %q failed: %w", prefix, err)
	}
	return resp.Values, nil
}

// GetSystem fetches one system with its coordinates.
func (c *AstroClient) GetSystem(ctx context.Context, name string) (*System, error) {
	var sys System
	path := "/api/v1/system/" + url.PathEscape(name)
	if err := c.client.Get(ctx, "/api/v1/system/{name}", path, nil, &sys); err != nil {
		return nil, fmt.Errorf("failed to get system %s: %w", name, err)
	}
	return &sys, nil
}

// ListStations lists the stations in a system.
func (c *AstroClient) ListStations(ctx context.Context, name string) ([]Station, error) {
	var resp struct {
		Stations []Station `json:"stations" validate:"dive"`
	}
	path := "/api/v1/system/" + url.PathEscape(name) + "/stations"
	if err := c.client.Get(ctx, "/api/v1/system/{name}/stations", path, nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to list stations in %s: %w", name, err)
	}
	return resp.Stations, nil
}
