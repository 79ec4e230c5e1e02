package providers

import (
	"context"
	"fmt"
	"net/url"

	"github.com/andrescamacho/colonial-go/internal/adapters/api"
)

// Body is one celestial body from the survey provider.
type Body struct {
	Name              string  `json:"name" validate:"required"`
	Type              string  `json:"type"`
	SubType           string  `json:"subType,omitempty"`
	DistanceToArrival float64 `json:"distanceToArrival"`
	Landable          bool    `json:"isLandable"`
	BioSignals        int     `json:"bioSignals"`
	GeoSignals        int     `json:"geoSignals"`
}

// BodySurvey is the body listing of one system.
type BodySurvey struct {
	SystemName string `json:"name"`
	BodyCount  int    `json:"bodyCount" validate:"gte=0"`
	Bodies     []Body `json:"bodies" validate:"dive"`
}

// BioSignals totals biological signals across bodies.
func (s *BodySurvey) BioSignals() int {
	total := 0
	for _, b := range s.Bodies {
		total += b.BioSignals
	}
	return total
}

// GeoSignals totals geological signals across bodies.
func (s *BodySurvey) GeoSignals() int {
	total := 0
	for _, b := range s.Bodies {
		total += b.GeoSignals
	}
	return total
}

// Landable lists the landable bodies.
func (s *BodySurvey) Landable() []Body {
	var out []Body
	for _, b := range s.Bodies {
		if b.Landable {
			out = append(out, b)
		}
	}
	return out
}

// BodiesClient queries the body survey provider.
type BodiesClient struct {
	client *api.Client
}

// NewBodiesClient creates a client.
func NewBodiesClient(client *api.Client) *BodiesClient {
	return &BodiesClient{client: client}
}

// GetBodies fetches the body survey of a system.
func (c *BodiesClient) GetBodies(ctx context.Context, systemName string) (*BodySurvey, error) {
	var survey BodySurvey
	q := url.Values{"systemName": {systemName}}
	if err := c.client.Get(ctx, "/api-system-v1/bodies", "/api-system-v1/bodies", q, &survey); err != nil {
		return nil, fmt.Errorf("failed to get bodies of %s: %w", systemName, err)
	}
	if survey.SystemName == "" {
		survey.SystemName = systemName
	}
	return &survey, nil
}
