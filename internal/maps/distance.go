package maps

import (
	"context"
	"errors"
	"fmt"

	"googlemaps.github.io/maps"

	"dispatch/internal/domain"
)

// ErrNoRoute is returned when Google finds no drivable route.
var ErrNoRoute = errors.New("no route found")

// DistanceMatrixClient is the part of *maps.Client the provider uses.
type DistanceMatrixClient interface {
	DistanceMatrix(ctx context.Context, r *maps.DistanceMatrixRequest) (*maps.DistanceMatrixResponse, error)
}

// DistanceProvider measures driving distance with the Distance Matrix API.
// Locations are addressed by name.
type DistanceProvider struct {
	client   DistanceMatrixClient
	language string
}

// NewDistanceProvider creates a DistanceProvider with the given API key.
func NewDistanceProvider(apiKey, language string) (*DistanceProvider, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return NewDistanceProviderWithClient(client, language), nil
}

// NewDistanceProviderWithClient creates a DistanceProvider around an existing client.
func NewDistanceProviderWithClient(client DistanceMatrixClient, language string) *DistanceProvider {
	return &DistanceProvider{client: client, language: language}
}

// DistanceMeters returns the driving distance between two locations in metres.
func (p *DistanceProvider) DistanceMeters(ctx context.Context, origin, destination domain.Location) (int64, error) {
	req := &maps.DistanceMatrixRequest{
		Origins:      []string{origin.Name},
		Destinations: []string{destination.Name},
		Mode:         maps.TravelModeDriving,
		Units:        maps.UnitsMetric,
		Language:     p.language,
	}

	resp, err := p.client.DistanceMatrix(ctx, req)
	if err != nil {
		return 0, fmt.Errorf("maps api error: %w", err)
	}

	if len(resp.Rows) == 0 || len(resp.Rows[0].Elements) == 0 {
		return 0, ErrNoRoute
	}

	element := resp.Rows[0].Elements[0]
	if element.Status != "OK" {
		return 0, fmt.Errorf("%w: %s to %s: %s", ErrNoRoute, origin.Name, destination.Name, element.Status)
	}

	return int64(element.Distance.Meters), nil
}
