package main

import (
	"context"
	"errors"

	"dispatch/internal/domain"
)

// unavailableDistance stands in for the maps provider when no API key is set.
type unavailableDistance struct{}

func (unavailableDistance) DistanceMeters(context.Context, domain.Location, domain.Location) (int64, error) {
	return 0, errors.New("distance lookup not configured")
}
