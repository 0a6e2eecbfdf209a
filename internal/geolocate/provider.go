// Package geolocate abstracts the device-positioning capability. In the
// browser original this is the geolocation API; here it is an injected
// provider so the orchestrator can run against a static position or a
// test double.
package geolocate

import (
	"context"
	"fmt"

	"github.com/skycast-io/skycast/internal/apierr"
)

type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Provider yields the current device position. Failures (permission denied,
// unavailable) carry the geolocation error kind.
type Provider interface {
	Locate(ctx context.Context) (Coordinates, error)
}

// Static always returns a fixed position, typically the configured default.
type Static struct {
	Coords Coordinates
}

func NewStatic(lat, lon float64) *Static {
	return &Static{Coords: Coordinates{Latitude: lat, Longitude: lon}}
}

func (s *Static) Locate(ctx context.Context) (Coordinates, error) {
	return s.Coords, nil
}

// Func adapts a function to the Provider interface.
type Func func(ctx context.Context) (Coordinates, error)

func (f Func) Locate(ctx context.Context) (Coordinates, error) {
	return f(ctx)
}

// Unavailable is a provider for environments with no positioning source at
// all; every call fails with a geolocation error.
type Unavailable struct{}

func (Unavailable) Locate(ctx context.Context) (Coordinates, error) {
	return Coordinates{}, apierr.Geolocation("geolocate.Locate", fmt.Errorf("no positioning source available"))
}
