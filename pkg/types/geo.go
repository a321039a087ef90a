package types

import (
	"context"

	"github.com/google/uuid"
)

// Country is the reference a reverse geocoder resolves coordinates to.
type Country struct {
	ID     uuid.UUID
	Code   string
	Name   string
	MinLat float64
	MaxLat float64
	MinLng float64
	MaxLng float64
}

// Contains reports whether the point falls inside the country bounding box.
func (c Country) Contains(lat, lng float64) bool {
	return lat >= c.MinLat && lat <= c.MaxLat && lng >= c.MinLng && lng <= c.MaxLng
}

// ReverseGeocoder resolves coordinates to a country. A nil country with a
// nil error means the point is not inside any known country.
type ReverseGeocoder interface {
	ReverseGeocode(ctx context.Context, lat, lng float64) (*Country, error)
}

// ReverseGeocoderFunc adapts bare functions to ReverseGeocoder.
type ReverseGeocoderFunc func(ctx context.Context, lat, lng float64) (*Country, error)

// ReverseGeocode implements ReverseGeocoder.
func (f ReverseGeocoderFunc) ReverseGeocode(ctx context.Context, lat, lng float64) (*Country, error) {
	return f(ctx, lat, lng)
}
