package geo

import (
	"context"

	"github.com/goliatone/go-phonebook/pkg/types"
)

// StaticGeocoder resolves coordinates against an in-memory country list.
type StaticGeocoder struct {
	Countries []types.Country
}

var _ types.ReverseGeocoder = StaticGeocoder{}

// ReverseGeocode implements types.ReverseGeocoder.
func (g StaticGeocoder) ReverseGeocode(ctx context.Context, lat, lng float64) (*types.Country, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Locate(g.Countries, lat, lng), nil
}
