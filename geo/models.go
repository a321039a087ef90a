package geo

import (
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Record models the countries row.
type Record struct {
	bun.BaseModel `bun:"table:countries"`

	ID     uuid.UUID `bun:"id,pk,type:uuid"`
	Code   string    `bun:"code"`
	Name   string    `bun:"name"`
	MinLat float64   `bun:"min_lat"`
	MaxLat float64   `bun:"max_lat"`
	MinLng float64   `bun:"min_lng"`
	MaxLng float64   `bun:"max_lng"`
}
