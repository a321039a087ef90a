package profile

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Record models the profiles row. Country fields are denormalized so
// directory listings do not need a join.
type Record struct {
	bun.BaseModel `bun:"table:profiles"`

	UserID      uuid.UUID     `bun:"user_id,pk,type:uuid"`
	Email       string        `bun:"email"`
	DisplayName string        `bun:"display_name"`
	Bio         string        `bun:"bio"`
	StoryLink   string        `bun:"story_link"`
	Lat         *float64      `bun:"lat"`
	Lng         *float64      `bun:"lng"`
	CountryID   uuid.NullUUID `bun:"country_id,type:uuid"`
	CountryCode string        `bun:"country_code"`
	CountryName string        `bun:"country_name"`
	Vouched     bool          `bun:"vouched"`
	TenantID    uuid.UUID     `bun:"tenant_id,type:uuid"`
	OrgID       uuid.UUID     `bun:"org_id,type:uuid"`
	CreatedAt   time.Time     `bun:"created_at"`
	CreatedBy   uuid.UUID     `bun:"created_by,type:uuid"`
	UpdatedAt   time.Time     `bun:"updated_at"`
	UpdatedBy   uuid.UUID     `bun:"updated_by,type:uuid"`
}
