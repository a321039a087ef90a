package accounts

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Record models the external_accounts row.
type Record struct {
	bun.BaseModel `bun:"table:external_accounts"`

	ID         uuid.UUID `bun:"id,pk,type:uuid"`
	UserID     uuid.UUID `bun:"user_id,type:uuid"`
	Type       string    `bun:"type"`
	Identifier string    `bun:"identifier"`
	Privacy    int       `bun:"privacy"`
	TenantID   uuid.UUID `bun:"tenant_id,type:uuid"`
	OrgID      uuid.UUID `bun:"org_id,type:uuid"`
	CreatedAt  time.Time `bun:"created_at"`
	CreatedBy  uuid.UUID `bun:"created_by,type:uuid"`
	UpdatedAt  time.Time `bun:"updated_at"`
	UpdatedBy  uuid.UUID `bun:"updated_by,type:uuid"`
}
