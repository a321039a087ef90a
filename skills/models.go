package skills

import (
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Record models the skills row.
type Record struct {
	bun.BaseModel `bun:"table:skills"`

	ID   uuid.UUID `bun:"id,pk,type:uuid"`
	Name string    `bun:"name"`
}

// LinkRecord models the profile_skills association row.
type LinkRecord struct {
	bun.BaseModel `bun:"table:profile_skills"`

	UserID  uuid.UUID `bun:"user_id,pk,type:uuid"`
	SkillID uuid.UUID `bun:"skill_id,pk,type:uuid"`
}
