package types

import (
	"context"

	"github.com/google/uuid"
)

// Skill is a canonical, lower-cased skill name shared across profiles.
type Skill struct {
	ID   uuid.UUID
	Name string
}

// SkillRepository persists skills and the profile<->skill association.
type SkillRepository interface {
	// EnsureSkills returns the skills for the supplied canonical names,
	// creating any that do not exist yet.
	EnsureSkills(ctx context.Context, names []string) ([]Skill, error)
	// SetProfileSkills replaces the skills linked to the profile.
	SetProfileSkills(ctx context.Context, userID uuid.UUID, skillIDs []uuid.UUID) error
	// ListProfileSkills returns the skills linked to the profile ordered by name.
	ListProfileSkills(ctx context.Context, userID uuid.UUID) ([]Skill, error)
}
