package types

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Profile captures the directory data stored for a member.
type Profile struct {
	UserID      uuid.UUID
	Email       string
	DisplayName string
	Bio         string
	Skills      []string
	StoryLink   string
	Lat         *float64
	Lng         *float64
	Country     *Country
	Vouched     bool
	Scope       ScopeFilter
	CreatedAt   time.Time
	UpdatedAt   time.Time
	CreatedBy   uuid.UUID
	UpdatedBy   uuid.UUID
}

// HasLocation reports whether both coordinates are set.
func (p Profile) HasLocation() bool {
	return p.Lat != nil && p.Lng != nil
}

// ProfilePatch captures the free-form profile fields. Nil fields are left
// untouched.
type ProfilePatch struct {
	DisplayName *string
	Bio         *string
	Vouched     *bool
}

// ProfileFilter narrows directory listings.
type ProfileFilter struct {
	Scope      ScopeFilter
	Keyword    string
	Vouched    *bool
	Skill      string
	CountryID  uuid.UUID
	Pagination Pagination
}

// ProfilePage represents a paginated directory listing.
type ProfilePage struct {
	Profiles   []Profile
	Total      int
	NextOffset int
	HasMore    bool
}

// ProfileRepository persists and retrieves profile records.
type ProfileRepository interface {
	GetProfile(ctx context.Context, userID uuid.UUID, scope ScopeFilter) (*Profile, error)
	UpsertProfile(ctx context.Context, profile Profile) (*Profile, error)
	ListProfiles(ctx context.Context, filter ProfileFilter) (ProfilePage, error)
}
