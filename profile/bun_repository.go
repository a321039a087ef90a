package profile

import (
	"context"
	"errors"
	"strings"

	"github.com/goliatone/go-phonebook/pkg/types"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

const defaultListLimit = 20

// SkillLister resolves the skill names linked to a profile.
type SkillLister interface {
	ListProfileSkillNames(ctx context.Context, userID uuid.UUID) ([]string, error)
}

// RepositoryConfig wires the Bun-backed profile repository.
type RepositoryConfig struct {
	DB         *bun.DB
	Repository repository.Repository[*Record]
	Skills     SkillLister
	Clock      types.Clock
}

type profileStore interface {
	repository.Repository[*Record]
}

// Repository implements types.ProfileRepository using Bun.
type Repository struct {
	profileStore
	skills SkillLister
	clock  types.Clock
}

// NewRepository constructs the default profile repository.
func NewRepository(cfg RepositoryConfig) (*Repository, error) {
	if cfg.Repository == nil && cfg.DB == nil {
		return nil, errors.New("profile: db or repository required")
	}
	repo := cfg.Repository
	if repo == nil {
		repo = repository.NewRepository(cfg.DB, repository.ModelHandlers[*Record]{
			NewRecord: func() *Record { return &Record{} },
			GetID: func(rec *Record) uuid.UUID {
				if rec == nil {
					return uuid.Nil
				}
				return rec.UserID
			},
			SetID: func(rec *Record, id uuid.UUID) {
				if rec != nil {
					rec.UserID = id
				}
			},
		})
	}

	clock := cfg.Clock
	if clock == nil {
		clock = types.SystemClock{}
	}

	return &Repository{
		profileStore: repo,
		skills:       cfg.Skills,
		clock:        clock,
	}, nil
}

var (
	_ repository.Repository[*Record] = (*Repository)(nil)
	_ types.ProfileRepository        = (*Repository)(nil)
)

// GetProfile returns the profile for the supplied user within the provided
// scope, or nil when it does not exist.
func (r *Repository) GetProfile(ctx context.Context, userID uuid.UUID, scope types.ScopeFilter) (*types.Profile, error) {
	if userID == uuid.Nil {
		return nil, types.ErrUserIDRequired
	}
	rec, err := r.Get(ctx, selectUserID(userID), scopeCriteria(scope))
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	profile := toDomain(rec)
	if err := r.hydrateSkills(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// UpsertProfile inserts or updates the profile based on whether it already
// exists. Skills are stored separately and are passed through untouched.
func (r *Repository) UpsertProfile(ctx context.Context, profile types.Profile) (*types.Profile, error) {
	if profile.UserID == uuid.Nil {
		return nil, types.ErrUserIDRequired
	}
	now := r.clock.Now()
	rec := fromDomain(profile)
	rec.UpdatedAt = now
	if rec.UpdatedBy == uuid.Nil {
		rec.UpdatedBy = profile.CreatedBy
	}

	var saved *Record
	existing, err := r.Get(ctx, selectUserID(profile.UserID), scopeCriteria(profile.Scope))
	switch {
	case err == nil:
		rec.CreatedAt = existing.CreatedAt
		if rec.CreatedAt.IsZero() {
			rec.CreatedAt = now
		}
		if rec.CreatedBy == uuid.Nil {
			rec.CreatedBy = existing.CreatedBy
			if rec.CreatedBy == uuid.Nil {
				rec.CreatedBy = rec.UpdatedBy
			}
		}
		saved, err = r.Update(ctx, rec)
	case repository.IsRecordNotFound(err):
		if rec.CreatedAt.IsZero() {
			rec.CreatedAt = now
		}
		if rec.CreatedBy == uuid.Nil {
			rec.CreatedBy = rec.UpdatedBy
		}
		saved, err = r.Create(ctx, rec)
	}
	if err != nil {
		return nil, err
	}
	out := toDomain(saved)
	out.Skills = cloneStrings(profile.Skills)
	return out, nil
}

// ListProfiles returns a page of directory entries ordered by display name.
// The requested limit is applied as given.
func (r *Repository) ListProfiles(ctx context.Context, filter types.ProfileFilter) (types.ProfilePage, error) {
	pagination := filter.Pagination.Normalize(defaultListLimit, 0)
	criteria := []repository.SelectCriteria{
		scopeCriteria(filter.Scope),
		func(q *bun.SelectQuery) *bun.SelectQuery {
			q = q.OrderExpr("LOWER(display_name) ASC, user_id ASC").
				Limit(pagination.Limit).
				Offset(pagination.Offset)
			if filter.Vouched != nil {
				q = q.Where("vouched = ?", *filter.Vouched)
			}
			if keyword := strings.ToLower(strings.TrimSpace(filter.Keyword)); keyword != "" {
				like := "%" + keyword + "%"
				q = q.WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
					return q.Where("LOWER(display_name) LIKE ?", like).
						WhereOr("LOWER(email) LIKE ?", like).
						WhereOr("LOWER(bio) LIKE ?", like)
				})
			}
			if skill := strings.ToLower(strings.TrimSpace(filter.Skill)); skill != "" {
				q = q.Where("user_id IN (SELECT ps.user_id FROM profile_skills AS ps JOIN skills AS s ON s.id = ps.skill_id WHERE s.name = ?)", skill)
			}
			if filter.CountryID != uuid.Nil {
				q = q.Where("country_id = ?", filter.CountryID)
			}
			return q
		},
	}

	records, total, err := r.List(ctx, criteria...)
	if err != nil {
		return types.ProfilePage{}, err
	}
	profiles := make([]types.Profile, 0, len(records))
	for _, rec := range records {
		profile := toDomain(rec)
		if err := r.hydrateSkills(ctx, profile); err != nil {
			return types.ProfilePage{}, err
		}
		profiles = append(profiles, *profile)
	}
	return types.ProfilePage{
		Profiles:   profiles,
		Total:      total,
		NextOffset: pagination.Offset + pagination.Limit,
		HasMore:    pagination.Offset+pagination.Limit < total,
	}, nil
}

func (r *Repository) hydrateSkills(ctx context.Context, profile *types.Profile) error {
	if r.skills == nil || profile == nil {
		return nil
	}
	names, err := r.skills.ListProfileSkillNames(ctx, profile.UserID)
	if err != nil {
		return err
	}
	profile.Skills = names
	return nil
}

func scopeCriteria(scope types.ScopeFilter) repository.SelectCriteria {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		if scope.TenantID != uuid.Nil {
			q = q.Where("tenant_id = ?", scope.TenantID)
		}
		if scope.OrgID != uuid.Nil {
			q = q.Where("org_id = ?", scope.OrgID)
		}
		return q
	}
}

func selectUserID(userID uuid.UUID) repository.SelectCriteria {
	return repository.SelectBy("user_id", "=", userID.String())
}

func fromDomain(profile types.Profile) *Record {
	rec := &Record{
		UserID:      profile.UserID,
		Email:       strings.TrimSpace(profile.Email),
		DisplayName: strings.TrimSpace(profile.DisplayName),
		Bio:         profile.Bio,
		StoryLink:   profile.StoryLink,
		Lat:         cloneFloat(profile.Lat),
		Lng:         cloneFloat(profile.Lng),
		Vouched:     profile.Vouched,
		TenantID:    profile.Scope.TenantID,
		OrgID:       profile.Scope.OrgID,
		CreatedAt:   profile.CreatedAt,
		CreatedBy:   profile.CreatedBy,
		UpdatedAt:   profile.UpdatedAt,
		UpdatedBy:   profile.UpdatedBy,
	}
	if profile.Country != nil {
		rec.CountryID = uuid.NullUUID{UUID: profile.Country.ID, Valid: profile.Country.ID != uuid.Nil}
		rec.CountryCode = profile.Country.Code
		rec.CountryName = profile.Country.Name
	}
	return rec
}

func toDomain(rec *Record) *types.Profile {
	if rec == nil {
		return nil
	}
	profile := &types.Profile{
		UserID:      rec.UserID,
		Email:       rec.Email,
		DisplayName: rec.DisplayName,
		Bio:         rec.Bio,
		StoryLink:   rec.StoryLink,
		Lat:         cloneFloat(rec.Lat),
		Lng:         cloneFloat(rec.Lng),
		Vouched:     rec.Vouched,
		Scope: types.ScopeFilter{
			TenantID: rec.TenantID,
			OrgID:    rec.OrgID,
		},
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
		CreatedBy: rec.CreatedBy,
		UpdatedBy: rec.UpdatedBy,
	}
	if rec.CountryID.Valid || rec.CountryCode != "" {
		profile.Country = &types.Country{
			ID:   rec.CountryID.UUID,
			Code: rec.CountryCode,
			Name: rec.CountryName,
		}
	}
	return profile
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}

func cloneStrings(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
