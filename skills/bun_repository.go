package skills

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/goliatone/go-phonebook/pkg/types"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// RepositoryConfig configures the Bun-backed skill repository.
type RepositoryConfig struct {
	DB          *bun.DB
	Skills      repository.Repository[*Record]
	Links       repository.Repository[*LinkRecord]
	Logger      types.Logger
	IDGenerator types.IDGenerator
}

// Repository persists the skill vocabulary and profile links using Bun
// repositories.
type Repository struct {
	skills repository.Repository[*Record]
	links  repository.Repository[*LinkRecord]
	logger types.Logger
	idGen  types.IDGenerator
}

var _ types.SkillRepository = (*Repository)(nil)

// NewRepository constructs the default repository. Either DB or both
// repositories must be provided.
func NewRepository(cfg RepositoryConfig) (*Repository, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = types.NopLogger{}
	}
	idGen := cfg.IDGenerator
	if idGen == nil {
		idGen = types.UUIDGenerator{}
	}

	skillRepo := cfg.Skills
	linkRepo := cfg.Links
	if skillRepo == nil || linkRepo == nil {
		if cfg.DB == nil {
			return nil, errors.New("skills: db or repositories must be provided")
		}
		if skillRepo == nil {
			skillRepo = repository.NewRepository(cfg.DB, repository.ModelHandlers[*Record]{
				NewRecord: func() *Record { return &Record{} },
				GetID: func(rec *Record) uuid.UUID {
					if rec == nil {
						return uuid.Nil
					}
					return rec.ID
				},
				SetID: func(rec *Record, id uuid.UUID) {
					if rec != nil {
						rec.ID = id
					}
				},
				GetIdentifier: func() string {
					return "name"
				},
			})
		}
		if linkRepo == nil {
			linkRepo = repository.NewRepository(cfg.DB, repository.ModelHandlers[*LinkRecord]{
				NewRecord: func() *LinkRecord { return &LinkRecord{} },
				GetID: func(*LinkRecord) uuid.UUID {
					return uuid.Nil
				},
				SetID: func(*LinkRecord, uuid.UUID) {},
			})
		}
	}

	return &Repository{
		skills: skillRepo,
		links:  linkRepo,
		logger: logger,
		idGen:  idGen,
	}, nil
}

// EnsureSkills returns the skills for names, creating the missing ones. The
// result is ordered by name and never contains duplicates.
func (r *Repository) EnsureSkills(ctx context.Context, names []string) ([]types.Skill, error) {
	wanted := uniqueNames(names)
	if len(wanted) == 0 {
		return nil, nil
	}

	existing, _, err := r.skills.List(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("name IN (?)", bun.In(wanted))
	})
	if err != nil {
		return nil, err
	}
	byName := make(map[string]*Record, len(existing))
	for _, rec := range existing {
		byName[rec.Name] = rec
	}

	for _, name := range wanted {
		if _, ok := byName[name]; ok {
			continue
		}
		created, err := r.skills.Create(ctx, &Record{ID: r.idGen.UUID(), Name: name})
		if err != nil {
			if !repository.IsDuplicatedKey(err) {
				return nil, err
			}
			// Lost a race with a concurrent writer; reuse its row.
			created, err = r.skills.Get(ctx, repository.SelectBy("name", "=", name))
			if err != nil {
				return nil, err
			}
		}
		r.logger.Debug("skill created", "name", name)
		byName[name] = created
	}

	out := make([]types.Skill, 0, len(wanted))
	for _, name := range wanted {
		out = append(out, toDomain(byName[name]))
	}
	return out, nil
}

// SetProfileSkills replaces the skills linked to the profile.
func (r *Repository) SetProfileSkills(ctx context.Context, userID uuid.UUID, skillIDs []uuid.UUID) error {
	if userID == uuid.Nil {
		return types.ErrUserIDRequired
	}
	err := r.links.DeleteWhere(ctx, func(q *bun.DeleteQuery) *bun.DeleteQuery {
		return q.Where("user_id = ?", userID)
	})
	if err != nil {
		return err
	}
	seen := make(map[uuid.UUID]struct{}, len(skillIDs))
	for _, id := range skillIDs {
		if id == uuid.Nil {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if _, err := r.links.Create(ctx, &LinkRecord{UserID: userID, SkillID: id}); err != nil {
			if repository.IsDuplicatedKey(err) {
				continue
			}
			return err
		}
	}
	return nil
}

// ListProfileSkills returns the skills linked to the profile ordered by name.
func (r *Repository) ListProfileSkills(ctx context.Context, userID uuid.UUID) ([]types.Skill, error) {
	if userID == uuid.Nil {
		return nil, types.ErrUserIDRequired
	}
	links, _, err := r.links.List(ctx, repository.SelectBy("user_id", "=", userID.String()))
	if err != nil {
		return nil, err
	}
	if len(links) == 0 {
		return nil, nil
	}
	ids := make([]uuid.UUID, 0, len(links))
	for _, link := range links {
		ids = append(ids, link.SkillID)
	}
	records, _, err := r.skills.List(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("id IN (?)", bun.In(ids)).OrderExpr("name ASC")
	})
	if err != nil {
		return nil, err
	}
	out := make([]types.Skill, 0, len(records))
	for _, rec := range records {
		out = append(out, toDomain(rec))
	}
	return out, nil
}

// ListProfileSkillNames is the name-only view used to hydrate profiles.
func (r *Repository) ListProfileSkillNames(ctx context.Context, userID uuid.UUID) ([]string, error) {
	list, err := r.ListProfileSkills(ctx, userID)
	if err != nil {
		return nil, err
	}
	return Names(list), nil
}

// Names extracts the skill names preserving order.
func Names(list []types.Skill) []string {
	if len(list) == 0 {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, skill := range list {
		out = append(out, skill.Name)
	}
	return out
}

// IDs extracts the skill identifiers preserving order.
func IDs(list []types.Skill) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(list))
	for _, skill := range list {
		out = append(out, skill.ID)
	}
	return out
}

func uniqueNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func toDomain(rec *Record) types.Skill {
	if rec == nil {
		return types.Skill{}
	}
	return types.Skill{ID: rec.ID, Name: rec.Name}
}
