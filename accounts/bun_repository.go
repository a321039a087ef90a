package accounts

import (
	"context"
	"errors"
	"strings"

	"github.com/goliatone/go-phonebook/pkg/types"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// RepositoryConfig wires the Bun-backed external account repository.
type RepositoryConfig struct {
	DB         *bun.DB
	Repository repository.Repository[*Record]
	Clock      types.Clock
	IDGen      types.IDGenerator
}

type accountStore interface {
	repository.Repository[*Record]
}

// Repository implements types.ExternalAccountRepository using Bun.
type Repository struct {
	accountStore
	clock types.Clock
	idGen types.IDGenerator
}

// NewRepository constructs the default external account repository.
func NewRepository(cfg RepositoryConfig) (*Repository, error) {
	if cfg.Repository == nil && cfg.DB == nil {
		return nil, errors.New("accounts: db or repository required")
	}
	repo := cfg.Repository
	if repo == nil {
		repo = repository.NewRepository(cfg.DB, repository.ModelHandlers[*Record]{
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
		})
	}
	clock := cfg.Clock
	if clock == nil {
		clock = types.SystemClock{}
	}
	idGen := cfg.IDGen
	if idGen == nil {
		idGen = types.UUIDGenerator{}
	}
	return &Repository{
		accountStore: repo,
		clock:        clock,
		idGen:        idGen,
	}, nil
}

var (
	_ repository.Repository[*Record]  = (*Repository)(nil)
	_ types.ExternalAccountRepository = (*Repository)(nil)
)

// ListAccounts returns the accounts of a user ordered by type then identifier.
func (r *Repository) ListAccounts(ctx context.Context, filter types.ExternalAccountFilter) ([]types.ExternalAccount, error) {
	if filter.UserID == uuid.Nil {
		return nil, types.ErrUserIDRequired
	}
	criteria := []repository.SelectCriteria{
		scopeCriteria(filter.Scope),
		func(q *bun.SelectQuery) *bun.SelectQuery {
			q = q.Where("user_id = ?", filter.UserID).
				OrderExpr("type ASC, identifier ASC")
			if len(filter.Types) > 0 {
				codes := make([]string, len(filter.Types))
				for i, code := range filter.Types {
					codes[i] = normalizeCode(code)
				}
				q = q.Where("type IN (?)", bun.In(codes))
			}
			if filter.MinPrivacy > 0 {
				q = q.Where("privacy >= ?", int(filter.MinPrivacy))
			}
			return q
		},
	}
	rows, _, err := r.List(ctx, criteria...)
	if err != nil {
		return nil, err
	}
	out := make([]types.ExternalAccount, 0, len(rows))
	for _, row := range rows {
		out = append(out, toDomain(row))
	}
	return out, nil
}

// UpsertAccount updates the entry matching the id, or the same
// (user, type, identifier) triple, and creates it otherwise.
func (r *Repository) UpsertAccount(ctx context.Context, account types.ExternalAccount) (*types.ExternalAccount, error) {
	if account.UserID == uuid.Nil {
		return nil, types.ErrUserIDRequired
	}
	now := r.clock.Now()
	rec := fromDomain(account)
	rec.UpdatedAt = now
	if rec.UpdatedBy == uuid.Nil {
		rec.UpdatedBy = rec.CreatedBy
	}

	existing, err := r.findExisting(ctx, account)
	switch {
	case err == nil:
		rec.ID = existing.ID
		rec.CreatedAt = existing.CreatedAt
		if rec.CreatedBy == uuid.Nil {
			rec.CreatedBy = existing.CreatedBy
		}
		updated, err := r.Update(ctx, rec)
		if err != nil {
			return nil, err
		}
		return toDomainPtr(updated), nil
	case repository.IsRecordNotFound(err):
		if rec.ID == uuid.Nil {
			rec.ID = r.idGen.UUID()
		}
		rec.CreatedAt = now
		if rec.CreatedBy == uuid.Nil {
			rec.CreatedBy = rec.UpdatedBy
		}
		created, err := r.Create(ctx, rec)
		if err != nil {
			return nil, err
		}
		return toDomainPtr(created), nil
	default:
		return nil, err
	}
}

// DeleteAccount removes the entry owned by the user.
func (r *Repository) DeleteAccount(ctx context.Context, userID, id uuid.UUID, scope types.ScopeFilter) error {
	if userID == uuid.Nil {
		return types.ErrUserIDRequired
	}
	rec, err := r.Get(ctx,
		repository.SelectBy("id", "=", id.String()),
		repository.SelectBy("user_id", "=", userID.String()),
		scopeCriteria(scope),
	)
	if err != nil {
		return err
	}
	return r.Delete(ctx, rec)
}

func (r *Repository) findExisting(ctx context.Context, account types.ExternalAccount) (*Record, error) {
	if account.ID != uuid.Nil {
		return r.Get(ctx,
			repository.SelectBy("id", "=", account.ID.String()),
			repository.SelectBy("user_id", "=", account.UserID.String()),
			scopeCriteria(account.Scope),
		)
	}
	rows, _, err := r.List(ctx,
		scopeCriteria(account.Scope),
		func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("user_id = ?", account.UserID).
				Where("type = ?", normalizeCode(account.Type)).
				Where("lower(identifier) = ?", strings.ToLower(strings.TrimSpace(account.Identifier))).
				Limit(1)
		},
	)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, repository.NewRecordNotFound()
	}
	return rows[0], nil
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

func fromDomain(account types.ExternalAccount) *Record {
	return &Record{
		ID:         account.ID,
		UserID:     account.UserID,
		Type:       normalizeCode(account.Type),
		Identifier: strings.TrimSpace(account.Identifier),
		Privacy:    int(account.Privacy),
		TenantID:   account.Scope.TenantID,
		OrgID:      account.Scope.OrgID,
		CreatedAt:  account.CreatedAt,
		CreatedBy:  account.CreatedBy,
		UpdatedAt:  account.UpdatedAt,
		UpdatedBy:  account.UpdatedBy,
	}
}

func toDomain(rec *Record) types.ExternalAccount {
	if rec == nil {
		return types.ExternalAccount{}
	}
	return types.ExternalAccount{
		ID:         rec.ID,
		UserID:     rec.UserID,
		Type:       rec.Type,
		Identifier: rec.Identifier,
		Privacy:    types.PrivacyLevel(rec.Privacy),
		Scope: types.ScopeFilter{
			TenantID: rec.TenantID,
			OrgID:    rec.OrgID,
		},
		CreatedAt: rec.CreatedAt,
		CreatedBy: rec.CreatedBy,
		UpdatedAt: rec.UpdatedAt,
		UpdatedBy: rec.UpdatedBy,
	}
}

func toDomainPtr(rec *Record) *types.ExternalAccount {
	account := toDomain(rec)
	return &account
}
