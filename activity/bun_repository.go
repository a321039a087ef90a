package activity

import (
	"context"
	"errors"
	"strings"

	"github.com/goliatone/go-phonebook/pkg/types"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

const (
	defaultFeedLimit = 50
	maxFeedLimit     = 200
)

var (
	// ErrVerbRequired rejects entries logged without a verb.
	ErrVerbRequired = errors.New("activity: verb required")
	// ErrUnknownObject rejects entries about something other than a profile
	// or an external account.
	ErrUnknownObject = errors.New("activity: unknown object type")
)

// RepositoryConfig wires the Bun-backed activity repository.
type RepositoryConfig struct {
	DB         *bun.DB
	Repository repository.Repository[*LogEntry]
	Clock      types.Clock
	IDGen      types.IDGenerator
}

// Repository stores the change history of phonebook profiles and their
// external accounts. It is both the ActivitySink of the commands and the
// ActivityRepository behind the feed query.
type Repository struct {
	entries repository.Repository[*LogEntry]
	clock   types.Clock
	idGen   types.IDGenerator
}

// NewRepository constructs the activity repository.
func NewRepository(cfg RepositoryConfig) (*Repository, error) {
	entries := cfg.Repository
	if entries == nil {
		if cfg.DB == nil {
			return nil, errors.New("activity: db or repository required")
		}
		entries = repository.NewRepository(cfg.DB, repository.ModelHandlers[*LogEntry]{
			NewRecord: func() *LogEntry { return &LogEntry{} },
			GetID: func(entry *LogEntry) uuid.UUID {
				if entry == nil {
					return uuid.Nil
				}
				return entry.ID
			},
			SetID: func(entry *LogEntry, id uuid.UUID) {
				if entry != nil {
					entry.ID = id
				}
			},
		})
	}
	repo := &Repository{
		entries: entries,
		clock:   cfg.Clock,
		idGen:   cfg.IDGen,
	}
	if repo.clock == nil {
		repo.clock = types.SystemClock{}
	}
	if repo.idGen == nil {
		repo.idGen = types.UUIDGenerator{}
	}
	return repo, nil
}

var (
	_ types.ActivitySink       = (*Repository)(nil)
	_ types.ActivityRepository = (*Repository)(nil)
)

// Log stores record. Records without an object are filed against the
// profile of record.UserID.
func (r *Repository) Log(ctx context.Context, record types.ActivityRecord) error {
	if strings.TrimSpace(record.Verb) == "" {
		return ErrVerbRequired
	}
	entry := entryFromRecord(record)
	if entry.ObjectType != "" && !KnownObject(entry.ObjectType) {
		return ErrUnknownObject
	}
	if entry.ID == uuid.Nil {
		entry.ID = r.idGen.UUID()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = r.clock.Now()
	}
	_, err := r.entries.Create(ctx, entry)
	return err
}

// ListActivity returns the newest entries first. Setting ObjectType and
// ObjectID on the filter narrows the feed to one profile or account.
func (r *Repository) ListActivity(ctx context.Context, filter types.ActivityFilter) (types.ActivityPage, error) {
	pagination := filter.Pagination.Normalize(defaultFeedLimit, maxFeedLimit)
	criteria := append(feedCriteria(filter), func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.OrderExpr("created_at DESC").
			Limit(pagination.Limit).
			Offset(pagination.Offset)
	})

	rows, total, err := r.entries.List(ctx, criteria...)
	if err != nil {
		return types.ActivityPage{}, err
	}
	records := make([]types.ActivityRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, row.record())
	}
	return types.ActivityPage{
		Records:    records,
		Total:      total,
		NextOffset: pagination.Offset + pagination.Limit,
		HasMore:    pagination.Offset+pagination.Limit < total,
	}, nil
}

// History lists the entries about one external account of userID.
func (r *Repository) History(ctx context.Context, scope types.ScopeFilter, userID, accountID uuid.UUID, page types.Pagination) (types.ActivityPage, error) {
	return r.ListActivity(ctx, types.ActivityFilter{
		Scope:      scope,
		UserID:     userID,
		ObjectType: ObjectExternalAccount,
		ObjectID:   accountID.String(),
		Pagination: page,
	})
}

func feedCriteria(filter types.ActivityFilter) []repository.SelectCriteria {
	criteria := []repository.SelectCriteria{}
	if filter.Scope.TenantID != uuid.Nil {
		criteria = append(criteria, repository.SelectBy("tenant_id", "=", filter.Scope.TenantID.String()))
	}
	if filter.Scope.OrgID != uuid.Nil {
		criteria = append(criteria, repository.SelectBy("org_id", "=", filter.Scope.OrgID.String()))
	}
	if filter.UserID != uuid.Nil {
		criteria = append(criteria, repository.SelectBy("user_id", "=", filter.UserID.String()))
	}
	if objectType := strings.TrimSpace(filter.ObjectType); objectType != "" {
		criteria = append(criteria, repository.SelectBy("object_type", "=", objectType))
	}
	if objectID := strings.TrimSpace(filter.ObjectID); objectID != "" {
		criteria = append(criteria, repository.SelectBy("object_id", "=", objectID))
	}
	if len(filter.Verbs) > 0 {
		verbs := filter.Verbs
		criteria = append(criteria, func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("verb IN (?)", bun.In(verbs))
		})
	}
	return criteria
}
