package query

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-masker"
	"github.com/goliatone/go-phonebook/activity"
	"github.com/goliatone/go-phonebook/pkg/types"
	"github.com/goliatone/go-phonebook/scope"
)

// ActivityFeedQuery renders paginated profile change feeds.
type ActivityFeedQuery struct {
	repo   types.ActivityRepository
	guard  scope.Guard
	masker *masker.Masker
}

// ActivityFeedOption customizes the feed query.
type ActivityFeedOption func(*ActivityFeedQuery)

// WithActivityMasker overrides the masker used on record payloads.
func WithActivityMasker(mask *masker.Masker) ActivityFeedOption {
	return func(q *ActivityFeedQuery) {
		q.masker = mask
	}
}

// NewActivityFeedQuery constructs the feed query helper.
func NewActivityFeedQuery(repo types.ActivityRepository, guard scope.Guard, opts ...ActivityFeedOption) *ActivityFeedQuery {
	q := &ActivityFeedQuery{
		repo:  repo,
		guard: safeScopeGuard(guard),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(q)
		}
	}
	return q
}

var _ gocommand.Querier[types.ActivityFilter, types.ActivityPage] = (*ActivityFeedQuery)(nil)

// Query fetches a page of activity logs with contact fields masked. An
// ObjectType/ObjectID pair on the filter narrows it to one profile or
// external account.
func (q *ActivityFeedQuery) Query(ctx context.Context, filter types.ActivityFilter) (types.ActivityPage, error) {
	if q.repo == nil {
		return types.ActivityPage{}, types.ErrMissingActivityRepository
	}
	if filter.ObjectType != "" && !activity.KnownObject(filter.ObjectType) {
		return types.ActivityPage{}, activity.ErrUnknownObject
	}
	filter, err := scope.ActivityFeed(ctx, q.guard, filter)
	if err != nil {
		return types.ActivityPage{}, err
	}
	page, err := q.repo.ListActivity(ctx, filter)
	if err != nil {
		return types.ActivityPage{}, err
	}
	page.Records = activity.NewSanitizer(q.masker).Records(page.Records)
	return page, nil
}
