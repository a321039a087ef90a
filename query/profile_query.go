package query

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-phonebook/pkg/types"
	"github.com/goliatone/go-phonebook/scope"
	"github.com/google/uuid"
)

// ProfileQueryInput scopes profile lookups.
type ProfileQueryInput struct {
	UserID uuid.UUID
	Scope  types.ScopeFilter
	Actor  types.ActorRef
}

// ProfileQuery fetches a single directory entry.
type ProfileQuery struct {
	repo  types.ProfileRepository
	guard scope.Guard
}

// NewProfileQuery constructs the profile query helper.
func NewProfileQuery(repo types.ProfileRepository, guard scope.Guard) *ProfileQuery {
	return &ProfileQuery{
		repo:  repo,
		guard: safeScopeGuard(guard),
	}
}

var _ gocommand.Querier[ProfileQueryInput, *types.Profile] = (*ProfileQuery)(nil)

// Query returns the profile for the supplied identifiers or
// types.ErrProfileNotFound.
func (q *ProfileQuery) Query(ctx context.Context, input ProfileQueryInput) (*types.Profile, error) {
	if q.repo == nil {
		return nil, types.ErrMissingProfileRepository
	}
	if input.UserID == uuid.Nil {
		return nil, types.ErrUserIDRequired
	}
	scope, err := q.guard.Enforce(ctx, input.Actor, input.Scope, types.PolicyActionProfilesRead, input.UserID)
	if err != nil {
		return nil, err
	}
	profile, err := q.repo.GetProfile(ctx, input.UserID, scope)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, types.ErrProfileNotFound
	}
	return profile, nil
}
