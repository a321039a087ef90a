package query

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-phonebook/forms"
	"github.com/goliatone/go-phonebook/pkg/types"
	"github.com/goliatone/go-phonebook/scope"
	"github.com/google/uuid"
)

// ProfileSearchInput carries the directory search parameters. Vouched takes
// a filter code (yes/no); any other value falls back to the
// IncludeNonVouched flag of the submission.
type ProfileSearchInput struct {
	Submission forms.SearchSubmission
	Vouched    string
	Skill      string
	CountryID  uuid.UUID
	Scope      types.ScopeFilter
	Actor      types.ActorRef
}

// ProfileSearchResult wraps the page with the resolved parameters.
type ProfileSearchResult struct {
	Page   types.ProfilePage
	Search forms.CleanSearch
}

// ProfileSearchQuery lists directory entries.
type ProfileSearchQuery struct {
	repo     types.ProfileRepository
	settings DirectorySettings
	guard    scope.Guard
}

// NewProfileSearchQuery constructs the directory search helper. A nil
// settings resolver uses forms.DefaultItemsPerPage.
func NewProfileSearchQuery(repo types.ProfileRepository, settings DirectorySettings, guard scope.Guard) *ProfileSearchQuery {
	return &ProfileSearchQuery{
		repo:     repo,
		settings: settings,
		guard:    safeScopeGuard(guard),
	}
}

var _ gocommand.Querier[ProfileSearchInput, ProfileSearchResult] = (*ProfileSearchQuery)(nil)

// Query resolves the page size against the directory settings and lists the
// matching profiles.
func (q *ProfileSearchQuery) Query(ctx context.Context, input ProfileSearchInput) (ProfileSearchResult, error) {
	if q.repo == nil {
		return ProfileSearchResult{}, types.ErrMissingProfileRepository
	}
	scope, err := q.guard.Enforce(ctx, input.Actor, input.Scope, types.PolicyActionDirectoryRead, uuid.Nil)
	if err != nil {
		return ProfileSearchResult{}, err
	}

	form := forms.SearchForm{}
	if q.settings != nil {
		dir, err := q.settings.Resolve(ctx, scope)
		if err != nil {
			return ProfileSearchResult{}, err
		}
		form.DefaultLimit = dir.ItemsPerPage
	}
	search, err := form.Clean(input.Submission)
	if err != nil {
		return ProfileSearchResult{}, forms.Wrap(err)
	}

	vouched := forms.VouchedFilter(input.Vouched)
	if vouched == nil && !search.IncludeNonVouched {
		vouched = forms.VouchedFilter(forms.VouchedYes)
	}
	page, err := q.repo.ListProfiles(ctx, types.ProfileFilter{
		Scope:     scope,
		Keyword:   search.Query,
		Vouched:   vouched,
		Skill:     input.Skill,
		CountryID: input.CountryID,
		Pagination: types.Pagination{
			Limit:  search.Limit,
			Offset: search.Offset,
		},
	})
	if err != nil {
		return ProfileSearchResult{}, err
	}
	return ProfileSearchResult{Page: page, Search: search}, nil
}
