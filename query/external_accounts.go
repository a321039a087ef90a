package query

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-phonebook/pkg/types"
	"github.com/goliatone/go-phonebook/scope"
	"github.com/google/uuid"
)

// ExternalAccountsInput selects the accounts of one member.
type ExternalAccountsInput struct {
	UserID     uuid.UUID
	Types      []string
	MinPrivacy types.PrivacyLevel
	Scope      types.ScopeFilter
	Actor      types.ActorRef
}

// ExternalAccountView pairs an entry with its type and rendered URL.
type ExternalAccountView struct {
	Account types.ExternalAccount
	Type    types.AccountType
	URL     string
}

// ExternalAccountsQuery lists the external accounts of a member.
type ExternalAccountsQuery struct {
	repo     types.ExternalAccountRepository
	registry types.AccountTypeRegistry
	guard    scope.Guard
}

// NewExternalAccountsQuery constructs the account listing helper.
func NewExternalAccountsQuery(repo types.ExternalAccountRepository, registry types.AccountTypeRegistry, guard scope.Guard) *ExternalAccountsQuery {
	return &ExternalAccountsQuery{
		repo:     repo,
		registry: registry,
		guard:    safeScopeGuard(guard),
	}
}

var _ gocommand.Querier[ExternalAccountsInput, []ExternalAccountView] = (*ExternalAccountsQuery)(nil)

// Query returns the entries ordered by type. Entries whose type is no
// longer registered are skipped.
func (q *ExternalAccountsQuery) Query(ctx context.Context, input ExternalAccountsInput) ([]ExternalAccountView, error) {
	if q.repo == nil {
		return nil, types.ErrMissingAccountRepository
	}
	if q.registry == nil {
		return nil, types.ErrMissingAccountRegistry
	}
	if input.UserID == uuid.Nil {
		return nil, types.ErrUserIDRequired
	}
	scope, err := q.guard.Enforce(ctx, input.Actor, input.Scope, types.PolicyActionAccountsRead, input.UserID)
	if err != nil {
		return nil, err
	}
	list, err := q.repo.ListAccounts(ctx, types.ExternalAccountFilter{
		UserID:     input.UserID,
		Scope:      scope,
		Types:      input.Types,
		MinPrivacy: input.MinPrivacy,
	})
	if err != nil {
		return nil, err
	}
	out := make([]ExternalAccountView, 0, len(list))
	for _, account := range list {
		def, ok := q.registry.Lookup(account.Type)
		if !ok {
			continue
		}
		out = append(out, ExternalAccountView{
			Account: account,
			Type:    def,
			URL:     def.ProfileURL(account.Identifier),
		})
	}
	return out, nil
}
