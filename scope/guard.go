package scope

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-phonebook/pkg/types"
	"github.com/google/uuid"
)

// TextCodeDenied tags errors returned when the policy rejects an action.
const TextCodeDenied = "PHONEBOOK_ACTION_DENIED"

// Guard resolves the tenant/org a phonebook request runs in and checks the
// action against the member it targets.
type Guard interface {
	Enforce(ctx context.Context, actor types.ActorRef, requested types.ScopeFilter, action types.PolicyAction, target uuid.UUID) (types.ScopeFilter, error)
}

type guard struct {
	resolver types.ScopeResolver
	policy   types.AuthorizationPolicy
}

// NewGuard builds a Guard from the supplied resolver and policy. Nil
// dependencies are treated as no-ops.
func NewGuard(resolver types.ScopeResolver, policy types.AuthorizationPolicy) Guard {
	return guard{
		resolver: resolver,
		policy:   policy,
	}
}

// Ensure returns g, or a guard that never blocks when g is nil.
func Ensure(g Guard) Guard {
	if g == nil {
		return guard{}
	}
	return g
}

// NopGuard returns a guard that leaves scopes unchanged and never blocks.
func NopGuard() Guard {
	return guard{}
}

// Enforce resolves the requested scope and authorizes action in it. Policy
// rejections come back as go-errors authorization errors that still match
// the policy error with errors.Is.
func (g guard) Enforce(ctx context.Context, actor types.ActorRef, requested types.ScopeFilter, action types.PolicyAction, target uuid.UUID) (types.ScopeFilter, error) {
	resolved := requested
	if g.resolver != nil {
		var err error
		if resolved, err = g.resolver.ResolveScope(ctx, actor, requested); err != nil {
			return types.ScopeFilter{}, err
		}
	}
	if g.policy == nil || action == "" {
		return resolved, nil
	}
	check := types.PolicyCheck{
		Actor:    actor,
		Scope:    resolved,
		Action:   action,
		TargetID: target,
	}
	if err := g.policy.Authorize(ctx, check); err != nil {
		return types.ScopeFilter{}, denied(err, check)
	}
	return resolved, nil
}

func denied(err error, check types.PolicyCheck) error {
	return goerrors.Wrap(err, goerrors.CategoryAuthz, "phonebook action denied").
		WithCode(goerrors.CodeForbidden).
		WithTextCode(TextCodeDenied).
		WithMetadata(map[string]any{
			"action":    string(check.Action),
			"actor_id":  check.Actor.ID.String(),
			"target_id": check.TargetID.String(),
		})
}

// ProfileEdit authorizes a change to the profile of userID. Changing the
// vouched flag also needs the vouch action.
func ProfileEdit(ctx context.Context, g Guard, actor types.ActorRef, requested types.ScopeFilter, userID uuid.UUID, vouch bool) (types.ScopeFilter, error) {
	g = Ensure(g)
	resolved, err := g.Enforce(ctx, actor, requested, types.PolicyActionProfilesWrite, userID)
	if err != nil || !vouch {
		return resolved, err
	}
	return g.Enforce(ctx, actor, resolved, types.PolicyActionProfilesVouch, userID)
}

// AccountEdit authorizes a change to an external account of userID.
func AccountEdit(ctx context.Context, g Guard, actor types.ActorRef, requested types.ScopeFilter, userID uuid.UUID) (types.ScopeFilter, error) {
	return Ensure(g).Enforce(ctx, actor, requested, types.PolicyActionAccountsWrite, userID)
}

// ActivityFeed authorizes reading the feed described by filter and returns
// the filter bound to the resolved scope. A feed about one member targets
// that member; otherwise the whole scope is read.
func ActivityFeed(ctx context.Context, g Guard, filter types.ActivityFilter) (types.ActivityFilter, error) {
	resolved, err := Ensure(g).Enforce(ctx, filter.Actor, filter.Scope, types.PolicyActionActivityRead, filter.UserID)
	if err != nil {
		return types.ActivityFilter{}, err
	}
	filter.Scope = resolved
	return filter, nil
}
