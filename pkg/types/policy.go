package types

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// PolicyAction enumerates the authorization actions enforced by the scope
// guard. Host applications can remap these actions to their own ACLs.
type PolicyAction string

const (
	PolicyActionProfilesRead  PolicyAction = "profiles:read"
	PolicyActionProfilesWrite PolicyAction = "profiles:write"
	PolicyActionProfilesVouch PolicyAction = "profiles:vouch"
	PolicyActionAccountsRead  PolicyAction = "accounts:read"
	PolicyActionAccountsWrite PolicyAction = "accounts:write"
	PolicyActionDirectoryRead PolicyAction = "directory:read"
	PolicyActionActivityRead  PolicyAction = "activity:read"
)

// PolicyCheck captures the authorization context for a single command/query.
type PolicyCheck struct {
	Actor    ActorRef
	Scope    ScopeFilter
	Action   PolicyAction
	TargetID uuid.UUID
}

// ScopeResolver resolves requested scopes into canonical tenant/org values.
type ScopeResolver interface {
	ResolveScope(ctx context.Context, actor ActorRef, requested ScopeFilter) (ScopeFilter, error)
}

// ScopeResolverFunc adapts bare functions to ScopeResolver.
type ScopeResolverFunc func(ctx context.Context, actor ActorRef, requested ScopeFilter) (ScopeFilter, error)

// ResolveScope implements ScopeResolver.
func (f ScopeResolverFunc) ResolveScope(ctx context.Context, actor ActorRef, requested ScopeFilter) (ScopeFilter, error) {
	return f(ctx, actor, requested)
}

// AuthorizationPolicy governs whether an actor can perform the action.
type AuthorizationPolicy interface {
	Authorize(ctx context.Context, check PolicyCheck) error
}

// AuthorizationPolicyFunc adapts bare functions to AuthorizationPolicy.
type AuthorizationPolicyFunc func(ctx context.Context, check PolicyCheck) error

// Authorize implements AuthorizationPolicy.
func (f AuthorizationPolicyFunc) Authorize(ctx context.Context, check PolicyCheck) error {
	return f(ctx, check)
}

// ErrUnauthorizedScope indicates the actor may not act on the requested scope.
var ErrUnauthorizedScope = errors.New("go-phonebook: actor not authorized for scope")

// SelfOrPrivilegedPolicy lets members edit their own profile and read their
// own activity. Everything else that touches other members, and vouching,
// is reserved for actors with one of the privileged types.
type SelfOrPrivilegedPolicy struct {
	PrivilegedTypes []string
}

// Authorize implements AuthorizationPolicy.
func (p SelfOrPrivilegedPolicy) Authorize(_ context.Context, check PolicyCheck) error {
	switch check.Action {
	case PolicyActionProfilesWrite, PolicyActionAccountsWrite:
		if check.TargetID == uuid.Nil || check.TargetID == check.Actor.ID {
			return nil
		}
	case PolicyActionActivityRead:
		if check.TargetID != uuid.Nil && check.TargetID == check.Actor.ID {
			return nil
		}
	case PolicyActionProfilesVouch:
	default:
		return nil
	}
	for _, kind := range p.PrivilegedTypes {
		if kind == check.Actor.Type {
			return nil
		}
	}
	return ErrUnauthorizedScope
}
