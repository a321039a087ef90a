package scope

import (
	"context"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-phonebook/pkg/types"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestProfileEdit_VouchNeedsPrivilege(t *testing.T) {
	ctx := context.Background()
	g := NewGuard(nil, types.SelfOrPrivilegedPolicy{PrivilegedTypes: []string{"curator"}})
	member := types.ActorRef{ID: uuid.New()}

	_, err := ProfileEdit(ctx, g, member, types.ScopeFilter{}, member.ID, false)
	require.NoError(t, err)

	_, err = ProfileEdit(ctx, g, member, types.ScopeFilter{}, member.ID, true)
	require.ErrorIs(t, err, types.ErrUnauthorizedScope)

	var rich *goerrors.Error
	require.True(t, goerrors.As(err, &rich))
	require.Equal(t, goerrors.CategoryAuthz, rich.Category)
	require.Equal(t, TextCodeDenied, rich.TextCode)
	require.Equal(t, string(types.PolicyActionProfilesVouch), rich.Metadata["action"])
	require.Equal(t, member.ID.String(), rich.Metadata["target_id"])

	curator := types.ActorRef{ID: uuid.New(), Type: "curator"}
	_, err = ProfileEdit(ctx, g, curator, types.ScopeFilter{}, member.ID, true)
	require.NoError(t, err)
}

func TestAccountEdit_OtherMemberRejected(t *testing.T) {
	g := NewGuard(nil, types.SelfOrPrivilegedPolicy{})
	member := types.ActorRef{ID: uuid.New()}

	_, err := AccountEdit(context.Background(), g, member, types.ScopeFilter{}, uuid.New())
	require.ErrorIs(t, err, types.ErrUnauthorizedScope)
}

func TestActivityFeed_BindsResolvedScope(t *testing.T) {
	tenantID := uuid.New()
	resolver := types.ScopeResolverFunc(func(context.Context, types.ActorRef, types.ScopeFilter) (types.ScopeFilter, error) {
		return types.ScopeFilter{TenantID: tenantID}, nil
	})
	g := NewGuard(resolver, types.SelfOrPrivilegedPolicy{})
	member := types.ActorRef{ID: uuid.New()}

	filter, err := ActivityFeed(context.Background(), g, types.ActivityFilter{
		Actor:      member,
		UserID:     member.ID,
		ObjectType: "external_account",
	})
	require.NoError(t, err)
	require.Equal(t, tenantID, filter.Scope.TenantID)
	require.Equal(t, "external_account", filter.ObjectType)

	_, err = ActivityFeed(context.Background(), g, types.ActivityFilter{Actor: member})
	require.ErrorIs(t, err, types.ErrUnauthorizedScope)
}

func TestEnsure_NilGuardNeverBlocks(t *testing.T) {
	requested := types.ScopeFilter{TenantID: uuid.New()}
	got, err := Ensure(nil).Enforce(context.Background(), types.ActorRef{}, requested, types.PolicyActionProfilesVouch, uuid.New())
	require.NoError(t, err)
	require.Equal(t, requested, got)

	got, err = ProfileEdit(context.Background(), nil, types.ActorRef{}, requested, uuid.New(), true)
	require.NoError(t, err)
	require.Equal(t, requested, got)
}
