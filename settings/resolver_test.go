package settings

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-phonebook/pkg/types"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestResolver_DefaultsWithoutSource(t *testing.T) {
	resolver := NewResolver(ResolverConfig{})

	dir, err := resolver.Resolve(context.Background(), types.ScopeFilter{TenantID: uuid.New()})
	require.NoError(t, err)
	require.Equal(t, 20, dir.ItemsPerPage)
	require.Equal(t, types.PrivacyMembers, dir.DefaultPrivacy)
}

func TestResolver_MergesScopes(t *testing.T) {
	tenantID := uuid.New()
	orgID := uuid.New()
	source := NewStaticSource()
	source.SetSystem(KeyItemsPerPage, 30)
	source.SetTenant(tenantID, KeyItemsPerPage, "50")
	source.SetTenant(tenantID, KeyDefaultPrivacy, int(types.PrivacyPublic))
	source.SetOrg(orgID, KeyItemsPerPage, 10.0)

	resolver := NewResolver(ResolverConfig{Source: source})
	ctx := context.Background()

	dir, err := resolver.Resolve(ctx, types.ScopeFilter{})
	require.NoError(t, err)
	require.Equal(t, 30, dir.ItemsPerPage)

	dir, err = resolver.Resolve(ctx, types.ScopeFilter{TenantID: tenantID})
	require.NoError(t, err)
	require.Equal(t, 50, dir.ItemsPerPage)
	require.Equal(t, types.PrivacyPublic, dir.DefaultPrivacy)

	dir, err = resolver.Resolve(ctx, types.ScopeFilter{TenantID: tenantID, OrgID: orgID})
	require.NoError(t, err)
	require.Equal(t, 10, dir.ItemsPerPage)
	require.Equal(t, types.PrivacyPublic, dir.DefaultPrivacy)

	dir, err = resolver.Resolve(ctx, types.ScopeFilter{TenantID: uuid.New()})
	require.NoError(t, err)
	require.Equal(t, 30, dir.ItemsPerPage)
}

func TestResolver_IgnoresInvalidValues(t *testing.T) {
	tenantID := uuid.New()
	source := NewStaticSource()
	source.SetTenant(tenantID, KeyItemsPerPage, "lots")
	source.SetTenant(tenantID, KeyDefaultPrivacy, 99)

	resolver := NewResolver(ResolverConfig{
		Source:   source,
		Defaults: map[string]any{KeyItemsPerPage: 25},
	})
	dir, err := resolver.Resolve(context.Background(), types.ScopeFilter{TenantID: tenantID})
	require.NoError(t, err)
	require.Equal(t, 25, dir.ItemsPerPage)
	require.Equal(t, types.PrivacyMembers, dir.DefaultPrivacy)
	require.Equal(t, "lots", dir.Values[KeyItemsPerPage])
}

func TestResolver_SourceError(t *testing.T) {
	resolver := NewResolver(ResolverConfig{Source: failingSource{}})
	_, err := resolver.Resolve(context.Background(), types.ScopeFilter{})
	require.Error(t, err)
	require.ErrorContains(t, err, "system layer")
}

type failingSource struct{}

func (failingSource) Overrides(context.Context, Level, types.ScopeFilter) (map[string]any, error) {
	return nil, errors.New("boom")
}
