package service_test

import (
	"context"
	"testing"

	"github.com/goliatone/go-phonebook/command"
	"github.com/goliatone/go-phonebook/forms"
	"github.com/goliatone/go-phonebook/pkg/types"
	"github.com/goliatone/go-phonebook/query"
	"github.com/goliatone/go-phonebook/service"
	"github.com/goliatone/go-phonebook/settings"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestService_MultiTenantIsolation(t *testing.T) {
	ctx := context.Background()
	tenantA := uuid.New()
	tenantB := uuid.New()

	profileRepo := newMTProfileRepo()
	accountRepo := newMTAccountRepo()
	activityStore := newMTActivityStore()

	actorA := types.ActorRef{ID: uuid.New(), Type: "tenant-admin"}
	actorB := types.ActorRef{ID: uuid.New(), Type: "tenant-admin"}
	memberA := uuid.New()

	resolver := staticScopeResolver{
		scopes: map[uuid.UUID]types.ScopeFilter{
			actorA.ID: {TenantID: tenantA},
			actorB.ID: {TenantID: tenantB},
		},
	}
	policy := tenantPolicy{
		allowed: map[uuid.UUID]uuid.UUID{
			actorA.ID: tenantA,
			actorB.ID: tenantB,
		},
	}
	source := settings.NewStaticSource()
	source.SetTenant(tenantA, settings.KeyDefaultPrivacy, int(types.PrivacyPublic))

	svc := service.New(service.Config{
		ProfileRepository:         profileRepo,
		SkillRepository:           newMTSkillRepo(),
		ExternalAccountRepository: accountRepo,
		Geocoder:                  types.ReverseGeocoderFunc(func(context.Context, float64, float64) (*types.Country, error) { return nil, nil }),
		ActivitySink:              activityStore,
		Settings:                  settings.NewResolver(settings.ResolverConfig{Source: source}),
		Logger:                    types.NopLogger{},
		ScopeResolver:             resolver,
		AuthorizationPolicy:       policy,
	})
	require.True(t, svc.Ready())

	scopeTenantA := types.ScopeFilter{TenantID: tenantA}

	// Tenant A admin can edit the member's skills.
	err := svc.Commands().ProfileSkillsUpdate.Execute(ctx, command.ProfileSkillsUpdateInput{
		UserID:     memberA,
		Submission: forms.SkillsSubmission{Skills: "Go, SQL"},
		Actor:      actorA,
	})
	require.NoError(t, err)
	require.Equal(t, tenantA, profileRepo.profiles[memberA].Scope.TenantID)

	// Tenant B admin attempting to target tenant A scope is rejected.
	err = svc.Commands().ProfileContribution.Execute(ctx, command.ProfileContributionInput{
		UserID:     memberA,
		Submission: forms.ContributionSubmission{StoryLink: "https://example.com"},
		Actor:      actorB,
		Scope:      scopeTenantA,
	})
	require.ErrorIs(t, err, types.ErrUnauthorizedScope)
	require.Empty(t, profileRepo.profiles[memberA].StoryLink)

	// Default privacy follows the tenant settings.
	var accountA, accountB types.ExternalAccount
	err = svc.Commands().ExternalAccountUpsert.Execute(ctx, command.ExternalAccountUpsertInput{
		UserID:     memberA,
		Submission: forms.ExternalAccountSubmission{Type: "irc", Identifier: "member-a"},
		Actor:      actorA,
		Result:     &accountA,
	})
	require.NoError(t, err)
	require.Equal(t, types.PrivacyPublic, accountA.Privacy)

	err = svc.Commands().ExternalAccountUpsert.Execute(ctx, command.ExternalAccountUpsertInput{
		UserID:     uuid.New(),
		Submission: forms.ExternalAccountSubmission{Type: "irc", Identifier: "member-b"},
		Actor:      actorB,
		Result:     &accountB,
	})
	require.NoError(t, err)
	require.Equal(t, types.PrivacyMembers, accountB.Privacy)

	// An event logged by tenant B is stamped with tenant B's scope.
	var logged types.ActivityRecord
	err = svc.Commands().LogActivity.Execute(ctx, command.ActivityLogInput{
		Verb:   "profile.vouched",
		Actor:  actorB,
		Result: &logged,
	})
	require.NoError(t, err)
	require.Equal(t, tenantB, logged.TenantID)

	feed, err := svc.Queries().ActivityFeed.Query(ctx, types.ActivityFilter{
		Actor:      actorA,
		Pagination: types.Pagination{Limit: 10},
	})
	require.NoError(t, err)
	require.NotEmpty(t, feed.Records)
	for _, rec := range feed.Records {
		require.Equal(t, tenantA, rec.TenantID)
	}

	views, err := svc.Queries().ExternalAccounts.Query(ctx, query.ExternalAccountsInput{
		UserID: memberA,
		Actor:  actorA,
	})
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.Equal(t, "member-a", views[0].Account.Identifier)
}

func TestService_HealthCheckReportsMissingDependencies(t *testing.T) {
	svc := service.New(service.Config{})
	require.False(t, svc.Ready())
	require.ErrorIs(t, svc.HealthCheck(context.Background()), types.ErrMissingProfileRepository)

	svc = service.New(service.Config{
		ProfileRepository:         newMTProfileRepo(),
		SkillRepository:           newMTSkillRepo(),
		ExternalAccountRepository: newMTAccountRepo(),
		ActivitySink:              newMTActivityStore(),
	})
	require.ErrorIs(t, svc.HealthCheck(context.Background()), types.ErrMissingGeocoder)

	var nilSvc *service.Service
	require.ErrorIs(t, nilSvc.HealthCheck(context.Background()), types.ErrServiceNotReady)
}

// --- Test doubles ---

type staticScopeResolver struct {
	scopes map[uuid.UUID]types.ScopeFilter
}

func (r staticScopeResolver) ResolveScope(_ context.Context, actor types.ActorRef, requested types.ScopeFilter) (types.ScopeFilter, error) {
	if requested.TenantID != uuid.Nil || requested.OrgID != uuid.Nil {
		return requested, nil
	}
	if resolved, ok := r.scopes[actor.ID]; ok {
		return resolved, nil
	}
	return requested, nil
}

type tenantPolicy struct {
	allowed map[uuid.UUID]uuid.UUID
}

func (p tenantPolicy) Authorize(_ context.Context, check types.PolicyCheck) error {
	tenant := p.allowed[check.Actor.ID]
	if tenant == uuid.Nil || check.Scope.TenantID == uuid.Nil {
		return nil
	}
	if tenant != check.Scope.TenantID {
		return types.ErrUnauthorizedScope
	}
	return nil
}

type mtProfileRepo struct {
	profiles map[uuid.UUID]types.Profile
}

func newMTProfileRepo() *mtProfileRepo {
	return &mtProfileRepo{profiles: make(map[uuid.UUID]types.Profile)}
}

func (r *mtProfileRepo) GetProfile(_ context.Context, userID uuid.UUID, scope types.ScopeFilter) (*types.Profile, error) {
	profile, ok := r.profiles[userID]
	if !ok {
		return nil, nil
	}
	if scope.TenantID != uuid.Nil && profile.Scope.TenantID != scope.TenantID {
		return nil, nil
	}
	return &profile, nil
}

func (r *mtProfileRepo) UpsertProfile(_ context.Context, profile types.Profile) (*types.Profile, error) {
	r.profiles[profile.UserID] = profile
	return &profile, nil
}

func (r *mtProfileRepo) ListProfiles(_ context.Context, filter types.ProfileFilter) (types.ProfilePage, error) {
	var out []types.Profile
	for _, profile := range r.profiles {
		if filter.Scope.TenantID != uuid.Nil && profile.Scope.TenantID != filter.Scope.TenantID {
			continue
		}
		out = append(out, profile)
	}
	return types.ProfilePage{Profiles: out, Total: len(out)}, nil
}

type mtSkillRepo struct {
	skills map[string]types.Skill
	links  map[uuid.UUID][]uuid.UUID
}

func newMTSkillRepo() *mtSkillRepo {
	return &mtSkillRepo{
		skills: make(map[string]types.Skill),
		links:  make(map[uuid.UUID][]uuid.UUID),
	}
}

func (r *mtSkillRepo) EnsureSkills(_ context.Context, names []string) ([]types.Skill, error) {
	out := make([]types.Skill, 0, len(names))
	for _, name := range names {
		skill, ok := r.skills[name]
		if !ok {
			skill = types.Skill{ID: uuid.New(), Name: name}
			r.skills[name] = skill
		}
		out = append(out, skill)
	}
	return out, nil
}

func (r *mtSkillRepo) SetProfileSkills(_ context.Context, userID uuid.UUID, ids []uuid.UUID) error {
	r.links[userID] = ids
	return nil
}

func (r *mtSkillRepo) ListProfileSkills(context.Context, uuid.UUID) ([]types.Skill, error) {
	return nil, nil
}

type mtAccountRepo struct {
	accounts map[uuid.UUID]types.ExternalAccount
}

func newMTAccountRepo() *mtAccountRepo {
	return &mtAccountRepo{accounts: make(map[uuid.UUID]types.ExternalAccount)}
}

func (r *mtAccountRepo) ListAccounts(_ context.Context, filter types.ExternalAccountFilter) ([]types.ExternalAccount, error) {
	var out []types.ExternalAccount
	for _, account := range r.accounts {
		if account.UserID != filter.UserID {
			continue
		}
		if filter.Scope.TenantID != uuid.Nil && account.Scope.TenantID != filter.Scope.TenantID {
			continue
		}
		out = append(out, account)
	}
	return out, nil
}

func (r *mtAccountRepo) UpsertAccount(_ context.Context, account types.ExternalAccount) (*types.ExternalAccount, error) {
	if account.ID == uuid.Nil {
		account.ID = uuid.New()
	}
	r.accounts[account.ID] = account
	return &account, nil
}

func (r *mtAccountRepo) DeleteAccount(_ context.Context, _ uuid.UUID, id uuid.UUID, _ types.ScopeFilter) error {
	delete(r.accounts, id)
	return nil
}

type mtActivityStore struct {
	records []types.ActivityRecord
}

func newMTActivityStore() *mtActivityStore {
	return &mtActivityStore{}
}

func (s *mtActivityStore) Log(_ context.Context, record types.ActivityRecord) error {
	s.records = append(s.records, record)
	return nil
}

func (s *mtActivityStore) ListActivity(_ context.Context, filter types.ActivityFilter) (types.ActivityPage, error) {
	var records []types.ActivityRecord
	for _, record := range s.records {
		if filter.Scope.TenantID != uuid.Nil && record.TenantID != filter.Scope.TenantID {
			continue
		}
		records = append(records, record)
	}
	return types.ActivityPage{
		Records: records,
		Total:   len(records),
	}, nil
}
