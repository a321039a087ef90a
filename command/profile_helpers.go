package command

import (
	"context"

	"github.com/goliatone/go-phonebook/activity"
	"github.com/goliatone/go-phonebook/pkg/types"
	"github.com/goliatone/go-phonebook/scope"
	"github.com/google/uuid"
)

// ProfileCommandConfig wires dependencies shared by the profile commands.
type ProfileCommandConfig struct {
	Repository types.ProfileRepository
	Skills     types.SkillRepository
	Geocoder   types.ReverseGeocoder
	Activity   types.ActivitySink
	Hooks      types.Hooks
	Clock      types.Clock
	Logger     types.Logger
	ScopeGuard scope.Guard
}

type profileEditor struct {
	repo   types.ProfileRepository
	sink   types.ActivitySink
	hooks  types.Hooks
	clock  types.Clock
	logger types.Logger
	guard  scope.Guard
}

func newProfileEditor(cfg ProfileCommandConfig) profileEditor {
	return profileEditor{
		repo:   cfg.Repository,
		sink:   cfg.Activity,
		hooks:  safeHooks(cfg.Hooks),
		clock:  safeClock(cfg.Clock),
		logger: safeLogger(cfg.Logger),
		guard:  safeScopeGuard(cfg.ScopeGuard),
	}
}

func validateProfileEdit(userID uuid.UUID, actor types.ActorRef) error {
	if userID == uuid.Nil {
		return ErrUserIDRequired
	}
	if actor.ID == uuid.Nil {
		return ErrActorRequired
	}
	return nil
}

// authorize resolves the scope the edit runs in. vouch marks edits that
// change the vouched flag.
func (e profileEditor) authorize(ctx context.Context, actor types.ActorRef, requested types.ScopeFilter, userID uuid.UUID, vouch bool) (types.ScopeFilter, error) {
	if e.repo == nil {
		return types.ScopeFilter{}, types.ErrMissingProfileRepository
	}
	return scope.ProfileEdit(ctx, e.guard, actor, requested, userID, vouch)
}

// load returns the stored profile or a fresh one owned by userID.
func (e profileEditor) load(ctx context.Context, userID uuid.UUID, scope types.ScopeFilter, actor types.ActorRef) (*types.Profile, error) {
	profile, _, err := e.loadStored(ctx, userID, scope, actor)
	return profile, err
}

// loadStored is load that also reports whether the profile already exists.
func (e profileEditor) loadStored(ctx context.Context, userID uuid.UUID, scope types.ScopeFilter, actor types.ActorRef) (*types.Profile, bool, error) {
	existing, err := e.repo.GetProfile(ctx, userID, scope)
	if err != nil {
		e.logger.Error("profile load failed", err, "user_id", userID)
		return nil, false, err
	}
	profile := &types.Profile{
		UserID: userID,
		Scope:  scope,
	}
	if existing != nil {
		*profile = *existing
	}
	if profile.CreatedBy == uuid.Nil {
		profile.CreatedBy = actor.ID
	}
	profile.UpdatedBy = actor.ID
	return profile, existing != nil, nil
}

func (e profileEditor) save(ctx context.Context, profile *types.Profile) (*types.Profile, error) {
	updated, err := e.repo.UpsertProfile(ctx, *profile)
	if err != nil {
		e.logger.Error("profile save failed", err, "user_id", profile.UserID)
		return nil, err
	}
	if updated == nil {
		return profile, nil
	}
	if updated.Skills == nil {
		updated.Skills = profile.Skills
	}
	return updated, nil
}

// finish records the activity entry and runs the hooks, sink first.
func (e profileEditor) finish(ctx context.Context, actor types.ActorRef, scope types.ScopeFilter, field, verb string, profile types.Profile, data map[string]any) {
	record := activity.BuildRecord(actor, profile.UserID, scope, verb, activity.ObjectProfile, profile.UserID.String(), data)
	record.OccurredAt = now(e.clock)
	logActivity(ctx, e.sink, e.logger, record)
	emitActivityHook(ctx, e.hooks, record)
	emitProfileHook(ctx, e.hooks, types.ProfileEvent{
		UserID:     profile.UserID,
		Scope:      scope,
		ActorID:    actor.ID,
		Field:      field,
		OccurredAt: record.OccurredAt,
		Profile:    profile,
	})
	e.logger.Debug("profile updated", "user_id", profile.UserID, "field", field)
}
