package command

import (
	"context"

	"github.com/goliatone/go-phonebook/activity"
	"github.com/goliatone/go-phonebook/pkg/types"
	"github.com/goliatone/go-phonebook/scope"
	"github.com/goliatone/go-phonebook/settings"
)

// DirectorySettings resolves the effective directory configuration.
type DirectorySettings interface {
	Resolve(ctx context.Context, scope types.ScopeFilter) (settings.Directory, error)
}

// AccountCommandConfig wires dependencies for external account commands.
type AccountCommandConfig struct {
	Repository types.ExternalAccountRepository
	Registry   types.AccountTypeRegistry
	Settings   DirectorySettings
	Activity   types.ActivitySink
	Hooks      types.Hooks
	Clock      types.Clock
	Logger     types.Logger
	ScopeGuard scope.Guard
}

type accountEditor struct {
	repo     types.ExternalAccountRepository
	registry types.AccountTypeRegistry
	settings DirectorySettings
	sink     types.ActivitySink
	hooks    types.Hooks
	clock    types.Clock
	logger   types.Logger
	guard    scope.Guard
}

func newAccountEditor(cfg AccountCommandConfig) accountEditor {
	return accountEditor{
		repo:     cfg.Repository,
		registry: cfg.Registry,
		settings: cfg.Settings,
		sink:     cfg.Activity,
		hooks:    safeHooks(cfg.Hooks),
		clock:    safeClock(cfg.Clock),
		logger:   safeLogger(cfg.Logger),
		guard:    safeScopeGuard(cfg.ScopeGuard),
	}
}

func (e accountEditor) finish(ctx context.Context, actor types.ActorRef, scope types.ScopeFilter, action, verb string, account types.ExternalAccount) {
	record := activity.BuildRecord(actor, account.UserID, scope, verb, activity.ObjectExternalAccount, account.ID.String(), map[string]any{
		"type":       account.Type,
		"identifier": account.Identifier,
		"privacy":    int(account.Privacy),
	})
	record.OccurredAt = now(e.clock)
	logActivity(ctx, e.sink, e.logger, record)
	emitActivityHook(ctx, e.hooks, record)
	emitExternalAccountHook(ctx, e.hooks, types.ExternalAccountEvent{
		UserID:     account.UserID,
		Scope:      scope,
		ActorID:    actor.ID,
		Action:     action,
		OccurredAt: record.OccurredAt,
		Account:    account,
	})
	e.logger.Debug("external account "+action, "user_id", account.UserID, "type", account.Type)
}
