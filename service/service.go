package service

import (
	"context"

	"github.com/goliatone/go-phonebook/accounts"
	"github.com/goliatone/go-phonebook/command"
	"github.com/goliatone/go-phonebook/pkg/types"
	"github.com/goliatone/go-phonebook/query"
	"github.com/goliatone/go-phonebook/scope"
	"github.com/goliatone/go-phonebook/settings"
)

// Service is the entry point for go-phonebook. It wires repositories, the
// account type registry, hooks and command/query facades supplied by the
// host application.
type Service struct {
	cfg          Config
	commands     Commands
	queries      Queries
	activityRepo types.ActivityRepository
	scopeGuard   scope.Guard
}

// Commands exposes the service command handlers.
type Commands struct {
	ProfileSkillsUpdate   *command.ProfileSkillsUpdateCommand
	ProfileContribution   *command.ProfileContributionCommand
	ProfileLocation       *command.ProfileLocationCommand
	EmailUpdate           *command.EmailUpdateCommand
	ProfileUpsert         *command.ProfileUpsertCommand
	ExternalAccountUpsert *command.ExternalAccountUpsertCommand
	ExternalAccountDelete *command.ExternalAccountDeleteCommand
	LogActivity           *command.ActivityLogCommand
}

// Queries exposes read-model helpers.
type Queries struct {
	ProfileDetail    *query.ProfileQuery
	ProfileSearch    *query.ProfileSearchQuery
	ExternalAccounts *query.ExternalAccountsQuery
	ActivityFeed     *query.ActivityFeedQuery
}

// Settings resolves the effective directory settings for a scope.
type Settings interface {
	Resolve(ctx context.Context, scope types.ScopeFilter) (settings.Directory, error)
}

// Config captures all required dependencies so callers can provide their own
// instances (bun.DB backed repositories, cached geocoders, hooks, etc.).
type Config struct {
	ProfileRepository         types.ProfileRepository
	SkillRepository           types.SkillRepository
	ExternalAccountRepository types.ExternalAccountRepository
	AccountRegistry           types.AccountTypeRegistry
	Geocoder                  types.ReverseGeocoder
	ActivitySink              types.ActivitySink
	ActivityRepository        types.ActivityRepository
	Settings                  Settings
	Hooks                     types.Hooks
	Clock                     types.Clock
	IDGenerator               types.IDGenerator
	Logger                    types.Logger
	ScopeResolver             types.ScopeResolver
	AuthorizationPolicy       types.AuthorizationPolicy
}

// New constructs a Service from the supplied configuration.
func New(cfg Config) *Service {
	norm := normalizeConfig(cfg)
	actRepo := norm.ActivityRepository
	if actRepo == nil {
		if sinkRepo, ok := norm.ActivitySink.(types.ActivityRepository); ok {
			actRepo = sinkRepo
		}
	}

	s := &Service{
		cfg:          norm,
		activityRepo: actRepo,
		scopeGuard:   scope.Ensure(scope.NewGuard(norm.ScopeResolver, norm.AuthorizationPolicy)),
	}
	s.commands = s.buildCommands()
	s.queries = s.buildQueries()
	return s
}

func normalizeConfig(cfg Config) Config {
	if cfg.Clock == nil {
		cfg.Clock = types.SystemClock{}
	}
	if cfg.IDGenerator == nil {
		cfg.IDGenerator = types.UUIDGenerator{}
	}
	if cfg.Logger == nil {
		cfg.Logger = types.NopLogger{}
	}
	if cfg.AccountRegistry == nil {
		cfg.AccountRegistry = accounts.DefaultRegistry()
	}
	if cfg.Settings == nil {
		cfg.Settings = settings.NewResolver(settings.ResolverConfig{})
	}
	return cfg
}

// Commands returns the command facade.
func (s *Service) Commands() Commands {
	return s.commands
}

// Queries returns the query facade.
func (s *Service) Queries() Queries {
	return s.queries
}

// Ready reports whether the service has the required dependencies wired in.
func (s *Service) Ready() bool {
	return s.HealthCheck(context.Background()) == nil
}

// HealthCheck surfaces the first missing dependency.
func (s *Service) HealthCheck(ctx context.Context) error {
	if s == nil {
		return types.ErrServiceNotReady
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	switch {
	case s.cfg.ProfileRepository == nil:
		return types.ErrMissingProfileRepository
	case s.cfg.SkillRepository == nil:
		return types.ErrMissingSkillRepository
	case s.cfg.ExternalAccountRepository == nil:
		return types.ErrMissingAccountRepository
	case s.cfg.Geocoder == nil:
		return types.ErrMissingGeocoder
	case s.cfg.ActivitySink == nil:
		return types.ErrMissingActivitySink
	case s.activityRepo == nil:
		return types.ErrMissingActivityRepository
	}
	return nil
}

// ScopeGuard exposes the guard instance used internally so transports can
// reuse the same resolver/policy combination.
func (s *Service) ScopeGuard() scope.Guard {
	if s == nil {
		return scope.NopGuard()
	}
	return scope.Ensure(s.scopeGuard)
}

// ActivitySink returns the configured sink so transports can emit activity
// records for auxiliary workflows.
func (s *Service) ActivitySink() types.ActivitySink {
	if s == nil {
		return nil
	}
	return s.cfg.ActivitySink
}

func (s *Service) buildCommands() Commands {
	profileCfg := command.ProfileCommandConfig{
		Repository: s.cfg.ProfileRepository,
		Skills:     s.cfg.SkillRepository,
		Geocoder:   s.cfg.Geocoder,
		Activity:   s.cfg.ActivitySink,
		Hooks:      s.cfg.Hooks,
		Clock:      s.cfg.Clock,
		Logger:     s.cfg.Logger,
		ScopeGuard: s.scopeGuard,
	}
	accountCfg := command.AccountCommandConfig{
		Repository: s.cfg.ExternalAccountRepository,
		Registry:   s.cfg.AccountRegistry,
		Settings:   s.cfg.Settings,
		Activity:   s.cfg.ActivitySink,
		Hooks:      s.cfg.Hooks,
		Clock:      s.cfg.Clock,
		Logger:     s.cfg.Logger,
		ScopeGuard: s.scopeGuard,
	}
	return Commands{
		ProfileSkillsUpdate:   command.NewProfileSkillsUpdateCommand(profileCfg),
		ProfileContribution:   command.NewProfileContributionCommand(profileCfg),
		ProfileLocation:       command.NewProfileLocationCommand(profileCfg),
		EmailUpdate:           command.NewEmailUpdateCommand(profileCfg),
		ProfileUpsert:         command.NewProfileUpsertCommand(profileCfg),
		ExternalAccountUpsert: command.NewExternalAccountUpsertCommand(accountCfg),
		ExternalAccountDelete: command.NewExternalAccountDeleteCommand(accountCfg),
		LogActivity: command.NewActivityLogCommand(command.ActivityLogConfig{
			Sink:       s.cfg.ActivitySink,
			Hooks:      s.cfg.Hooks,
			Clock:      s.cfg.Clock,
			Logger:     s.cfg.Logger,
			ScopeGuard: s.scopeGuard,
		}),
	}
}

func (s *Service) buildQueries() Queries {
	return Queries{
		ProfileDetail:    query.NewProfileQuery(s.cfg.ProfileRepository, s.scopeGuard),
		ProfileSearch:    query.NewProfileSearchQuery(s.cfg.ProfileRepository, s.cfg.Settings, s.scopeGuard),
		ExternalAccounts: query.NewExternalAccountsQuery(s.cfg.ExternalAccountRepository, s.cfg.AccountRegistry, s.scopeGuard),
		ActivityFeed:     query.NewActivityFeedQuery(s.activityRepo, s.scopeGuard),
	}
}
