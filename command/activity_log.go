package command

import (
	"context"
	"strings"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-phonebook/activity"
	"github.com/goliatone/go-phonebook/pkg/types"
	"github.com/goliatone/go-phonebook/scope"
	"github.com/google/uuid"
)

// ActivityLogInput records an event about the profile of UserID, or one of
// their external accounts, that happened outside the editor commands (a
// vouch granted by a curator, an import). ObjectType defaults to the profile.
type ActivityLogInput struct {
	UserID     uuid.UUID
	Verb       string
	ObjectType string
	ObjectID   string
	Data       map[string]any
	Scope      types.ScopeFilter
	Actor      types.ActorRef
	Result     *types.ActivityRecord
}

// Type implements gocommand.Message.
func (ActivityLogInput) Type() string {
	return "command.activity.log"
}

// Validate implements gocommand.Message.
func (input ActivityLogInput) Validate() error {
	if strings.TrimSpace(input.Verb) == "" {
		return ErrActivityVerbRequired
	}
	if input.Actor.ID == uuid.Nil {
		return ErrActorRequired
	}
	if input.ObjectType != "" && !activity.KnownObject(input.ObjectType) {
		return activity.ErrUnknownObject
	}
	return nil
}

// ActivityLogConfig wires dependencies for the log command.
type ActivityLogConfig struct {
	Sink       types.ActivitySink
	Hooks      types.Hooks
	Clock      types.Clock
	Logger     types.Logger
	ScopeGuard scope.Guard
}

// ActivityLogCommand files host events in the phonebook history.
type ActivityLogCommand struct {
	sink   types.ActivitySink
	hooks  types.Hooks
	clock  types.Clock
	logger types.Logger
	guard  scope.Guard
}

// NewActivityLogCommand constructs the logging command handler.
func NewActivityLogCommand(cfg ActivityLogConfig) *ActivityLogCommand {
	return &ActivityLogCommand{
		sink:   cfg.Sink,
		hooks:  safeHooks(cfg.Hooks),
		clock:  safeClock(cfg.Clock),
		logger: safeLogger(cfg.Logger),
		guard:  safeScopeGuard(cfg.ScopeGuard),
	}
}

var _ gocommand.Commander[ActivityLogInput] = (*ActivityLogCommand)(nil)

// Execute authorizes the event like an edit of the object it names and
// stores it in the resolved scope. Unlike the editor commands a sink
// failure is returned.
func (c *ActivityLogCommand) Execute(ctx context.Context, input ActivityLogInput) error {
	if c.sink == nil {
		return ErrMissingActivitySink
	}
	if err := input.Validate(); err != nil {
		return err
	}
	objectType, objectID := input.ObjectType, input.ObjectID
	if objectType == "" {
		objectType = activity.ObjectProfile
	}
	if objectType == activity.ObjectProfile && objectID == "" && input.UserID != uuid.Nil {
		objectID = input.UserID.String()
	}

	var (
		resolved types.ScopeFilter
		err      error
	)
	if objectType == activity.ObjectExternalAccount {
		resolved, err = scope.AccountEdit(ctx, c.guard, input.Actor, input.Scope, input.UserID)
	} else {
		resolved, err = scope.ProfileEdit(ctx, c.guard, input.Actor, input.Scope, input.UserID, false)
	}
	if err != nil {
		return err
	}

	record := activity.BuildRecord(input.Actor, input.UserID, resolved, input.Verb, objectType, objectID, input.Data)
	record.OccurredAt = now(c.clock)
	if err := c.sink.Log(ctx, record); err != nil {
		c.logger.Error("activity log failed", err, "verb", record.Verb, "user_id", input.UserID)
		return err
	}
	if input.Result != nil {
		*input.Result = record
	}
	emitActivityHook(ctx, c.hooks, record)
	return nil
}
