package command

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-phonebook/activity"
	"github.com/goliatone/go-phonebook/pkg/types"
	"github.com/goliatone/go-phonebook/scope"
	"github.com/google/uuid"
)

// ExternalAccountDeleteInput identifies the entry to remove.
type ExternalAccountDeleteInput struct {
	UserID    uuid.UUID
	AccountID uuid.UUID
	Scope     types.ScopeFilter
	Actor     types.ActorRef
}

// Type implements gocommand.Message.
func (ExternalAccountDeleteInput) Type() string {
	return "command.profile.account.delete"
}

// Validate implements gocommand.Message.
func (input ExternalAccountDeleteInput) Validate() error {
	if err := validateProfileEdit(input.UserID, input.Actor); err != nil {
		return err
	}
	if input.AccountID == uuid.Nil {
		return ErrAccountIDRequired
	}
	return nil
}

// ExternalAccountDeleteCommand removes an external account entry.
type ExternalAccountDeleteCommand struct {
	accountEditor
}

// NewExternalAccountDeleteCommand constructs the delete handler.
func NewExternalAccountDeleteCommand(cfg AccountCommandConfig) *ExternalAccountDeleteCommand {
	return &ExternalAccountDeleteCommand{accountEditor: newAccountEditor(cfg)}
}

var _ gocommand.Commander[ExternalAccountDeleteInput] = (*ExternalAccountDeleteCommand)(nil)

// Execute deletes the entry owned by the user.
func (c *ExternalAccountDeleteCommand) Execute(ctx context.Context, input ExternalAccountDeleteInput) error {
	if c.repo == nil {
		return types.ErrMissingAccountRepository
	}
	if err := input.Validate(); err != nil {
		return err
	}
	resolved, err := scope.AccountEdit(ctx, c.guard, input.Actor, input.Scope, input.UserID)
	if err != nil {
		return err
	}
	if err := c.repo.DeleteAccount(ctx, input.UserID, input.AccountID, resolved); err != nil {
		c.logger.Error("external account delete failed", err, "user_id", input.UserID)
		return err
	}
	c.finish(ctx, input.Actor, resolved, "deleted", activity.VerbAccountDeleted, types.ExternalAccount{
		ID:     input.AccountID,
		UserID: input.UserID,
		Scope:  resolved,
	})
	return nil
}
