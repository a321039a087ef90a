package command

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-phonebook/activity"
	"github.com/goliatone/go-phonebook/forms"
	"github.com/goliatone/go-phonebook/pkg/types"
	"github.com/goliatone/go-phonebook/scope"
	"github.com/google/uuid"
)

// ExternalAccountUpsertInput carries one external account row of the editor.
// AccountID selects the entry being edited; zero adds a new one.
type ExternalAccountUpsertInput struct {
	UserID     uuid.UUID
	AccountID  uuid.UUID
	Submission forms.ExternalAccountSubmission
	Scope      types.ScopeFilter
	Actor      types.ActorRef
	Result     *types.ExternalAccount
}

// Type implements gocommand.Message.
func (ExternalAccountUpsertInput) Type() string {
	return "command.profile.account.upsert"
}

// Validate implements gocommand.Message.
func (input ExternalAccountUpsertInput) Validate() error {
	return validateProfileEdit(input.UserID, input.Actor)
}

// ExternalAccountUpsertCommand validates and stores an external account.
type ExternalAccountUpsertCommand struct {
	accountEditor
}

// NewExternalAccountUpsertCommand constructs the account command handler.
func NewExternalAccountUpsertCommand(cfg AccountCommandConfig) *ExternalAccountUpsertCommand {
	return &ExternalAccountUpsertCommand{accountEditor: newAccountEditor(cfg)}
}

var _ gocommand.Commander[ExternalAccountUpsertInput] = (*ExternalAccountUpsertCommand)(nil)

// Execute strips the URL template from the identifier, runs the type
// validator and stores the bare identifier.
func (c *ExternalAccountUpsertCommand) Execute(ctx context.Context, input ExternalAccountUpsertInput) error {
	if c.repo == nil {
		return types.ErrMissingAccountRepository
	}
	if c.registry == nil {
		return types.ErrMissingAccountRegistry
	}
	if err := input.Validate(); err != nil {
		return err
	}
	resolved, err := scope.AccountEdit(ctx, c.guard, input.Actor, input.Scope, input.UserID)
	if err != nil {
		return err
	}

	form := forms.ExternalAccountForm{Registry: c.registry}
	if c.settings != nil {
		dir, err := c.settings.Resolve(ctx, resolved)
		if err != nil {
			return err
		}
		form.DefaultPrivacy = dir.DefaultPrivacy
	}
	clean, err := form.Clean(input.Submission)
	if err != nil {
		return formError(err)
	}

	account := types.ExternalAccount{
		ID:        input.AccountID,
		UserID:    input.UserID,
		Scope:     resolved,
		CreatedBy: input.Actor.ID,
		UpdatedBy: input.Actor.ID,
	}
	clean.Apply(&account)
	saved, err := c.repo.UpsertAccount(ctx, account)
	if err != nil {
		c.logger.Error("external account save failed", err, "user_id", input.UserID)
		return err
	}
	if saved == nil {
		saved = &account
	}
	if input.Result != nil {
		*input.Result = *saved
	}
	c.finish(ctx, input.Actor, resolved, "saved", activity.VerbAccountSaved, *saved)
	return nil
}
