package command

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-phonebook/activity"
	"github.com/goliatone/go-phonebook/forms"
	"github.com/goliatone/go-phonebook/pkg/types"
	"github.com/google/uuid"
)

// EmailUpdateInput carries the email field of the account settings.
type EmailUpdateInput struct {
	UserID     uuid.UUID
	Submission forms.EmailSubmission
	Scope      types.ScopeFilter
	Actor      types.ActorRef
	Result     *EmailUpdateResult
}

// EmailUpdateResult reports the stored profile and whether it changed.
type EmailUpdateResult struct {
	Profile types.Profile
	Changed bool
}

// Type implements gocommand.Message.
func (EmailUpdateInput) Type() string {
	return "command.profile.email.update"
}

// Validate implements gocommand.Message.
func (input EmailUpdateInput) Validate() error {
	return validateProfileEdit(input.UserID, input.Actor)
}

// EmailUpdateCommand changes the profile email when it differs from the
// stored one.
type EmailUpdateCommand struct {
	profileEditor
}

// NewEmailUpdateCommand constructs the email command handler.
func NewEmailUpdateCommand(cfg ProfileCommandConfig) *EmailUpdateCommand {
	return &EmailUpdateCommand{profileEditor: newProfileEditor(cfg)}
}

var _ gocommand.Commander[EmailUpdateInput] = (*EmailUpdateCommand)(nil)

// Execute validates the address and writes it only when it changed.
func (c *EmailUpdateCommand) Execute(ctx context.Context, input EmailUpdateInput) error {
	if err := input.Validate(); err != nil {
		return err
	}
	scope, err := c.authorize(ctx, input.Actor, input.Scope, input.UserID, false)
	if err != nil {
		return err
	}
	profile, err := c.load(ctx, input.UserID, scope, input.Actor)
	if err != nil {
		return err
	}
	previous := profile.Email

	clean, err := forms.EmailForm{Initial: previous}.Clean(input.Submission)
	if err != nil {
		return formError(err)
	}
	if !clean.Changed {
		if input.Result != nil {
			*input.Result = EmailUpdateResult{Profile: *profile}
		}
		return nil
	}

	clean.Apply(profile)
	saved, err := c.save(ctx, profile)
	if err != nil {
		return err
	}
	if input.Result != nil {
		*input.Result = EmailUpdateResult{Profile: *saved, Changed: true}
	}
	c.finish(ctx, input.Actor, scope, "email", activity.VerbEmailUpdated, *saved, map[string]any{
		"email":          saved.Email,
		"previous_email": previous,
	})
	return nil
}
