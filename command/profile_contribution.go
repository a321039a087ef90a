package command

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-phonebook/activity"
	"github.com/goliatone/go-phonebook/forms"
	"github.com/goliatone/go-phonebook/pkg/types"
	"github.com/google/uuid"
)

// ProfileContributionInput carries the contribution section of the editor.
type ProfileContributionInput struct {
	UserID     uuid.UUID
	Submission forms.ContributionSubmission
	Scope      types.ScopeFilter
	Actor      types.ActorRef
	Result     *types.Profile
}

// Type implements gocommand.Message.
func (ProfileContributionInput) Type() string {
	return "command.profile.contribution.update"
}

// Validate implements gocommand.Message.
func (input ProfileContributionInput) Validate() error {
	return validateProfileEdit(input.UserID, input.Actor)
}

// ProfileContributionCommand stores the story link of a profile.
type ProfileContributionCommand struct {
	profileEditor
	form forms.ContributionForm
}

// NewProfileContributionCommand constructs the contribution command handler.
func NewProfileContributionCommand(cfg ProfileCommandConfig) *ProfileContributionCommand {
	return &ProfileContributionCommand{profileEditor: newProfileEditor(cfg)}
}

var _ gocommand.Commander[ProfileContributionInput] = (*ProfileContributionCommand)(nil)

// Execute validates and stores the story link. An empty link clears it.
func (c *ProfileContributionCommand) Execute(ctx context.Context, input ProfileContributionInput) error {
	if err := input.Validate(); err != nil {
		return err
	}
	scope, err := c.authorize(ctx, input.Actor, input.Scope, input.UserID, false)
	if err != nil {
		return err
	}
	clean, err := c.form.Clean(input.Submission)
	if err != nil {
		return formError(err)
	}

	profile, err := c.load(ctx, input.UserID, scope, input.Actor)
	if err != nil {
		return err
	}
	clean.Apply(profile)
	saved, err := c.save(ctx, profile)
	if err != nil {
		return err
	}
	if input.Result != nil {
		*input.Result = *saved
	}
	c.finish(ctx, input.Actor, scope, "contribution", activity.VerbContributionUpdated, *saved, map[string]any{
		"story_link": clean.StoryLink,
	})
	return nil
}
