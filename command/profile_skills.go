package command

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-phonebook/activity"
	"github.com/goliatone/go-phonebook/forms"
	"github.com/goliatone/go-phonebook/pkg/types"
	"github.com/google/uuid"
)

// ProfileSkillsUpdateInput carries the raw comma-separated skills field.
type ProfileSkillsUpdateInput struct {
	UserID     uuid.UUID
	Submission forms.SkillsSubmission
	Scope      types.ScopeFilter
	Actor      types.ActorRef
	Result     *types.Profile
}

// Type implements gocommand.Message.
func (ProfileSkillsUpdateInput) Type() string {
	return "command.profile.skills.update"
}

// Validate implements gocommand.Message.
func (input ProfileSkillsUpdateInput) Validate() error {
	return validateProfileEdit(input.UserID, input.Actor)
}

// ProfileSkillsUpdateCommand replaces the skills of a profile.
type ProfileSkillsUpdateCommand struct {
	profileEditor
	skills types.SkillRepository
	form   forms.SkillsForm
}

// NewProfileSkillsUpdateCommand constructs the skills command handler.
func NewProfileSkillsUpdateCommand(cfg ProfileCommandConfig) *ProfileSkillsUpdateCommand {
	return &ProfileSkillsUpdateCommand{
		profileEditor: newProfileEditor(cfg),
		skills:        cfg.Skills,
	}
}

var _ gocommand.Commander[ProfileSkillsUpdateInput] = (*ProfileSkillsUpdateCommand)(nil)

// Execute normalizes the skills, creates the missing ones and links them to
// the profile. A failed link leaves an existing profile row untouched.
func (c *ProfileSkillsUpdateCommand) Execute(ctx context.Context, input ProfileSkillsUpdateInput) error {
	if c.skills == nil {
		return types.ErrMissingSkillRepository
	}
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

	profile, stored, err := c.loadStored(ctx, input.UserID, scope, input.Actor)
	if err != nil {
		return err
	}
	linked, err := c.skills.EnsureSkills(ctx, clean.Names)
	if err != nil {
		c.logger.Error("skills ensure failed", err, "user_id", input.UserID)
		return err
	}
	ids := make([]uuid.UUID, 0, len(linked))
	for _, skill := range linked {
		ids = append(ids, skill.ID)
	}

	// profile_skills references profiles, so a new row is stored before linking.
	clean.Apply(profile)
	var saved *types.Profile
	if !stored {
		if saved, err = c.save(ctx, profile); err != nil {
			return err
		}
	}
	if err := c.skills.SetProfileSkills(ctx, input.UserID, ids); err != nil {
		c.logger.Error("skills link failed", err, "user_id", input.UserID)
		return err
	}
	if stored {
		if saved, err = c.save(ctx, profile); err != nil {
			return err
		}
	}
	saved.Skills = append([]string(nil), clean.Names...)

	if input.Result != nil {
		*input.Result = *saved
	}
	c.finish(ctx, input.Actor, scope, "skills", activity.VerbSkillsUpdated, *saved, map[string]any{
		"skills": clean.String(),
	})
	return nil
}
