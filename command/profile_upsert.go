package command

import (
	"context"
	"strings"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-phonebook/pkg/types"
	"github.com/google/uuid"
)

// VerbProfileUpdated is logged for free-form profile patches.
const VerbProfileUpdated = "profile.updated"

// ProfileUpsertInput captures a profile patch request.
type ProfileUpsertInput struct {
	UserID uuid.UUID
	Patch  types.ProfilePatch
	Scope  types.ScopeFilter
	Actor  types.ActorRef
	Result *types.Profile
}

// Type implements gocommand.Message.
func (ProfileUpsertInput) Type() string {
	return "command.profile.upsert"
}

// Validate implements gocommand.Message.
func (input ProfileUpsertInput) Validate() error {
	return validateProfileEdit(input.UserID, input.Actor)
}

// ProfileUpsertCommand applies profile patches for a user, creating the
// directory entry when necessary.
type ProfileUpsertCommand struct {
	profileEditor
}

// NewProfileUpsertCommand constructs the profile command handler.
func NewProfileUpsertCommand(cfg ProfileCommandConfig) *ProfileUpsertCommand {
	return &ProfileUpsertCommand{profileEditor: newProfileEditor(cfg)}
}

var _ gocommand.Commander[ProfileUpsertInput] = (*ProfileUpsertCommand)(nil)

// Execute applies the supplied patch. Changing the vouched flag additionally
// requires the vouch permission.
func (c *ProfileUpsertCommand) Execute(ctx context.Context, input ProfileUpsertInput) error {
	if err := input.Validate(); err != nil {
		return err
	}
	scope, err := c.authorize(ctx, input.Actor, input.Scope, input.UserID, input.Patch.Vouched != nil)
	if err != nil {
		return err
	}

	profile, err := c.load(ctx, input.UserID, scope, input.Actor)
	if err != nil {
		return err
	}
	changed := applyProfilePatch(profile, input.Patch)
	saved, err := c.save(ctx, profile)
	if err != nil {
		return err
	}
	if input.Result != nil {
		*input.Result = *saved
	}
	c.finish(ctx, input.Actor, scope, "profile", VerbProfileUpdated, *saved, map[string]any{
		"fields": changed,
	})
	return nil
}

func applyProfilePatch(profile *types.Profile, patch types.ProfilePatch) []string {
	if profile == nil {
		return nil
	}
	changed := make([]string, 0, 3)
	if patch.DisplayName != nil {
		profile.DisplayName = strings.TrimSpace(*patch.DisplayName)
		changed = append(changed, "display_name")
	}
	if patch.Bio != nil {
		profile.Bio = *patch.Bio
		changed = append(changed, "bio")
	}
	if patch.Vouched != nil {
		profile.Vouched = *patch.Vouched
		changed = append(changed, "vouched")
	}
	return changed
}
