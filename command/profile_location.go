package command

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-phonebook/activity"
	"github.com/goliatone/go-phonebook/forms"
	"github.com/goliatone/go-phonebook/pkg/types"
	"github.com/google/uuid"
)

// ProfileLocationInput carries the map pin of the editor.
type ProfileLocationInput struct {
	UserID     uuid.UUID
	Submission forms.LocationSubmission
	Scope      types.ScopeFilter
	Actor      types.ActorRef
	Result     *types.Profile
}

// Type implements gocommand.Message.
func (ProfileLocationInput) Type() string {
	return "command.profile.location.update"
}

// Validate implements gocommand.Message.
func (input ProfileLocationInput) Validate() error {
	return validateProfileEdit(input.UserID, input.Actor)
}

// ProfileLocationCommand stores the coordinates and resolved country.
type ProfileLocationCommand struct {
	profileEditor
	form forms.LocationForm
}

// NewProfileLocationCommand constructs the location command handler.
func NewProfileLocationCommand(cfg ProfileCommandConfig) *ProfileLocationCommand {
	return &ProfileLocationCommand{
		profileEditor: newProfileEditor(cfg),
		form:          forms.LocationForm{Geocoder: cfg.Geocoder},
	}
}

var _ gocommand.Commander[ProfileLocationInput] = (*ProfileLocationCommand)(nil)

// Execute checks the pin against the geocoder and stores it. Geocoder
// failures abort the edit unchanged.
func (c *ProfileLocationCommand) Execute(ctx context.Context, input ProfileLocationInput) error {
	if err := input.Validate(); err != nil {
		return err
	}
	scope, err := c.authorize(ctx, input.Actor, input.Scope, input.UserID, false)
	if err != nil {
		return err
	}
	clean, err := c.form.Clean(ctx, input.Submission)
	if err != nil {
		if _, ok := forms.AsFieldErrors(err); !ok {
			c.logger.Error("reverse geocode failed", err, "user_id", input.UserID)
		}
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
	data := map[string]any{}
	if saved.Country != nil {
		data["country"] = saved.Country.Code
	}
	c.finish(ctx, input.Actor, scope, "location", activity.VerbLocationUpdated, *saved, data)
	return nil
}
