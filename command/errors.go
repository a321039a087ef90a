package command

import (
	"errors"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-phonebook/forms"
	"github.com/goliatone/go-phonebook/pkg/types"
)

// TextCodeFormInvalid tags rich errors produced by rejected form submissions.
const TextCodeFormInvalid = forms.TextCodeInvalid

var (
	// ErrActorRequired indicates an actor reference was not supplied.
	ErrActorRequired = types.ErrActorRequired
	// ErrUserIDRequired occurs when a command omits the profile owner.
	ErrUserIDRequired = types.ErrUserIDRequired
	// ErrAccountIDRequired occurs when a delete omits the account id.
	ErrAccountIDRequired = errors.New("go-phonebook: external account id required")
	// ErrActivityVerbRequired indicates an activity log entry is missing a verb.
	ErrActivityVerbRequired = errors.New("go-phonebook: activity verb required")
	// ErrMissingActivitySink indicates the log command has no sink.
	ErrMissingActivitySink = types.ErrMissingActivitySink
)

func formError(err error) error {
	return forms.Wrap(err)
}

// FieldErrors returns the per-field messages carried by a command error.
func FieldErrors(err error) (forms.FieldErrors, bool) {
	var rich *goerrors.Error
	if goerrors.As(err, &rich) && rich != nil {
		if fields, ok := rich.Metadata["fields"].(forms.FieldErrors); ok {
			return fields, true
		}
	}
	return forms.AsFieldErrors(err)
}
