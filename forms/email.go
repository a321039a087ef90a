package forms

import (
	"strings"

	"github.com/goliatone/go-phonebook/pkg/types"
)

// EmailSubmission carries the account email field.
type EmailSubmission struct {
	Email string `form:"email" validate:"required,email,max=254"`
}

// CleanEmail holds the normalized email and whether it differs from the
// stored one, ignoring case.
type CleanEmail struct {
	Email   string
	Changed bool
}

// Apply writes the email onto the profile.
func (c CleanEmail) Apply(profile *types.Profile) {
	if profile == nil {
		return
	}
	profile.Email = c.Email
}

// EmailForm validates an email change against the current address.
type EmailForm struct {
	Initial string
}

// Clean validates and normalizes the email.
func (f EmailForm) Clean(submission EmailSubmission) (CleanEmail, error) {
	submission.Email = strings.TrimSpace(submission.Email)
	fields := FieldErrors{}
	if err := checkStruct(submission, fields); err != nil {
		return CleanEmail{}, err
	}
	if err := invalid("email", fields); err != nil {
		return CleanEmail{}, err
	}
	email := NormalizeEmail(submission.Email)
	return CleanEmail{
		Email:   email,
		Changed: !strings.EqualFold(email, NormalizeEmail(f.Initial)),
	}, nil
}

// NormalizeEmail trims the address and lower-cases its domain part.
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at] + "@" + strings.ToLower(email[at+1:])
}
