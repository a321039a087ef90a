package forms

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-phonebook/pkg/types"
)

const msgMissingIdentifier = "Missing identifier."

// ExternalAccountSubmission carries one external account row of the editor.
type ExternalAccountSubmission struct {
	Type       string             `form:"type" validate:"required"`
	Identifier string             `form:"identifier" validate:"max=255"`
	Privacy    types.PrivacyLevel `form:"privacy"`
}

// CleanExternalAccount holds a validated account entry with the bare identifier.
type CleanExternalAccount struct {
	Type       types.AccountType
	Identifier string
	Privacy    types.PrivacyLevel
}

// Apply writes the entry values onto the account record.
func (c CleanExternalAccount) Apply(account *types.ExternalAccount) {
	if account == nil {
		return
	}
	account.Type = c.Type.Code
	account.Identifier = c.Identifier
	account.Privacy = c.Privacy
}

// ExternalAccountForm validates account entries against the type registry.
type ExternalAccountForm struct {
	Registry types.AccountTypeRegistry
	// DefaultPrivacy applies to entries submitted without a level.
	// Zero means PrivacyMembers.
	DefaultPrivacy types.PrivacyLevel
}

// Clean resolves the account type, strips the URL template from the
// identifier and runs the type validator.
func (f ExternalAccountForm) Clean(submission ExternalAccountSubmission) (CleanExternalAccount, error) {
	if f.Registry == nil {
		return CleanExternalAccount{}, types.ErrMissingAccountRegistry
	}
	submission.Type = strings.TrimSpace(submission.Type)
	submission.Identifier = strings.TrimSpace(submission.Identifier)

	fields := FieldErrors{}
	if err := checkStruct(submission, fields); err != nil {
		return CleanExternalAccount{}, err
	}

	privacy := submission.Privacy
	if privacy == 0 {
		privacy = f.DefaultPrivacy
	}
	if privacy == 0 {
		privacy = types.PrivacyMembers
	}
	if !privacy.Valid() {
		fields.Add("privacy", fmt.Sprintf("Select a valid choice. %d is not one of the available choices.", submission.Privacy))
	}

	var accountType types.AccountType
	if submission.Type != "" {
		found, ok := f.Registry.Lookup(submission.Type)
		if !ok {
			fields.Add("type", fmt.Sprintf("Select a valid choice. %s is not one of the available choices.", submission.Type))
		}
		accountType = found
	}

	identifier := submission.Identifier
	if identifier == "" {
		fields.Add("identifier", msgMissingIdentifier)
	} else if accountType.Code != "" {
		identifier = StripIdentifier(accountType.URL, identifier)
		if accountType.Validator != nil {
			if err := accountType.Validator.ValidateIdentifier(identifier); err != nil {
				fields.Add("identifier", err.Error())
			}
		}
	}

	if err := invalid("external account", fields); err != nil {
		return CleanExternalAccount{}, err
	}
	return CleanExternalAccount{
		Type:       accountType,
		Identifier: identifier,
		Privacy:    privacy,
	}, nil
}

// StripIdentifier recovers the bare identifier from a URL built with
// template. Values that are not URLs, or that do not match the template,
// are returned unchanged. Trailing slashes and http/https differences are
// tolerated.
func StripIdentifier(template, value string) string {
	prefix, suffix, ok := strings.Cut(template, types.IdentifierPlaceholder)
	if !ok || !looksLikeURL(value) {
		return value
	}
	candidate := trimScheme(strings.TrimRight(value, "/"))
	prefix = trimScheme(prefix)
	suffix = strings.TrimRight(suffix, "/")
	if len(candidate) <= len(prefix)+len(suffix) {
		return value
	}
	if !strings.EqualFold(candidate[:len(prefix)], prefix) {
		return value
	}
	if !strings.HasSuffix(candidate, suffix) {
		return value
	}
	bare := candidate[len(prefix) : len(candidate)-len(suffix)]
	if bare == "" {
		return value
	}
	return bare
}

func looksLikeURL(value string) bool {
	lower := strings.ToLower(value)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

func trimScheme(value string) string {
	lower := strings.ToLower(value)
	switch {
	case strings.HasPrefix(lower, "https://"):
		return value[len("https://"):]
	case strings.HasPrefix(lower, "http://"):
		return value[len("http://"):]
	default:
		return value
	}
}
