package accounts

import (
	"errors"
	"regexp"
	"strings"

	"github.com/goliatone/go-phonebook/forms"
	"github.com/goliatone/go-phonebook/pkg/types"
)

var twitterHandle = regexp.MustCompile(`^[A-Za-z0-9_]{1,15}$`)

var (
	errTwitterHandle = errors.New("Twitter usernames cannot be longer than 15 characters and can only contain latin letters, digits and underscores.")
	errNotUsername   = errors.New("This field requires an identifier, not a URL.")
	errWebsite       = errors.New("Enter a valid URL.")
	errEmail         = errors.New("Enter a valid email address.")
)

// TwitterValidator accepts bare handles, without the leading @.
func TwitterValidator() types.IdentifierValidator {
	return types.IdentifierValidatorFunc(func(identifier string) error {
		if !twitterHandle.MatchString(identifier) {
			return errTwitterHandle
		}
		return nil
	})
}

// UsernameNotURLValidator rejects identifiers that are links.
func UsernameNotURLValidator() types.IdentifierValidator {
	return types.IdentifierValidatorFunc(func(identifier string) error {
		lower := strings.ToLower(identifier)
		if strings.Contains(lower, "://") || strings.HasPrefix(lower, "www.") {
			return errNotUsername
		}
		return nil
	})
}

// WebsiteValidator requires an absolute URL.
func WebsiteValidator() types.IdentifierValidator {
	return types.IdentifierValidatorFunc(func(identifier string) error {
		if err := forms.Validator().Var(identifier, "url"); err != nil {
			return errWebsite
		}
		return nil
	})
}

// EmailValidator requires an email address.
func EmailValidator() types.IdentifierValidator {
	return types.IdentifierValidatorFunc(func(identifier string) error {
		if err := forms.Validator().Var(identifier, "email"); err != nil {
			return errEmail
		}
		return nil
	})
}
