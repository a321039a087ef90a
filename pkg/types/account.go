package types

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// IdentifierPlaceholder marks where the identifier goes in an account URL template.
const IdentifierPlaceholder = "{identifier}"

// PrivacyLevel controls who can see a profile field or account entry.
type PrivacyLevel int

const (
	PrivacyPrivileged PrivacyLevel = 1
	PrivacyEmployees  PrivacyLevel = 2
	PrivacyMembers    PrivacyLevel = 3
	PrivacyPublic     PrivacyLevel = 4
)

// Valid reports whether the level is one of the known privacy levels.
func (p PrivacyLevel) Valid() bool {
	return p >= PrivacyPrivileged && p <= PrivacyPublic
}

// IdentifierValidator checks an external account identifier.
type IdentifierValidator interface {
	ValidateIdentifier(identifier string) error
}

// IdentifierValidatorFunc adapts bare functions to IdentifierValidator.
type IdentifierValidatorFunc func(identifier string) error

// ValidateIdentifier implements IdentifierValidator.
func (f IdentifierValidatorFunc) ValidateIdentifier(identifier string) error {
	return f(identifier)
}

// AccountType describes one kind of external account a member can link.
type AccountType struct {
	Code      string
	Name      string
	URL       string
	Validator IdentifierValidator
}

// HasURL reports whether the account type renders identifiers into a URL.
func (a AccountType) HasURL() bool {
	return strings.Contains(a.URL, IdentifierPlaceholder)
}

// ProfileURL renders the public URL for the identifier, or "" when the type
// has no URL template.
func (a AccountType) ProfileURL(identifier string) string {
	if !a.HasURL() || identifier == "" {
		return ""
	}
	return strings.Replace(a.URL, IdentifierPlaceholder, identifier, 1)
}

// AccountTypeRegistry exposes the read-only set of account types.
type AccountTypeRegistry interface {
	Lookup(code string) (AccountType, bool)
	Types() []AccountType
}

// ExternalAccount links a profile to a third-party identity.
type ExternalAccount struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	Type       string
	Identifier string
	Privacy    PrivacyLevel
	Scope      ScopeFilter
	CreatedAt  time.Time
	UpdatedAt  time.Time
	CreatedBy  uuid.UUID
	UpdatedBy  uuid.UUID
}

// ExternalAccountFilter narrows account listings.
type ExternalAccountFilter struct {
	UserID     uuid.UUID
	Scope      ScopeFilter
	Types      []string
	MinPrivacy PrivacyLevel
}

// ExternalAccountRepository persists external account entries.
type ExternalAccountRepository interface {
	ListAccounts(ctx context.Context, filter ExternalAccountFilter) ([]ExternalAccount, error)
	UpsertAccount(ctx context.Context, account ExternalAccount) (*ExternalAccount, error)
	DeleteAccount(ctx context.Context, userID, id uuid.UUID, scope ScopeFilter) error
}
