package accounts

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-phonebook/pkg/types"
)

// Account type codes shipped with DefaultRegistry.
const (
	TypeAMO           = "AMO"
	TypeBMO           = "BMO"
	TypeDiscourse     = "DISCOURSE"
	TypeGitHub        = "GITHUB"
	TypeIRC           = "IRC"
	TypeJabber        = "JABBER"
	TypeLinkedIn      = "LINKEDIN"
	TypeMDN           = "MDN"
	TypePontoon       = "MOZILLAPONTOON"
	TypeStackOverflow = "STACKOVERFLOW"
	TypeSUMO          = "SUMO"
	TypeTransifex     = "TRANSIFEX"
	TypeTwitter       = "TWITTER"
	TypeWebsite       = "WEBSITE"
)

// ErrAccountCodeRequired indicates an account type was registered without a code.
var ErrAccountCodeRequired = errors.New("accounts: account type code required")

// StaticRegistry is an immutable code -> account type mapping. It preserves
// registration order for Types.
type StaticRegistry struct {
	byCode map[string]types.AccountType
	order  []string
}

var _ types.AccountTypeRegistry = (*StaticRegistry)(nil)

// NewRegistry builds a registry from the supplied definitions. Codes are
// matched case-insensitively and must be unique.
func NewRegistry(defs ...types.AccountType) (*StaticRegistry, error) {
	reg := &StaticRegistry{
		byCode: make(map[string]types.AccountType, len(defs)),
		order:  make([]string, 0, len(defs)),
	}
	for _, def := range defs {
		code := normalizeCode(def.Code)
		if code == "" {
			return nil, ErrAccountCodeRequired
		}
		if _, exists := reg.byCode[code]; exists {
			return nil, fmt.Errorf("accounts: duplicate account type %q", code)
		}
		def.Code = code
		if def.Name == "" {
			def.Name = code
		}
		reg.byCode[code] = def
		reg.order = append(reg.order, code)
	}
	return reg, nil
}

// MustRegistry is NewRegistry for static definitions known to be valid.
func MustRegistry(defs ...types.AccountType) *StaticRegistry {
	reg, err := NewRegistry(defs...)
	if err != nil {
		panic(err)
	}
	return reg
}

// DefaultRegistry returns the account types offered by the directory.
func DefaultRegistry() *StaticRegistry {
	return MustRegistry(
		types.AccountType{Code: TypeAMO, Name: "Mozilla Add-ons", URL: "https://addons.mozilla.org/user/{identifier}/"},
		types.AccountType{Code: TypeBMO, Name: "Bugzilla (BMO)", Validator: EmailValidator()},
		types.AccountType{Code: TypeDiscourse, Name: "Mozilla Discourse", URL: "https://discourse.mozilla.org/u/{identifier}", Validator: UsernameNotURLValidator()},
		types.AccountType{Code: TypeGitHub, Name: "GitHub", URL: "https://github.com/{identifier}", Validator: UsernameNotURLValidator()},
		types.AccountType{Code: TypeIRC, Name: "IRC", Validator: UsernameNotURLValidator()},
		types.AccountType{Code: TypeJabber, Name: "XMPP/Jabber", Validator: EmailValidator()},
		types.AccountType{Code: TypeLinkedIn, Name: "LinkedIn", URL: "https://www.linkedin.com/in/{identifier}/", Validator: UsernameNotURLValidator()},
		types.AccountType{Code: TypeMDN, Name: "MDN", URL: "https://developer.mozilla.org/profiles/{identifier}"},
		types.AccountType{Code: TypePontoon, Name: "Mozilla Pontoon", URL: "https://pontoon.mozilla.org/contributors/{identifier}/"},
		types.AccountType{Code: TypeStackOverflow, Name: "Stack Overflow", URL: "https://stackoverflow.com/users/{identifier}"},
		types.AccountType{Code: TypeSUMO, Name: "Mozilla Support", URL: "https://support.mozilla.org/user/{identifier}"},
		types.AccountType{Code: TypeTransifex, Name: "Transifex", URL: "https://www.transifex.com/accounts/profile/{identifier}/"},
		types.AccountType{Code: TypeTwitter, Name: "Twitter", URL: "https://twitter.com/{identifier}", Validator: TwitterValidator()},
		types.AccountType{Code: TypeWebsite, Name: "Website URL", Validator: WebsiteValidator()},
	)
}

// Lookup implements types.AccountTypeRegistry.
func (r *StaticRegistry) Lookup(code string) (types.AccountType, bool) {
	if r == nil {
		return types.AccountType{}, false
	}
	def, ok := r.byCode[normalizeCode(code)]
	return def, ok
}

// Types implements types.AccountTypeRegistry.
func (r *StaticRegistry) Types() []types.AccountType {
	if r == nil {
		return nil
	}
	out := make([]types.AccountType, 0, len(r.order))
	for _, code := range r.order {
		out = append(out, r.byCode[code])
	}
	return out
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
