package forms

import "github.com/goliatone/go-phonebook/pkg/types"

// Vouched filter codes accepted by the directory.
const (
	VouchedYes = "yes"
	VouchedNo  = "no"
)

// VouchedFilter maps a filter code to the vouched value to match. Unknown
// codes return nil, meaning no filtering.
func VouchedFilter(code string) *bool {
	var vouched bool
	switch code {
	case VouchedYes:
		vouched = true
	case VouchedNo:
		vouched = false
	default:
		return nil
	}
	return &vouched
}

// FilterVouched keeps the profiles matching the filter code. Unknown codes
// return profiles unchanged.
func FilterVouched(profiles []types.Profile, code string) []types.Profile {
	want := VouchedFilter(code)
	if want == nil {
		return profiles
	}
	out := make([]types.Profile, 0, len(profiles))
	for _, profile := range profiles {
		if profile.Vouched == *want {
			out = append(out, profile)
		}
	}
	return out
}
