package forms

import (
	"context"

	"github.com/goliatone/go-phonebook/pkg/types"
)

const (
	msgOutsideCountry = "Location must be inside a country."
	msgPartialPin     = "Latitude and longitude must be supplied together."
)

// LocationSubmission carries the map pin of the editor.
type LocationSubmission struct {
	Lat *float64 `form:"lat" validate:"omitempty,latitude"`
	Lng *float64 `form:"lng" validate:"omitempty,longitude"`
}

func (s LocationSubmission) partial() bool {
	return (s.Lat == nil) != (s.Lng == nil)
}

// present reports whether both coordinates were supplied and differ from
// the unset (0, 0) pin.
func (s LocationSubmission) present() bool {
	if s.Lat == nil || s.Lng == nil {
		return false
	}
	return !(*s.Lat == 0 && *s.Lng == 0)
}

// CleanLocation holds the validated coordinates and the resolved country.
type CleanLocation struct {
	Lat     *float64
	Lng     *float64
	Country *types.Country
}

// Apply writes the coordinates and country onto the profile.
func (c CleanLocation) Apply(profile *types.Profile) {
	if profile == nil {
		return
	}
	profile.Lat = copyFloat(c.Lat)
	profile.Lng = copyFloat(c.Lng)
	if c.Country == nil {
		profile.Country = nil
		return
	}
	country := *c.Country
	profile.Country = &country
}

// LocationForm cross-checks coordinates against a reverse geocoder.
type LocationForm struct {
	Geocoder types.ReverseGeocoder
}

// Clean validates the coordinate ranges and, when a pin was set, requires it
// to resolve to a country. A lone coordinate is rejected. Geocoder failures
// are returned as-is.
func (f LocationForm) Clean(ctx context.Context, submission LocationSubmission) (CleanLocation, error) {
	fields := FieldErrors{}
	if err := checkStruct(submission, fields); err != nil {
		return CleanLocation{}, err
	}
	if submission.partial() {
		fields.Add("location", msgPartialPin)
	}
	if err := invalid("location", fields); err != nil {
		return CleanLocation{}, err
	}

	clean := CleanLocation{
		Lat: copyFloat(submission.Lat),
		Lng: copyFloat(submission.Lng),
	}
	if !submission.present() {
		return clean, nil
	}
	if f.Geocoder == nil {
		return CleanLocation{}, types.ErrMissingGeocoder
	}
	country, err := f.Geocoder.ReverseGeocode(ctx, *submission.Lat, *submission.Lng)
	if err != nil {
		return CleanLocation{}, err
	}
	if country == nil {
		fields.Add("location", msgOutsideCountry)
		return CleanLocation{}, invalid("location", fields)
	}
	clean.Country = country
	return clean, nil
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}
