package forms

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-phonebook/pkg/types"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestSkillsForm_NormalizesNames(t *testing.T) {
	clean, err := SkillsForm{}.Clean(SkillsSubmission{Skills: "lO ngN,am3+.:-"})
	require.NoError(t, err)
	require.Equal(t, []string{"am3+.:-", "lo ngn"}, clean.Names)

	profile := &types.Profile{}
	clean.Apply(profile)
	require.Equal(t, []string{"am3+.:-", "lo ngn"}, profile.Skills)
}

func TestSkillsForm_RejectsInvalidCharacters(t *testing.T) {
	_, err := SkillsForm{}.Clean(SkillsSubmission{Skills: "lOngName+.:-;"})
	require.Error(t, err)

	fields, ok := AsFieldErrors(err)
	require.True(t, ok)
	require.True(t, fields.Has("skills"))
	require.Equal(t, []string{"skills"}, fields.Fields())
}

func TestSkillsForm_DedupesAndDropsEmptyTokens(t *testing.T) {
	clean, err := SkillsForm{}.Clean(SkillsSubmission{Skills: " Go, go ,,RUST , "})
	require.NoError(t, err)
	require.Equal(t, []string{"go", "rust"}, clean.Names)
}

func TestSkillsForm_Idempotent(t *testing.T) {
	inputs := []string{
		"lO ngN,am3+.:-",
		"Python, django,PYTHON",
		"",
		"a.b:c-d+e",
	}
	for _, input := range inputs {
		first, err := SkillsForm{}.Clean(SkillsSubmission{Skills: input})
		require.NoError(t, err, input)
		second, err := SkillsForm{}.Clean(SkillsSubmission{Skills: first.String()})
		require.NoError(t, err, input)
		require.Equal(t, first.Names, second.Names, input)
	}
}

func TestContributionForm_StoryLink(t *testing.T) {
	clean, err := ContributionForm{}.Clean(ContributionSubmission{StoryLink: "http://somelink.com"})
	require.NoError(t, err)
	require.Equal(t, "http://somelink.com/", clean.StoryLink)

	clean, err = ContributionForm{}.Clean(ContributionSubmission{StoryLink: "https://somelink.com/story"})
	require.NoError(t, err)
	require.Equal(t, "https://somelink.com/story", clean.StoryLink)

	_, err = ContributionForm{}.Clean(ContributionSubmission{StoryLink: "Foobar"})
	fields, ok := AsFieldErrors(err)
	require.True(t, ok)
	require.True(t, fields.Has("story_link"))
}

func TestContributionForm_EmptyClearsLink(t *testing.T) {
	clean, err := ContributionForm{}.Clean(ContributionSubmission{StoryLink: "  "})
	require.NoError(t, err)

	profile := &types.Profile{StoryLink: "http://old.example.com/"}
	clean.Apply(profile)
	require.Empty(t, profile.StoryLink)
}

func TestExternalAccountForm_IdentifierCleanup(t *testing.T) {
	form := ExternalAccountForm{Registry: mapRegistry{
		"AMO": {Code: "AMO", Name: "Example", URL: "https://example.com/{identifier}"},
	}}
	clean, err := form.Clean(ExternalAccountSubmission{
		Type:       "AMO",
		Identifier: "https://example.com/foobar/",
		Privacy:    types.PrivacyMembers,
	})
	require.NoError(t, err)
	require.Equal(t, "foobar", clean.Identifier)
	require.Equal(t, "AMO", clean.Type.Code)
	require.Equal(t, types.PrivacyMembers, clean.Privacy)
}

func TestExternalAccountForm_ValidatorGetsCalled(t *testing.T) {
	var called []string
	form := ExternalAccountForm{Registry: mapRegistry{
		"AMO": {
			Code: "AMO",
			Name: "Example",
			Validator: types.IdentifierValidatorFunc(func(identifier string) error {
				called = append(called, identifier)
				return nil
			}),
		},
	}}
	_, err := form.Clean(ExternalAccountSubmission{
		Type:       "AMO",
		Identifier: "https://example.com/foobar/",
		Privacy:    types.PrivacyMembers,
	})
	require.NoError(t, err)
	require.Equal(t, []string{"https://example.com/foobar/"}, called)
}

func TestExternalAccountForm_ValidatorRejection(t *testing.T) {
	form := ExternalAccountForm{Registry: mapRegistry{
		"TWITTER": {
			Code: "TWITTER",
			URL:  "https://twitter.com/{identifier}",
			Validator: types.IdentifierValidatorFunc(func(string) error {
				return errors.New("Invalid handle.")
			}),
		},
	}}
	_, err := form.Clean(ExternalAccountSubmission{Type: "TWITTER", Identifier: "bad handle"})
	fields, ok := AsFieldErrors(err)
	require.True(t, ok)
	require.Equal(t, []string{"Invalid handle."}, fields["identifier"])
}

func TestExternalAccountForm_URLWithoutIdentifier(t *testing.T) {
	form := ExternalAccountForm{Registry: mapRegistry{
		"AMO": {Code: "AMO", Name: "Example", URL: "https://example.com/{identifier}"},
	}}
	_, err := form.Clean(ExternalAccountSubmission{Type: "AMO", Privacy: types.PrivacyMembers})
	fields, ok := AsFieldErrors(err)
	require.True(t, ok)
	require.True(t, fields.Has("identifier"))
}

func TestExternalAccountForm_UnknownTypeAndPrivacy(t *testing.T) {
	form := ExternalAccountForm{Registry: mapRegistry{}}
	_, err := form.Clean(ExternalAccountSubmission{Type: "NOPE", Identifier: "x", Privacy: 9})
	fields, ok := AsFieldErrors(err)
	require.True(t, ok)
	require.Equal(t, []string{"privacy", "type"}, fields.Fields())
}

func TestExternalAccountForm_DefaultPrivacy(t *testing.T) {
	form := ExternalAccountForm{Registry: mapRegistry{"BMO": {Code: "BMO"}}}
	clean, err := form.Clean(ExternalAccountSubmission{Type: "BMO", Identifier: "someone@example.com"})
	require.NoError(t, err)
	require.Equal(t, types.PrivacyMembers, clean.Privacy)

	account := &types.ExternalAccount{UserID: uuid.New()}
	clean.Apply(account)
	require.Equal(t, "BMO", account.Type)
	require.Equal(t, "someone@example.com", account.Identifier)
}

func TestExternalAccountForm_MissingRegistry(t *testing.T) {
	_, err := ExternalAccountForm{}.Clean(ExternalAccountSubmission{Type: "AMO", Identifier: "x"})
	require.ErrorIs(t, err, types.ErrMissingAccountRegistry)
}

func TestStripIdentifier(t *testing.T) {
	cases := []struct {
		template string
		value    string
		want     string
	}{
		{"https://example.com/{identifier}", "https://example.com/foobar/", "foobar"},
		{"https://example.com/{identifier}", "http://EXAMPLE.com/foobar", "foobar"},
		{"https://example.com/{identifier}", "foobar", "foobar"},
		{"https://example.com/u/{identifier}/profile", "https://example.com/u/jdoe/profile/", "jdoe"},
		{"https://example.com/{identifier}", "https://other.com/foobar", "https://other.com/foobar"},
		{"https://example.com/{identifier}", "https://example.com/", "https://example.com/"},
		{"", "https://example.com/foobar", "https://example.com/foobar"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, StripIdentifier(tc.template, tc.value), tc.value)
	}
}

func TestLocationForm_SentinelSkipsGeocoding(t *testing.T) {
	geocoder := &countingGeocoder{}
	form := LocationForm{Geocoder: geocoder}
	zero := 0.0

	clean, err := form.Clean(context.Background(), LocationSubmission{Lat: &zero, Lng: &zero})
	require.NoError(t, err)
	require.Nil(t, clean.Country)
	require.Zero(t, geocoder.calls)
}

func TestLocationForm_AbsentSkipsGeocoding(t *testing.T) {
	geocoder := &countingGeocoder{}
	clean, err := LocationForm{Geocoder: geocoder}.Clean(context.Background(), LocationSubmission{})
	require.NoError(t, err)
	require.Nil(t, clean.Lat)
	require.Zero(t, geocoder.calls)
}

func TestLocationForm_PartialPinRejected(t *testing.T) {
	geocoder := &countingGeocoder{}
	lat, lng := 10.0, 20.0

	for _, submission := range []LocationSubmission{{Lat: &lat}, {Lng: &lng}} {
		clean, err := LocationForm{Geocoder: geocoder}.Clean(context.Background(), submission)
		fields, ok := AsFieldErrors(err)
		require.True(t, ok)
		require.Equal(t, []string{msgPartialPin}, fields["location"])
		require.Nil(t, clean.Lat)
		require.Nil(t, clean.Lng)
	}
	require.Zero(t, geocoder.calls)
}

func TestLocationForm_CoordinatesWithoutCountry(t *testing.T) {
	geocoder := &countingGeocoder{}
	lat, lng := -79.083799, 35.918596

	_, err := LocationForm{Geocoder: geocoder}.Clean(context.Background(), LocationSubmission{Lat: &lat, Lng: &lng})
	fields, ok := AsFieldErrors(err)
	require.True(t, ok)
	require.True(t, fields.Has("location"))
	require.Equal(t, 1, geocoder.calls)
}

func TestLocationForm_CoordinatesWithCountry(t *testing.T) {
	country := &types.Country{ID: uuid.New(), Code: "US", Name: "United States"}
	geocoder := &countingGeocoder{country: country}
	lat, lng := -79.083799, 35.918596

	clean, err := LocationForm{Geocoder: geocoder}.Clean(context.Background(), LocationSubmission{Lat: &lat, Lng: &lng})
	require.NoError(t, err)
	require.Equal(t, country, clean.Country)

	profile := &types.Profile{}
	clean.Apply(profile)
	require.True(t, profile.HasLocation())
	require.Equal(t, lat, *profile.Lat)
	require.Equal(t, "US", profile.Country.Code)
}

func TestLocationForm_GeocoderFailurePropagates(t *testing.T) {
	boom := errors.New("geocoder down")
	geocoder := &countingGeocoder{err: boom}
	lat, lng := 10.0, 10.0

	_, err := LocationForm{Geocoder: geocoder}.Clean(context.Background(), LocationSubmission{Lat: &lat, Lng: &lng})
	require.ErrorIs(t, err, boom)
	_, ok := AsFieldErrors(err)
	require.False(t, ok)
}

func TestLocationForm_OutOfRange(t *testing.T) {
	lat, lng := 120.0, 10.0
	_, err := LocationForm{Geocoder: &countingGeocoder{}}.Clean(context.Background(), LocationSubmission{Lat: &lat, Lng: &lng})
	fields, ok := AsFieldErrors(err)
	require.True(t, ok)
	require.True(t, fields.Has("lat"))
}

func TestSearchForm_CleanLimit(t *testing.T) {
	limit := 5
	clean, err := SearchForm{DefaultLimit: 20}.Clean(SearchSubmission{Query: "foobar", Limit: &limit})
	require.NoError(t, err)
	require.Equal(t, 5, clean.Limit)
	require.Equal(t, "foobar", clean.Query)
}

func TestSearchForm_CleanDefaultLimit(t *testing.T) {
	clean, err := SearchForm{DefaultLimit: 20}.Clean(SearchSubmission{Query: "foobar"})
	require.NoError(t, err)
	require.Equal(t, 20, clean.Limit)
}

func TestSearchForm_NoUpperBoundAndPaging(t *testing.T) {
	limit, page := 5000, 3
	clean, err := SearchForm{}.Clean(SearchSubmission{Limit: &limit, Page: &page})
	require.NoError(t, err)
	require.Equal(t, 5000, clean.Limit)
	require.Equal(t, 10000, clean.Offset)
}

func TestSearchForm_NegativeLimit(t *testing.T) {
	limit := -1
	_, err := SearchForm{}.Clean(SearchSubmission{Limit: &limit})
	fields, ok := AsFieldErrors(err)
	require.True(t, ok)
	require.True(t, fields.Has("limit"))
}

func TestFilterVouched(t *testing.T) {
	profiles := make([]types.Profile, 0, 7)
	for i := 0; i < 4; i++ {
		profiles = append(profiles, types.Profile{UserID: uuid.New(), Vouched: true})
	}
	for i := 0; i < 3; i++ {
		profiles = append(profiles, types.Profile{UserID: uuid.New(), Vouched: false})
	}

	require.Len(t, FilterVouched(profiles, VouchedYes), 4)
	require.Len(t, FilterVouched(profiles, VouchedNo), 3)
	require.Len(t, FilterVouched(profiles, "maybe"), 7)
	require.Nil(t, VouchedFilter(""))
}

func TestEmailForm_Changed(t *testing.T) {
	clean, err := EmailForm{Initial: "foo@bar.com"}.Clean(EmailSubmission{Email: "foo@bar.com"})
	require.NoError(t, err)
	require.False(t, clean.Changed)

	clean, err = EmailForm{Initial: "foo@bar.com"}.Clean(EmailSubmission{Email: "bar@bar.com"})
	require.NoError(t, err)
	require.True(t, clean.Changed)

	clean, err = EmailForm{Initial: "foo@bar.com"}.Clean(EmailSubmission{Email: " foo@BAR.com "})
	require.NoError(t, err)
	require.False(t, clean.Changed)
	require.Equal(t, "foo@bar.com", clean.Email)

	clean, err = EmailForm{Initial: "foo@bar.com"}.Clean(EmailSubmission{Email: "Foo@bar.com"})
	require.NoError(t, err)
	require.False(t, clean.Changed)
	require.Equal(t, "Foo@bar.com", clean.Email)
}

func TestEmailForm_Invalid(t *testing.T) {
	_, err := EmailForm{}.Clean(EmailSubmission{Email: "not-an-email"})
	fields, ok := AsFieldErrors(err)
	require.True(t, ok)
	require.True(t, fields.Has("email"))
	require.True(t, strings.Contains(err.Error(), "email"))
}

type mapRegistry map[string]types.AccountType

func (m mapRegistry) Lookup(code string) (types.AccountType, bool) {
	typ, ok := m[code]
	return typ, ok
}

func (m mapRegistry) Types() []types.AccountType {
	out := make([]types.AccountType, 0, len(m))
	for _, typ := range m {
		out = append(out, typ)
	}
	return out
}

type countingGeocoder struct {
	calls   int
	country *types.Country
	err     error
}

func (g *countingGeocoder) ReverseGeocode(context.Context, float64, float64) (*types.Country, error) {
	g.calls++
	if g.err != nil {
		return nil, g.err
	}
	return g.country, nil
}
