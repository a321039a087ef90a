package forms

import (
	"net/url"
	"strings"

	"github.com/goliatone/go-phonebook/pkg/types"
)

// ContributionSubmission carries the contribution section of the editor.
type ContributionSubmission struct {
	StoryLink string `form:"story_link" validate:"omitempty,url,max=1024"`
}

// CleanContribution holds the normalized story link ("" clears it).
type CleanContribution struct {
	StoryLink string
}

// Apply writes the story link onto the profile.
func (c CleanContribution) Apply(profile *types.Profile) {
	if profile == nil {
		return
	}
	profile.StoryLink = c.StoryLink
}

// ContributionForm validates the story link.
type ContributionForm struct{}

// Clean validates the story link and canonicalizes it.
func (ContributionForm) Clean(submission ContributionSubmission) (CleanContribution, error) {
	submission.StoryLink = strings.TrimSpace(submission.StoryLink)
	fields := FieldErrors{}
	if err := checkStruct(submission, fields); err != nil {
		return CleanContribution{}, err
	}
	if err := invalid("contribution", fields); err != nil {
		return CleanContribution{}, err
	}
	if submission.StoryLink == "" {
		return CleanContribution{}, nil
	}
	link, err := NormalizeURL(submission.StoryLink)
	if err != nil {
		fields.Add("story_link", msgURL)
		return CleanContribution{}, invalid("contribution", fields)
	}
	return CleanContribution{StoryLink: link}, nil
}

// NormalizeURL adds the root path to URLs that have none, so
// http://example.com becomes http://example.com/.
func NormalizeURL(raw string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", err
	}
	if u.Path == "" && u.Opaque == "" {
		u.Path = "/"
	}
	return u.String(), nil
}
