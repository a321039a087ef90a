package forms

import (
	"sort"
	"strings"

	"github.com/goliatone/go-phonebook/pkg/types"
)

// SkillsSubmission is the raw comma separated skills field.
type SkillsSubmission struct {
	Skills string `form:"skills" validate:"skills"`
}

// CleanSkills holds the canonical skill names, sorted and unique.
type CleanSkills struct {
	Names []string
}

// String renders the names back into the submission format.
func (c CleanSkills) String() string {
	return strings.Join(c.Names, ",")
}

// Apply writes the skill names onto the profile.
func (c CleanSkills) Apply(profile *types.Profile) {
	if profile == nil {
		return
	}
	profile.Skills = append([]string(nil), c.Names...)
}

// SkillsForm parses the skills field of the profile editor.
type SkillsForm struct{}

// Clean validates the character set and normalizes the skill names.
func (SkillsForm) Clean(submission SkillsSubmission) (CleanSkills, error) {
	fields := FieldErrors{}
	if err := checkStruct(submission, fields); err != nil {
		return CleanSkills{}, err
	}
	if err := invalid("skills", fields); err != nil {
		return CleanSkills{}, err
	}
	return CleanSkills{Names: NormalizeSkills(submission.Skills)}, nil
}

// NormalizeSkills splits raw on commas, then trims, lower-cases, drops empty
// tokens and dedupes. It does not check the character set.
func NormalizeSkills(raw string) []string {
	seen := make(map[string]struct{})
	names := make([]string, 0)
	for _, token := range strings.Split(raw, ",") {
		name := strings.ToLower(strings.TrimSpace(token))
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
