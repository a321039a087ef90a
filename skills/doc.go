// Package skills stores the canonical skill vocabulary and the skills linked
// to each profile. Names are expected to be normalized by forms.NormalizeSkills
// before they reach the repository.
package skills
