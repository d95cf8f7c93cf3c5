package models

import "strings"

// TeamMember represents a row of the team sheet. Name is the join key for task assignees.
type TeamMember struct {
	ID         string `json:"employee_id" yaml:"employee_id"`
	Name       string `json:"name" yaml:"name" validate:"required,min=1,max=255"`
	Email      string `json:"email,omitempty" yaml:"email,omitempty" validate:"omitempty,email"`
	Role       string `json:"role,omitempty" yaml:"role,omitempty"`
	Skills     string `json:"skills,omitempty" yaml:"skills,omitempty"`
	Department string `json:"department,omitempty" yaml:"department,omitempty"`
}

// SkillSet returns the lower-cased skill tokens, split on whitespace and commas.
func (m TeamMember) SkillSet() []string {
	return Tokens(m.Skills)
}

// Tokens splits free text into distinct lower-cased tokens in first-seen order.
func Tokens(s string) []string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return r == ',' || r == ';' || r == ' ' || r == '\t' || r == '\n'
	})
	seen := make(map[string]struct{}, len(fields))
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	return out
}

// FindMember returns the first member whose name matches exactly.
func FindMember(members []TeamMember, name string) (TeamMember, bool) {
	for _, m := range members {
		if m.Name == name {
			return m, true
		}
	}
	return TeamMember{}, false
}
