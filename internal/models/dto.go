package models

import "strings"

// ProfileInput is the field bag accepted by the profile upsert. Every field is
// a pointer so an absent field (nil) is distinguishable from a field explicitly
// submitted as empty; absent fields never touch the stored value.
type ProfileInput struct {
	Handle         *string `json:"handle,omitempty"`
	Company        *string `json:"company,omitempty"`
	Website        *string `json:"website,omitempty"`
	Location       *string `json:"location,omitempty"`
	Status         *string `json:"status,omitempty"`
	Skills         *string `json:"skills,omitempty"`
	Bio            *string `json:"bio,omitempty"`
	GithubUsername *string `json:"githubUsername,omitempty"`
	Youtube        *string `json:"youtube,omitempty"`
	Twitter        *string `json:"twitter,omitempty"`
	Facebook       *string `json:"facebook,omitempty"`
	Linkedin       *string `json:"linkedin,omitempty"`
	Instagram      *string `json:"instagram,omitempty"`
}

// SkillList splits the comma-delimited skills string into its ordered parts.
// Returns nil when the field was not submitted.
func (in *ProfileInput) SkillList() []string {
	if in.Skills == nil {
		return nil
	}
	parts := strings.Split(*in.Skills, ",")
	skills := make([]string, 0, len(parts))
	for _, part := range parts {
		skills = append(skills, strings.TrimSpace(part))
	}
	return skills
}

type ExperienceInput struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location,omitempty"`
	From        string `json:"from"`
	To          string `json:"to,omitempty"`
	Current     bool   `json:"current"`
	Description string `json:"description,omitempty"`
}

type EducationInput struct {
	School       string `json:"school"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"fieldOfStudy"`
	From         string `json:"from"`
	To           string `json:"to,omitempty"`
	Current      bool   `json:"current"`
	Description  string `json:"description,omitempty"`
}

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type PostInput struct {
	Text string `json:"text"`
}

type CommentInput struct {
	Text string `json:"text"`
}
