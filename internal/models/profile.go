package models

import (
	"go.mongodb.org/mongo-driver/v2/bson"
)

// SocialLinks holds the optional social URLs of a profile. Absent links are
// omitted from the document, never stored as empty strings.
type SocialLinks struct {
	Youtube   string `json:"youtube,omitempty" bson:"youtube,omitempty"`
	Twitter   string `json:"twitter,omitempty" bson:"twitter,omitempty"`
	Facebook  string `json:"facebook,omitempty" bson:"facebook,omitempty"`
	Linkedin  string `json:"linkedin,omitempty" bson:"linkedin,omitempty"`
	Instagram string `json:"instagram,omitempty" bson:"instagram,omitempty"`
}

// ExperienceEntry is one record in a profile's work history. Entries are
// prepended, never mutated in place, so index 0 is always the newest.
type ExperienceEntry struct {
	ID          bson.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Title       string        `json:"title" bson:"title"`
	Company     string        `json:"company" bson:"company"`
	Location    string        `json:"location,omitempty" bson:"location,omitempty"`
	From        string        `json:"from" bson:"from"`
	To          string        `json:"to,omitempty" bson:"to,omitempty"`
	Current     bool          `json:"current" bson:"current"`
	Description string        `json:"description,omitempty" bson:"description,omitempty"`
}

// EducationEntry is one record in a profile's education history, newest first.
type EducationEntry struct {
	ID           bson.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	School       string        `json:"school" bson:"school"`
	Degree       string        `json:"degree" bson:"degree"`
	FieldOfStudy string        `json:"fieldOfStudy" bson:"fieldOfStudy"`
	From         string        `json:"from" bson:"from"`
	To           string        `json:"to,omitempty" bson:"to,omitempty"`
	Current      bool          `json:"current" bson:"current"`
	Description  string        `json:"description,omitempty" bson:"description,omitempty"`
}

type Metadata struct {
	CreatedAt int `json:"createdAt" bson:"createdAt"`
	UpdatedAt int `json:"updatedAt" bson:"updatedAt"`
}

// Profile is the aggregate document, at most one per user. UserID is immutable
// after creation and Handle, when set, is unique across all profiles (enforced
// by a unique sparse index).
type Profile struct {
	ID             bson.ObjectID     `json:"id,omitempty" bson:"_id,omitempty"`
	UserID         string            `json:"userId" bson:"userId"`
	Handle         string            `json:"handle,omitempty" bson:"handle,omitempty"`
	Company        string            `json:"company,omitempty" bson:"company,omitempty"`
	Website        string            `json:"website,omitempty" bson:"website,omitempty"`
	Location       string            `json:"location,omitempty" bson:"location,omitempty"`
	Status         string            `json:"status,omitempty" bson:"status,omitempty"`
	Skills         []string          `json:"skills,omitempty" bson:"skills,omitempty"`
	Bio            string            `json:"bio,omitempty" bson:"bio,omitempty"`
	GithubUsername string            `json:"githubUsername,omitempty" bson:"githubUsername,omitempty"`
	Social         *SocialLinks      `json:"social,omitempty" bson:"social,omitempty"`
	Experience     []ExperienceEntry `json:"experience" bson:"experience"`
	Education      []EducationEntry  `json:"education" bson:"education"`
	Owner          *UserSummary      `json:"owner,omitempty" bson:"-"`
	Metadata       Metadata          `json:"metadata" bson:"metadata"`
}
