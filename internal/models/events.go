package models

type EventType string

const (
	EventTypeProfileCreated  EventType = "profile.created"
	EventTypeProfileUpdated  EventType = "profile.updated"
	EventTypeExperienceAdded EventType = "profile.experience.added"
	EventTypeEducationAdded  EventType = "profile.education.added"
	EventTypeUserRegistered  EventType = "user.registered"
	EventTypePostCreated     EventType = "post.created"
	EventTypePostDeleted     EventType = "post.deleted"
)

type ProfileEvent struct {
	EventType     EventType `json:"eventType"`
	ProfileID     string    `json:"profileId"`
	UserID        string    `json:"userId"`
	Timestamp     int64     `json:"timestamp"`
	ChangedFields []string  `json:"changedFields,omitempty"`
}

type UserRegisteredEvent struct {
	EventType EventType `json:"eventType"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Avatar    string    `json:"avatar,omitempty"`
	Timestamp int64     `json:"timestamp"`
}

type PostEvent struct {
	EventType EventType `json:"eventType"`
	PostID    string    `json:"postId"`
	UserID    string    `json:"userId"`
	Timestamp int64     `json:"timestamp"`
}
