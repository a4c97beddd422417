package service

import (
	"context"
	"strings"

	"devconnect-service/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// duplicateKeyErr mimics the server-side unique index violation.
func duplicateKeyErr() error {
	return mongo.WriteException{
		WriteErrors: []mongo.WriteError{
			{Code: 11000, Message: "E11000 duplicate key error"},
		},
	}
}

type fakeProfileStore struct {
	profiles map[string]*models.Profile // keyed by userId
}

func newFakeProfileStore() *fakeProfileStore {
	return &fakeProfileStore{profiles: make(map[string]*models.Profile)}
}

func (f *fakeProfileStore) Insert(_ context.Context, profile *models.Profile) (*models.Profile, error) {
	if profile.Handle != "" {
		for _, p := range f.profiles {
			if p.Handle == profile.Handle {
				return nil, duplicateKeyErr()
			}
		}
	}
	if profile.ID.IsZero() {
		profile.ID = bson.NewObjectID()
	}
	stored := *profile
	f.profiles[profile.UserID] = &stored
	return profile, nil
}

func (f *fakeProfileStore) FindByUserID(_ context.Context, userID string) (*models.Profile, error) {
	p, ok := f.profiles[userID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copied := *p
	return &copied, nil
}

func (f *fakeProfileStore) FindByHandle(_ context.Context, handle string) (*models.Profile, error) {
	for _, p := range f.profiles {
		if p.Handle == handle {
			copied := *p
			return &copied, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeProfileStore) MergeUpdate(_ context.Context, userID string, set bson.M) (*models.Profile, error) {
	p, ok := f.profiles[userID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	for key, value := range set {
		switch key {
		case "handle":
			p.Handle = value.(string)
		case "company":
			p.Company = value.(string)
		case "website":
			p.Website = value.(string)
		case "location":
			p.Location = value.(string)
		case "status":
			p.Status = value.(string)
		case "bio":
			p.Bio = value.(string)
		case "githubUsername":
			p.GithubUsername = value.(string)
		case "skills":
			p.Skills = value.([]string)
		case "metadata.updatedAt":
			p.Metadata.UpdatedAt = value.(int)
		default:
			if field, ok := strings.CutPrefix(key, "social."); ok {
				if p.Social == nil {
					p.Social = &models.SocialLinks{}
				}
				link := value.(string)
				switch field {
				case "youtube":
					p.Social.Youtube = link
				case "twitter":
					p.Social.Twitter = link
				case "facebook":
					p.Social.Facebook = link
				case "linkedin":
					p.Social.Linkedin = link
				case "instagram":
					p.Social.Instagram = link
				}
			}
		}
	}

	copied := *p
	return &copied, nil
}

func (f *fakeProfileStore) PushExperience(_ context.Context, userID string, entry models.ExperienceEntry) (*models.Profile, error) {
	p, ok := f.profiles[userID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	p.Experience = append([]models.ExperienceEntry{entry}, p.Experience...)
	copied := *p
	return &copied, nil
}

func (f *fakeProfileStore) PushEducation(_ context.Context, userID string, entry models.EducationEntry) (*models.Profile, error) {
	p, ok := f.profiles[userID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	p.Education = append([]models.EducationEntry{entry}, p.Education...)
	copied := *p
	return &copied, nil
}

func (f *fakeProfileStore) FindAll(_ context.Context, page, limit int) ([]*models.Profile, error) {
	profiles := make([]*models.Profile, 0, len(f.profiles))
	for _, p := range f.profiles {
		copied := *p
		profiles = append(profiles, &copied)
	}
	return profiles, nil
}

type fakeUserStore struct {
	users map[string]*models.User // keyed by hex id
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]*models.User)}
}

func (f *fakeUserStore) Insert(_ context.Context, user *models.User) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == user.Email {
			return nil, duplicateKeyErr()
		}
	}
	if user.ID.IsZero() {
		user.ID = bson.NewObjectID()
	}
	stored := *user
	f.users[user.ID.Hex()] = &stored
	return user, nil
}

func (f *fakeUserStore) FindByID(_ context.Context, userID string) (*models.User, error) {
	u, ok := f.users[userID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeUserStore) Upsert(_ context.Context, user *models.User) error {
	if user.ID.IsZero() {
		user.ID = bson.NewObjectID()
	}
	stored := *user
	f.users[user.ID.Hex()] = &stored
	return nil
}

type fakePostStore struct {
	posts map[bson.ObjectID]*models.Post
}

func newFakePostStore() *fakePostStore {
	return &fakePostStore{posts: make(map[bson.ObjectID]*models.Post)}
}

func (f *fakePostStore) Insert(_ context.Context, post *models.Post) (*models.Post, error) {
	if post.ID.IsZero() {
		post.ID = bson.NewObjectID()
	}
	if post.Likes == nil {
		post.Likes = []models.Like{}
	}
	if post.Comments == nil {
		post.Comments = []models.Comment{}
	}
	stored := *post
	f.posts[post.ID] = &stored
	return post, nil
}

func (f *fakePostStore) FindByID(_ context.Context, id bson.ObjectID) (*models.Post, error) {
	p, ok := f.posts[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copied := *p
	return &copied, nil
}

func (f *fakePostStore) FindAll(_ context.Context, page, limit int) ([]*models.Post, error) {
	posts := make([]*models.Post, 0, len(f.posts))
	for _, p := range f.posts {
		copied := *p
		posts = append(posts, &copied)
	}
	return posts, nil
}

func (f *fakePostStore) Delete(_ context.Context, id bson.ObjectID) error {
	if _, ok := f.posts[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(f.posts, id)
	return nil
}

func (f *fakePostStore) AddLike(_ context.Context, id bson.ObjectID, userID string) (*models.Post, error) {
	p, ok := f.posts[id]
	if !ok || p.LikedBy(userID) {
		return nil, mongo.ErrNoDocuments
	}
	p.Likes = append(p.Likes, models.Like{UserID: userID})
	copied := *p
	return &copied, nil
}

func (f *fakePostStore) RemoveLike(_ context.Context, id bson.ObjectID, userID string) (*models.Post, error) {
	p, ok := f.posts[id]
	if !ok || !p.LikedBy(userID) {
		return nil, mongo.ErrNoDocuments
	}
	likes := make([]models.Like, 0, len(p.Likes))
	for _, like := range p.Likes {
		if like.UserID != userID {
			likes = append(likes, like)
		}
	}
	p.Likes = likes
	copied := *p
	return &copied, nil
}

func (f *fakePostStore) AddComment(_ context.Context, id bson.ObjectID, comment models.Comment) (*models.Post, error) {
	p, ok := f.posts[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	p.Comments = append([]models.Comment{comment}, p.Comments...)
	copied := *p
	return &copied, nil
}

func (f *fakePostStore) RemoveComment(_ context.Context, id, commentID bson.ObjectID) (*models.Post, error) {
	p, ok := f.posts[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	comments := make([]models.Comment, 0, len(p.Comments))
	for _, c := range p.Comments {
		if c.ID != commentID {
			comments = append(comments, c)
		}
	}
	p.Comments = comments
	copied := *p
	return &copied, nil
}

type fakeDirectory struct {
	summaries map[string]*models.UserSummary
}

func (f *fakeDirectory) Summary(_ context.Context, userID string) (*models.UserSummary, error) {
	if s, ok := f.summaries[userID]; ok {
		return s, nil
	}
	return nil, ErrUserNotFound
}

func strPtr(s string) *string {
	return &s
}
