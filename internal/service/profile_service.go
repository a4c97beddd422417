package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"devconnect-service/internal/event"
	"devconnect-service/internal/models"
	"devconnect-service/internal/repository"
	"devconnect-service/internal/validation"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// ProfileStore is the persistence surface the profile service needs. The
// array mutations are atomic single-document updates so concurrent writers
// for the same owner cannot lose entries.
type ProfileStore interface {
	Insert(ctx context.Context, profile *models.Profile) (*models.Profile, error)
	FindByUserID(ctx context.Context, userID string) (*models.Profile, error)
	FindByHandle(ctx context.Context, handle string) (*models.Profile, error)
	MergeUpdate(ctx context.Context, userID string, set bson.M) (*models.Profile, error)
	PushExperience(ctx context.Context, userID string, entry models.ExperienceEntry) (*models.Profile, error)
	PushEducation(ctx context.Context, userID string, entry models.EducationEntry) (*models.Profile, error)
	FindAll(ctx context.Context, page, limit int) ([]*models.Profile, error)
}

// UserDirectory resolves a profile owner's display name and avatar.
type UserDirectory interface {
	Summary(ctx context.Context, userID string) (*models.UserSummary, error)
}

type ProfileService struct {
	store     ProfileStore
	directory UserDirectory
	cache     *repository.ProfileCache
	publisher event.Publisher
}

func NewProfileService(store ProfileStore, directory UserDirectory, cache *repository.ProfileCache, publisher event.Publisher) *ProfileService {
	return &ProfileService{
		store:     store,
		directory: directory,
		cache:     cache,
		publisher: publisher,
	}
}

// UpsertProfile creates the caller's profile on first submission and merges
// later submissions into it. Only fields present in the input are written;
// everything else, including the experience and education lists, is preserved.
func (s *ProfileService) UpsertProfile(ctx context.Context, userID string, in *models.ProfileInput) (*models.Profile, error) {
	if userID == "" {
		return nil, fmt.Errorf("user ID is required")
	}

	if errs := validation.ValidateProfileInput(in); errs != nil {
		return nil, errs
	}

	existing, err := s.store.FindByUserID(ctx, userID)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("failed to check existing profile: %w", err)
	}

	if existing != nil {
		return s.mergeProfile(ctx, existing, in)
	}
	return s.createProfile(ctx, userID, in)
}

func (s *ProfileService) mergeProfile(ctx context.Context, existing *models.Profile, in *models.ProfileInput) (*models.Profile, error) {
	set, changed := buildFieldSet(in)
	if len(set) == 0 {
		return existing, nil
	}

	// A handle change collides with another owner's handle at the unique
	// index; re-submitting the unchanged handle is always fine.
	if in.Handle != nil && *in.Handle != existing.Handle {
		if err := s.checkHandleFree(ctx, *in.Handle, existing.UserID); err != nil {
			return nil, err
		}
	}

	updated, err := s.store.MergeUpdate(ctx, existing.UserID, set)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrHandleTaken
		}
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	s.invalidate(ctx, existing.UserID, existing.Handle, updated.Handle)
	s.publish(models.EventTypeProfileUpdated, updated, changed)

	return updated, nil
}

func (s *ProfileService) createProfile(ctx context.Context, userID string, in *models.ProfileInput) (*models.Profile, error) {
	if errs := validation.ValidateNewProfileInput(in); errs != nil {
		return nil, errs
	}

	// Advisory pre-check for a friendlier error message; the unique sparse
	// index on handle is what actually prevents a duplicate under a race.
	if in.Handle != nil {
		if err := s.checkHandleFree(ctx, *in.Handle, userID); err != nil {
			return nil, err
		}
	}

	profile := &models.Profile{
		UserID:     userID,
		Experience: []models.ExperienceEntry{},
		Education:  []models.EducationEntry{},
	}
	applyFieldSet(profile, in)

	created, err := s.store.Insert(ctx, profile)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrHandleTaken
		}
		return nil, err
	}

	s.invalidate(ctx, created.UserID, "", created.Handle)
	s.publish(models.EventTypeProfileCreated, created, nil)

	return created, nil
}

// AddExperience validates the entry and prepends it to the owner's experience
// list. The owner must already have a profile; one is never created here.
func (s *ProfileService) AddExperience(ctx context.Context, userID string, in *models.ExperienceInput) (*models.Profile, error) {
	if errs := validation.ValidateExperienceInput(in); errs != nil {
		return nil, errs
	}

	entry := models.ExperienceEntry{
		ID:          bson.NewObjectID(),
		Title:       in.Title,
		Company:     in.Company,
		Location:    in.Location,
		From:        in.From,
		To:          in.To,
		Current:     in.Current,
		Description: in.Description,
	}

	updated, err := s.store.PushExperience(ctx, userID, entry)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	s.invalidate(ctx, userID, updated.Handle, updated.Handle)
	s.publish(models.EventTypeExperienceAdded, updated, []string{"experience"})

	return updated, nil
}

// AddEducation is the education counterpart of AddExperience.
func (s *ProfileService) AddEducation(ctx context.Context, userID string, in *models.EducationInput) (*models.Profile, error) {
	if errs := validation.ValidateEducationInput(in); errs != nil {
		return nil, errs
	}

	entry := models.EducationEntry{
		ID:           bson.NewObjectID(),
		School:       in.School,
		Degree:       in.Degree,
		FieldOfStudy: in.FieldOfStudy,
		From:         in.From,
		To:           in.To,
		Current:      in.Current,
		Description:  in.Description,
	}

	updated, err := s.store.PushEducation(ctx, userID, entry)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	s.invalidate(ctx, userID, updated.Handle, updated.Handle)
	s.publish(models.EventTypeEducationAdded, updated, []string{"education"})

	return updated, nil
}

// GetProfileByOwner returns the owner's profile decorated with the owner's
// name and avatar from the user directory.
func (s *ProfileService) GetProfileByOwner(ctx context.Context, userID string) (*models.Profile, error) {
	if userID == "" {
		return nil, fmt.Errorf("user ID is required")
	}

	if cached, ok := s.cache.GetByOwner(ctx, userID); ok {
		return s.decorate(ctx, cached), nil
	}

	profile, err := s.store.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	if err := s.cache.Store(ctx, profile); err != nil {
		log.Printf("Warning: failed to cache profile for user %s: %v", userID, err)
	}

	return s.decorate(ctx, profile), nil
}

func (s *ProfileService) GetProfileByHandle(ctx context.Context, handle string) (*models.Profile, error) {
	if handle == "" {
		return nil, fmt.Errorf("handle is required")
	}

	if cached, ok := s.cache.GetByHandle(ctx, handle); ok {
		return s.decorate(ctx, cached), nil
	}

	profile, err := s.store.FindByHandle(ctx, handle)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	if err := s.cache.Store(ctx, profile); err != nil {
		log.Printf("Warning: failed to cache profile for handle %s: %v", handle, err)
	}

	return s.decorate(ctx, profile), nil
}

func (s *ProfileService) ListProfiles(ctx context.Context, page, limit int) ([]*models.Profile, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	profiles, err := s.store.FindAll(ctx, page, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}

	return profiles, nil
}

// Helper methods

func (s *ProfileService) checkHandleFree(ctx context.Context, handle, userID string) error {
	if handle == "" {
		return nil
	}

	other, err := s.store.FindByHandle(ctx, handle)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil
		}
		return fmt.Errorf("failed to check handle: %w", err)
	}
	if other.UserID != userID {
		return ErrHandleTaken
	}
	return nil
}

func (s *ProfileService) decorate(ctx context.Context, profile *models.Profile) *models.Profile {
	if s.directory == nil {
		return profile
	}

	owner, err := s.directory.Summary(ctx, profile.UserID)
	if err != nil {
		log.Printf("Warning: failed to resolve owner %s: %v", profile.UserID, err)
		return profile
	}
	profile.Owner = owner
	return profile
}

func (s *ProfileService) invalidate(ctx context.Context, userID, oldHandle, newHandle string) {
	if err := s.cache.Invalidate(ctx, userID, oldHandle); err != nil {
		log.Printf("Warning: failed to invalidate profile cache: %v", err)
	}
	if newHandle != "" && newHandle != oldHandle {
		if err := s.cache.Invalidate(ctx, userID, newHandle); err != nil {
			log.Printf("Warning: failed to invalidate profile cache: %v", err)
		}
	}
}

func (s *ProfileService) publish(eventType models.EventType, profile *models.Profile, changed []string) {
	if s.publisher == nil {
		return
	}

	evt := &models.ProfileEvent{
		EventType:     eventType,
		ProfileID:     profile.ID.Hex(),
		UserID:        profile.UserID,
		Timestamp:     time.Now().Unix(),
		ChangedFields: changed,
	}
	if err := s.publisher.PublishProfileEvent(evt); err != nil {
		log.Printf("Failed to publish %s event: %v", eventType, err)
	}
}

// buildFieldSet turns the submitted fields into a $set document, dotted keys
// for the social sub-record so untouched links survive the merge. Returns the
// set plus the list of top-level fields it touches.
func buildFieldSet(in *models.ProfileInput) (bson.M, []string) {
	set := bson.M{}
	changed := []string{}

	scalars := []struct {
		key   string
		value *string
	}{
		{"handle", in.Handle},
		{"company", in.Company},
		{"website", in.Website},
		{"location", in.Location},
		{"status", in.Status},
		{"bio", in.Bio},
		{"githubUsername", in.GithubUsername},
	}
	for _, f := range scalars {
		if f.value != nil {
			set[f.key] = *f.value
			changed = append(changed, f.key)
		}
	}

	if skills := in.SkillList(); skills != nil {
		set["skills"] = skills
		changed = append(changed, "skills")
	}

	social := []struct {
		key   string
		value *string
	}{
		{"social.youtube", in.Youtube},
		{"social.twitter", in.Twitter},
		{"social.facebook", in.Facebook},
		{"social.linkedin", in.Linkedin},
		{"social.instagram", in.Instagram},
	}
	socialChanged := false
	for _, f := range social {
		if f.value != nil {
			set[f.key] = *f.value
			socialChanged = true
		}
	}
	if socialChanged {
		changed = append(changed, "social")
	}

	return set, changed
}

// applyFieldSet copies the submitted fields onto a fresh profile for creation.
func applyFieldSet(profile *models.Profile, in *models.ProfileInput) {
	if in.Handle != nil {
		profile.Handle = *in.Handle
	}
	if in.Company != nil {
		profile.Company = *in.Company
	}
	if in.Website != nil {
		profile.Website = *in.Website
	}
	if in.Location != nil {
		profile.Location = *in.Location
	}
	if in.Status != nil {
		profile.Status = *in.Status
	}
	if in.Bio != nil {
		profile.Bio = *in.Bio
	}
	if in.GithubUsername != nil {
		profile.GithubUsername = *in.GithubUsername
	}
	if skills := in.SkillList(); skills != nil {
		profile.Skills = skills
	}

	if in.Youtube != nil || in.Twitter != nil || in.Facebook != nil || in.Linkedin != nil || in.Instagram != nil {
		social := &models.SocialLinks{}
		if in.Youtube != nil {
			social.Youtube = *in.Youtube
		}
		if in.Twitter != nil {
			social.Twitter = *in.Twitter
		}
		if in.Facebook != nil {
			social.Facebook = *in.Facebook
		}
		if in.Linkedin != nil {
			social.Linkedin = *in.Linkedin
		}
		if in.Instagram != nil {
			social.Instagram = *in.Instagram
		}
		profile.Social = social
	}
}
