package repository

import (
	"context"
	"fmt"
	"time"

	"devconnect-service/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type ProfileRepository struct {
	collection *mongo.Collection
}

func NewProfileRepository(db *mongo.Database) *ProfileRepository {
	return &ProfileRepository{
		collection: db.Collection("Profile"),
	}
}

// Insert persists a new profile. The unique index on handle is the
// authoritative uniqueness guard; callers map a duplicate-key error on it to a
// handle conflict.
func (r *ProfileRepository) Insert(ctx context.Context, profile *models.Profile) (*models.Profile, error) {
	if profile.ID.IsZero() {
		profile.ID = bson.NewObjectID()
	}

	currentTime := int(time.Now().Unix())
	if profile.Metadata.CreatedAt == 0 {
		profile.Metadata.CreatedAt = currentTime
	}
	profile.Metadata.UpdatedAt = currentTime

	if _, err := r.collection.InsertOne(ctx, profile); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to insert profile: %w", err)
	}
	return profile, nil
}

func (r *ProfileRepository) FindByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	var profile models.Profile
	err := r.collection.FindOne(ctx, bson.M{"userId": userID}).Decode(&profile)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *ProfileRepository) FindByHandle(ctx context.Context, handle string) (*models.Profile, error) {
	var profile models.Profile
	err := r.collection.FindOne(ctx, bson.M{"handle": handle}).Decode(&profile)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// MergeUpdate overwrites only the given fields on the owner's profile and
// returns the updated document. Fields not present in set are left untouched.
func (r *ProfileRepository) MergeUpdate(ctx context.Context, userID string, set bson.M) (*models.Profile, error) {
	set["metadata.updatedAt"] = int(time.Now().Unix())

	filter := bson.M{"userId": userID}
	update := bson.M{"$set": set}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Profile
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return &updated, nil
}

// PushExperience prepends the entry to the owner's experience list as a single
// atomic array mutation. Returns mongo.ErrNoDocuments when no profile exists.
func (r *ProfileRepository) PushExperience(ctx context.Context, userID string, entry models.ExperienceEntry) (*models.Profile, error) {
	return r.pushFront(ctx, userID, "experience", entry)
}

// PushEducation prepends the entry to the owner's education list atomically.
func (r *ProfileRepository) PushEducation(ctx context.Context, userID string, entry models.EducationEntry) (*models.Profile, error) {
	return r.pushFront(ctx, userID, "education", entry)
}

func (r *ProfileRepository) pushFront(ctx context.Context, userID, field string, entry any) (*models.Profile, error) {
	filter := bson.M{"userId": userID}
	update := bson.M{
		"$push": bson.M{
			field: bson.M{
				"$each":     bson.A{entry},
				"$position": 0,
			},
		},
		"$set": bson.M{"metadata.updatedAt": int(time.Now().Unix())},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Profile
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, err
		}
		return nil, fmt.Errorf("failed to push %s entry: %w", field, err)
	}

	return &updated, nil
}

func (r *ProfileRepository) FindAll(ctx context.Context, page, limit int) ([]*models.Profile, error) {
	opts := options.Find()
	opts.SetSort(bson.M{"metadata.createdAt": -1})
	opts.SetSkip(int64((page - 1) * limit))
	opts.SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var profiles []*models.Profile
	if err = cursor.All(ctx, &profiles); err != nil {
		return nil, err
	}

	return profiles, nil
}

func (r *ProfileRepository) Delete(ctx context.Context, userID string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"userId": userID})
	if err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}

	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}

	return nil
}

func (r *ProfileRepository) CreateIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			// Sparse so profiles without a handle do not collide on the index.
			Keys:    bson.D{{Key: "handle", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
		{
			Keys: bson.D{{Key: "metadata.createdAt", Value: -1}},
		},
	}

	_, err := r.collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("failed to create profile indexes: %w", err)
	}

	return nil
}
