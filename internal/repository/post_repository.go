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

type PostRepository struct {
	collection *mongo.Collection
}

func NewPostRepository(db *mongo.Database) *PostRepository {
	return &PostRepository{
		collection: db.Collection("Post"),
	}
}

func (r *PostRepository) Insert(ctx context.Context, post *models.Post) (*models.Post, error) {
	if post.ID.IsZero() {
		post.ID = bson.NewObjectID()
	}
	if post.Date == 0 {
		post.Date = int(time.Now().Unix())
	}
	if post.Likes == nil {
		post.Likes = []models.Like{}
	}
	if post.Comments == nil {
		post.Comments = []models.Comment{}
	}

	if _, err := r.collection.InsertOne(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to insert post: %w", err)
	}
	return post, nil
}

func (r *PostRepository) FindByID(ctx context.Context, id bson.ObjectID) (*models.Post, error) {
	var post models.Post
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *PostRepository) FindAll(ctx context.Context, page, limit int) ([]*models.Post, error) {
	opts := options.Find()
	opts.SetSort(bson.M{"date": -1})
	opts.SetSkip(int64((page - 1) * limit))
	opts.SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var posts []*models.Post
	if err = cursor.All(ctx, &posts); err != nil {
		return nil, err
	}

	return posts, nil
}

func (r *PostRepository) Delete(ctx context.Context, id bson.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// AddLike records the like atomically; the filter excludes posts the user has
// already liked so a double-like never matches.
func (r *PostRepository) AddLike(ctx context.Context, id bson.ObjectID, userID string) (*models.Post, error) {
	filter := bson.M{"_id": id, "likes.userId": bson.M{"$ne": userID}}
	update := bson.M{"$push": bson.M{"likes": models.Like{UserID: userID}}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Post
	if err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *PostRepository) RemoveLike(ctx context.Context, id bson.ObjectID, userID string) (*models.Post, error) {
	filter := bson.M{"_id": id, "likes.userId": userID}
	update := bson.M{"$pull": bson.M{"likes": bson.M{"userId": userID}}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Post
	if err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// AddComment prepends the comment so the newest comment is first.
func (r *PostRepository) AddComment(ctx context.Context, id bson.ObjectID, comment models.Comment) (*models.Post, error) {
	filter := bson.M{"_id": id}
	update := bson.M{
		"$push": bson.M{
			"comments": bson.M{
				"$each":     bson.A{comment},
				"$position": 0,
			},
		},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Post
	if err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *PostRepository) RemoveComment(ctx context.Context, id, commentID bson.ObjectID) (*models.Post, error) {
	filter := bson.M{"_id": id}
	update := bson.M{"$pull": bson.M{"comments": bson.M{"_id": commentID}}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Post
	if err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *PostRepository) CreateIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "userId", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "date", Value: -1}},
		},
	}

	_, err := r.collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("failed to create post indexes: %w", err)
	}

	return nil
}
