package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"devconnect-service/internal/event"
	"devconnect-service/internal/models"
	"devconnect-service/internal/validation"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// PostStore is the persistence surface for posts. Likes and comments are
// single-document array mutations.
type PostStore interface {
	Insert(ctx context.Context, post *models.Post) (*models.Post, error)
	FindByID(ctx context.Context, id bson.ObjectID) (*models.Post, error)
	FindAll(ctx context.Context, page, limit int) ([]*models.Post, error)
	Delete(ctx context.Context, id bson.ObjectID) error
	AddLike(ctx context.Context, id bson.ObjectID, userID string) (*models.Post, error)
	RemoveLike(ctx context.Context, id bson.ObjectID, userID string) (*models.Post, error)
	AddComment(ctx context.Context, id bson.ObjectID, comment models.Comment) (*models.Post, error)
	RemoveComment(ctx context.Context, id, commentID bson.ObjectID) (*models.Post, error)
}

type PostService struct {
	store     PostStore
	directory UserDirectory
	publisher event.Publisher
}

func NewPostService(store PostStore, directory UserDirectory, publisher event.Publisher) *PostService {
	return &PostService{
		store:     store,
		directory: directory,
		publisher: publisher,
	}
}

// CreatePost persists a new post with the author's name and avatar
// denormalized onto the document.
func (s *PostService) CreatePost(ctx context.Context, userID string, in *models.PostInput) (*models.Post, error) {
	if errs := validation.ValidatePostText(in.Text); errs != nil {
		return nil, errs
	}

	post := &models.Post{
		UserID: userID,
		Text:   in.Text,
	}

	if s.directory != nil {
		if owner, err := s.directory.Summary(ctx, userID); err == nil {
			post.Name = owner.Name
			post.Avatar = owner.Avatar
		} else {
			log.Printf("Warning: failed to resolve author %s: %v", userID, err)
		}
	}

	created, err := s.store.Insert(ctx, post)
	if err != nil {
		return nil, err
	}

	s.publish(models.EventTypePostCreated, created)
	return created, nil
}

func (s *PostService) GetPost(ctx context.Context, postID string) (*models.Post, error) {
	id, err := bson.ObjectIDFromHex(postID)
	if err != nil {
		return nil, fmt.Errorf("invalid post ID format: %w", err)
	}

	post, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	return post, nil
}

func (s *PostService) ListPosts(ctx context.Context, page, limit int) ([]*models.Post, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	posts, err := s.store.FindAll(ctx, page, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, nil
}

// DeletePost removes the caller's own post. Deleting someone else's post is
// an ownership violation, not a not-found.
func (s *PostService) DeletePost(ctx context.Context, userID, postID string) error {
	post, err := s.GetPost(ctx, postID)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return ErrNotOwner
	}

	if err := s.store.Delete(ctx, post.ID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrPostNotFound
		}
		return err
	}

	s.publish(models.EventTypePostDeleted, post)
	return nil
}

// LikePost records a like; a user can like a post at most once.
func (s *PostService) LikePost(ctx context.Context, userID, postID string) (*models.Post, error) {
	id, err := bson.ObjectIDFromHex(postID)
	if err != nil {
		return nil, fmt.Errorf("invalid post ID format: %w", err)
	}

	updated, err := s.store.AddLike(ctx, id, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// The filter excludes already-liked posts, so tell the two
			// cases apart with a direct load.
			if _, lookupErr := s.store.FindByID(ctx, id); lookupErr != nil {
				return nil, ErrPostNotFound
			}
			return nil, ErrAlreadyLiked
		}
		return nil, err
	}
	return updated, nil
}

func (s *PostService) UnlikePost(ctx context.Context, userID, postID string) (*models.Post, error) {
	id, err := bson.ObjectIDFromHex(postID)
	if err != nil {
		return nil, fmt.Errorf("invalid post ID format: %w", err)
	}

	updated, err := s.store.RemoveLike(ctx, id, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			if _, lookupErr := s.store.FindByID(ctx, id); lookupErr != nil {
				return nil, ErrPostNotFound
			}
			return nil, ErrNotLiked
		}
		return nil, err
	}
	return updated, nil
}

// AddComment prepends a comment with the commenter's name and avatar.
func (s *PostService) AddComment(ctx context.Context, userID, postID string, in *models.CommentInput) (*models.Post, error) {
	if errs := validation.ValidatePostText(in.Text); errs != nil {
		return nil, errs
	}

	id, err := bson.ObjectIDFromHex(postID)
	if err != nil {
		return nil, fmt.Errorf("invalid post ID format: %w", err)
	}

	comment := models.Comment{
		ID:     bson.NewObjectID(),
		UserID: userID,
		Text:   in.Text,
		Date:   int(time.Now().Unix()),
	}

	if s.directory != nil {
		if owner, err := s.directory.Summary(ctx, userID); err == nil {
			comment.Name = owner.Name
			comment.Avatar = owner.Avatar
		}
	}

	updated, err := s.store.AddComment(ctx, id, comment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return updated, nil
}

// DeleteComment removes the caller's own comment from the post.
func (s *PostService) DeleteComment(ctx context.Context, userID, postID, commentID string) (*models.Post, error) {
	post, err := s.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	cid, err := bson.ObjectIDFromHex(commentID)
	if err != nil {
		return nil, fmt.Errorf("invalid comment ID format: %w", err)
	}

	var found *models.Comment
	for i := range post.Comments {
		if post.Comments[i].ID == cid {
			found = &post.Comments[i]
			break
		}
	}
	if found == nil {
		return nil, ErrCommentNotFound
	}
	if found.UserID != userID {
		return nil, ErrNotOwner
	}

	updated, err := s.store.RemoveComment(ctx, post.ID, cid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return updated, nil
}

func (s *PostService) publish(eventType models.EventType, post *models.Post) {
	if s.publisher == nil {
		return
	}

	evt := &models.PostEvent{
		EventType: eventType,
		PostID:    post.ID.Hex(),
		UserID:    post.UserID,
		Timestamp: time.Now().Unix(),
	}
	if err := s.publisher.PublishPostEvent(evt); err != nil {
		log.Printf("Failed to publish %s event: %v", eventType, err)
	}
}
