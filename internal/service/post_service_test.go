package service

import (
	"context"
	"errors"
	"testing"

	"devconnect-service/internal/event"
	"devconnect-service/internal/models"
	"devconnect-service/internal/validation"
)

func newTestPostService(store *fakePostStore) (*PostService, *event.MockPublisher) {
	publisher := event.NewMockPublisher()
	directory := &fakeDirectory{summaries: map[string]*models.UserSummary{
		"user-1": {ID: "user-1", Name: "Alice", Avatar: "https://example.com/a.png"},
		"user-2": {ID: "user-2", Name: "Bob", Avatar: "https://example.com/b.png"},
	}}
	return NewPostService(store, directory, publisher), publisher
}

func mustCreatePost(t *testing.T, svc *PostService, userID, text string) *models.Post {
	t.Helper()
	post, err := svc.CreatePost(context.Background(), userID, &models.PostInput{Text: text})
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}
	return post
}

func TestCreatePost(t *testing.T) {
	store := newFakePostStore()
	svc, publisher := newTestPostService(store)

	post := mustCreatePost(t, svc, "user-1", "hello world")

	if post.Name != "Alice" || post.Avatar != "https://example.com/a.png" {
		t.Errorf("Expected author denormalized onto post, got %q %q", post.Name, post.Avatar)
	}
	if len(publisher.PostEvents) != 1 || publisher.PostEvents[0].EventType != models.EventTypePostCreated {
		t.Errorf("Expected one post.created event, got %+v", publisher.PostEvents)
	}
}

func TestCreatePostTextValidation(t *testing.T) {
	store := newFakePostStore()
	svc, _ := newTestPostService(store)

	for _, text := range []string{"", "hi", "short"} {
		_, err := svc.CreatePost(context.Background(), "user-1", &models.PostInput{Text: text})
		var verrs *validation.Errors
		if !errors.As(err, &verrs) {
			t.Errorf("Expected validation errors for %q, got %v", text, err)
			continue
		}
		if _, ok := (*verrs)["text"]; !ok {
			t.Errorf("Expected text error for %q, got %v", text, *verrs)
		}
	}
	if len(store.posts) != 0 {
		t.Error("Expected no posts created after validation failures")
	}
}

func TestDeletePostOwnership(t *testing.T) {
	store := newFakePostStore()
	svc, _ := newTestPostService(store)
	ctx := context.Background()

	post := mustCreatePost(t, svc, "user-1", "hello world")

	if err := svc.DeletePost(ctx, "user-2", post.ID.Hex()); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("Expected ErrNotOwner, got %v", err)
	}
	if err := svc.DeletePost(ctx, "user-1", post.ID.Hex()); err != nil {
		t.Fatalf("Owner delete failed: %v", err)
	}
	if _, err := svc.GetPost(ctx, post.ID.Hex()); !errors.Is(err, ErrPostNotFound) {
		t.Errorf("Expected ErrPostNotFound after delete, got %v", err)
	}
}

func TestLikePost(t *testing.T) {
	store := newFakePostStore()
	svc, _ := newTestPostService(store)
	ctx := context.Background()

	post := mustCreatePost(t, svc, "user-1", "hello world")

	updated, err := svc.LikePost(ctx, "user-2", post.ID.Hex())
	if err != nil {
		t.Fatalf("LikePost failed: %v", err)
	}
	if len(updated.Likes) != 1 || updated.Likes[0].UserID != "user-2" {
		t.Errorf("Expected one like by user-2, got %+v", updated.Likes)
	}

	if _, err := svc.LikePost(ctx, "user-2", post.ID.Hex()); !errors.Is(err, ErrAlreadyLiked) {
		t.Fatalf("Expected ErrAlreadyLiked, got %v", err)
	}

	if _, err := svc.LikePost(ctx, "user-2", "000000000000000000000000"); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("Expected ErrPostNotFound, got %v", err)
	}
}

func TestUnlikePost(t *testing.T) {
	store := newFakePostStore()
	svc, _ := newTestPostService(store)
	ctx := context.Background()

	post := mustCreatePost(t, svc, "user-1", "hello world")

	if _, err := svc.UnlikePost(ctx, "user-2", post.ID.Hex()); !errors.Is(err, ErrNotLiked) {
		t.Fatalf("Expected ErrNotLiked before liking, got %v", err)
	}

	if _, err := svc.LikePost(ctx, "user-2", post.ID.Hex()); err != nil {
		t.Fatalf("LikePost failed: %v", err)
	}

	updated, err := svc.UnlikePost(ctx, "user-2", post.ID.Hex())
	if err != nil {
		t.Fatalf("UnlikePost failed: %v", err)
	}
	if len(updated.Likes) != 0 {
		t.Errorf("Expected likes cleared, got %+v", updated.Likes)
	}
}

func TestAddCommentNewestFirst(t *testing.T) {
	store := newFakePostStore()
	svc, _ := newTestPostService(store)
	ctx := context.Background()

	post := mustCreatePost(t, svc, "user-1", "hello world")

	if _, err := svc.AddComment(ctx, "user-2", post.ID.Hex(), &models.CommentInput{Text: "first comment"}); err != nil {
		t.Fatalf("first AddComment failed: %v", err)
	}
	updated, err := svc.AddComment(ctx, "user-2", post.ID.Hex(), &models.CommentInput{Text: "second comment"})
	if err != nil {
		t.Fatalf("second AddComment failed: %v", err)
	}

	if len(updated.Comments) != 2 {
		t.Fatalf("Expected 2 comments, got %d", len(updated.Comments))
	}
	if updated.Comments[0].Text != "second comment" {
		t.Errorf("Expected newest comment first, got %q", updated.Comments[0].Text)
	}
	if updated.Comments[0].Name != "Bob" {
		t.Errorf("Expected commenter denormalized, got %q", updated.Comments[0].Name)
	}
}

func TestDeleteComment(t *testing.T) {
	store := newFakePostStore()
	svc, _ := newTestPostService(store)
	ctx := context.Background()

	post := mustCreatePost(t, svc, "user-1", "hello world")
	withComment, err := svc.AddComment(ctx, "user-2", post.ID.Hex(), &models.CommentInput{Text: "nice post"})
	if err != nil {
		t.Fatalf("AddComment failed: %v", err)
	}
	commentID := withComment.Comments[0].ID.Hex()

	if _, err := svc.DeleteComment(ctx, "user-1", post.ID.Hex(), commentID); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("Expected ErrNotOwner for non-author, got %v", err)
	}

	updated, err := svc.DeleteComment(ctx, "user-2", post.ID.Hex(), commentID)
	if err != nil {
		t.Fatalf("DeleteComment failed: %v", err)
	}
	if len(updated.Comments) != 0 {
		t.Errorf("Expected comments cleared, got %+v", updated.Comments)
	}

	if _, err := svc.DeleteComment(ctx, "user-2", post.ID.Hex(), commentID); !errors.Is(err, ErrCommentNotFound) {
		t.Errorf("Expected ErrCommentNotFound, got %v", err)
	}
}
