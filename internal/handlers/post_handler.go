package handlers

import (
	"context"
	"errors"
	"log"
	"strconv"
	"time"

	"devconnect-service/internal/middleware"
	"devconnect-service/internal/models"
	"devconnect-service/internal/service"
	"devconnect-service/internal/validation"

	"github.com/gofiber/fiber/v3"
)

type PostHandler struct {
	postService *service.PostService
}

func NewPostHandler(postService *service.PostService) *PostHandler {
	return &PostHandler{
		postService: postService,
	}
}

func (h *PostHandler) RegisterRoutes(app *fiber.App, auth fiber.Handler) {
	public := app.Group("/api/posts")
	public.Get("/", h.ListPosts)
	public.Get("/:id", h.GetPost)

	protected := app.Group("/api/posts", auth)
	protected.Post("/", h.CreatePost)
	protected.Delete("/:id", h.DeletePost)
	protected.Post("/like/:id", h.LikePost)
	protected.Post("/unlike/:id", h.UnlikePost)
	protected.Post("/comment/:id", h.AddComment)
	protected.Delete("/comment/:id/:commentId", h.DeleteComment)
}

func (h *PostHandler) ListPosts(c fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	posts, err := h.postService.ListPosts(ctx, page, limit)
	if err != nil {
		log.Printf("Failed to list posts: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to retrieve posts",
		})
	}

	if posts == nil {
		posts = []*models.Post{}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": fiber.Map{
			"posts": posts,
		},
	})
}

func (h *PostHandler) GetPost(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	post, err := h.postService.GetPost(ctx, c.Params("id"))
	if err != nil {
		return h.writePostError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": fiber.Map{
			"post": post,
		},
	})
}

func (h *PostHandler) CreatePost(c fiber.Ctx) error {
	userID := middleware.UserID(c)

	var input models.PostInput
	if err := c.Bind().Body(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	post, err := h.postService.CreatePost(ctx, userID, &input)
	if err != nil {
		return h.writePostError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"post": post,
		},
	})
}

func (h *PostHandler) DeletePost(c fiber.Ctx) error {
	userID := middleware.UserID(c)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := h.postService.DeletePost(ctx, userID, c.Params("id")); err != nil {
		return h.writePostError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Post deleted successfully",
	})
}

func (h *PostHandler) LikePost(c fiber.Ctx) error {
	userID := middleware.UserID(c)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	post, err := h.postService.LikePost(ctx, userID, c.Params("id"))
	if err != nil {
		return h.writePostError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": fiber.Map{
			"post": post,
		},
	})
}

func (h *PostHandler) UnlikePost(c fiber.Ctx) error {
	userID := middleware.UserID(c)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	post, err := h.postService.UnlikePost(ctx, userID, c.Params("id"))
	if err != nil {
		return h.writePostError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": fiber.Map{
			"post": post,
		},
	})
}

func (h *PostHandler) AddComment(c fiber.Ctx) error {
	userID := middleware.UserID(c)

	var input models.CommentInput
	if err := c.Bind().Body(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	post, err := h.postService.AddComment(ctx, userID, c.Params("id"), &input)
	if err != nil {
		return h.writePostError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": fiber.Map{
			"post": post,
		},
	})
}

func (h *PostHandler) DeleteComment(c fiber.Ctx) error {
	userID := middleware.UserID(c)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	post, err := h.postService.DeleteComment(ctx, userID, c.Params("id"), c.Params("commentId"))
	if err != nil {
		return h.writePostError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": fiber.Map{
			"post": post,
		},
	})
}

func (h *PostHandler) writePostError(c fiber.Ctx, err error) error {
	var verrs *validation.Errors
	if errors.As(err, &verrs) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"errors": verrs,
		})
	}

	switch {
	case errors.Is(err, service.ErrPostNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Post not found",
		})
	case errors.Is(err, service.ErrCommentNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Comment not found",
		})
	case errors.Is(err, service.ErrNotOwner):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Access denied",
		})
	case errors.Is(err, service.ErrAlreadyLiked):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Post already liked",
		})
	case errors.Is(err, service.ErrNotLiked):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Post has not been liked yet",
		})
	}

	log.Printf("Post operation failed: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "Failed to process post operation",
	})
}
