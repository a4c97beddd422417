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

type ProfileHandler struct {
	profileService *service.ProfileService
}

func NewProfileHandler(profileService *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
	}
}

func (h *ProfileHandler) RegisterRoutes(app *fiber.App, auth fiber.Handler) {
	// Public profile reads
	public := app.Group("/api/profiles")
	public.Get("/all", h.ListProfiles)
	public.Get("/handle/:handle", h.GetProfileByHandle)
	public.Get("/user/:userId", h.GetProfileByUserID)

	// Self-service endpoints
	own := app.Group("/api/profiles", auth)
	own.Get("/", h.GetMyProfile)
	own.Post("/", h.UpsertProfile)
	own.Post("/experience", h.AddExperience)
	own.Post("/education", h.AddEducation)
}

func (h *ProfileHandler) GetMyProfile(c fiber.Ctx) error {
	userID := middleware.UserID(c)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	profile, err := h.profileService.GetProfileByOwner(ctx, userID)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "There is no profile for this user",
			})
		}

		log.Printf("Failed to get profile for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to retrieve profile",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": fiber.Map{
			"profile": profile,
		},
	})
}

func (h *ProfileHandler) GetProfileByHandle(c fiber.Ctx) error {
	handle := c.Params("handle")
	if handle == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Handle is required",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	profile, err := h.profileService.GetProfileByHandle(ctx, handle)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "There is no profile for this handle",
			})
		}

		log.Printf("Failed to get profile for handle %s: %v", handle, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to retrieve profile",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": fiber.Map{
			"profile": profile,
		},
	})
}

func (h *ProfileHandler) GetProfileByUserID(c fiber.Ctx) error {
	userID := c.Params("userId")
	if userID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "User ID is required",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	profile, err := h.profileService.GetProfileByOwner(ctx, userID)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "There is no profile for this user",
			})
		}

		log.Printf("Failed to get profile for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to retrieve profile",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": fiber.Map{
			"profile": profile,
		},
	})
}

func (h *ProfileHandler) ListProfiles(c fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	profiles, err := h.profileService.ListProfiles(ctx, page, limit)
	if err != nil {
		log.Printf("Failed to list profiles: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to retrieve profiles",
		})
	}

	if profiles == nil {
		profiles = []*models.Profile{}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": fiber.Map{
			"profiles": profiles,
			"pagination": fiber.Map{
				"page":  page,
				"limit": limit,
				"count": len(profiles),
			},
		},
	})
}

func (h *ProfileHandler) UpsertProfile(c fiber.Ctx) error {
	userID := middleware.UserID(c)

	var input models.ProfileInput
	if err := c.Bind().Body(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	profile, err := h.profileService.UpsertProfile(ctx, userID, &input)
	if err != nil {
		return h.writeProfileError(c, userID, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": fiber.Map{
			"profile": profile,
		},
	})
}

func (h *ProfileHandler) AddExperience(c fiber.Ctx) error {
	userID := middleware.UserID(c)

	var input models.ExperienceInput
	if err := c.Bind().Body(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	profile, err := h.profileService.AddExperience(ctx, userID, &input)
	if err != nil {
		return h.writeProfileError(c, userID, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": fiber.Map{
			"profile": profile,
		},
	})
}

func (h *ProfileHandler) AddEducation(c fiber.Ctx) error {
	userID := middleware.UserID(c)

	var input models.EducationInput
	if err := c.Bind().Body(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	profile, err := h.profileService.AddEducation(ctx, userID, &input)
	if err != nil {
		return h.writeProfileError(c, userID, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": fiber.Map{
			"profile": profile,
		},
	})
}

func (h *ProfileHandler) writeProfileError(c fiber.Ctx, userID string, err error) error {
	var verrs *validation.Errors
	if errors.As(err, &verrs) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"errors": verrs,
		})
	}

	if errors.Is(err, service.ErrHandleTaken) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"errors": fiber.Map{
				"handle": "That handle already exists",
			},
		})
	}

	if errors.Is(err, service.ErrProfileNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "There is no profile for this user",
		})
	}

	log.Printf("Profile operation failed for user %s: %v", userID, err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "Failed to save profile",
	})
}
