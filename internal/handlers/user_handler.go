package handlers

import (
	"context"
	"errors"
	"log"
	"time"

	"devconnect-service/internal/models"
	"devconnect-service/internal/service"
	"devconnect-service/internal/validation"

	"github.com/gofiber/fiber/v3"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

func (h *UserHandler) RegisterRoutes(app *fiber.App) {
	users := app.Group("/api/users")
	users.Post("/register", h.Register)
	users.Post("/login", h.Login)
}

func (h *UserHandler) Register(c fiber.Ctx) error {
	var input models.RegisterInput
	if err := c.Bind().Body(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	user, err := h.userService.Register(ctx, &input)
	if err != nil {
		var verrs *validation.Errors
		if errors.As(err, &verrs) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"errors": verrs,
			})
		}

		if errors.Is(err, service.ErrEmailTaken) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"errors": fiber.Map{
					"email": "Email already exists",
				},
			})
		}

		log.Printf("Failed to register user: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to register user",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"user": user,
		},
	})
}

func (h *UserHandler) Login(c fiber.Ctx) error {
	var input models.LoginInput
	if err := c.Bind().Body(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	token, user, err := h.userService.Login(ctx, &input)
	if err != nil {
		var verrs *validation.Errors
		if errors.As(err, &verrs) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"errors": verrs,
			})
		}

		if errors.Is(err, service.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid email or password",
			})
		}

		log.Printf("Failed to log in user: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to log in",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": fiber.Map{
			"token": token,
			"user": fiber.Map{
				"id":     user.ID.Hex(),
				"name":   user.Name,
				"avatar": user.Avatar,
			},
		},
	})
}
