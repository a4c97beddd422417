package middleware

import (
	"strings"

	"devconnect-service/internal/models"

	"github.com/gofiber/fiber/v3"
	"github.com/golang-jwt/jwt/v5"
)

const userIDLocal = "userId"

// AuthRequired resolves the caller identity, either from the X-User-ID header
// set by the gateway or from a Bearer token issued by the login endpoint, and
// rejects the request when neither is present.
func AuthRequired(jwtSecret string) fiber.Handler {
	return func(c fiber.Ctx) error {
		if userID := c.Get("X-User-ID"); userID != "" {
			c.Locals(userIDLocal, userID)
			return c.Next()
		}

		auth := c.Get("Authorization")
		if strings.HasPrefix(auth, "Bearer ") {
			tokenString := strings.TrimPrefix(auth, "Bearer ")

			claims := &models.Claims{}
			token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err == nil && token.Valid && claims.UserID != "" {
				c.Locals(userIDLocal, claims.UserID)
				return c.Next()
			}
		}

		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User authentication required",
		})
	}
}

// UserID returns the authenticated caller identity set by AuthRequired.
func UserID(c fiber.Ctx) string {
	if userID, ok := c.Locals(userIDLocal).(string); ok {
		return userID
	}
	return ""
}
