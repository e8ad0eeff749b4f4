package middleware

import (
	"context"
	"strings"

	"devhub/internal/auth"
	"devhub/internal/models"

	"github.com/gofiber/fiber/v2"
)

// AuthRequired returns a middleware that enforces bearer token authentication
// for protected routes. On success the authenticated user ID is stored in
// c.Locals("userID") and in the request context for the logger.
func AuthRequired(tokens *auth.TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return models.Respond(c, models.NewUnauthorizedError("Authorization header required"))
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return models.Respond(c, models.NewUnauthorizedError("Invalid authorization header format"))
		}

		userID, err := tokens.Verify(parts[1])
		if err != nil {
			return models.Respond(c, models.NewUnauthorizedError("Invalid or expired token"))
		}

		c.Locals("userID", userID)
		c.SetUserContext(context.WithValue(c.UserContext(), UserIDKey, userID))

		return c.Next()
	}
}

// CurrentUserID returns the authenticated user ID stored by AuthRequired.
// The second return is false on routes the auth gate never ran for.
func CurrentUserID(c *fiber.Ctx) (uint, bool) {
	uid, ok := c.Locals("userID").(uint)
	return uid, ok
}
