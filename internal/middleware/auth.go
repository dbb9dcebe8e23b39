package middleware

import (
	"log/slog"
	"strings"

	"relay/internal/models"
	"relay/internal/session"

	"github.com/gofiber/fiber/v2"
)

// AuthRequired enforces a valid session token on protected routes.
//
// The token travels as "Authorization: Bearer <token>" and is resolved
// against the server-side session store; a token the store does not know is
// rejected. On success the resolved identity is placed in
// c.Locals("userID"), c.Locals("username") and the raw token in
// c.Locals("sessionToken") for logout.
func AuthRequired(store session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Authorization header required"))
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid authorization header format"))
		}
		token := parts[1]

		sess, err := store.Get(c.UserContext(), token)
		if err != nil {
			Logger.ErrorContext(c.UserContext(), "session lookup failed", slog.String("error", err.Error()))
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		}
		if sess == nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid or expired session"))
		}

		c.Locals("userID", sess.UserID)
		c.Locals("username", sess.Username)
		c.Locals("sessionToken", token)

		return c.Next()
	}
}
