package middleware

import (
	"github.com/gofiber/fiber/v2"

	"meowdrop/backend/config"
	"meowdrop/backend/utils"
)

// UserIDKey is the fiber.Ctx local holding the authenticated user id.
const UserIDKey = "user_id"

func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := utils.ExtractUserIDFromToken(c, cfg)
		if err != nil {
			return utils.Unauthorized(c, "Unauthorized")
		}
		c.Locals(UserIDKey, userID)
		return c.Next()
	}
}

// CurrentUserID returns the id stored by AuthMiddleware, or "" when the
// request is unauthenticated.
func CurrentUserID(c *fiber.Ctx) string {
	id, _ := c.Locals(UserIDKey).(string)
	return id
}
