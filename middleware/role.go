package middleware

import (
	"log"

	"gamification-system/models"

	"github.com/gofiber/fiber/v2"
)

// RequireHR guards the admin surface. Must run after JWTAuthMiddleware.
func RequireHR() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil || user.Role != models.RoleHR {
			log.Printf("🚫 [ADMIN] Forbidden access to %s", c.Path())
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"success": false,
				"error":   fiber.Map{"code": "FORBIDDEN", "message": "Требуется роль HR"},
			})
		}
		return c.Next()
	}
}
