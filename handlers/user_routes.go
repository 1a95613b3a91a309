package handlers

import (
	"errors"
	"strings"

	"gamification-system/middleware"
	"gamification-system/models"
	"gamification-system/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupUserRoutes(app *fiber.App, db *gorm.DB, secret string, statsService *services.StatsService) {
	secured := app.Group("/users", middleware.JWTAuthMiddleware(db, secret))

	secured.Get("/profile", func(c *fiber.Ctx) error {
		user := middleware.CurrentUser(c)
		stats, err := statsService.ForUser(user)
		if err != nil {
			return failInternal(c, err)
		}
		return ok(c, fiber.Map{"user": user, "stats": stats})
	})

	secured.Put("/profile", func(c *fiber.Ctx) error {
		user := middleware.CurrentUser(c)

		var req struct {
			Name  string `json:"name"`
			Email string `json:"email"`
		}
		if err := c.BodyParser(&req); err != nil {
			return failValidation(c, map[string]string{"body": "invalid JSON"})
		}

		updates := map[string]any{}
		if req.Name != "" {
			updates["name"] = strings.TrimSpace(req.Name)
		}
		if req.Email != "" {
			if !strings.Contains(req.Email, "@") {
				return failValidation(c, map[string]string{"email": "Поле email должно быть корректным адресом"})
			}
			updates["email"] = req.Email
		}

		if len(updates) > 0 {
			if err := db.Model(user).Updates(updates).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return failValidation(c, map[string]string{"email": "Поле email уже занято"})
				}
				return failInternal(c, err)
			}
		}

		return okMessage(c, user, "Профиль успешно обновлен")
	})

	secured.Get("/competences", func(c *fiber.Ctx) error {
		user := middleware.CurrentUser(c)

		var rows []models.UserCompetence
		if err := db.Preload("Competence").
			Where("user_id = ?", user.ID).
			Order("competence_id ASC").
			Find(&rows).Error; err != nil {
			return failInternal(c, err)
		}
		return ok(c, rows)
	})
}
