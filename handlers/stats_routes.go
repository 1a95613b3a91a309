package handlers

import (
	"strconv"

	"gamification-system/middleware"
	"gamification-system/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupStatsRoutes(app *fiber.App, db *gorm.DB, secret string, statsService *services.StatsService) {
	secured := app.Group("/stats", middleware.JWTAuthMiddleware(db, secret))

	secured.Get("/user", func(c *fiber.Ctx) error {
		user := middleware.CurrentUser(c)
		stats, err := statsService.ForUser(user)
		if err != nil {
			return failInternal(c, err)
		}
		return ok(c, stats)
	})

	secured.Get("/leaderboard", func(c *fiber.Ctx) error {
		user := middleware.CurrentUser(c)
		period := c.Query("period", "week")
		limit, _ := strconv.Atoi(c.Query("limit", "10"))

		entries, position, err := statsService.Leaderboard(user, period, limit)
		if err != nil {
			return failInternal(c, err)
		}

		return ok(c, fiber.Map{
			"leaderboard":   entries,
			"user_position": position,
			"period":        period,
		})
	})
}
