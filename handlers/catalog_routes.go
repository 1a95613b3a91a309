package handlers

import (
	"errors"
	"strconv"

	"gamification-system/middleware"
	"gamification-system/models"
	"gamification-system/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SetupCatalogRoutes serves the reference-data surface: artifacts owned by the
// caller, competences, ranks, store items, and themes.
func SetupCatalogRoutes(app *fiber.App, db *gorm.DB, secret string,
	storeService *services.StoreService, themeService *services.ThemeService) {

	auth := middleware.JWTAuthMiddleware(db, secret)

	app.Get("/artifacts", auth, func(c *fiber.Ctx) error {
		user := middleware.CurrentUser(c)

		var owned []models.UserArtifact
		if err := db.Preload("Artifact").
			Where("user_id = ?", user.ID).
			Order("obtained_at ASC").
			Find(&owned).Error; err != nil {
			return failInternal(c, err)
		}
		return ok(c, owned)
	})

	app.Get("/competences", auth, func(c *fiber.Ctx) error {
		var competences []models.Competence
		if err := db.Order("id ASC").Find(&competences).Error; err != nil {
			return failInternal(c, err)
		}
		return ok(c, competences)
	})

	app.Get("/ranks/:id", auth, func(c *fiber.Ctx) error {
		rankID, err := strconv.Atoi(c.Params("id"))
		if err != nil {
			return fail(c, fiber.StatusNotFound, "RANK_NOT_FOUND", "Ранг не найден")
		}

		var rank models.Rank
		if err := db.First(&rank, rankID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fail(c, fiber.StatusNotFound, "RANK_NOT_FOUND", "Ранг не найден")
			}
			return failInternal(c, err)
		}
		return okMessage(c, rank, "Ранг успешно получен")
	})

	app.Get("/store/items", auth, func(c *fiber.Ctx) error {
		items, err := storeService.ListItems()
		if err != nil {
			return failInternal(c, err)
		}
		return ok(c, fiber.Map{"items": items})
	})

	app.Post("/store/items/:id/purchase", auth, func(c *fiber.Ctx) error {
		user := middleware.CurrentUser(c)
		itemID, err := strconv.Atoi(c.Params("id"))
		if err != nil {
			return fail(c, fiber.StatusNotFound, "STORE_ITEM_NOT_FOUND", "Товар не найден")
		}

		result, err := storeService.Purchase(user.ID, uint(itemID))
		if err != nil {
			switch {
			case errors.Is(err, services.ErrStoreItemNotFound):
				return fail(c, fiber.StatusNotFound, "STORE_ITEM_NOT_FOUND", "Товар не найден")
			case errors.Is(err, services.ErrInsufficientMana):
				return fail(c, fiber.StatusBadRequest, "INSUFFICIENT_MANA", "Недостаточно маны для покупки")
			}
			return failInternal(c, err)
		}
		return okMessage(c, result, "Покупка совершена")
	})

	app.Get("/themes", auth, func(c *fiber.Ctx) error {
		themes, err := themeService.ListActive()
		if err != nil {
			return failInternal(c, err)
		}
		return ok(c, themes)
	})

	app.Post("/themes/:id/activate", auth, func(c *fiber.Ctx) error {
		user := middleware.CurrentUser(c)
		themeID, err := strconv.Atoi(c.Params("id"))
		if err != nil {
			return fail(c, fiber.StatusNotFound, "THEME_NOT_FOUND", "Тема не найдена")
		}

		activatedAt, err := themeService.ActivateForUser(user.ID, uint(themeID))
		if err != nil {
			if errors.Is(err, services.ErrThemeNotFound) {
				return fail(c, fiber.StatusNotFound, "THEME_NOT_FOUND", "Тема не найдена")
			}
			return failInternal(c, err)
		}

		return okMessage(c, fiber.Map{
			"theme_id":     themeID,
			"activated_at": activatedAt,
		}, "Тема успешно активирована")
	})
}
