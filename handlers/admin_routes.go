package handlers

import (
	"errors"
	"path/filepath"
	"strconv"
	"time"

	"gamification-system/middleware"
	"gamification-system/services"
	"gamification-system/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SetupAdminRoutes wires the HR-only surface: theme management, mission
// content management with publish scheduling, and asset uploads.
func SetupAdminRoutes(app *fiber.App, db *gorm.DB, secret string,
	themeService *services.ThemeService, contentService *services.ContentService) {

	admin := app.Group("/admin",
		middleware.JWTAuthMiddleware(db, secret),
		middleware.RequireHR(),
	)

	// --- Themes ---

	admin.Get("/themes", func(c *fiber.Ctx) error {
		themes, err := themeService.All()
		if err != nil {
			return failInternal(c, err)
		}
		return ok(c, themes)
	})

	admin.Post("/themes", func(c *fiber.Ctx) error {
		user := middleware.CurrentUser(c)

		var req services.ThemeInput
		if err := c.BodyParser(&req); err != nil {
			return failValidation(c, map[string]string{"body": "invalid JSON"})
		}

		details := map[string]string{}
		if req.DisplayName == "" {
			details["display_name"] = "Поле display_name обязательно для заполнения"
		}
		if req.Colors == nil {
			details["colors"] = "Поле colors обязательно для заполнения"
		}
		if len(details) > 0 {
			return failValidation(c, details)
		}

		theme, err := themeService.Create(req, user.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return failValidation(c, map[string]string{"name": "Тема с таким именем уже существует"})
			}
			return failInternal(c, err)
		}
		return created(c, theme, "Тема успешно создана")
	})

	admin.Put("/themes/:id", func(c *fiber.Ctx) error {
		themeID, err := strconv.Atoi(c.Params("id"))
		if err != nil {
			return fail(c, fiber.StatusNotFound, "THEME_NOT_FOUND", "Тема не найдена")
		}

		var req services.ThemeInput
		if err := c.BodyParser(&req); err != nil {
			return failValidation(c, map[string]string{"body": "invalid JSON"})
		}

		theme, err := themeService.Update(uint(themeID), req)
		if err != nil {
			if errors.Is(err, services.ErrThemeNotFound) {
				return fail(c, fiber.StatusNotFound, "THEME_NOT_FOUND", "Тема не найдена")
			}
			return failInternal(c, err)
		}

		return okMessage(c, fiber.Map{
			"id":         theme.ID,
			"updated_at": theme.UpdatedAt,
		}, "Тема успешно обновлена")
	})

	admin.Delete("/themes/:id", func(c *fiber.Ctx) error {
		themeID, err := strconv.Atoi(c.Params("id"))
		if err != nil {
			return fail(c, fiber.StatusNotFound, "THEME_NOT_FOUND", "Тема не найдена")
		}

		if err := themeService.Delete(uint(themeID)); err != nil {
			switch {
			case errors.Is(err, services.ErrThemeNotFound):
				return fail(c, fiber.StatusNotFound, "THEME_NOT_FOUND", "Тема не найдена")
			case errors.Is(err, services.ErrCannotDeleteDefault):
				return fail(c, fiber.StatusForbidden, "CANNOT_DELETE_DEFAULT", "Нельзя удалить системную тему")
			}
			return failInternal(c, err)
		}
		return c.JSON(fiber.Map{"success": true, "message": "Тема успешно удалена"})
	})

	admin.Post("/themes/:id/activate", func(c *fiber.Ctx) error {
		themeID, err := strconv.Atoi(c.Params("id"))
		if err != nil {
			return fail(c, fiber.StatusNotFound, "THEME_NOT_FOUND", "Тема не найдена")
		}

		activatedAt, err := themeService.ActivateGlobal(uint(themeID))
		if err != nil {
			if errors.Is(err, services.ErrThemeNotFound) {
				return fail(c, fiber.StatusNotFound, "THEME_NOT_FOUND", "Тема не найдена")
			}
			return failInternal(c, err)
		}

		return okMessage(c, fiber.Map{
			"theme_id":     themeID,
			"activated_at": activatedAt,
		}, "Тема активирована для всех пользователей")
	})

	// --- Missions ---

	admin.Get("/missions", func(c *fiber.Ctx) error {
		missions, err := contentService.AllMissions()
		if err != nil {
			return failInternal(c, err)
		}
		return ok(c, missions)
	})

	admin.Post("/missions", func(c *fiber.Ctx) error {
		var req services.MissionInput
		if err := c.BodyParser(&req); err != nil {
			return failValidation(c, map[string]string{"body": "invalid JSON"})
		}
		if req.Title == "" {
			return failValidation(c, map[string]string{"title": "Поле title обязательно для заполнения"})
		}

		mission, err := contentService.CreateMission(req)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrRankNotFound):
				return fail(c, fiber.StatusNotFound, "RANK_NOT_FOUND", "Ранг не найден")
			case errors.Is(err, services.ErrArtifactNotFound):
				return fail(c, fiber.StatusNotFound, "ARTIFACT_NOT_FOUND", "Артефакт не найден")
			}
			return failInternal(c, err)
		}
		return created(c, mission, "Миссия успешно создана")
	})

	admin.Put("/missions/:id", func(c *fiber.Ctx) error {
		missionID, err := strconv.Atoi(c.Params("id"))
		if err != nil {
			return fail(c, fiber.StatusNotFound, "MISSION_NOT_FOUND", "Миссия не найдена")
		}

		var req services.MissionInput
		if err := c.BodyParser(&req); err != nil {
			return failValidation(c, map[string]string{"body": "invalid JSON"})
		}

		mission, err := contentService.UpdateMission(uint(missionID), req)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrMissionNotFound):
				return fail(c, fiber.StatusNotFound, "MISSION_NOT_FOUND", "Миссия не найдена")
			case errors.Is(err, services.ErrRankNotFound):
				return fail(c, fiber.StatusNotFound, "RANK_NOT_FOUND", "Ранг не найден")
			case errors.Is(err, services.ErrArtifactNotFound):
				return fail(c, fiber.StatusNotFound, "ARTIFACT_NOT_FOUND", "Артефакт не найден")
			}
			return failInternal(c, err)
		}
		return okMessage(c, mission, "Миссия успешно обновлена")
	})

	admin.Delete("/missions/:id", func(c *fiber.Ctx) error {
		missionID, err := strconv.Atoi(c.Params("id"))
		if err != nil {
			return fail(c, fiber.StatusNotFound, "MISSION_NOT_FOUND", "Миссия не найдена")
		}

		if err := contentService.DeleteMission(uint(missionID)); err != nil {
			if errors.Is(err, services.ErrMissionNotFound) {
				return fail(c, fiber.StatusNotFound, "MISSION_NOT_FOUND", "Миссия не найдена")
			}
			return failInternal(c, err)
		}
		return c.JSON(fiber.Map{"success": true, "message": "Миссия успешно удалена"})
	})

	admin.Post("/missions/:id/publish/now", func(c *fiber.Ctx) error {
		missionID, err := strconv.Atoi(c.Params("id"))
		if err != nil {
			return fail(c, fiber.StatusNotFound, "MISSION_NOT_FOUND", "Миссия не найдена")
		}
		if err := contentService.PublishNow(uint(missionID)); err != nil {
			if errors.Is(err, services.ErrMissionNotFound) {
				return fail(c, fiber.StatusNotFound, "MISSION_NOT_FOUND", "Миссия не найдена")
			}
			return failInternal(c, err)
		}
		return c.JSON(fiber.Map{"success": true, "message": "Миссия опубликована"})
	})

	admin.Post("/missions/:id/publish/schedule", func(c *fiber.Ctx) error {
		missionID, err := strconv.Atoi(c.Params("id"))
		if err != nil {
			return fail(c, fiber.StatusNotFound, "MISSION_NOT_FOUND", "Миссия не найдена")
		}

		var req struct {
			PublishAt time.Time `json:"publish_at"`
		}
		if err := c.BodyParser(&req); err != nil || req.PublishAt.IsZero() {
			return failValidation(c, map[string]string{"publish_at": "Поле publish_at обязательно для заполнения"})
		}
		if req.PublishAt.Before(time.Now()) {
			return failValidation(c, map[string]string{"publish_at": "Дата публикации должна быть в будущем"})
		}

		if err := contentService.SchedulePublish(uint(missionID), req.PublishAt); err != nil {
			if errors.Is(err, services.ErrMissionNotFound) {
				return fail(c, fiber.StatusNotFound, "MISSION_NOT_FOUND", "Миссия не найдена")
			}
			return failInternal(c, err)
		}
		return okMessage(c, fiber.Map{"publish_at": req.PublishAt}, "Публикация запланирована")
	})

	admin.Post("/missions/:id/publish/cancel", func(c *fiber.Ctx) error {
		missionID, err := strconv.Atoi(c.Params("id"))
		if err != nil {
			return fail(c, fiber.StatusNotFound, "MISSION_NOT_FOUND", "Миссия не найдена")
		}
		if err := contentService.CancelScheduledPublish(uint(missionID)); err != nil {
			if errors.Is(err, services.ErrMissionNotFound) {
				return fail(c, fiber.StatusNotFound, "MISSION_NOT_FOUND", "Миссия не найдена")
			}
			return failInternal(c, err)
		}
		return c.JSON(fiber.Map{"success": true, "message": "Публикация отменена"})
	})

	// --- Assets ---

	// Artifact and theme images go to the R2 bucket when configured, local
	// uploads/ otherwise.
	admin.Post("/assets/upload", func(c *fiber.Ctx) error {
		file, err := c.FormFile("image")
		if err != nil {
			return failValidation(c, map[string]string{"image": "Файл image обязателен"})
		}
		if file.Size > 10*1024*1024 { // 10MB
			return failValidation(c, map[string]string{"image": "Файл слишком большой (максимум 10MB)"})
		}

		ext := filepath.Ext(file.Filename)
		if ext == "" {
			ext = ".png"
		}
		key := "assets/" + uuid.NewString() + ext

		url, err := utils.StoreAsset(file, key)
		if err != nil {
			return failInternal(c, err)
		}
		return created(c, fiber.Map{"url": url}, "Файл успешно загружен")
	})
}
