package handlers

import (
	"errors"
	"strconv"
	"strings"

	"gamification-system/middleware"
	"gamification-system/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupMissionRoutes(app *fiber.App, db *gorm.DB, secret string,
	missionService *services.MissionService, progressionService *services.ProgressionService) {

	secured := app.Group("/missions", middleware.JWTAuthMiddleware(db, secret))

	secured.Get("/", func(c *fiber.Ctx) error {
		user := middleware.CurrentUser(c)
		page, _ := strconv.Atoi(c.Query("page", "1"))
		limit, _ := strconv.Atoi(c.Query("limit", "20"))

		missions, pagination, err := missionService.List(user, services.MissionFilter{
			Category: c.Query("category"),
			Branch:   c.Query("branch"),
			Status:   c.Query("status"),
			Page:     page,
			Limit:    limit,
		})
		if err != nil {
			return failInternal(c, err)
		}

		return ok(c, fiber.Map{"missions": missions, "pagination": pagination})
	})

	secured.Get("/:id", func(c *fiber.Ctx) error {
		user := middleware.CurrentUser(c)
		missionID, err := strconv.Atoi(c.Params("id"))
		if err != nil {
			return fail(c, fiber.StatusNotFound, "MISSION_NOT_FOUND", "Миссия не найдена")
		}

		view, err := missionService.Get(user, uint(missionID))
		if err != nil {
			if errors.Is(err, services.ErrMissionNotFound) {
				return fail(c, fiber.StatusNotFound, "MISSION_NOT_FOUND", "Миссия не найдена")
			}
			return failInternal(c, err)
		}
		return ok(c, view)
	})

	secured.Post("/:id/start", func(c *fiber.Ctx) error {
		user := middleware.CurrentUser(c)
		missionID, err := strconv.Atoi(c.Params("id"))
		if err != nil {
			return fail(c, fiber.StatusNotFound, "MISSION_NOT_FOUND", "Миссия не найдена")
		}

		result, err := progressionService.StartMission(user.ID, uint(missionID))
		if err != nil {
			switch {
			case errors.Is(err, services.ErrMissionNotFound):
				return fail(c, fiber.StatusNotFound, "MISSION_NOT_FOUND", "Миссия не найдена")
			case errors.Is(err, services.ErrInsufficientRank):
				return fail(c, fiber.StatusForbidden, "INSUFFICIENT_RANK", "Недостаточный ранг для выполнения миссии")
			case errors.Is(err, services.ErrMissionAlreadyStart):
				return fail(c, fiber.StatusBadRequest, "MISSION_ALREADY_STARTED", "Миссия уже начата")
			}
			return failInternal(c, err)
		}

		return okMessage(c, result, "Миссия начата")
	})

	secured.Post("/:id/complete", func(c *fiber.Ctx) error {
		user := middleware.CurrentUser(c)
		missionID, err := strconv.Atoi(c.Params("id"))
		if err != nil {
			return fail(c, fiber.StatusNotFound, "MISSION_NOT_FOUND", "Миссия не найдена")
		}

		var req struct {
			Evidence string `json:"evidence"`
		}
		if err := c.BodyParser(&req); err != nil {
			return failValidation(c, map[string]string{"body": "invalid JSON"})
		}
		if strings.TrimSpace(req.Evidence) == "" {
			return failValidation(c, map[string]string{"evidence": "Поле evidence обязательно для заполнения"})
		}

		result, err := progressionService.CompleteMission(user.ID, uint(missionID), req.Evidence)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrMissionNotFound):
				return fail(c, fiber.StatusNotFound, "MISSION_NOT_FOUND", "Миссия не найдена")
			case errors.Is(err, services.ErrMissionNotInProgress):
				return fail(c, fiber.StatusBadRequest, "MISSION_NOT_IN_PROGRESS", "Миссия не в процессе выполнения")
			}
			return failInternal(c, err)
		}

		return okMessage(c, result, "Миссия успешно завершена")
	})
}
