package handlers

import (
	"errors"
	"strings"

	"gamification-system/middleware"
	"gamification-system/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupAuthRoutes(app *fiber.App, db *gorm.DB, authService *services.AuthService, statsService *services.StatsService) {
	app.Post("/auth/register", func(c *fiber.Ctx) error {
		var req struct {
			Name     string `json:"name"`
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := c.BodyParser(&req); err != nil {
			return failValidation(c, map[string]string{"body": "invalid JSON"})
		}

		details := map[string]string{}
		if strings.TrimSpace(req.Name) == "" {
			details["name"] = "Поле name обязательно для заполнения"
		}
		if !strings.Contains(req.Email, "@") {
			details["email"] = "Поле email должно быть корректным адресом"
		}
		if len(req.Password) < 6 {
			details["password"] = "Пароль должен содержать минимум 6 символов"
		}
		if len(details) > 0 {
			return failValidation(c, details)
		}

		user, token, err := authService.Register(req.Name, req.Email, req.Password)
		if err != nil {
			if errors.Is(err, services.ErrEmailTaken) {
				return failValidation(c, map[string]string{"email": "Поле email уже занято"})
			}
			return failInternal(c, err)
		}

		return created(c, fiber.Map{"user": user, "token": token},
			"Пользователь успешно зарегистрирован")
	})

	app.Post("/auth/login", func(c *fiber.Ctx) error {
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := c.BodyParser(&req); err != nil {
			return failValidation(c, map[string]string{"body": "invalid JSON"})
		}

		details := map[string]string{}
		if !strings.Contains(req.Email, "@") {
			details["email"] = "Поле email должно быть корректным адресом"
		}
		if len(req.Password) < 6 {
			details["password"] = "Пароль должен содержать минимум 6 символов"
		}
		if len(details) > 0 {
			return failValidation(c, details)
		}

		user, token, err := authService.Login(req.Email, req.Password)
		if err != nil {
			if errors.Is(err, services.ErrInvalidCredentials) {
				return fail(c, fiber.StatusUnauthorized, "INVALID_CREDENTIALS", "Неверный email или пароль")
			}
			return failInternal(c, err)
		}

		return okMessage(c, fiber.Map{"user": user, "token": token}, "Успешный вход в систему")
	})

	secured := app.Group("/auth", middleware.JWTAuthMiddleware(db, authService.Secret()))

	// Token issuance is stateless; logout just acknowledges so the client
	// drops its copy.
	secured.Post("/logout", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"success": true, "message": "Успешный выход из системы"})
	})

	secured.Get("/me", func(c *fiber.Ctx) error {
		user := middleware.CurrentUser(c)
		stats, err := statsService.ForUser(user)
		if err != nil {
			return failInternal(c, err)
		}
		return ok(c, fiber.Map{"user": user, "stats": stats})
	})
}
