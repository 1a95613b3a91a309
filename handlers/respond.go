package handlers

import "github.com/gofiber/fiber/v2"

// All responses wrap a success flag plus data or a coded error, matching the
// client contract.

func ok(c *fiber.Ctx, data any) error {
	return c.JSON(fiber.Map{"success": true, "data": data})
}

func okMessage(c *fiber.Ctx, data any, message string) error {
	return c.JSON(fiber.Map{"success": true, "data": data, "message": message})
}

func created(c *fiber.Ctx, data any, message string) error {
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true, "data": data, "message": message,
	})
}

func fail(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"error":   fiber.Map{"code": code, "message": message},
	})
}

func failValidation(c *fiber.Ctx, details map[string]string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"error": fiber.Map{
			"code":    "VALIDATION_ERROR",
			"message": "Неверные данные",
			"details": details,
		},
	})
}

func failInternal(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"success": false,
		"error":   fiber.Map{"code": "INTERNAL_ERROR", "message": err.Error()},
	})
}
