package middleware

import (
	"errors"
	"fmt"
	"strings"

	"gamification-system/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

// Claims carried by access tokens. Mirrors services.Claims; declared here too
// so the middleware does not import the service layer.
type Claims struct {
	UserID uint   `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

func authError(c *fiber.Ctx, code, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"success": false,
		"error":   fiber.Map{"code": code, "message": message},
	})
}

// JWTAuthMiddleware validates the Bearer token, classifies failures so the
// client can pick the right remedy (refresh vs re-login), and loads the
// authenticated user into ctx locals.
func JWTAuthMiddleware(db *gorm.DB, secret string) fiber.Handler {
	secretBytes := []byte(secret)

	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return authError(c, "TOKEN_ABSENT", "Токен не предоставлен")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return authError(c, "TOKEN_INVALID", "Неверный токен")
		}

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return secretBytes, nil
		})
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return authError(c, "TOKEN_EXPIRED", "Токен истек")
			}
			return authError(c, "TOKEN_INVALID", "Неверный токен")
		}
		if !token.Valid || claims.UserID == 0 {
			return authError(c, "TOKEN_INVALID", "Неверный токен")
		}

		var user models.User
		if err := db.Preload("Rank").Preload("Theme").First(&user, claims.UserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return authError(c, "USER_NOT_FOUND", "Пользователь не найден")
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"error":   fiber.Map{"code": "INTERNAL_ERROR", "message": "DB error loading user"},
			})
		}

		c.Locals("user", &user)
		c.Locals("user_id", user.ID)
		return c.Next()
	}
}

// CurrentUser returns the authenticated user attached by JWTAuthMiddleware.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals("user").(*models.User)
	return user
}
