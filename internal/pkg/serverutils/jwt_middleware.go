// FILE: internal/pkg/serverutils/jwt_middleware.go
package serverutils

import (
	"chatshot-be/internal/repository/memory"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// NewJwtMiddleware authenticates bearer tokens and resolves the live session.
// A valid token whose session has been logged out or evicted is rejected, so
// nothing can act on another account's cached state.
func NewJwtMiddleware(secret string, sessions *memory.SessionRepository) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		authHeader := ctx.Get("Authorization")
		if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Missing token"})
		}
		tokenStr := authHeader[7:]

		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		})

		if err != nil || !token.Valid {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid token"})
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid claims"})
		}

		sessionID, ok := claims["session_id"].(string)
		if !ok {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid claims"})
		}

		if _, found := sessions.Get(sessionID); !found {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Session expired"})
		}

		ctx.Locals("session_id", sessionID)
		if accountKey, ok := claims["account_key"].(string); ok {
			ctx.Locals("account_key", accountKey)
		}
		return ctx.Next()
	}
}
