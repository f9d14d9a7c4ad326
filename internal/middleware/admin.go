package middleware

import (
	"crypto/subtle"

	"github.com/ahmetcoskunkizilkaya/grievance-portal/internal/config"
	"github.com/ahmetcoskunkizilkaya/grievance-portal/internal/dto"
	"github.com/ahmetcoskunkizilkaya/grievance-portal/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// AdminRequired guards the dashboard. It accepts either the static
// X-Admin-Token header or a bearer JWT carrying role=admin.
func AdminRequired(cfg *config.Config) fiber.Handler {
	var jwtCheck fiber.Handler
	if cfg.JWTSecret != "" {
		jwtCheck = JWTProtected(cfg, requireAdminRole)
	}

	return func(c *fiber.Ctx) error {
		if cfg.AdminToken != "" {
			if token := c.Get("X-Admin-Token"); token != "" &&
				subtle.ConstantTimeCompare([]byte(token), []byte(cfg.AdminToken)) == 1 {
				return c.Next()
			}
		}

		if jwtCheck == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}
		return jwtCheck(c)
	}
}

func requireAdminRole(c *fiber.Ctx) error {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid claims",
		})
	}

	if role, _ := claims["role"].(string); role == services.AdminRole {
		return c.Next()
	}

	return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
		Error: true, Message: "Admin access required",
	})
}
