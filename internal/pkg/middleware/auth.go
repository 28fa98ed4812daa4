package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/padhisneha/vedida-ecommerce-sub000/internal/pkg/usercontext"
)

// RequireAuth rejects requests without an authenticated user context.
// It runs behind APIKeyAuthMiddleware, which populates the context.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !usercontext.IsLoggedIn(c) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Authentication required"})
		}
		return c.Next()
	}
}

// RequireAdmin rejects authenticated requests from non-admin users.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !usercontext.IsLoggedIn(c) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Authentication required"})
		}
		if !usercontext.IsAdmin(c) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "forbidden", "message": "Admin access required"})
		}
		return c.Next()
	}
}
